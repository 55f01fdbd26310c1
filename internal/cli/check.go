package cli

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/vitoramaral10/craft-guard/internal/chat"
	"github.com/vitoramaral10/craft-guard/internal/classifier"
	"github.com/vitoramaral10/craft-guard/internal/replay"
)

func newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Verifica se o nome de um item tem cor",
		Long: `Roda o detector sobre um item descrito por flags e mostra o veredicto
e o fingerprint usado como chave de cache.`,
		Example: `  craftguard check --type diamond --name "&bDiamante"
  craftguard check --type stick --rich '{"text":"Graveto","color":"gold"}'`,
		RunE: runCheck,
	}

	cmd.Flags().String("type", "stone", "tipo do item")
	cmd.Flags().String("name", "", "nome customizado em formato legado (§ ou &)")
	cmd.Flags().String("rich", "", "nome customizado em JSON de texto rico")
	cmd.Flags().Bool("translate", false, "traduz '&' para '§' antes de verificar, como o servidor faria")

	return cmd
}

func runCheck(cmd *cobra.Command, args []string) error {
	typ, _ := cmd.Flags().GetString("type")
	name, _ := cmd.Flags().GetString("name")
	rich, _ := cmd.Flags().GetString("rich")
	translate, _ := cmd.Flags().GetBool("translate")

	if translate {
		name = chat.TranslateAlternateColorCodes(chat.AltColorChar, name)
	}

	spec := &replay.ItemSpec{Type: typ, Name: name, Rich: rich}
	item, err := spec.Item()
	if err != nil {
		return err
	}

	colored := classifier.HasColoredName(item)
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "Item: %s\n", strings.ToUpper(typ))
	if dn, ok := item.DisplayName(); ok {
		fmt.Fprintf(out, "Nome: %s\n", chat.ToANSI(dn.Legacy))
	} else {
		fmt.Fprintln(out, "Nome: (sem nome customizado)")
	}
	fmt.Fprintf(out, "Fingerprint: %s\n", classifier.Fingerprint(item))

	if colored {
		fmt.Fprintf(out, "Veredicto: %s\n", color.RedString("nome colorido, crafting vanilla bloqueado"))
	} else {
		fmt.Fprintf(out, "Veredicto: %s\n", color.GreenString("sem cor, crafting permitido"))
	}
	return nil
}
