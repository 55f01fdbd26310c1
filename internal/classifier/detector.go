package classifier

import (
	"regexp"

	"github.com/vitoramaral10/craft-guard/internal/chat"
	"github.com/vitoramaral10/craft-guard/internal/host"
)

// colorPattern encontra códigos crus (§ ou &) que o servidor não processou.
var colorPattern = regexp.MustCompile(`[§&][0-9a-fA-Fk-oK-OrR]`)

// HasColoredName decide se o nome customizado de um item tem cor.
// Nunca falha: qualquer dado ausente ou malformado conta como "sem cor".
func HasColoredName(item *host.Item) bool {
	name, ok := item.DisplayName()
	if !ok {
		return false
	}

	// 1. Códigos legados já resolvidos
	if chat.StripColor(name.Legacy) != name.Legacy {
		return true
	}

	// 2. Códigos crus no nome
	if colorPattern.MatchString(name.Legacy) {
		return true
	}

	// 3. Cor declarada no texto rico
	if name.Rich != nil && chat.HasColor(name.Rich) {
		return true
	}

	return false
}
