package chat

import (
	"regexp"
	"strings"

	"github.com/fatih/color"
)

const (
	// SectionSign é o prefixo dos códigos legados de cor e formatação.
	SectionSign = '§'
	// AltColorChar é o prefixo alternativo usado em arquivos de configuração.
	AltColorChar = '&'
)

// validCodes são os caracteres aceitos após o prefixo de um código legado.
const validCodes = "0123456789AaBbCcDdEeFfKkLlMmNnOoRrXx"

var stripPattern = regexp.MustCompile(`(?i)§[0-9A-FK-ORX]`)

// StripColor remove todos os códigos legados (§ + caractere) de uma string.
func StripColor(s string) string {
	if s == "" {
		return s
	}
	return stripPattern.ReplaceAllString(s, "")
}

// TranslateAlternateColorCodes troca o prefixo alternativo pelo §
// sempre que ele for seguido de um código válido.
func TranslateAlternateColorCodes(alt rune, s string) string {
	runes := []rune(s)
	for i := 0; i < len(runes)-1; i++ {
		if runes[i] == alt && strings.ContainsRune(validCodes, runes[i+1]) {
			runes[i] = SectionSign
			runes[i+1] = toLower(runes[i+1])
		}
	}
	return string(runes)
}

func toLower(r rune) rune {
	if r >= 'A' && r <= 'Z' {
		return r + ('a' - 'A')
	}
	return r
}

var legacyColors = map[rune]color.Attribute{
	'0': color.FgBlack,
	'1': color.FgBlue,
	'2': color.FgGreen,
	'3': color.FgCyan,
	'4': color.FgRed,
	'5': color.FgMagenta,
	'6': color.FgYellow,
	'7': color.FgWhite,
	'8': color.FgHiBlack,
	'9': color.FgHiBlue,
	'a': color.FgHiGreen,
	'b': color.FgHiCyan,
	'c': color.FgHiRed,
	'd': color.FgHiMagenta,
	'e': color.FgHiYellow,
	'f': color.FgHiWhite,
}

var legacyFormats = map[rune]color.Attribute{
	'k': color.BlinkSlow,
	'l': color.Bold,
	'm': color.CrossedOut,
	'n': color.Underline,
	'o': color.Italic,
}

// ToANSI converte códigos legados em sequências de terminal.
// Cores hexadecimais (§x§r§r§g§g§b§b) são descartadas.
func ToANSI(s string) string {
	var (
		out   strings.Builder
		seg   strings.Builder
		attrs []color.Attribute
	)

	flush := func() {
		if seg.Len() == 0 {
			return
		}
		if len(attrs) == 0 {
			out.WriteString(seg.String())
		} else {
			out.WriteString(color.New(attrs...).Sprint(seg.String()))
		}
		seg.Reset()
	}

	runes := []rune(s)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if r != SectionSign || i+1 >= len(runes) {
			seg.WriteRune(r)
			continue
		}

		code := toLower(runes[i+1])
		if !strings.ContainsRune(validCodes, code) {
			seg.WriteRune(r)
			continue
		}
		i++
		flush()

		switch {
		case code == 'r':
			attrs = nil
		case code == 'x':
			// Consome os seis pares §h seguintes, se houver.
			for n := 0; n < 6 && i+2 < len(runes) && runes[i+1] == SectionSign; n++ {
				i += 2
			}
			attrs = nil
		default:
			if c, ok := legacyColors[code]; ok {
				// Cor nova zera a formatação, como no cliente do jogo.
				attrs = []color.Attribute{c}
			} else if f, ok := legacyFormats[code]; ok {
				attrs = append(attrs, f)
			}
		}
	}
	flush()

	return out.String()
}
