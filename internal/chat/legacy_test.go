package chat

import (
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
)

func TestStripColor(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"sem códigos", "Espada", "Espada"},
		{"cor simples", "§cEspada", "Espada"},
		{"maiúscula", "§CEspada", "Espada"},
		{"formatação", "§l§nEspada§r", "Espada"},
		{"hex", "§x§f§f§0§0§0§0Espada", "Espada"},
		{"código inválido", "§zEspada", "§zEspada"},
		{"e comercial não é removido", "&cEspada", "&cEspada"},
		{"vazio", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StripColor(tt.in))
		})
	}
}

func TestTranslateAlternateColorCodes(t *testing.T) {
	assert.Equal(t, "§cAviso", TranslateAlternateColorCodes('&', "&cAviso"))
	assert.Equal(t, "§cA§lB", TranslateAlternateColorCodes('&', "&CA&lB"))
	assert.Equal(t, "Tom & Jerry", TranslateAlternateColorCodes('&', "Tom & Jerry"))
	assert.Equal(t, "fim&", TranslateAlternateColorCodes('&', "fim&"))
	assert.Equal(t, "&zX", TranslateAlternateColorCodes('&', "&zX"))
}

func TestToANSI_NoColor(t *testing.T) {
	prev := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = prev }()

	assert.Equal(t, "Espada Lendária", ToANSI("§cEspada §lLendária"))
	assert.Equal(t, "Nome", ToANSI("§x§f§f§0§0§0§0Nome"))
	assert.Equal(t, "§zNome", ToANSI("§zNome"))
	assert.Equal(t, "fim§", ToANSI("fim§"))
}

func TestToANSI_WithColor(t *testing.T) {
	prev := color.NoColor
	color.NoColor = false
	defer func() { color.NoColor = prev }()

	out := ToANSI("§cX")
	assert.Contains(t, out, "X")
	assert.Contains(t, out, "\x1b[")
	assert.NotContains(t, out, "§")
}
