package chat

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Node é a visão mínima de um nó de texto rico fornecido pelo servidor.
// Implementações externas podem entrar em pânico; quem percorre a árvore
// deve tratar isso como ausência de cor.
type Node interface {
	Content() string
	TextColor() string
	Children() []Node
}

// Component é um nó de texto rico no formato JSON do servidor.
type Component struct {
	Text          string       `json:"text,omitempty"`
	Translate     string       `json:"translate,omitempty"`
	Color         string       `json:"color,omitempty"`
	Bold          *bool        `json:"bold,omitempty"`
	Italic        *bool        `json:"italic,omitempty"`
	Underlined    *bool        `json:"underlined,omitempty"`
	Strikethrough *bool        `json:"strikethrough,omitempty"`
	Obfuscated    *bool        `json:"obfuscated,omitempty"`
	Extra         []*Component `json:"extra,omitempty"`
}

// ParseComponent decodifica um componente de texto rico.
// Aceita objeto, string JSON ou array (o primeiro elemento é o pai dos demais).
func ParseComponent(data []byte) (*Component, error) {
	var c Component
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("erro ao decodificar componente: %w", err)
	}
	return &c, nil
}

// UnmarshalJSON implementa json.Unmarshaler.
func (c *Component) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return fmt.Errorf("componente vazio")
	}

	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*c = Component{Text: s}
		return nil

	case '[':
		var parts []*Component
		if err := json.Unmarshal(data, &parts); err != nil {
			return err
		}
		*c = Component{}
		if len(parts) == 0 {
			return nil
		}
		if parts[0] != nil {
			*c = *parts[0]
		}
		c.Extra = append(c.Extra, parts[1:]...)
		return nil

	default:
		type plain Component
		var p plain
		if err := json.Unmarshal(data, &p); err != nil {
			return err
		}
		*c = Component(p)
		return nil
	}
}

// Content retorna o texto literal do nó, ou a chave de tradução.
func (c *Component) Content() string {
	if c == nil {
		return ""
	}
	if c.Text != "" {
		return c.Text
	}
	return c.Translate
}

// TextColor retorna a cor declarada explicitamente no nó.
func (c *Component) TextColor() string {
	if c == nil {
		return ""
	}
	return c.Color
}

// Children retorna os filhos do nó.
func (c *Component) Children() []Node {
	if c == nil || len(c.Extra) == 0 {
		return nil
	}
	nodes := make([]Node, 0, len(c.Extra))
	for _, e := range c.Extra {
		if e != nil {
			nodes = append(nodes, e)
		}
	}
	return nodes
}

// HasColor percorre a árvore em profundidade e retorna true no primeiro nó
// com cor explícita. Um pânico ao inspecionar um nó conta como "sem cor"
// apenas para aquele nó; os irmãos continuam sendo verificados.
func HasColor(n Node) (colored bool) {
	if n == nil {
		return false
	}
	defer func() {
		if recover() != nil {
			colored = false
		}
	}()

	if n.TextColor() != "" {
		return true
	}
	for _, child := range n.Children() {
		if HasColor(child) {
			return true
		}
	}
	return false
}

// Plain concatena o texto de todos os nós da árvore.
func Plain(n Node) string {
	var sb strings.Builder
	walk(n, func(node Node) {
		sb.WriteString(node.Content())
	})
	return sb.String()
}

// Signature gera uma representação determinística de texto e cor da árvore.
// Serve para identificar nomes que só existem como texto rico.
func Signature(n Node) string {
	var sb strings.Builder
	var write func(Node)
	write = func(node Node) {
		defer func() {
			if recover() != nil {
				sb.WriteString("!")
			}
		}()
		if node == nil {
			return
		}
		sb.WriteString("{")
		sb.WriteString(node.Content())
		sb.WriteString("|")
		sb.WriteString(node.TextColor())
		for _, child := range node.Children() {
			write(child)
		}
		sb.WriteString("}")
	}
	write(n)
	return sb.String()
}

// Detach copia a árvore para um Component independente do objeto original.
// Nós que falham na leitura são omitidos.
func Detach(n Node) *Component {
	var c *Component
	func() {
		defer func() {
			if recover() != nil {
				c = nil
			}
		}()
		if n == nil {
			return
		}
		c = &Component{
			Text:  n.Content(),
			Color: n.TextColor(),
		}
		if src, ok := n.(*Component); ok && src != nil {
			c.Translate = src.Translate
			if src.Text == "" {
				c.Text = ""
			}
			c.Bold = cloneBool(src.Bold)
			c.Italic = cloneBool(src.Italic)
			c.Underlined = cloneBool(src.Underlined)
			c.Strikethrough = cloneBool(src.Strikethrough)
			c.Obfuscated = cloneBool(src.Obfuscated)
		}
		for _, child := range n.Children() {
			if d := Detach(child); d != nil {
				c.Extra = append(c.Extra, d)
			}
		}
	}()
	return c
}

func walk(n Node, fn func(Node)) {
	defer func() {
		_ = recover()
	}()
	if n == nil {
		return
	}
	fn(n)
	for _, child := range n.Children() {
		walk(child, fn)
	}
}

func cloneBool(b *bool) *bool {
	if b == nil {
		return nil
	}
	v := *b
	return &v
}
