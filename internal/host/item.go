package host

import (
	"fmt"
	"strings"

	"github.com/vitoramaral10/craft-guard/internal/chat"
)

// MinecraftNamespace identifica receitas padrão do servidor.
const MinecraftNamespace = "minecraft"

// Item é a descrição de um item entregue pelo servidor.
// Meta nil significa que o item não tem metadados.
type Item struct {
	Type string
	Meta *Meta
}

// Meta contém os metadados relevantes de um item.
// DisplayName nil significa que o nome não foi sobrescrito.
type Meta struct {
	DisplayName *DisplayName
	Lore        []string
}

// DisplayName é o nome customizado de um item, em formato legado e/ou rico.
type DisplayName struct {
	Legacy string
	Rich   chat.Node
}

// HasMeta retorna true se o item possui metadados.
func (i *Item) HasMeta() bool {
	return i != nil && i.Meta != nil
}

// DisplayName retorna o nome customizado, se existir.
func (i *Item) DisplayName() (*DisplayName, bool) {
	if !i.HasMeta() || i.Meta.DisplayName == nil {
		return nil, false
	}
	return i.Meta.DisplayName, true
}

// Clone copia o item sem manter referências ao objeto original.
func (i *Item) Clone() *Item {
	if i == nil {
		return nil
	}
	c := &Item{Type: i.Type}
	if i.Meta == nil {
		return c
	}

	c.Meta = &Meta{}
	if len(i.Meta.Lore) > 0 {
		c.Meta.Lore = append([]string(nil), i.Meta.Lore...)
	}
	if dn := i.Meta.DisplayName; dn != nil {
		c.Meta.DisplayName = &DisplayName{Legacy: dn.Legacy}
		if rich := chat.Detach(dn.Rich); rich != nil {
			c.Meta.DisplayName.Rich = rich
		}
	}
	return c
}

// NamespacedKey identifica o subsistema que definiu uma receita.
type NamespacedKey struct {
	Namespace string
	Key       string
}

// ParseNamespacedKey interpreta "namespace:chave". Sem namespace, assume minecraft.
func ParseNamespacedKey(s string) (NamespacedKey, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return NamespacedKey{}, fmt.Errorf("chave de receita vazia")
	}

	ns, key, found := strings.Cut(s, ":")
	if !found {
		return NamespacedKey{Namespace: MinecraftNamespace, Key: s}, nil
	}
	if ns == "" || key == "" {
		return NamespacedKey{}, fmt.Errorf("chave de receita inválida: %q", s)
	}
	return NamespacedKey{Namespace: strings.ToLower(ns), Key: key}, nil
}

func (k NamespacedKey) String() string {
	return k.Namespace + ":" + k.Key
}

// Recipe é a receita reconhecida pelo servidor. Key nil indica uma receita
// sem identificação.
type Recipe struct {
	Key *NamespacedKey
}

// IsVanilla retorna true para receitas do namespace padrão.
func (r *Recipe) IsVanilla() bool {
	return r != nil && r.Key != nil && r.Key.Namespace == MinecraftNamespace
}
