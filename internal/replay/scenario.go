// Package replay carrega cenários de crafting em YAML para reproduzir no
// servidor em processo.
package replay

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vitoramaral10/craft-guard/internal/chat"
	"github.com/vitoramaral10/craft-guard/internal/host"
)

// File é o formato do arquivo de cenários.
type File struct {
	Scenarios []Scenario `yaml:"scenarios"`
}

// Scenario descreve um evento de crafting.
type Scenario struct {
	Name   string      `yaml:"name"`
	Recipe string      `yaml:"recipe"`
	Result *ItemSpec   `yaml:"result"`
	Player string      `yaml:"player"`
	Matrix []*ItemSpec `yaml:"matrix"`
	// Expect é opcional: allow, suppress ou allow-unrecognized.
	Expect string `yaml:"expect"`
}

// ItemSpec descreve um item. Name e Rich são opcionais; NoMeta força item sem metadados.
type ItemSpec struct {
	Type   string `yaml:"type"`
	Name   string `yaml:"name"`
	Rich   string `yaml:"rich"`
	NoMeta bool   `yaml:"no_meta"`
}

// Load lê e valida um arquivo de cenários.
func Load(path string) ([]Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("erro ao ler cenários: %w", err)
	}
	return Parse(data)
}

// Parse decodifica cenários em YAML.
func Parse(data []byte) ([]Scenario, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("erro ao decodificar cenários: %w", err)
	}

	for i, s := range f.Scenarios {
		if strings.TrimSpace(s.Name) == "" {
			f.Scenarios[i].Name = fmt.Sprintf("cenário %d", i+1)
		}
		if s.Recipe != "" {
			if _, err := host.ParseNamespacedKey(s.Recipe); err != nil {
				return nil, fmt.Errorf("cenário %q: %w", f.Scenarios[i].Name, err)
			}
		}
		switch s.Expect {
		case "", "allow", "suppress", "allow-unrecognized":
		default:
			return nil, fmt.Errorf("cenário %q: expect inválido: %q", f.Scenarios[i].Name, s.Expect)
		}
	}

	return f.Scenarios, nil
}

// Item converte a descrição em um item do servidor.
func (s *ItemSpec) Item() (*host.Item, error) {
	if s == nil {
		return nil, nil
	}
	item := &host.Item{Type: strings.ToUpper(s.Type)}
	if s.NoMeta {
		return item, nil
	}

	item.Meta = &host.Meta{}
	if s.Name == "" && s.Rich == "" {
		return item, nil
	}

	dn := &host.DisplayName{Legacy: s.Name}
	if s.Rich != "" {
		c, err := chat.ParseComponent([]byte(s.Rich))
		if err != nil {
			return nil, fmt.Errorf("item %s: %w", s.Type, err)
		}
		dn.Rich = c
		if dn.Legacy == "" {
			dn.Legacy = chat.Plain(c)
		}
	}
	item.Meta.DisplayName = dn
	return item, nil
}

// Event monta o evento de crafting do cenário.
func (s *Scenario) Event(viewer host.Actor) (*host.PrepareCraftEvent, error) {
	ev := &host.PrepareCraftEvent{Recipe: &host.Recipe{}, Viewer: viewer}

	if s.Recipe != "" {
		key, err := host.ParseNamespacedKey(s.Recipe)
		if err != nil {
			return nil, err
		}
		ev.Recipe.Key = &key
	}

	result, err := s.Result.Item()
	if err != nil {
		return nil, err
	}
	ev.Result = result

	for _, spec := range s.Matrix {
		item, err := spec.Item()
		if err != nil {
			return nil, fmt.Errorf("cenário %q: %w", s.Name, err)
		}
		ev.Matrix = append(ev.Matrix, item)
	}

	return ev, nil
}
