// Package craft intercepta a preparação de receitas e bloqueia as que usam
// ingredientes com nome colorido.
package craft

import (
	"slices"

	"github.com/vitoramaral10/craft-guard/internal/host"
)

// Outcome é o resultado da análise de um evento de crafting.
type Outcome int

const (
	// Allow deixa o resultado como o servidor calculou.
	Allow Outcome = iota
	// Suppress remove o resultado do crafting.
	Suppress
	// AllowUnrecognized deixa passar uma receita sem identificação.
	AllowUnrecognized
)

func (o Outcome) String() string {
	switch o {
	case Allow:
		return "allow"
	case Suppress:
		return "suppress"
	case AllowUnrecognized:
		return "allow-unrecognized"
	default:
		return "unknown"
	}
}

// Motivos registrados em Decision.Reason.
const (
	ReasonNoResult     = "sem resultado"
	ReasonCustomRecipe = "receita customizada"
	ReasonNonKeyed     = "receita sem chave"
	ReasonColored      = "ingrediente com nome colorido"
	ReasonClean        = "ingredientes sem cor"
)

// Checker responde se um item tem nome colorido.
type Checker interface {
	Lookup(item *host.Item) bool
}

// Decision descreve o que fazer com um evento.
type Decision struct {
	Outcome Outcome
	Reason  string
	// FlaggedSlot é o índice do primeiro ingrediente colorido, ou -1.
	FlaggedSlot int
	// Prewarm são os ingredientes cujo veredicto foi negativo.
	Prewarm []*host.Item
}

// Decide analisa o evento sem alterá-lo. A única consequência é o uso do
// cache pelo Checker.
func Decide(ev *host.PrepareCraftEvent, check Checker) Decision {
	d := Decision{Outcome: Allow, FlaggedSlot: -1}

	if ev == nil || ev.Result == nil {
		d.Reason = ReasonNoResult
		return d
	}

	if ev.Recipe == nil || ev.Recipe.Key == nil {
		d.Outcome = AllowUnrecognized
		d.Reason = ReasonNonKeyed
		return d
	}
	if !ev.Recipe.IsVanilla() {
		d.Reason = ReasonCustomRecipe
		return d
	}

	// Cópia da grade para não observar alterações do servidor no meio da checagem.
	matrix := slices.Clone(ev.Matrix)

	for slot, item := range matrix {
		if !item.HasMeta() {
			continue
		}
		if check.Lookup(item) {
			d.Outcome = Suppress
			d.Reason = ReasonColored
			d.FlaggedSlot = slot
			return d
		}
		d.Prewarm = append(d.Prewarm, item)
	}

	d.Reason = ReasonClean
	return d
}
