package craft

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"github.com/vitoramaral10/craft-guard/internal/host"
)

// fakeChecker responde por nome legado e registra as consultas.
type fakeChecker struct {
	verdicts map[string]bool
	calls    []string
}

func (f *fakeChecker) Lookup(item *host.Item) bool {
	name := ""
	if dn, ok := item.DisplayName(); ok {
		name = dn.Legacy
	}
	f.calls = append(f.calls, name)
	return f.verdicts[name]
}

func named(typ, legacy string) *host.Item {
	return &host.Item{Type: typ, Meta: &host.Meta{DisplayName: &host.DisplayName{Legacy: legacy}}}
}

func recipe(ns, key string) *host.Recipe {
	return &host.Recipe{Key: &host.NamespacedKey{Namespace: ns, Key: key}}
}

func TestDecide(t *testing.T) {
	plank := named("OAK_PLANKS", "Tábua")
	fake := named("OAK_PLANKS", "§6Tábua Lendária")
	bare := &host.Item{Type: "OAK_PLANKS"}
	result := &host.Item{Type: "STICK"}

	tests := []struct {
		name  string
		ev    *host.PrepareCraftEvent
		want  Decision
		calls []string
	}{
		{
			name: "sem resultado",
			ev:   &host.PrepareCraftEvent{Recipe: recipe("minecraft", "stick"), Matrix: []*host.Item{fake}},
			want: Decision{Outcome: Allow, Reason: ReasonNoResult, FlaggedSlot: -1},
		},
		{
			name: "receita sem chave",
			ev:   &host.PrepareCraftEvent{Result: result, Recipe: &host.Recipe{}, Matrix: []*host.Item{fake}},
			want: Decision{Outcome: AllowUnrecognized, Reason: ReasonNonKeyed, FlaggedSlot: -1},
		},
		{
			name: "receita ausente",
			ev:   &host.PrepareCraftEvent{Result: result, Matrix: []*host.Item{fake}},
			want: Decision{Outcome: AllowUnrecognized, Reason: ReasonNonKeyed, FlaggedSlot: -1},
		},
		{
			name: "receita customizada",
			ev:   &host.PrepareCraftEvent{Result: result, Recipe: recipe("myplugin", "stick"), Matrix: []*host.Item{fake}},
			want: Decision{Outcome: Allow, Reason: ReasonCustomRecipe, FlaggedSlot: -1},
		},
		{
			name:  "ingrediente colorido",
			ev:    &host.PrepareCraftEvent{Result: result, Recipe: recipe("minecraft", "stick"), Matrix: []*host.Item{nil, plank, fake, plank}},
			want:  Decision{Outcome: Suppress, Reason: ReasonColored, FlaggedSlot: 2, Prewarm: []*host.Item{plank}},
			calls: []string{"Tábua", "§6Tábua Lendária"},
		},
		{
			name:  "ingredientes limpos",
			ev:    &host.PrepareCraftEvent{Result: result, Recipe: recipe("minecraft", "stick"), Matrix: []*host.Item{plank, nil, bare, plank}},
			want:  Decision{Outcome: Allow, Reason: ReasonClean, FlaggedSlot: -1, Prewarm: []*host.Item{plank, plank}},
			calls: []string{"Tábua", "Tábua"},
		},
		{
			name: "grade vazia",
			ev:   &host.PrepareCraftEvent{Result: result, Recipe: recipe("minecraft", "stick")},
			want: Decision{Outcome: Allow, Reason: ReasonClean, FlaggedSlot: -1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			check := &fakeChecker{verdicts: map[string]bool{"§6Tábua Lendária": true}}

			got := Decide(tt.ev, check)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Decide() mismatch (-want +got):\n%s", diff)
			}
			assert.Equal(t, tt.calls, check.calls)
		})
	}
}

func TestDecide_DoesNotMutateEvent(t *testing.T) {
	result := &host.Item{Type: "STICK"}
	matrix := []*host.Item{named("OAK_PLANKS", "§cX")}
	ev := &host.PrepareCraftEvent{Result: result, Recipe: recipe("minecraft", "stick"), Matrix: matrix}

	d := Decide(ev, &fakeChecker{verdicts: map[string]bool{"§cX": true}})
	assert.Equal(t, Suppress, d.Outcome)
	assert.Same(t, result, ev.Result)
	assert.Len(t, ev.Matrix, 1)
}

func TestDecide_NilEvent(t *testing.T) {
	d := Decide(nil, &fakeChecker{})
	assert.Equal(t, Allow, d.Outcome)
}

func TestOutcome_String(t *testing.T) {
	assert.Equal(t, "allow", Allow.String())
	assert.Equal(t, "suppress", Suppress.String())
	assert.Equal(t, "allow-unrecognized", AllowUnrecognized.String())
	assert.Equal(t, "unknown", Outcome(42).String())
}
