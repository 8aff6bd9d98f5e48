// Package policy provides pure decision functions for headless runs. A
// policy consumes the turn's read-only preview and returns a decision
// bundle; it never mutates state and never draws randomness, so a fixed
// policy plus a fixed seed replays exactly.
package policy

import (
	"sort"

	"github.com/talgya/manorsim/internal/sim"
)

// Func is one decision policy.
type Func func(ctx *sim.TurnContext) sim.Decisions

// Policy ids are opaque strings and may contain a "/" separator for
// variants. Artifact-naming collaborators sanitize the separator; the core
// accepts the raw id.
var registry = map[string]Func{
	"prudent-builder":          prudentBuilder,
	"builder-forward":          builderForward,
	"builder-forward/buffered": builderForwardBuffered,
}

// Lookup returns the policy registered under id.
func Lookup(id string) (Func, bool) {
	f, ok := registry[id]
	return f, ok
}

// IDs lists the registered policy ids in sorted order.
func IDs() []string {
	ids := make([]string, 0, len(registry))
	for id := range registry {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// acceptAllShown accepts every surfaced prospect, in shown order.
func acceptAllShown(ctx *sim.TurnContext) *sim.ProspectDecisions {
	if ctx.ProspectsWindow == nil {
		return nil
	}
	d := &sim.ProspectDecisions{Kind: "prospects"}
	for _, id := range ctx.ProspectsWindow.ShownIDs {
		d.Actions = append(d.Actions, sim.ProspectAction{ProspectID: id, Action: "accept"})
	}
	return d
}

// prudentBuilder keeps a full turn of food in the granary before allotting
// builders, and banks coin against the next tax before spending on works.
func prudentBuilder(ctx *sim.TurnContext) sim.Decisions {
	m := ctx.PreviewState.Manor

	builders := m.Population / 10
	if m.BushelsStored < m.Population*4 {
		builders = 0
	}
	farmers := m.Population * 6 / 10

	var cons *sim.ConstructionDecision
	if m.Coin > 15 {
		spend := m.Coin - 15
		if spend > 10 {
			spend = 10
		}
		cons = &sim.ConstructionDecision{SpendCoin: spend}
	}

	return sim.Decisions{
		Labor:        &sim.LaborDecision{Farmers: farmers, Builders: builders},
		Construction: cons,
		Prospects:    acceptAllShown(ctx),
	}
}

// builderForward pushes the works hard: a third of the village builds and
// nearly all spare coin goes into the project.
func builderForward(ctx *sim.TurnContext) sim.Decisions {
	m := ctx.PreviewState.Manor

	var cons *sim.ConstructionDecision
	if m.Coin > 8 {
		spend := m.Coin - 8
		if spend > 12 {
			spend = 12
		}
		cons = &sim.ConstructionDecision{SpendCoin: spend}
	}

	return sim.Decisions{
		Labor:        &sim.LaborDecision{Farmers: m.Population * 6 / 10, Builders: m.Population * 3 / 10},
		Construction: cons,
		Prospects:    acceptAllShown(ctx),
	}
}

// builderForwardBuffered is builder-forward with a two-turn food buffer:
// builders stand down to farm whenever the granary runs lean.
func builderForwardBuffered(ctx *sim.TurnContext) sim.Decisions {
	m := ctx.PreviewState.Manor

	farmers := m.Population * 6 / 10
	builders := m.Population * 3 / 10
	if m.BushelsStored < m.Population*8 {
		farmers += builders
		builders = 0
		if farmers > m.Population {
			farmers = m.Population
		}
	}

	var cons *sim.ConstructionDecision
	if m.Coin > 15 {
		spend := m.Coin - 15
		if spend > 12 {
			spend = 12
		}
		cons = &sim.ConstructionDecision{SpendCoin: spend}
	}

	return sim.Decisions{
		Labor:        &sim.LaborDecision{Farmers: farmers, Builders: builders},
		Construction: cons,
		Prospects:    acceptAllShown(ctx),
	}
}
