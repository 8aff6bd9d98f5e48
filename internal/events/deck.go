// Package events provides the weighted event deck: a fixed catalog of event
// definitions with state-dependent weights, cooldowns, and deterministic
// effect application. Selection order is part of the replay contract.
package events

import (
	"github.com/talgya/manorsim/internal/rng"
	"github.com/talgya/manorsim/internal/sim"
	"github.com/talgya/manorsim/internal/tuning"
)

// WeightResult is an event's selection weight plus human-readable notes.
// Notes are diagnostics only; they never enter the selection math.
type WeightResult struct {
	Weight int
	Notes  string
}

// Def is one catalog entry. Weight inspects the state; Apply mutates it and
// returns the applied effects in order.
type Def struct {
	Kind     string
	Cooldown int // Turns before the event is eligible again after firing
	Weight   func(st *sim.RunState, tun tuning.Tuning) WeightResult
	Apply    func(st *sim.RunState, stream *rng.Stream, tun tuning.Tuning) []sim.EffectRecord
}

// Deck is the ordered catalog. Order matters: candidates are always walked
// in catalog order, so a given draw value selects the same event on every
// replay.
type Deck struct {
	defs []Def
}

// NewDeck builds the standard catalog.
func NewDeck() *Deck {
	return &Deck{defs: catalog()}
}

// Defs exposes the catalog for enumeration in tests and matrices.
func (d *Deck) Defs() []Def {
	return d.defs
}

// Step runs one turn of the deck against the state: cooldowns tick down,
// then up to MaxEventsPerTurn weighted draws fire events in selection
// order. Each draw includes an implicit quiet weight, so zero events is a
// real outcome; an event never fires twice in one turn.
func (d *Deck) Step(st *sim.RunState, stream *rng.Stream, tun tuning.Tuning) []sim.EffectRecord {
	for kind, cd := range st.EventCooldowns {
		if cd > 0 {
			st.EventCooldowns[kind] = cd - 1
		}
	}

	var applied []sim.EffectRecord
	firedThisTurn := map[string]bool{}

	for draw := 0; draw < tun.MaxEventsPerTurn; draw++ {
		type candidate struct {
			def    Def
			weight int
		}
		var candidates []candidate
		total := 0
		for _, def := range d.defs {
			if firedThisTurn[def.Kind] || st.EventCooldowns[def.Kind] > 0 {
				continue
			}
			w := def.Weight(st, tun)
			if w.Weight <= 0 {
				continue
			}
			candidates = append(candidates, candidate{def, w.Weight})
			total += w.Weight
		}
		if total == 0 {
			break
		}

		pick := stream.Intn(total + tun.QuietWeight)
		if pick >= total {
			continue // quiet draw
		}
		for _, c := range candidates {
			if pick < c.weight {
				firedThisTurn[c.def.Kind] = true
				st.EventCooldowns[c.def.Kind] = c.def.Cooldown
				applied = append(applied, c.def.Apply(st, stream.Child(c.def.Kind), tun)...)
				break
			}
			pick -= c.weight
		}
	}
	return applied
}
