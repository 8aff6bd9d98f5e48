// Propose-phase subsystems: aging, mortality, the harvest ledger,
// obligations, and the prospects sweep. Every RNG draw comes from its own
// (seed, namespace, turn, label) stream so subsystems never perturb each
// other's sequences.
package engine

import (
	"fmt"

	"github.com/talgya/manorsim/internal/people"
	"github.com/talgya/manorsim/internal/prospects"
	"github.com/talgya/manorsim/internal/rng"
	"github.com/talgya/manorsim/internal/sim"
)

func eventsStream(seed string, turn int) *rng.Stream {
	return rng.New(seed, "events", turn, "draw")
}

// agePeople advances every living person by the turn's elapsed years.
// Officers are registry persons, so they age with everyone else.
func (pl *Pipeline) agePeople(st *sim.RunState) {
	for _, id := range people.SortedPersonIDs(st.People) {
		if p := st.People[id]; p.Alive {
			p.Age += pl.tun.TurnYears
		}
	}
}

// mortalityPermille returns the per-turn death chance for an age.
func (pl *Pipeline) mortalityPermille(age int) int {
	switch {
	case age >= pl.tun.ElderAge:
		return pl.tun.MortalityElderly
	case age >= pl.tun.MatureAge:
		return pl.tun.MortalityMature
	default:
		return pl.tun.MortalityBase
	}
}

// drawMortality rolls death for each living registry person on a stream
// labelled with the person's id, so one person's fate never shifts
// another's. Succession stays untouched here; it is recomputed at apply.
func (pl *Pipeline) drawMortality(st *sim.RunState, turn int) []string {
	var died []string
	for _, id := range people.SortedPersonIDs(st.People) {
		p := st.People[id]
		if !p.Alive {
			continue
		}
		stream := rng.New(st.RunSeed, "mortality", turn, id)
		if stream.Intn(1000) < pl.mortalityPermille(p.Age) {
			people.MarkDead(st.People, st.KinshipEdges, id)
			died = append(died, id)
		}
	}
	return died
}

// drawVillageDeaths applies background mortality to the unnamed manor
// population.
func (pl *Pipeline) drawVillageDeaths(st *sim.RunState, turn int) int {
	m := &st.Manor
	if m.Population == 0 {
		return 0
	}
	expected := m.Population * pl.tun.PopMortalityBase
	deaths := expected / 1000
	stream := rng.New(st.RunSeed, "mortality", turn, "population")
	if stream.Intn(1000) < expected%1000 {
		deaths++
	}
	if deaths > m.Population {
		deaths = m.Population
	}
	m.Population -= deaths
	return deaths
}

// runEconomy produces, feeds, and lets the desperate slip away. Shortfall
// and unrest-driven flight are deterministic functions of the state, not
// draws. Returns the runaway count and the ledger notes.
func (pl *Pipeline) runEconomy(st *sim.RunState) (int, []string) {
	m := &st.Manor
	produced := m.Farmers * pl.tun.FarmYieldBushels
	need := m.Population * pl.tun.ConsumptionBushels
	m.BushelsStored += produced

	var notes []string
	runaways := 0

	if m.BushelsStored >= need {
		m.BushelsStored -= need
		notes = append(notes, fmt.Sprintf("harvest %d bushels, %d consumed", produced, need))
	} else {
		unfed := 0
		if pl.tun.ConsumptionBushels > 0 {
			unfed = (need - m.BushelsStored + pl.tun.ConsumptionBushels - 1) / pl.tun.ConsumptionBushels
		}
		m.BushelsStored = 0
		bump := unfed * pl.tun.ShortfallUnrest
		if bump > 20 {
			bump = 20
		}
		m.Unrest += bump
		if m.Unrest > 100 {
			m.Unrest = 100
		}
		runaways += unfed / 2
		notes = append(notes, fmt.Sprintf("harvest %d bushels, granary empty, %d went hungry", produced, unfed))
	}

	if m.Unrest > pl.tun.RunawayUnrest {
		runaways += m.Population / 20
	}
	if runaways > m.Population {
		runaways = m.Population
	}
	m.Population -= runaways
	if runaways > 0 {
		notes = append(notes, fmt.Sprintf("%d villagers ran away", runaways))
	}
	return runaways, notes
}

// settleObligations assesses this turn's tax and tithe and pays what the
// stores can cover. Unpaid remainders roll into arrears and cost standing.
func (pl *Pipeline) settleObligations(st *sim.RunState) {
	m := &st.Manor
	ob := &m.Obligations

	ob.TaxDueCoin += pl.tun.TaxAssessCoin
	pay := min(m.Coin, ob.TaxDueCoin)
	m.Coin -= pay
	ob.TaxDueCoin -= pay
	if ob.TaxDueCoin > 0 {
		ob.Arrears.Coin += ob.TaxDueCoin
		ob.TaxDueCoin = 0
		m.Unrest = min(100, m.Unrest+3)
		st.AdjustRelationship("liege", sim.RelDelta{Allegiance: -2, Threat: 2})
	}

	ob.TitheDueBushels += pl.tun.TitheAssessBushels
	payB := min(m.BushelsStored, ob.TitheDueBushels)
	m.BushelsStored -= payB
	ob.TitheDueBushels -= payB
	if ob.TitheDueBushels > 0 {
		ob.Arrears.Bushels += ob.TitheDueBushels
		ob.TitheDueBushels = 0
		st.AdjustRelationship("church", sim.RelDelta{Respect: -2})
	}
}

// stepProspects expires stale offers and opens new ones.
func (pl *Pipeline) stepProspects(st *sim.RunState, turn int) sim.ProspectTallies {
	expired, shownButExpired := prospects.SweepExpired(st, turn)
	gen := prospects.Generate(st, rng.New(st.RunSeed, "prospects", turn, "gen"), pl.tun)
	return sim.ProspectTallies{
		Generated:       gen,
		Expired:         expired,
		ShownButExpired: shownButExpired,
	}
}

// buildWindow surfaces the shown subset and folds the shown/hidden tallies
// into the proposal facts.
func (pl *Pipeline) buildWindow(st *sim.RunState, facts *sim.ProposalFacts) *sim.ProspectsWindow {
	window, shown, hidden := prospects.BuildWindow(st, pl.tun)
	facts.ProspectTallies.Shown = shown
	facts.ProspectTallies.Hidden = hidden
	return window
}
