// Apply-phase decision handlers. Each invalid decision is rejected as a
// local no-op with a note; the turn always completes.
package engine

import (
	"fmt"

	"github.com/talgya/manorsim/internal/people"
	"github.com/talgya/manorsim/internal/prospects"
	"github.com/talgya/manorsim/internal/sim"
)

func (pl *Pipeline) applyLabor(st *sim.RunState, d *sim.LaborDecision, notes []string) []string {
	if d == nil {
		return notes
	}
	m := &st.Manor
	if d.Farmers < 0 || d.Builders < 0 || d.Farmers+d.Builders > m.Population {
		return append(notes, fmt.Sprintf("labor decision rejected: %d farmers + %d builders against %d souls",
			d.Farmers, d.Builders, m.Population))
	}
	m.Farmers = d.Farmers
	m.Builders = d.Builders
	return notes
}

func (pl *Pipeline) applyConstruction(st *sim.RunState, d *sim.ConstructionDecision, notes []string) []string {
	m := &st.Manor
	if d != nil && d.SpendCoin > 0 {
		if d.SpendCoin > m.Coin {
			notes = append(notes, fmt.Sprintf("construction spend of %d rejected: only %d coin on hand", d.SpendCoin, m.Coin))
		} else if pl.tun.CoinPerProgress > 0 {
			m.Coin -= d.SpendCoin
			gained := d.SpendCoin / pl.tun.CoinPerProgress
			m.Construction.Progress += gained
			notes = append(notes, fmt.Sprintf("spent %d coin on the works for %d progress", d.SpendCoin, gained))
		}
	}

	if m.Construction.Progress >= m.Construction.Required {
		m.Construction.Progress -= m.Construction.Required
		m.Construction.Required += pl.tun.RequiredGrowth
		m.Construction.Completed++
		m.Unrest -= 5
		if m.Unrest < 0 {
			m.Unrest = 0
		}
		st.AdjustRelationship("village", sim.RelDelta{Respect: 3})
		notes = append(notes, "the works are complete; a grander project begins")
	}
	return notes
}

func (pl *Pipeline) resolveProspects(st *sim.RunState, d *sim.ProspectDecisions, tallies *sim.ProspectTallies, notes []string) []string {
	if d == nil {
		return notes
	}
	for _, action := range d.Actions {
		outcome, ok := prospects.Resolve(st, action, pl.tun)
		if !ok {
			notes = append(notes, fmt.Sprintf("prospect decision %s/%s rejected", action.ProspectID, action.Action))
			continue
		}
		switch outcome {
		case sim.OutcomeAccepted:
			tallies.Accepted++
		case sim.OutcomeRejected:
			tallies.Rejected++
		}
	}
	return notes
}

// recomputeSuccession promotes the heir when the head died this turn, or
// ends the run when no eligible heir exists.
func (pl *Pipeline) recomputeSuccession(st *sim.RunState, notes []string) []string {
	head, ok := st.People[st.House.HeadID]
	if !ok || head.Alive {
		return notes
	}
	newHeadID, ok := people.Succeed(st.People, st.Houses, st.KinshipEdges, st.House.HouseID)
	if !ok {
		st.GameOver = true
		st.GameOverReason = "no eligible heir"
		return append(notes, fmt.Sprintf("%s has died without an heir; the line is ended", head.Name))
	}
	return append(notes, fmt.Sprintf("%s has died; %s is now head of the house",
		head.Name, st.People[newHeadID].Name))
}

func (pl *Pipeline) checkDispossession(st *sim.RunState) {
	if st.Manor.Obligations.Arrears.Coin > pl.tun.DispossessCoin {
		st.GameOver = true
		st.GameOverReason = "dispossessed"
	}
}
