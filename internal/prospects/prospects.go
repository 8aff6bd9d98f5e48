// Package prospects generates time-windowed offers, surfaces a capped
// shown window, expires unresolved offers, and resolves accept/reject
// decisions into deterministic effect deltas. All amounts and deltas are
// bounded constants from tuning, never randomized, so identical seeds and
// decisions replay identically.
package prospects

import (
	"fmt"
	"sort"

	"github.com/talgya/manorsim/internal/people"
	"github.com/talgya/manorsim/internal/rng"
	"github.com/talgya/manorsim/internal/sim"
	"github.com/talgya/manorsim/internal/tuning"
)

// SweepExpired resolves prospects whose expiry turn has arrived, removing
// them from the open set. Returns total expirations and the subset that had
// been surfaced to the decision layer at least once.
func SweepExpired(st *sim.RunState, turn int) (expired, shownButExpired int) {
	kept := st.OpenProspects[:0]
	for _, p := range st.OpenProspects {
		if p.Outcome == "" && p.ExpiryTurn <= turn {
			expired++
			if p.Shown {
				shownButExpired++
			}
			continue
		}
		kept = append(kept, p)
	}
	st.OpenProspects = kept
	return expired, shownButExpired
}

// Generate opens this turn's offers, bounded so the open set never exceeds
// the window size. Returned tallies are keyed by prospect type.
func Generate(st *sim.RunState, stream *rng.Stream, tun tuning.Tuning) map[string]int {
	generated := map[string]int{}
	room := tun.MaxProspectsPerTurn - len(st.OpenProspects)

	if room > 0 && st.Relationships["liege"].Allegiance >= 40 && stream.Float64() < 0.4 {
		st.OpenProspects = append(st.OpenProspects, grantProspect(st, tun))
		generated[sim.ProspectGrant]++
		room--
	}

	if room > 0 {
		if p, ok := marriageProspect(st, stream, tun); ok && stream.Float64() < 0.6 {
			st.OpenProspects = append(st.OpenProspects, p)
			generated[sim.ProspectMarriage]++
		}
	}
	return generated
}

func nextProspectID(st *sim.RunState) string {
	st.NextProspectSeq++
	return fmt.Sprintf("pr_%04d", st.NextProspectSeq)
}

func grantProspect(st *sim.RunState, tun tuning.Tuning) sim.Prospect {
	turn := st.TurnIndex
	return sim.Prospect{
		ID:      nextProspectID(st),
		Type:    sim.ProspectGrant,
		Summary: fmt.Sprintf("The liege offers a grant of %d coin for continued fealty", tun.GrantCoin),
		Predicted: sim.PredictedEffects{
			CoinDelta: tun.GrantCoin,
			RelationshipDeltas: map[string]sim.RelDelta{
				"liege": {Allegiance: tun.GrantAllegiance},
			},
		},
		Confidence: "high",
		OpenedTurn: turn,
		ExpiryTurn: turn + tun.ProspectTTLTurns,
	}
}

// marriageSubject picks the eldest eligible unmarried living child of the
// player house, age ties broken by registry id.
func marriageSubject(st *sim.RunState, tun tuning.Tuning) (*people.Person, bool) {
	h := st.PlayerHouse()
	if h == nil {
		return nil, false
	}
	var best *people.Person
	for _, c := range people.Children(st.People, h) {
		if !c.Alive || c.Married || c.Age < tun.MarriageAge {
			continue
		}
		if best == nil || c.Age > best.Age || (c.Age == best.Age && c.ID < best.ID) {
			best = c
		}
	}
	return best, best != nil
}

// candidatePool lists opposite-sex, living, unmarried, house-affiliated
// persons outside the player house, in id order. Candidates are never
// fabricated: no house membership, no offer.
func candidatePool(st *sim.RunState, subject *people.Person, tun tuning.Tuning) []string {
	var pool []string
	for _, id := range people.SortedPersonIDs(st.People) {
		p := st.People[id]
		if !p.Alive || p.Married || p.Sex == subject.Sex || p.Age < tun.MarriageAge {
			continue
		}
		hid, ok := people.FindHouseIDForPerson(st.Houses, id)
		if !ok || hid == st.House.HouseID {
			continue
		}
		pool = append(pool, id)
	}
	return pool
}

func marriageProspect(st *sim.RunState, stream *rng.Stream, tun tuning.Tuning) (sim.Prospect, bool) {
	subject, ok := marriageSubject(st, tun)
	if !ok {
		return sim.Prospect{}, false
	}
	pool := candidatePool(st, subject, tun)
	if len(pool) == 0 {
		return sim.Prospect{}, false
	}
	candidateID := pool[stream.Intn(len(pool))]
	candidate := st.People[candidateID]
	candidateHouseID, _ := people.FindHouseIDForPerson(st.Houses, candidateID)

	p := sim.Prospect{
		ID:               nextProspectID(st),
		Type:             sim.ProspectMarriage,
		SubjectID:        subject.ID,
		CandidateID:      candidateID,
		CandidateHouseID: candidateHouseID,
		Summary: fmt.Sprintf("%s of %s seeks the hand of %s",
			candidate.Name, st.Houses[candidateHouseID].Name, subject.Name),
		Confidence: "medium",
		OpenedTurn: st.TurnIndex,
		ExpiryTurn: st.TurnIndex + tun.ProspectTTLTurns,
		Predicted: sim.PredictedEffects{
			RelationshipDeltas: map[string]sim.RelDelta{
				candidateHouseID: {Allegiance: tun.MarriageAllegiance, Respect: tun.MarriageRespect},
			},
			FlagsSet: []string{"alliance:" + candidateHouseID},
		},
	}

	if subject.Sex == people.SexFemale {
		// Daughter marries out; the match brings a bride price in.
		p.Predicted.CoinDelta = tun.BridePriceCoin
	} else {
		p.Predicted.CoinDelta = -tun.DowryCoin
		p.CoinCost = tun.DowryCoin
		p.Requirements = append(p.Requirements, fmt.Sprintf("coin >= %d", tun.DowryCoin))
	}
	return p, true
}

// BuildWindow surfaces the shown subset of open offers: affordable offers
// first, then id order, capped by the shown cap. Hidden offers stay open
// for telemetry. Returns the window plus shown/hidden tallies by type.
func BuildWindow(st *sim.RunState, tun tuning.Tuning) (*sim.ProspectsWindow, map[string]int, map[string]int) {
	idx := make([]int, 0, len(st.OpenProspects))
	for i := range st.OpenProspects {
		if st.OpenProspects[i].Outcome == "" {
			idx = append(idx, i)
		}
	}
	sort.Slice(idx, func(a, b int) bool {
		pa, pb := &st.OpenProspects[idx[a]], &st.OpenProspects[idx[b]]
		aff, bff := pa.Affordable(&st.Manor), pb.Affordable(&st.Manor)
		if aff != bff {
			return aff
		}
		return pa.ID < pb.ID
	})

	shown := map[string]int{}
	hidden := map[string]int{}
	w := &sim.ProspectsWindow{}
	for n, i := range idx {
		p := &st.OpenProspects[i]
		if n < tun.ShownProspectsCap {
			p.Shown = true
			w.ShownIDs = append(w.ShownIDs, p.ID)
			w.Shown = append(w.Shown, *p)
			shown[p.Type]++
		} else {
			hidden[p.Type]++
		}
	}
	if len(w.ShownIDs) == 0 {
		return nil, shown, hidden
	}
	return w, shown, hidden
}

// Resolve applies one accept/reject action. Unknown ids, already-resolved
// offers, and unaffordable acceptances are local no-ops (ok=false); the
// turn still completes. Accepting applies the predicted effects exactly;
// rejecting applies nothing.
func Resolve(st *sim.RunState, action sim.ProspectAction, tun tuning.Tuning) (outcome string, ok bool) {
	i := -1
	for j := range st.OpenProspects {
		if st.OpenProspects[j].ID == action.ProspectID {
			i = j
			break
		}
	}
	if i < 0 || st.OpenProspects[i].Outcome != "" {
		return "", false
	}
	p := &st.OpenProspects[i]
	if p.ExpiryTurn <= st.TurnIndex {
		return "", false
	}

	switch action.Action {
	case "reject":
		p.Outcome = sim.OutcomeRejected
	case "accept":
		if !p.Affordable(&st.Manor) {
			return "", false
		}
		if p.Type == sim.ProspectMarriage {
			// The registry may have shifted since the offer was generated;
			// a stale offer fails rather than applies.
			if err := people.Marry(st.People, st.Houses, &st.KinshipEdges, p.SubjectID, p.CandidateID); err != nil {
				return "", false
			}
		}
		st.Manor.Coin += p.Predicted.CoinDelta
		if st.Manor.Coin < 0 {
			st.Manor.Coin = 0
		}
		for _, cp := range sortedKeys(p.Predicted.RelationshipDeltas) {
			st.AdjustRelationship(cp, p.Predicted.RelationshipDeltas[cp])
		}
		for _, f := range p.Predicted.FlagsSet {
			if st.Flags == nil {
				st.Flags = map[string]bool{}
			}
			st.Flags[f] = true
		}
		p.Outcome = sim.OutcomeAccepted
	default:
		return "", false
	}

	out := p.Outcome
	st.OpenProspects = append(st.OpenProspects[:i], st.OpenProspects[i+1:]...)
	return out, true
}

func sortedKeys(m map[string]sim.RelDelta) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
