// Registry lookups. All queries are deterministic: map iteration always
// goes through sorted id order, and ambiguous kinship resolution falls back
// to the smallest person id.
package people

import "sort"

// SortedPersonIDs returns the registry's person ids in lexicographic order.
func SortedPersonIDs(persons map[string]*Person) []string {
	ids := make([]string, 0, len(persons))
	for id := range persons {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// SortedHouseIDs returns the registry's house ids in lexicographic order.
func SortedHouseIDs(houses map[string]*House) []string {
	ids := make([]string, 0, len(houses))
	for id := range houses {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// FindHouseIDForPerson scans houses for one where the person is head,
// spouse, listed child, or court extra. Linear in houses; house counts stay
// small relative to turns.
func FindHouseIDForPerson(houses map[string]*House, personID string) (string, bool) {
	for _, hid := range SortedHouseIDs(houses) {
		h := houses[hid]
		if h.HeadID == personID || h.SpouseID == personID {
			return hid, true
		}
		for _, cid := range h.ChildIDs {
			if cid == personID {
				return hid, true
			}
		}
		for _, cid := range h.CourtExtraIDs {
			if cid == personID {
				return hid, true
			}
		}
	}
	return "", false
}

// ResolveSpouse selects the living, currently-married counterpart among a
// person's spouse_of edges. Remarriage leaves multiple historical edges; if
// more than one counterpart qualifies, the lexicographically smallest person
// id wins, a total order independent of edge insertion sequence.
func ResolveSpouse(persons map[string]*Person, edges []KinshipEdge, personID string) (string, bool) {
	best := ""
	for _, e := range edges {
		if e.Kind != KinSpouseOf {
			continue
		}
		var other string
		switch personID {
		case e.AID:
			other = e.BID
		case e.BID:
			other = e.AID
		default:
			continue
		}
		p, ok := persons[other]
		if !ok || !p.Alive || !p.Married {
			continue
		}
		if best == "" || other < best {
			best = other
		}
	}
	return best, best != ""
}

// Children returns the persons listed as children of the house, skipping
// ids absent from the registry.
func Children(persons map[string]*Person, h *House) []*Person {
	out := make([]*Person, 0, len(h.ChildIDs))
	for _, id := range h.ChildIDs {
		if p, ok := persons[id]; ok {
			out = append(out, p)
		}
	}
	return out
}

// EligibleHeir returns the eldest eligible living child of the house: sons
// only (male-preference succession), age ties broken by registry id.
func EligibleHeir(persons map[string]*Person, h *House) (string, bool) {
	best := ""
	bestAge := -1
	for _, c := range Children(persons, h) {
		if !c.Alive || c.Sex != SexMale {
			continue
		}
		if c.Age > bestAge || (c.Age == bestAge && c.ID < best) {
			best = c.ID
			bestAge = c.Age
		}
	}
	return best, best != ""
}

// EldestLivingSon reports whether the person is the eldest living son of
// the house, which grants marry-in residence alongside heirship.
func EldestLivingSon(persons map[string]*Person, h *House, personID string) bool {
	id, ok := EligibleHeir(persons, h)
	return ok && id == personID
}
