package sim

import (
	"sort"
)

// HouseholdRoles maps person id to role for the current household
// occupancy: head, spouse, children, court extras, officers. Captured at
// turn entry so members who die during the turn keep their role in that
// turn's report.
func HouseholdRoles(st *RunState) map[string]string {
	roles := map[string]string{}
	h := st.PlayerHouse()
	if h == nil {
		return roles
	}
	assign := func(personID, role string) {
		if personID == "" {
			return
		}
		if _, taken := roles[personID]; taken {
			return
		}
		if _, ok := st.People[personID]; !ok {
			return
		}
		roles[personID] = role
	}
	assign(h.HeadID, "head")
	assign(h.SpouseID, "spouse")
	for _, id := range h.ChildIDs {
		assign(id, "child")
	}
	for _, o := range st.Court.Officers {
		assign(o.PersonID, "officer")
	}
	for _, id := range h.CourtExtraIDs {
		assign(id, "court")
	}
	return roles
}

// BuildRoster snapshots the player household, deduped and stable-sorted by
// person id. entryRoles are the roles at turn entry: members who died
// mid-turn (and were therefore displaced from the house slots by
// succession) still appear, under their former role, with the deceased
// marker set.
func BuildRoster(st *RunState, diedThisTurn map[string]bool, entryRoles map[string]string) []RosterEntry {
	seen := map[string]bool{}
	var out []RosterEntry
	add := func(personID, role string) {
		if personID == "" || seen[personID] {
			return
		}
		p, ok := st.People[personID]
		if !ok {
			return
		}
		seen[personID] = true
		out = append(out, RosterEntry{
			PersonID:     personID,
			Name:         p.Name,
			Role:         role,
			Age:          p.Age,
			Alive:        p.Alive,
			DiedThisTurn: diedThisTurn[personID],
		})
	}

	for id, role := range HouseholdRoles(st) {
		add(id, role)
	}

	// Members lost this turn keep their place in this report.
	died := make([]string, 0, len(diedThisTurn))
	for id := range diedThisTurn {
		died = append(died, id)
	}
	sort.Strings(died)
	for _, id := range died {
		if role, ok := entryRoles[id]; ok {
			add(id, role)
		}
	}

	sort.Slice(out, func(i, j int) bool { return out[i].PersonID < out[j].PersonID })
	return out
}
