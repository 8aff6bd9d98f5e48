// Registry mutations. Marriage, death, and succession always update the
// person, its house slots, and the kinship edge list together so the graph
// stays internally consistent; edges are appended, never deleted.
package people

import "fmt"

func removeID(ids []string, id string) []string {
	out := ids[:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

func appendUnique(ids []string, id string) []string {
	for _, v := range ids {
		if v == id {
			return ids
		}
	}
	return append(ids, id)
}

// Marry joins two persons, records the spouse_of edge, and applies the
// residence rule: daughters marry out of their birth house; sons marry in
// only when they are the heir or eldest living son, otherwise they marry
// out too. Same-sex unions are categorically rejected here as the last line
// of defense for legacy states.
func Marry(persons map[string]*Person, houses map[string]*House, edges *[]KinshipEdge, subjectID, candidateID string) error {
	subject, ok := persons[subjectID]
	if !ok {
		return fmt.Errorf("marry: unknown subject %s", subjectID)
	}
	candidate, ok := persons[candidateID]
	if !ok {
		return fmt.Errorf("marry: unknown candidate %s", candidateID)
	}
	if !subject.Alive || !candidate.Alive {
		return fmt.Errorf("marry: %s and %s must both be alive", subjectID, candidateID)
	}
	if subject.Married || candidate.Married {
		return fmt.Errorf("marry: %s and %s must both be unmarried", subjectID, candidateID)
	}
	if subject.Sex == candidate.Sex {
		return fmt.Errorf("marry: same-sex union %s/%s is not permitted", subjectID, candidateID)
	}

	subjectHouseID, _ := FindHouseIDForPerson(houses, subjectID)
	candidateHouseID, _ := FindHouseIDForPerson(houses, candidateID)

	subject.Married = true
	candidate.Married = true
	*edges = append(*edges, KinshipEdge{Kind: KinSpouseOf, AID: subjectID, BID: candidateID})

	subjectHouse := houses[subjectHouseID]
	candidateHouse := houses[candidateHouseID]

	marriesIn := subject.Sex == SexMale && subjectHouse != nil &&
		EldestLivingSon(persons, subjectHouse, subjectID)

	if marriesIn {
		// Spouse joins the subject's house court; the subject keeps his
		// child slot until succession promotes him.
		if candidateHouse != nil {
			candidateHouse.ChildIDs = removeID(candidateHouse.ChildIDs, candidateID)
			candidateHouse.CourtExtraIDs = removeID(candidateHouse.CourtExtraIDs, candidateID)
		}
		subjectHouse.CourtExtraIDs = appendUnique(subjectHouse.CourtExtraIDs, candidateID)
		return nil
	}

	// Marry out: the subject leaves the birth house entirely.
	if subjectHouse != nil {
		subjectHouse.ChildIDs = removeID(subjectHouse.ChildIDs, subjectID)
		subjectHouse.CourtExtraIDs = removeID(subjectHouse.CourtExtraIDs, subjectID)
	}
	if candidateHouse != nil {
		candidateHouse.CourtExtraIDs = appendUnique(candidateHouse.CourtExtraIDs, subjectID)
	}
	return nil
}

// MarkDead flags a person deceased and widows the surviving spouse. House
// slots are left for succession to resolve; historical records keep the id.
func MarkDead(persons map[string]*Person, edges []KinshipEdge, personID string) {
	p, ok := persons[personID]
	if !ok || !p.Alive {
		return
	}
	p.Alive = false
	if p.Married {
		p.Married = false
		if spouseID, ok := ResolveSpouse(persons, edges, personID); ok {
			persons[spouseID].Married = false
		}
	}
}

// Succeed promotes the heir of a house whose head has died: the heir leaves
// the child list, his spouse (if residing at court) fills the spouse slot,
// and the widowed former spouse moves to the court extras. Returns false
// when no eligible heir exists.
func Succeed(persons map[string]*Person, houses map[string]*House, edges []KinshipEdge, houseID string) (string, bool) {
	h, ok := houses[houseID]
	if !ok {
		return "", false
	}
	heirID, ok := EligibleHeir(persons, h)
	if !ok {
		return "", false
	}

	if h.SpouseID != "" {
		if widow, ok := persons[h.SpouseID]; ok && widow.Alive {
			h.CourtExtraIDs = appendUnique(h.CourtExtraIDs, h.SpouseID)
		}
		h.SpouseID = ""
	}

	h.HeadID = heirID
	h.ChildIDs = removeID(h.ChildIDs, heirID)

	if spouseID, ok := ResolveSpouse(persons, edges, heirID); ok {
		h.SpouseID = spouseID
		h.CourtExtraIDs = removeID(h.CourtExtraIDs, spouseID)
	}
	return heirID, true
}
