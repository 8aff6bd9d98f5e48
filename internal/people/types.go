// Package people provides the person/house/kinship data model and the
// registry operations on it: lookups, marriage, death, and succession.
// Persons are owned by the people registry; houses and kinship edges hold
// references by id and never embed person data.
package people

// Sex of a person. Stored as a string for stable serialization.
type Sex string

const (
	SexMale   Sex = "m"
	SexFemale Sex = "f"
)

// Traits are the five scored aptitudes of a person, each 0–100.
type Traits struct {
	Stewardship int `json:"stewardship"`
	Martial     int `json:"martial"`
	Diplomacy   int `json:"diplomacy"`
	Discipline  int `json:"discipline"`
	Fertility   int `json:"fertility"`
}

// Person is the core entity of the registry. Ids are stable, globally
// unique, and zero-padded so lexicographic order equals allocation order.
type Person struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Sex     Sex    `json:"sex"`
	Age     int    `json:"age"` // Sim-years
	Alive   bool   `json:"alive"`
	Married bool   `json:"married"`
	Traits  Traits `json:"traits"`
}

// HouseTier ranks a house in the feudal order.
type HouseTier string

const (
	TierManor  HouseTier = "manor"
	TierKnight HouseTier = "knight"
	TierBaron  HouseTier = "baron"
)

// House groups persons into a dynasty. Head, spouse, children, and court
// extras are back-references into the people registry.
type House struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Tier          HouseTier `json:"tier"`
	HoldingsCount int       `json:"holdings_count"`
	HeadID        string    `json:"head_id"`
	SpouseID      string    `json:"spouse_id,omitempty"`
	ChildIDs      []string  `json:"child_ids"`
	// CourtExtraIDs holds persons residing with the house beyond the
	// head/spouse/children slots: in-marrying spouses of heirs, widows.
	CourtExtraIDs []string `json:"court_extra_ids,omitempty"`
	Dissolved     bool     `json:"dissolved,omitempty"`
}

// Kinship edge kinds. The edge list is append-only; historical edges are
// never deleted, so "current" queries must filter by liveness and marital
// status rather than insertion order.
const (
	KinSpouseOf = "spouse_of"
	KinParentOf = "parent_of"
)

// KinshipEdge is a typed relation between two persons. spouse_of edges are
// undirected: lookups tolerate either endpoint ordering.
type KinshipEdge struct {
	Kind string `json:"kind"`
	AID  string `json:"a_id"`
	BID  string `json:"b_id"`
}
