// Package sim provides the serializable simulation state model shared by
// every subsystem: the manor ledger, the people/house/kinship registries,
// open prospects, and the append-only turn log. State is one explicitly
// passed value; nothing here reaches into ambient storage.
package sim

import (
	"github.com/talgya/manorsim/internal/people"
)

// Obligations tracks what the manor owes upward this turn plus unpaid
// arrears carried from earlier turns.
type Obligations struct {
	TaxDueCoin      int     `json:"tax_due_coin"`
	TitheDueBushels int     `json:"tithe_due_bushels"`
	Arrears         Arrears `json:"arrears"`
}

// Arrears are overdue obligations. Coin arrears past the dispossession
// threshold end the run.
type Arrears struct {
	Coin    int `json:"coin"`
	Bushels int `json:"bushels"`
}

// Construction tracks the current building project.
type Construction struct {
	Progress  int `json:"progress"`
	Required  int `json:"required"`
	Completed int `json:"completed"` // Projects finished over the run's lifetime
}

// Manor is the economic core of the state: labor allocation, stores, and
// obligations. Invariant: Farmers+Builders <= Population after normalize.
type Manor struct {
	Population    int          `json:"population"`
	Farmers       int          `json:"farmers"`
	Builders      int          `json:"builders"`
	BushelsStored int          `json:"bushels_stored"`
	Coin          int          `json:"coin"`
	Unrest        int          `json:"unrest"` // 0–100
	Obligations   Obligations  `json:"obligations"`
	Construction  Construction `json:"construction"`
}

// Officer is a court appointment. Officers are regular registry persons;
// no office is auto-filled beyond the initial Steward.
type Officer struct {
	Role     string `json:"role"`
	PersonID string `json:"person_id"`
}

// Court holds the manor's officers.
type Court struct {
	Officers []Officer `json:"officers"`
}

// Relationship is the manor's standing with one counterparty ("liege",
// "church", "village", or a house id). Each axis is 0–100.
type Relationship struct {
	Allegiance int `json:"allegiance"`
	Respect    int `json:"respect"`
	Threat     int `json:"threat"`
}

// Dynasty mirrors the player house's occupancy for quick reads. It is
// refreshed from the house registry after every apply; the registry stays
// the source of truth.
type Dynasty struct {
	HouseID  string   `json:"house_id"`
	HeadID   string   `json:"head_id"`
	SpouseID string   `json:"spouse_id,omitempty"`
	ChildIDs []string `json:"child_ids"`
}

// RunState is the complete simulation snapshot. It is created once per run
// and thereafter only replaced by the apply phase, never mutated in place
// by callers.
type RunState struct {
	Manor Manor   `json:"manor"`
	House Dynasty `json:"house"`
	Court Court   `json:"court"`

	People       map[string]*people.Person `json:"people"`
	Houses       map[string]*people.House  `json:"houses"`
	KinshipEdges []people.KinshipEdge      `json:"kinship_edges"`

	Relationships map[string]Relationship `json:"relationships"`

	OpenProspects  []Prospect      `json:"open_prospects"`
	EventCooldowns map[string]int  `json:"event_cooldowns"`
	Flags          map[string]bool `json:"flags"`

	Log []TurnReport `json:"log"`

	RunSeed        string `json:"run_seed"`
	TurnIndex      int    `json:"turn_index"`
	GameOver       bool   `json:"game_over"`
	GameOverReason string `json:"game_over_reason,omitempty"`

	// Id allocation counters. Zero-padded sequential ids keep allocation
	// order and lexicographic order identical.
	NextPersonSeq   int `json:"next_person_seq"`
	NextHouseSeq    int `json:"next_house_seq"`
	NextProspectSeq int `json:"next_prospect_seq"`
}

// PlayerHouse returns the player's house record, or nil on a corrupt state.
func (st *RunState) PlayerHouse() *people.House {
	return st.Houses[st.House.HouseID]
}

// RefreshDynasty re-reads the player house occupancy into the mirror.
func (st *RunState) RefreshDynasty() {
	h := st.PlayerHouse()
	if h == nil {
		return
	}
	st.House.HeadID = h.HeadID
	st.House.SpouseID = h.SpouseID
	st.House.ChildIDs = append([]string(nil), h.ChildIDs...)
}

// AdjustRelationship applies a delta to one counterparty, clamped to 0–100.
func (st *RunState) AdjustRelationship(counterparty string, d RelDelta) {
	r := st.Relationships[counterparty]
	r.Allegiance = clampPct(r.Allegiance + d.Allegiance)
	r.Respect = clampPct(r.Respect + d.Respect)
	r.Threat = clampPct(r.Threat + d.Threat)
	st.Relationships[counterparty] = r
}

func clampPct(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

func clampNonNeg(v int) int {
	if v < 0 {
		return 0
	}
	return v
}
