// Prospect value types. Open prospects live in the run state until they
// resolve or expire; predicted effects are deterministic constants so replay
// produces identical offers and identical outcomes.
package sim

// Prospect types.
const (
	ProspectMarriage = "marriage"
	ProspectGrant    = "grant"
)

// Prospect outcomes.
const (
	OutcomeAccepted = "accepted"
	OutcomeRejected = "rejected"
	OutcomeExpired  = "expired"
)

// RelDelta is a bounded change to one counterparty relationship.
type RelDelta struct {
	Allegiance int `json:"allegiance,omitempty"`
	Respect    int `json:"respect,omitempty"`
	Threat     int `json:"threat,omitempty"`
}

// PredictedEffects are the exact deltas an acceptance applies. Rejection
// applies none of them.
type PredictedEffects struct {
	CoinDelta          int                 `json:"coin_delta"`
	RelationshipDeltas map[string]RelDelta `json:"relationship_deltas,omitempty"`
	FlagsSet           []string            `json:"flags_set,omitempty"`
}

// Prospect is a time-windowed offer awaiting an accept/reject decision.
type Prospect struct {
	ID               string           `json:"id"`
	Type             string           `json:"type"`
	SubjectID        string           `json:"subject_id,omitempty"`        // e.g. which child marries
	CandidateID      string           `json:"candidate_id,omitempty"`      // marriage counterpart
	CandidateHouseID string           `json:"candidate_house_id,omitempty"`
	Summary          string           `json:"summary"`
	Requirements     []string         `json:"requirements,omitempty"`
	CoinCost         int              `json:"coin_cost,omitempty"`
	Predicted        PredictedEffects `json:"predicted_effects"`
	Confidence       string           `json:"confidence"` // "high" or "medium"
	OpenedTurn       int              `json:"opened_turn"`
	ExpiryTurn       int              `json:"expiry_turn"`
	Shown            bool             `json:"shown"` // surfaced at least once
	Outcome          string           `json:"outcome,omitempty"`
}

// Affordable reports whether the manor can cover the prospect's cost.
func (p *Prospect) Affordable(m *Manor) bool {
	return m.Coin >= p.CoinCost
}
