// Turn-scoped value types: the propose-phase preview, the decision bundle,
// and the applied-turn report.
package sim

// RosterEntry is one household member in a roster snapshot.
type RosterEntry struct {
	PersonID     string `json:"person_id"`
	Name         string `json:"name"`
	Role         string `json:"role"` // "head","spouse","child","court","officer"
	Age          int    `json:"age"`
	Alive        bool   `json:"alive"`
	DiedThisTurn bool   `json:"died_this_turn,omitempty"`
}

// LaborSignal reports labor oversubscription detected at turn entry, before
// the normalizer silently repaired it.
type LaborSignal struct {
	Oversubscribed bool `json:"oversubscribed"`
	Farmers        int  `json:"farmers"`
	Builders       int  `json:"builders"`
	Population     int  `json:"population"`
}

// PopulationChange splits the turn's population delta by cause.
type PopulationChange struct {
	Deaths   int `json:"deaths"`
	Runaways int `json:"runaways"`
}

// EffectRecord describes one applied effect, in application order.
type EffectRecord struct {
	Source          string `json:"source"` // event kind, prospect id, or subsystem name
	Note            string `json:"note"`
	CoinDelta       int    `json:"coin_delta,omitempty"`
	BushelsDelta    int    `json:"bushels_delta,omitempty"`
	UnrestDelta     int    `json:"unrest_delta,omitempty"`
	PopulationDelta int    `json:"population_delta,omitempty"`
}

// ProspectTallies aggregates prospect outcomes for one turn. Generation
// counts are keyed by prospect type; resolution counts are totals.
type ProspectTallies struct {
	Generated map[string]int `json:"generated,omitempty"`
	Shown     map[string]int `json:"shown,omitempty"`
	Hidden    map[string]int `json:"hidden,omitempty"`

	Accepted        int `json:"accepted"`
	Rejected        int `json:"rejected"`
	Expired         int `json:"expired"`
	ShownButExpired int `json:"shown_but_expired"`
}

// ProposalFacts carries the automatic-phase outcomes from propose to apply
// so the report never has to reconstruct them.
type ProposalFacts struct {
	LaborSignal      LaborSignal      `json:"labor_signal"`
	PopulationChange PopulationChange `json:"population_change_breakdown"`
	DiedPersonIDs    []string         `json:"died_person_ids,omitempty"`
	Events           []EffectRecord   `json:"events,omitempty"`
	ProspectTallies  ProspectTallies  `json:"prospect_tallies"`
	Notes            []string         `json:"notes,omitempty"`
	// EntryRoles are the household roles at turn entry, kept so members who
	// die mid-turn still appear in the apply-time roster snapshot.
	EntryRoles map[string]string `json:"entry_roles,omitempty"`
}

// ProspectsWindow is the decision-facing slice of this turn's open offers.
// ShownIDs are the surfaced subset; hidden prospects stay in the state for
// telemetry but are not listed here.
type ProspectsWindow struct {
	ShownIDs []string   `json:"shown_ids"`
	Shown    []Prospect `json:"shown"`
}

// TurnContext is the immutable propose-phase preview handed to the decision
// layer. PreviewState must be treated as read-only; apply works on its own
// copy.
type TurnContext struct {
	PreviewState    *RunState        `json:"preview_state"`
	HouseholdRoster []RosterEntry    `json:"household_roster"`
	ProspectsWindow *ProspectsWindow `json:"prospects_window,omitempty"`
	Proposal        ProposalFacts    `json:"proposal"`
}

// LaborDecision reallocates the workforce. Invalid allocations (negative or
// oversubscribed) are rejected as a local no-op.
type LaborDecision struct {
	Farmers  int `json:"farmers"`
	Builders int `json:"builders"`
}

// ConstructionDecision spends coin on the current project.
type ConstructionDecision struct {
	SpendCoin int `json:"spend_coin"`
}

// ProspectAction resolves one open prospect.
type ProspectAction struct {
	ProspectID string `json:"prospect_id"`
	Action     string `json:"action"` // "accept" or "reject"
}

// ProspectDecisions is the prospects slice of the decision bundle.
type ProspectDecisions struct {
	Kind    string           `json:"kind"` // always "prospects"
	Actions []ProspectAction `json:"actions"`
}

// Decisions is the bundle returned by the decide phase. Any nil subsystem
// is a no-op for that subsystem.
type Decisions struct {
	Labor        *LaborDecision        `json:"labor,omitempty"`
	Construction *ConstructionDecision `json:"construction,omitempty"`
	Prospects    *ProspectDecisions    `json:"prospects,omitempty"`
}

// TurnReport is the authoritative historical record of one applied turn.
// Its roster is captured at apply time and never rebuilt from later state.
type TurnReport struct {
	TurnIndex       int              `json:"turn_index"`
	HouseholdRoster []RosterEntry    `json:"household_roster"`
	LaborSignal     LaborSignal      `json:"labor_signal"`
	PopChange       PopulationChange `json:"population_change_breakdown"`
	Events          []EffectRecord   `json:"events,omitempty"`
	Prospects       ProspectTallies  `json:"prospect_tallies"`
	Notes           []string         `json:"notes,omitempty"`
	GameOver        bool             `json:"game_over,omitempty"`
	GameOverReason  string           `json:"game_over_reason,omitempty"`
}
