// Package tuning holds the gameplay constants for the manor simulation.
// Values are loaded from YAML when a file is supplied and fall back to the
// defaults below, so batch runs and tests can tighten or relax individual
// rates without touching code.
package tuning

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Tuning carries every gameplay constant the engine threads through its
// subsystems. One value is shared by all turns of a run.
type Tuning struct {
	// Turn cadence.
	TurnYears int `yaml:"turn_years"` // Sim-years elapsed per turn

	// Economy.
	FarmYieldBushels   int `yaml:"farm_yield_bushels"`   // Bushels produced per farmer per turn
	ConsumptionBushels int `yaml:"consumption_bushels"`  // Bushels eaten per head per turn
	TaxAssessCoin      int `yaml:"tax_assess_coin"`      // Coin the liege assesses per turn
	TitheAssessBushels int `yaml:"tithe_assess_bushels"` // Bushels the church assesses per turn
	DispossessCoin     int `yaml:"dispossess_coin"`      // Coin arrears that end the run

	// Construction.
	BuildRateLabor  int `yaml:"build_rate_labor"`  // Progress per builder per turn
	CoinPerProgress int `yaml:"coin_per_progress"` // Coin converted to one progress point
	RequiredGrowth  int `yaml:"required_growth"`   // Added to required after each completion

	// Unrest and flight.
	ShortfallUnrest int `yaml:"shortfall_unrest"` // Unrest per unfed head (capped)
	RunawayUnrest   int `yaml:"runaway_unrest"`   // Unrest level above which villagers flee

	// Mortality (permille chance per turn, drawn from the mortality stream).
	ElderAge          int `yaml:"elder_age"`
	MatureAge         int `yaml:"mature_age"`
	MortalityElderly  int `yaml:"mortality_elderly"`
	MortalityMature   int `yaml:"mortality_mature"`
	MortalityBase     int `yaml:"mortality_base"`
	PopMortalityBase  int `yaml:"pop_mortality_base"` // Background village deaths, permille per turn

	// Event deck.
	MaxEventsPerTurn int `yaml:"max_events_per_turn"`
	QuietWeight      int `yaml:"quiet_weight"` // Implicit no-event weight per draw

	// Prospects.
	MaxProspectsPerTurn int `yaml:"max_prospects_per_turn"`
	ShownProspectsCap   int `yaml:"shown_prospects_cap"`
	ProspectTTLTurns    int `yaml:"prospect_ttl_turns"`
	MarriageAge         int `yaml:"marriage_age"`
	GrantCoin           int `yaml:"grant_coin"`
	GrantAllegiance     int `yaml:"grant_allegiance"`
	BridePriceCoin      int `yaml:"bride_price_coin"`
	DowryCoin           int `yaml:"dowry_coin"`
	MarriageAllegiance  int `yaml:"marriage_allegiance"`
	MarriageRespect     int `yaml:"marriage_respect"`
}

// Default returns the baseline constants.
func Default() Tuning {
	return Tuning{
		TurnYears: 3,

		FarmYieldBushels:   10,
		ConsumptionBushels: 4,
		TaxAssessCoin:      6,
		TitheAssessBushels: 8,
		DispossessCoin:     30,

		BuildRateLabor:  2,
		CoinPerProgress: 2,
		RequiredGrowth:  20,

		ShortfallUnrest: 2,
		RunawayUnrest:   70,

		ElderAge:         60,
		MatureAge:        45,
		MortalityElderly: 350,
		MortalityMature:  90,
		MortalityBase:    25,
		PopMortalityBase: 15,

		MaxEventsPerTurn: 2,
		QuietWeight:      40,

		MaxProspectsPerTurn: 3,
		ShownProspectsCap:   2,
		ProspectTTLTurns:    2,
		MarriageAge:         16,
		GrantCoin:           5,
		GrantAllegiance:     3,
		BridePriceCoin:      8,
		DowryCoin:           8,
		MarriageAllegiance:  6,
		MarriageRespect:     4,
	}
}

// Load reads a YAML tuning file. Fields absent from the file keep their
// default values.
func Load(path string) (Tuning, error) {
	t := Default()
	raw, err := os.ReadFile(path)
	if err != nil {
		return t, err
	}
	if err := yaml.Unmarshal(raw, &t); err != nil {
		return t, fmt.Errorf("tuning.yaml: %w", err)
	}
	return t, nil
}
