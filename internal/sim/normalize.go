// State normalization: numeric/range invariant repair for freshly created,
// externally edited, and legacy states. Repair is silent and idempotent;
// oversubscription visibility is the pipeline's job via the labor signal.
package sim

import "github.com/talgya/manorsim/internal/people"

// Oversubscribed reports whether allocated labor exceeds the population.
// Checked at turn entry, before Normalize repairs the numbers.
func Oversubscribed(m *Manor) bool {
	return m.Farmers+m.Builders > m.Population
}

// Normalize repairs the state in place. Rules run in order, each depending
// on the prior: coerce counters non-negative, clamp labor into
// [0, population] reducing builders before farmers, clamp percentage fields
// to [0,100], floor construction.required at 1. Applying it twice yields
// the same result as once.
func Normalize(st *RunState) {
	if st.People == nil {
		st.People = map[string]*people.Person{}
	}
	if st.Houses == nil {
		st.Houses = map[string]*people.House{}
	}
	if st.Relationships == nil {
		st.Relationships = map[string]Relationship{}
	}
	if st.EventCooldowns == nil {
		st.EventCooldowns = map[string]int{}
	}

	m := &st.Manor
	m.Population = clampNonNeg(m.Population)
	m.Farmers = clampNonNeg(m.Farmers)
	m.Builders = clampNonNeg(m.Builders)
	m.BushelsStored = clampNonNeg(m.BushelsStored)
	m.Coin = clampNonNeg(m.Coin)
	m.Obligations.TaxDueCoin = clampNonNeg(m.Obligations.TaxDueCoin)
	m.Obligations.TitheDueBushels = clampNonNeg(m.Obligations.TitheDueBushels)
	m.Obligations.Arrears.Coin = clampNonNeg(m.Obligations.Arrears.Coin)
	m.Obligations.Arrears.Bushels = clampNonNeg(m.Obligations.Arrears.Bushels)
	m.Construction.Progress = clampNonNeg(m.Construction.Progress)
	m.Construction.Completed = clampNonNeg(m.Construction.Completed)

	if m.Farmers > m.Population {
		m.Farmers = m.Population
	}
	if m.Builders > m.Population {
		m.Builders = m.Population
	}
	// Oversubscription: builders give way first, floored at zero.
	if m.Farmers+m.Builders > m.Population {
		m.Builders = m.Population - m.Farmers
		if m.Builders < 0 {
			m.Builders = 0
		}
	}

	m.Unrest = clampPct(m.Unrest)
	for key, r := range st.Relationships {
		r.Allegiance = clampPct(r.Allegiance)
		r.Respect = clampPct(r.Respect)
		r.Threat = clampPct(r.Threat)
		st.Relationships[key] = r
	}

	if m.Construction.Required < 1 {
		m.Construction.Required = 1
	}

	for kind, cd := range st.EventCooldowns {
		if cd < 0 {
			st.EventCooldowns[kind] = 0
		}
	}

	for i := range st.People {
		p := st.People[i]
		if p.Age < 0 {
			p.Age = 0
		}
	}
}
