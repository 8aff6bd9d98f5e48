// The event catalog. Weights read the state; effects are bounded and
// recorded in application order for the turn report.
package events

import (
	"fmt"

	"github.com/talgya/manorsim/internal/rng"
	"github.com/talgya/manorsim/internal/sim"
	"github.com/talgya/manorsim/internal/tuning"
)

func headMartial(st *sim.RunState) int {
	if head, ok := st.People[st.House.HeadID]; ok {
		return head.Traits.Martial
	}
	return 0
}

func catalog() []Def {
	return []Def{
		{
			Kind:     "good_harvest",
			Cooldown: 1,
			Weight: func(st *sim.RunState, tun tuning.Tuning) WeightResult {
				w := 20
				if st.Manor.BushelsStored < st.Manor.Population*tun.ConsumptionBushels {
					w += 10 // lean stores make a good year matter more
				}
				return WeightResult{Weight: w, Notes: "baseline harvest luck"}
			},
			Apply: func(st *sim.RunState, stream *rng.Stream, tun tuning.Tuning) []sim.EffectRecord {
				bonus := st.Manor.Farmers * tun.FarmYieldBushels / 4
				st.Manor.BushelsStored += bonus
				return []sim.EffectRecord{{
					Source: "good_harvest", Note: "an abundant harvest fills the granary",
					BushelsDelta: bonus,
				}}
			},
		},
		{
			Kind:     "bandit_raid",
			Cooldown: 2,
			Weight: func(st *sim.RunState, tun tuning.Tuning) WeightResult {
				w := 5 + st.Manor.Coin/4
				martial := headMartial(st)
				if martial > 60 {
					w -= 8
				}
				if w < 0 {
					w = 0
				}
				return WeightResult{Weight: w, Notes: fmt.Sprintf("coin %d draws raiders, head martial %d deters", st.Manor.Coin, martial)}
			},
			Apply: func(st *sim.RunState, stream *rng.Stream, tun tuning.Tuning) []sim.EffectRecord {
				loss := 3 + stream.Intn(4)
				if loss > st.Manor.Coin {
					loss = st.Manor.Coin
				}
				st.Manor.Coin -= loss
				st.Manor.Unrest = clampUnrest(st.Manor.Unrest + 5)
				st.AdjustRelationship("village", sim.RelDelta{Respect: -3})
				return []sim.EffectRecord{{
					Source: "bandit_raid", Note: "raiders strike the toll road",
					CoinDelta: -loss, UnrestDelta: 5,
				}}
			},
		},
		{
			Kind:     "blight",
			Cooldown: 3,
			Weight: func(st *sim.RunState, tun tuning.Tuning) WeightResult {
				return WeightResult{Weight: 8, Notes: "blight strikes without pattern"}
			},
			Apply: func(st *sim.RunState, stream *rng.Stream, tun tuning.Tuning) []sim.EffectRecord {
				loss := st.Manor.BushelsStored / 5
				st.Manor.BushelsStored -= loss
				st.Manor.Unrest = clampUnrest(st.Manor.Unrest + 4)
				return []sim.EffectRecord{{
					Source: "blight", Note: "a blight rots the stored grain",
					BushelsDelta: -loss, UnrestDelta: 4,
				}}
			},
		},
		{
			Kind:     "fever",
			Cooldown: 3,
			Weight: func(st *sim.RunState, tun tuning.Tuning) WeightResult {
				w := st.Manor.Population / 30
				return WeightResult{Weight: w, Notes: fmt.Sprintf("crowding of %d souls", st.Manor.Population)}
			},
			Apply: func(st *sim.RunState, stream *rng.Stream, tun tuning.Tuning) []sim.EffectRecord {
				dead := 2 + stream.Intn(4)
				if dead > st.Manor.Population {
					dead = st.Manor.Population
				}
				st.Manor.Population -= dead
				st.Manor.Unrest = clampUnrest(st.Manor.Unrest + 6)
				return []sim.EffectRecord{{
					Source: "fever", Note: "a fever sweeps the cottages",
					PopulationDelta: -dead, UnrestDelta: 6,
				}}
			},
		},
		{
			Kind:     "wandering_friar",
			Cooldown: 2,
			Weight: func(st *sim.RunState, tun tuning.Tuning) WeightResult {
				w := st.Manor.Unrest / 5
				return WeightResult{Weight: w, Notes: fmt.Sprintf("unrest %d invites preaching", st.Manor.Unrest)}
			},
			Apply: func(st *sim.RunState, stream *rng.Stream, tun tuning.Tuning) []sim.EffectRecord {
				relief := 6
				st.Manor.Unrest = clampUnrest(st.Manor.Unrest - relief)
				st.AdjustRelationship("church", sim.RelDelta{Respect: 2})
				return []sim.EffectRecord{{
					Source: "wandering_friar", Note: "a friar calms the village",
					UnrestDelta: -relief,
				}}
			},
		},
		{
			Kind:     "merchant_caravan",
			Cooldown: 2,
			Weight: func(st *sim.RunState, tun tuning.Tuning) WeightResult {
				w := 10
				if st.Manor.BushelsStored > st.Manor.Population*tun.ConsumptionBushels*2 {
					w += 8 // surplus attracts buyers
				}
				return WeightResult{Weight: w, Notes: "trade routes pass nearby"}
			},
			Apply: func(st *sim.RunState, stream *rng.Stream, tun tuning.Tuning) []sim.EffectRecord {
				sold := st.Manor.BushelsStored / 10
				earned := sold / 3
				st.Manor.BushelsStored -= sold
				st.Manor.Coin += earned
				return []sim.EffectRecord{{
					Source: "merchant_caravan", Note: "a caravan buys surplus grain",
					BushelsDelta: -sold, CoinDelta: earned,
				}}
			},
		},
		{
			Kind:     "storm_damage",
			Cooldown: 2,
			Weight: func(st *sim.RunState, tun tuning.Tuning) WeightResult {
				w := 4
				if st.Manor.Construction.Progress > 0 {
					w += 6
				}
				return WeightResult{Weight: w, Notes: "weather risk to open works"}
			},
			Apply: func(st *sim.RunState, stream *rng.Stream, tun tuning.Tuning) []sim.EffectRecord {
				loss := st.Manor.Construction.Progress / 4
				st.Manor.Construction.Progress -= loss
				return []sim.EffectRecord{{
					Source: "storm_damage", Note: fmt.Sprintf("storms undo %d progress on the works", loss),
				}}
			},
		},
	}
}

func clampUnrest(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
