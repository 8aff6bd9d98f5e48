// Run creation: founds the player dynasty, the initial court, and the
// neighbor houses that seed the marriage pool. Everything is drawn from the
// run seed's "names" and "founding" streams, so two runs with the same seed
// found identical worlds.
package sim

import (
	"fmt"

	"github.com/talgya/manorsim/internal/people"
	"github.com/talgya/manorsim/internal/rng"
	"github.com/talgya/manorsim/internal/tuning"
)

var maleNames = []string{
	"Aldric", "Bertram", "Cedric", "Dunstan", "Edmund", "Geoffrey",
	"Hugh", "Osric", "Ranulf", "Walter", "Wymond", "Lambert",
}

var femaleNames = []string{
	"Adela", "Beatrice", "Cecily", "Edith", "Gunnora", "Isolde",
	"Maud", "Rohesia", "Sybil", "Winifred", "Aelfgifu", "Margery",
}

var houseNames = []string{
	"Ashcombe", "Brackley", "Coldwell", "Darnford", "Elmsworth",
	"Fennick", "Grimsby", "Harrowgate",
}

func pickName(stream *rng.Stream, sex people.Sex) string {
	if sex == people.SexMale {
		return maleNames[stream.Intn(len(maleNames))]
	}
	return femaleNames[stream.Intn(len(femaleNames))]
}

// NewPerson allocates a registry person with the next sequential id.
func (st *RunState) NewPerson(name string, sex people.Sex, age int, traits people.Traits) *people.Person {
	st.NextPersonSeq++
	p := &people.Person{
		ID:     fmt.Sprintf("p_%04d", st.NextPersonSeq),
		Name:   name,
		Sex:    sex,
		Age:    age,
		Alive:  true,
		Traits: traits,
	}
	st.People[p.ID] = p
	return p
}

// NewHouse allocates a house with the next sequential id.
func (st *RunState) NewHouse(name string, tier people.HouseTier, holdings int) *people.House {
	st.NextHouseSeq++
	h := &people.House{
		ID:            fmt.Sprintf("h_%03d", st.NextHouseSeq),
		Name:          name,
		Tier:          tier,
		HoldingsCount: holdings,
	}
	st.Houses[h.ID] = h
	return h
}

func rollTraits(stream *rng.Stream) people.Traits {
	return people.Traits{
		Stewardship: 20 + stream.Intn(61),
		Martial:     20 + stream.Intn(61),
		Diplomacy:   20 + stream.Intn(61),
		Discipline:  20 + stream.Intn(61),
		Fertility:   20 + stream.Intn(61),
	}
}

// foundHouse creates a head, spouse, and children for one house, wiring the
// spouse and parent kinship edges.
func (st *RunState) foundHouse(stream *rng.Stream, name string, tier people.HouseTier, holdings int, childSpec []childSeed) *people.House {
	h := st.NewHouse(name, tier, holdings)

	head := st.NewPerson(pickName(stream, people.SexMale), people.SexMale, 33+stream.Intn(8), rollTraits(stream))
	spouse := st.NewPerson(pickName(stream, people.SexFemale), people.SexFemale, 30+stream.Intn(6), rollTraits(stream))
	head.Married = true
	spouse.Married = true
	h.HeadID = head.ID
	h.SpouseID = spouse.ID
	st.KinshipEdges = append(st.KinshipEdges, people.KinshipEdge{Kind: people.KinSpouseOf, AID: head.ID, BID: spouse.ID})

	for _, cs := range childSpec {
		child := st.NewPerson(pickName(stream, cs.sex), cs.sex, cs.age, rollTraits(stream))
		h.ChildIDs = append(h.ChildIDs, child.ID)
		st.KinshipEdges = append(st.KinshipEdges,
			people.KinshipEdge{Kind: people.KinParentOf, AID: head.ID, BID: child.ID},
			people.KinshipEdge{Kind: people.KinParentOf, AID: spouse.ID, BID: child.ID},
		)
	}
	return h
}

type childSeed struct {
	sex people.Sex
	age int
}

// CreateNewRun builds a fresh, normalized run state from a seed string.
func CreateNewRun(seed string, tun tuning.Tuning) *RunState {
	st := &RunState{
		RunSeed:        seed,
		People:         map[string]*people.Person{},
		Houses:         map[string]*people.House{},
		Relationships:  map[string]Relationship{},
		EventCooldowns: map[string]int{},
		Flags:          map[string]bool{},
		Log:            []TurnReport{},
	}

	names := rng.New(seed, "names", 0, "founding")

	player := st.foundHouse(names, "House "+houseNames[names.Intn(len(houseNames))], people.TierManor, 1, []childSeed{
		{people.SexMale, 12},
		{people.SexFemale, 10},
		{people.SexMale, 7},
	})
	st.House = Dynasty{HouseID: player.ID}

	// The initial Steward, the only office ever auto-filled.
	steward := st.NewPerson(pickName(names, people.SexMale), people.SexMale, 44, rollTraits(names))
	st.Court.Officers = []Officer{{Role: "steward", PersonID: steward.ID}}
	player.CourtExtraIDs = append(player.CourtExtraIDs, steward.ID)

	// Neighbor houses seed the marriage pool.
	st.foundHouse(names, "House "+houseNames[names.Intn(len(houseNames))], people.TierKnight, 2, []childSeed{
		{people.SexMale, 17},
		{people.SexFemale, 15},
	})
	st.foundHouse(names, "House "+houseNames[names.Intn(len(houseNames))], people.TierBaron, 4, []childSeed{
		{people.SexFemale, 18},
		{people.SexMale, 14},
	})

	st.Manor = Manor{
		Population:    120,
		Farmers:       60,
		Builders:      10,
		BushelsStored: 400,
		Coin:          20,
		Unrest:        10,
		Construction:  Construction{Progress: 0, Required: 40},
	}

	st.Relationships = map[string]Relationship{
		"liege":   {Allegiance: 60, Respect: 50, Threat: 20},
		"church":  {Allegiance: 55, Respect: 50, Threat: 10},
		"village": {Allegiance: 50, Respect: 45, Threat: 15},
		"h_002":   {Allegiance: 50, Respect: 50, Threat: 20},
		"h_003":   {Allegiance: 45, Respect: 40, Threat: 25},
	}

	st.RefreshDynasty()
	Normalize(st)
	return st
}
