// Package engine provides the turn pipeline: propose → decide → apply.
// Propose builds an immutable preview without touching the caller's state;
// decide is an external, synchronous handoff; apply produces the next state
// and its report from a fresh copy. No turn-in-progress state lives in the
// pipeline, so the decide phase can wait on human input indefinitely.
package engine

import (
	"errors"
	"log/slog"

	"github.com/talgya/manorsim/internal/events"
	"github.com/talgya/manorsim/internal/sim"
	"github.com/talgya/manorsim/internal/tuning"
)

// Pipeline drives turns for one or more runs. It holds only configuration,
// never run state, so one pipeline may serve many independent runs.
type Pipeline struct {
	tun  tuning.Tuning
	deck *events.Deck
}

// New creates a pipeline with the given tuning.
func New(tun tuning.Tuning) *Pipeline {
	return &Pipeline{tun: tun, deck: events.NewDeck()}
}

// Tuning returns the pipeline's constants.
func (pl *Pipeline) Tuning() tuning.Tuning { return pl.tun }

// ProposeTurn advances every automatic subsystem on a copy of the state and
// returns the turn's preview. The caller's state is never mutated; a nil
// state fails entirely.
func (pl *Pipeline) ProposeTurn(st *sim.RunState) (*sim.TurnContext, error) {
	if st == nil {
		return nil, errors.New("engine: propose on nil state")
	}
	work := st.Clone()

	if work.GameOver {
		// Terminal runs report but never advance.
		roles := sim.HouseholdRoles(work)
		return &sim.TurnContext{
			PreviewState:    work,
			HouseholdRoster: sim.BuildRoster(work, nil, roles),
			Proposal:        sim.ProposalFacts{EntryRoles: roles},
		}, nil
	}

	// Oversubscription is observed before the normalizer silently repairs
	// it, so the report can surface the labor signal.
	facts := sim.ProposalFacts{
		LaborSignal: sim.LaborSignal{
			Oversubscribed: sim.Oversubscribed(&work.Manor),
			Farmers:        work.Manor.Farmers,
			Builders:       work.Manor.Builders,
			Population:     work.Manor.Population,
		},
	}
	sim.Normalize(work)
	facts.EntryRoles = sim.HouseholdRoles(work)

	turn := work.TurnIndex
	pl.agePeople(work)
	died := pl.drawMortality(work, turn)
	facts.DiedPersonIDs = died

	villageDeaths := pl.drawVillageDeaths(work, turn)
	runaways, econNotes := pl.runEconomy(work)
	pl.settleObligations(work)
	work.Manor.Construction.Progress += work.Manor.Builders * pl.tun.BuildRateLabor

	facts.Events = pl.deck.Step(work, eventsStream(work.RunSeed, turn), pl.tun)

	eventDeaths := 0
	for _, e := range facts.Events {
		if e.PopulationDelta < 0 {
			eventDeaths -= e.PopulationDelta
		}
	}
	facts.PopulationChange = sim.PopulationChange{
		Deaths:   villageDeaths + eventDeaths,
		Runaways: runaways,
	}
	facts.Notes = econNotes

	facts.ProspectTallies = pl.stepProspects(work, turn)
	window := pl.buildWindow(work, &facts)

	sim.Normalize(work)

	diedSet := toSet(died)
	ctx := &sim.TurnContext{
		PreviewState:    work,
		HouseholdRoster: sim.BuildRoster(work, diedSet, facts.EntryRoles),
		ProspectsWindow: window,
		Proposal:        facts,
	}
	return ctx, nil
}

// ApplyDecisions validates and applies a decision bundle onto a fresh copy
// of the post-propose state, producing the next state and the turn's
// report. Invalid individual decisions are local no-ops; the turn still
// completes. A nil context fails entirely and the prior state remains the
// system of record.
func (pl *Pipeline) ApplyDecisions(ctx *sim.TurnContext, dec sim.Decisions) (*sim.RunState, *sim.TurnReport, error) {
	if ctx == nil || ctx.PreviewState == nil {
		return nil, nil, errors.New("engine: apply on nil context")
	}
	next := ctx.PreviewState.Clone()

	if next.GameOver {
		report := &sim.TurnReport{
			TurnIndex:       next.TurnIndex,
			HouseholdRoster: ctx.HouseholdRoster,
			GameOver:        true,
			GameOverReason:  next.GameOverReason,
		}
		return next, report, nil
	}

	var notes []string
	notes = append(notes, ctx.Proposal.Notes...)
	tallies := ctx.Proposal.ProspectTallies

	notes = pl.applyLabor(next, dec.Labor, notes)
	notes = pl.applyConstruction(next, dec.Construction, notes)
	notes = pl.resolveProspects(next, dec.Prospects, &tallies, notes)

	// Succession is recomputed only now, after every death and marriage of
	// the turn has been applied, so a just-deceased heir can never be
	// presented as the new head.
	notes = pl.recomputeSuccession(next, notes)
	pl.checkDispossession(next)

	next.RefreshDynasty()
	sim.Normalize(next)

	report := &sim.TurnReport{
		TurnIndex:       next.TurnIndex,
		HouseholdRoster: sim.BuildRoster(next, toSet(ctx.Proposal.DiedPersonIDs), ctx.Proposal.EntryRoles),
		LaborSignal:     ctx.Proposal.LaborSignal,
		PopChange:       ctx.Proposal.PopulationChange,
		Events:          ctx.Proposal.Events,
		Prospects:       tallies,
		Notes:           notes,
		GameOver:        next.GameOver,
		GameOverReason:  next.GameOverReason,
	}
	next.Log = append(next.Log, *report)
	next.TurnIndex++

	slog.Debug("turn applied",
		"turn", report.TurnIndex,
		"population", next.Manor.Population,
		"bushels", next.Manor.BushelsStored,
		"coin", next.Manor.Coin,
		"unrest", next.Manor.Unrest,
		"game_over", next.GameOver,
	)
	return next, report, nil
}

func toSet(ids []string) map[string]bool {
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}
