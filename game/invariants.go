package game

import (
	"errors"
	"fmt"
)

// Validate checks the structural invariants of the state and returns every violation found.
func (gs *GameState) Validate() error {
	var errs []error
	fail := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf(format, args...))
	}

	subStates := []struct {
		phase Phase
		set   bool
	}{
		{BuildPhase, gs.BuildState != nil},
		{DiscardPhase, gs.DiscardState != nil},
		{DesignOfficePhase, gs.DesignOffice != nil},
		{DualConstructionPhase, gs.DualState != nil},
		{VillageChoicePhase, gs.VillageState != nil},
		{PaydayPhase, gs.PaydayState != nil},
		{CleanupPhase, gs.CleanupState != nil},
	}
	for _, s := range subStates {
		if s.set != (gs.Phase == s.phase) {
			fail("%s sub-state present=%t in %s phase", s.phase, s.set, gs.Phase)
		}
	}
	if (gs.Pending != nil) != gs.Phase.singleActor() {
		fail("pending placement present=%t in %s phase", gs.Pending != nil, gs.Phase)
	}
	if (gs.FinalScores != nil) != (gs.Phase == GameEndPhase) {
		fail("final scores present=%t in %s phase", gs.FinalScores != nil, gs.Phase)
	}
	if gs.Round < 1 || gs.Round > MaxRounds {
		fail("round %d out of range", gs.Round)
	}

	for _, p := range gs.Players {
		if p.Available < 0 || p.Available > p.Workers || p.Workers > p.MaxWorkers {
			fail("player %d: available %d, workers %d, max %d", p.ID, p.Available, p.Workers, p.MaxWorkers)
		}
		if p.Robots < 0 || p.Robots > p.Workers {
			fail("player %d: %d robots for %d workers", p.ID, p.Robots, p.Workers)
		}
		if p.Money < 0 || p.Debts < 0 {
			fail("player %d: money %d, debts %d", p.ID, p.Money, p.Debts)
		}
	}
	if gs.Phase == WorkPhase && gs.TotalAvailable() == 0 {
		fail("work phase with no available worker")
	}

	for _, c := range gs.Discard {
		if c.IsConsumable() {
			fail("consumable %d in the discard pile", c.UID)
		}
	}

	seen := make(map[int]string)
	see := func(where string, cards ...Card) {
		for _, c := range cards {
			if prev, dup := seen[c.UID]; dup {
				fail("card %d is in %s and %s", c.UID, prev, where)
			}
			seen[c.UID] = where
		}
	}
	see("deck", gs.Deck...)
	see("discard pile", gs.Discard...)
	for _, p := range gs.Players {
		see(fmt.Sprintf("hand %d", p.ID), p.Hand...)
		for _, b := range p.Buildings {
			see(fmt.Sprintf("buildings %d", p.ID), b.Card)
		}
	}
	for _, wp := range gs.Workplaces {
		if wp.SourceCard != nil {
			see("workplace "+wp.Name, *wp.SourceCard)
		}
	}
	if gs.DesignOffice != nil {
		see("design office", gs.DesignOffice.Revealed...)
	}
	return errors.Join(errs...)
}
