// Copyright © 2024 Rak Laptudirm <rak@laptudirm.com>
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package schedule

import (
	"slices"

	"github.com/sirupsen/logrus"

	"laptudirm.com/x/pitlane/pkg/race"
	"laptudirm.com/x/pitlane/pkg/race/cost"
)

// generator holds the state shared by every strategy, including the
// coverage phase which all of them start with.
type generator struct {
	tour *race.Tournament
	size int

	rng     race.Source
	pick    Pick
	observe func(race.Race)

	phase Phase

	// Entry the coverage phase is currently finding opponents for.
	serving race.ID
	busy    bool
}

func (gen *generator) Phase() Phase {
	return gen.phase
}

func (gen *generator) advance(phase Phase) {
	logrus.WithFields(logrus.Fields{
		"from":  gen.phase,
		"to":    phase,
		"races": len(gen.tour.Races()),
	}).Debug("Schedule phase complete")
	gen.phase = phase
}

// nextMissing returns the next entry to serve, per the pick policy.
func (gen *generator) nextMissing() (race.ID, bool) {
	if gen.pick == PickRandom {
		return gen.tour.RandomMissingOpponent(gen.rng)
	}

	return gen.tour.FirstMissingOpponent()
}

// coverageStep commits one race for the entry being served, which races it
// against as many entries it has never met as possible. Once the served
// entry has met everyone the next one is picked. Must only be called while
// someone is missing an opponent.
func (gen *generator) coverageStep() (race.Race, error) {
	if !gen.busy || len(gen.tour.NotFaced(gen.serving)) == 0 {
		gen.serving, gen.busy = gen.nextMissing()
	}

	player := gen.serving
	notFaced := gen.tour.NotFaced(player)

	average, err := gen.tour.AverageRaces()
	if err != nil {
		return nil, err
	}

	var candidate race.Race
	switch {
	case len(notFaced) > gen.size-1:
		// More new opponents than seats: pick the cheapest of them.
		candidate, err = cost.LeastExpensiveRace(gen.rng, gen.tour, notFaced, gen.size, average, player)

	case len(notFaced) == gen.size-1:
		// The new opponents fill the race exactly.
		candidate = append(slices.Clone(notFaced), player)

	default:
		// Too few new opponents: race all of them and fill the remaining
		// seats from the entries with the fewest races.
		fixed := append(slices.Clone(notFaced), player)
		pool := without(gen.tour.AtLeastNWithFewestRaces(gen.size), fixed)
		candidate, err = cost.LeastExpensiveRace(gen.rng, gen.tour, pool, gen.size, average, fixed...)
	}

	if err != nil {
		return nil, err
	}

	return candidate, gen.commit(candidate)
}

// fewestRacesStep commits the cheapest race around a random entry among
// those with the fewest races, filled from the other entries with the
// fewest races.
func (gen *generator) fewestRacesStep() (race.Race, error) {
	fewest := gen.tour.FewestRaces()
	player := fewest[gen.rng.Intn(len(fewest))]

	pool := without(gen.tour.AtLeastNWithFewestRaces(gen.size), race.Race{player})

	average, err := gen.tour.AverageRaces()
	if err != nil {
		return nil, err
	}

	candidate, err := cost.LeastExpensiveRace(gen.rng, gen.tour, pool, gen.size, average, player)
	if err != nil {
		return nil, err
	}

	return candidate, gen.commit(candidate)
}

// lowCostStep commits the cheapest race over the whole roster.
func (gen *generator) lowCostStep() (race.Race, error) {
	average, err := gen.tour.AverageRaces()
	if err != nil {
		return nil, err
	}

	candidate, err := cost.LeastExpensiveRace(gen.rng, gen.tour, gen.tour.IDs(), gen.size, average)
	if err != nil {
		return nil, err
	}

	return candidate, gen.commit(candidate)
}

func (gen *generator) commit(candidate race.Race) error {
	if err := gen.tour.CommitRace(candidate...); err != nil {
		return err
	}

	logrus.WithFields(logrus.Fields{
		"phase": gen.phase,
		"race":  gen.tour.Names(candidate),
	}).Trace("Scheduled race")

	gen.observe(slices.Clone(candidate))
	return nil
}

// without returns the entries of list which are not in exclude. Excluded
// entries missing from list are ignored.
func without(list []race.ID, exclude race.Race) []race.ID {
	var kept []race.ID
	for _, id := range list {
		if !exclude.Contains(id) {
			kept = append(kept, id)
		}
	}

	return kept
}
