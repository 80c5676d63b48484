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

// Package cost scores candidate races and searches for the cheapest ones.
//
// The cost of a race has two additive parts. The load term sums, over the
// candidates, how far each entry would sit above the current average number
// of scheduled races once this race is added; entries behind the average
// make it negative. The rematch term adds 3^k for every pair of candidates
// which have already shared k > 0 races. Lower is better.
package cost

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat/combin"

	"laptudirm.com/x/pitlane/pkg/race"
)

var (
	ErrEmptySearchPool  = errors.New("cost: empty search pool")
	ErrNoCandidateRaces = errors.New("cost: no candidate races")
)

// RematchBase is the base of the exponential rematch penalty.
const RematchBase = 3

// Costs are compared after rounding to this many decimal digits, which
// absorbs the noise of repeatedly dividing by the roster size.
const Precision = 5

// Ledger is the view of a tournament the cost model reads from.
// *race.Tournament implements it.
type Ledger interface {
	RacesScheduled(id race.ID) int
	TimesFaced(a, b race.ID) int
}

// Of returns the cost of racing the candidates together given the current
// average number of scheduled races.
func Of(ledger Ledger, candidates []race.ID, average float64) float64 {
	var cost float64

	// Load balancing: +1 since the race being costed is not committed yet.
	for _, id := range candidates {
		cost += float64(ledger.RacesScheduled(id)+1) - average
	}

	// Rematches: every pair that has already met.
	for i, a := range candidates {
		for _, b := range candidates[i+1:] {
			if times := ledger.TimesFaced(a, b); times > 0 {
				cost += math.Pow(RematchBase, float64(times))
			}
		}
	}

	return cost
}

// Round rounds a cost to Precision decimal digits.
func Round(cost float64) float64 {
	scale := math.Pow10(Precision)
	return math.Round(cost*scale) / scale
}

// LeastExpensiveRaces returns every race of the given size sharing the
// minimum cost. Each race is made of size-len(fixed) entries drawn from pool
// followed by all of the fixed entries. No entry may appear twice across the
// pool and the fixed entries.
func LeastExpensiveRaces(ledger Ledger, pool []race.ID, size int, average float64, fixed ...race.ID) ([]race.Race, error) {
	free := size - len(fixed)
	switch {
	case free <= 0:
		return nil, fmt.Errorf("%w: %d fixed entries in races of %d", ErrNoCandidateRaces, len(fixed), size)
	case len(pool) == 0:
		return nil, ErrEmptySearchPool
	case len(pool) < free:
		return nil, fmt.Errorf("%w: %d entries cannot fill %d seats", ErrNoCandidateRaces, len(pool), free)
	}

	if id, found := repeated(pool, fixed); found {
		return nil, fmt.Errorf("%w: entry %d repeated in pool or fixed entries", ErrNoCandidateRaces, id)
	}

	var (
		best  float64
		races []race.Race
	)

	picks := make([]int, free)
	combinations := combin.NewCombinationGenerator(len(pool), free)
	for combinations.Next() {
		combinations.Combination(picks)

		candidate := make(race.Race, 0, size)
		for _, pick := range picks {
			candidate = append(candidate, pool[pick])
		}
		candidate = append(candidate, fixed...)

		cost := Round(Of(ledger, candidate, average))
		switch {
		case races == nil || cost < best:
			best, races = cost, []race.Race{candidate}
		case cost == best:
			races = append(races, candidate)
		}
	}

	return races, nil
}

// LeastExpensiveRace picks one of the LeastExpensiveRaces uniformly at
// random using rng.
func LeastExpensiveRace(rng race.Source, ledger Ledger, pool []race.ID, size int, average float64, fixed ...race.ID) (race.Race, error) {
	races, err := LeastExpensiveRaces(ledger, pool, size, average, fixed...)
	if err != nil {
		return nil, err
	}

	return races[rng.Intn(len(races))], nil
}

// repeated returns an entry which appears more than once across the lists.
func repeated(lists ...[]race.ID) (race.ID, bool) {
	seen := make(map[race.ID]bool)
	for _, list := range lists {
		for _, id := range list {
			if seen[id] {
				return id, true
			}

			seen[id] = true
		}
	}

	return 0, false
}
