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

package race

import (
	"fmt"
	"slices"

	"github.com/sirupsen/logrus"
	"laptudirm.com/x/pitlane/pkg/internal/util"
)

// DefaultFastestLapPoints is the bonus awarded for the fastest lap of a race
// unless the config says otherwise.
const DefaultFastestLapPoints = 1

type Config struct {
	// Name of the tournament, used as the key of its snapshot.
	Name string `yaml:"name"`

	// Number of entries taking part in every race.
	PlayersPerRace int `yaml:"players-per-race"`

	// Points awarded by finishing position. Positions past the end of the
	// table score nothing.
	Points []int `yaml:"points,flow"`

	// Bonus points for the fastest lap of each race.
	FastestLapPoints int `yaml:"fastest-lap-points"`
}

// New creates a tournament for the given roster. The order of names is the
// roster order used by every deterministic query.
func New(names []string, config Config) (*Tournament, error) {
	if len(names) == 0 {
		return nil, ErrEmptyRoster
	}

	if config.PlayersPerRace < 1 {
		return nil, fmt.Errorf("%w: %d players per race", ErrInvalidConfig, config.PlayersPerRace)
	}

	tour := Tournament{
		config:  config,
		entries: make([]Entry, len(names)),
		index:   make(map[string]ID, len(names)),
		faced:   make([][]int, len(names)),
	}

	for i, name := range names {
		if _, found := tour.index[name]; found {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateEntry, name)
		}

		tour.index[name] = ID(i)
		tour.entries[i] = Entry{ID: ID(i), Name: name}
		tour.faced[i] = make([]int, len(names))
	}

	return &tour, nil
}

// Tournament is the ledger of a tournament: it owns the roster, the races
// committed so far and their results. All counters are mutated only by
// CommitRace and RecordResult, and both either apply fully or not at all.
type Tournament struct {
	config Config

	entries []Entry
	index   map[string]ID

	// faced[a][b] is the number of races a and b have shared. The matrix is
	// kept symmetric.
	faced [][]int

	races   []Race
	results []Result
}

func (tour *Tournament) Config() Config {
	config := tour.config
	config.Points = slices.Clone(config.Points)
	return config
}

// Size returns the number of entries in the roster.
func (tour *Tournament) Size() int {
	return len(tour.entries)
}

// IDs returns every entry id in roster order.
func (tour *Tournament) IDs() []ID {
	ids := make([]ID, len(tour.entries))
	for i := range tour.entries {
		ids[i] = ID(i)
	}

	return ids
}

func (tour *Tournament) Entries() []Entry {
	return slices.Clone(tour.entries)
}

func (tour *Tournament) Entry(id ID) Entry {
	return tour.entries[id]
}

// Lookup finds an entry's id by its name.
func (tour *Tournament) Lookup(name string) (ID, bool) {
	id, found := tour.index[name]
	return id, found
}

// Names maps the entries of a race to their names.
func (tour *Tournament) Names(race Race) []string {
	names := make([]string, len(race))
	for i, id := range race {
		names[i] = tour.entries[id].Name
	}

	return names
}

// CommitRace appends a race of exactly PlayersPerRace distinct entries to the
// schedule, bumping each entry's race count and the faced count of every
// pair in the race.
func (tour *Tournament) CommitRace(ids ...ID) error {
	if err := tour.validateRace(ids); err != nil {
		return err
	}

	race := slices.Clone(Race(ids))
	tour.races = append(tour.races, race)

	for i, a := range race {
		tour.entries[a].Races++
		for _, b := range race[i+1:] {
			tour.faced[a][b]++
			tour.faced[b][a]++
		}
	}

	logrus.WithFields(logrus.Fields{
		"number": len(tour.races),
		"race":   joinNames(tour.Names(race)),
	}).Debug("Committed race")
	return nil
}

func (tour *Tournament) validateRace(ids []ID) error {
	if len(ids) != tour.config.PlayersPerRace {
		return fmt.Errorf(
			"%w: %d entries for races of %d",
			ErrInvalidRaceComposition, len(ids), tour.config.PlayersPerRace,
		)
	}

	for i, id := range ids {
		if !tour.valid(id) {
			return fmt.Errorf("%w: entry %d is not in the roster", ErrInvalidRaceComposition, id)
		}

		if slices.Contains(ids[:i], id) {
			return fmt.Errorf("%w: %s appears twice", ErrInvalidRaceComposition, tour.entries[id].Name)
		}
	}

	return nil
}

func (tour *Tournament) valid(id ID) bool {
	return id >= 0 && int(id) < len(tour.entries)
}

// Races returns the committed races in the order they were committed.
func (tour *Tournament) Races() []Race {
	races := make([]Race, len(tour.races))
	for i, race := range tour.races {
		races[i] = slices.Clone(race)
	}

	return races
}

// RaceExists reports whether a race with exactly these entries was committed.
func (tour *Tournament) RaceExists(ids ...ID) bool {
	return slices.ContainsFunc(tour.races, Race(ids).Same)
}

func (tour *Tournament) RacesScheduled(id ID) int {
	return tour.entries[id].Races
}

// TimesFaced returns how many races a and b have shared.
func (tour *Tournament) TimesFaced(a, b ID) int {
	return tour.faced[a][b]
}

// AverageRaces returns the mean number of races scheduled per entry.
func (tour *Tournament) AverageRaces() (float64, error) {
	if len(tour.entries) == 0 {
		return 0, ErrEmptyRoster
	}

	total := 0
	for _, entry := range tour.entries {
		total += entry.Races
	}

	return float64(total) / float64(len(tour.entries)), nil
}

// AllSameRaceCount reports whether every entry is scheduled into the same
// number of races.
func (tour *Tournament) AllSameRaceCount() bool {
	for _, entry := range tour.entries {
		if entry.Races != tour.entries[0].Races {
			return false
		}
	}

	return true
}

// Faced returns, in roster order, the entries id has shared a race with.
func (tour *Tournament) Faced(id ID) []ID {
	var faced []ID
	for other, times := range tour.faced[id] {
		if times > 0 {
			faced = append(faced, ID(other))
		}
	}

	return faced
}

// NotFaced returns, in roster order, the entries id has never raced against.
func (tour *Tournament) NotFaced(id ID) []ID {
	var missing []ID
	for other, times := range tour.faced[id] {
		if times == 0 && ID(other) != id {
			missing = append(missing, ID(other))
		}
	}

	return missing
}

func (tour *Tournament) missingAnOpponent(id ID) bool {
	for other, times := range tour.faced[id] {
		if times == 0 && ID(other) != id {
			return true
		}
	}

	return false
}

// SomeoneMissingAnOpponent reports whether at least one entry has not yet
// faced every other entry.
func (tour *Tournament) SomeoneMissingAnOpponent() bool {
	_, found := tour.FirstMissingOpponent()
	return found
}

// FirstMissingOpponent returns the first entry, in roster order, which has
// not yet faced every other entry.
func (tour *Tournament) FirstMissingOpponent() (ID, bool) {
	for i := range tour.entries {
		if tour.missingAnOpponent(ID(i)) {
			return ID(i), true
		}
	}

	return -1, false
}

// RandomMissingOpponent returns an entry drawn uniformly from the ones which
// have not yet faced every other entry.
func (tour *Tournament) RandomMissingOpponent(rng Source) (ID, bool) {
	var candidates []ID
	for i := range tour.entries {
		if tour.missingAnOpponent(ID(i)) {
			candidates = append(candidates, ID(i))
		}
	}

	if len(candidates) == 0 {
		return -1, false
	}

	return candidates[rng.Intn(len(candidates))], true
}

// FewestRaces returns, in roster order, every entry tied for the fewest
// scheduled races.
func (tour *Tournament) FewestRaces() []ID {
	var fewest []ID
	for i, entry := range tour.entries {
		switch {
		case len(fewest) == 0 || entry.Races == tour.entries[fewest[0]].Races:
			fewest = append(fewest, ID(i))
		case entry.Races < tour.entries[fewest[0]].Races:
			fewest = []ID{ID(i)}
		}
	}

	return fewest
}

// AtLeastNWithFewestRaces returns the n entries with the fewest scheduled
// races together with every other entry tied with the n-th one. With counts
// 4,4,4,6,7,7,7,8 and n = 5 it returns the entries with 4,4,4,6,7,7,7.
func (tour *Tournament) AtLeastNWithFewestRaces(n int) []ID {
	if n <= 0 {
		return nil
	}

	ids := tour.IDs()
	slices.SortStableFunc(ids, func(a, b ID) int {
		return tour.entries[a].Races - tour.entries[b].Races
	})

	if n >= len(ids) {
		return ids
	}

	cutoff := tour.entries[ids[n-1]].Races
	for n < len(ids) && tour.entries[ids[n]].Races == cutoff {
		n++
	}

	return ids[:n]
}

// Results returns the recorded race results in the order they were recorded.
func (tour *Tournament) Results() []Result {
	results := make([]Result, len(tour.results))
	for i, result := range tour.results {
		results[i] = Result{Race: result.Race, Finishers: slices.Clone(result.Finishers)}
	}

	return results
}

// Recorded reports whether the race at the given index has a result.
func (tour *Tournament) Recorded(index int) bool {
	return slices.ContainsFunc(tour.results, func(result Result) bool {
		return result.Race == index
	})
}

// RacesToDo returns the committed races which have no result yet.
func (tour *Tournament) RacesToDo() []Race {
	var todo []Race
	for i, race := range tour.races {
		if !tour.Recorded(i) {
			todo = append(todo, slices.Clone(race))
		}
	}

	return todo
}

// RacesDone returns the committed races which have a result.
func (tour *Tournament) RacesDone() []Race {
	var done []Race
	for i, race := range tour.races {
		if tour.Recorded(i) {
			done = append(done, slices.Clone(race))
		}
	}

	return done
}

// StandingsByPoints returns every entry ordered by points, best first.
func (tour *Tournament) StandingsByPoints() []Entry {
	standings := tour.Entries()
	slices.SortStableFunc(standings, func(a, b Entry) int {
		if a.Points != b.Points {
			return b.Points - a.Points
		}

		return util.AlphanumCompare(a.Name, b.Name)
	})

	return standings
}

// StandingsByFastestLap returns the entries with a recorded lap ordered by
// their best lap, fastest first.
func (tour *Tournament) StandingsByFastestLap() []Entry {
	var standings []Entry
	for _, entry := range tour.entries {
		if entry.HasLap {
			standings = append(standings, entry)
		}
	}

	slices.SortStableFunc(standings, func(a, b Entry) int {
		switch {
		case a.FastestLap < b.FastestLap:
			return -1
		case a.FastestLap > b.FastestLap:
			return +1
		default:
			return util.AlphanumCompare(a.Name, b.Name)
		}
	})

	return standings
}

// FastestLap returns the holder of the tournament's fastest lap.
func (tour *Tournament) FastestLap() (Entry, bool) {
	standings := tour.StandingsByFastestLap()
	if len(standings) == 0 {
		return Entry{}, false
	}

	return standings[0], true
}
