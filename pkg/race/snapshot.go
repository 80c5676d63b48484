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

import "fmt"

// Snapshot is a name based, serialisable copy of a tournament's ledger.
type Snapshot struct {
	Config  Config     `yaml:"config"`
	Entries []string   `yaml:"entries,flow"`
	Races   [][]string `yaml:"races"`
	Results []Standing `yaml:"results"`
}

// Standing is one recorded race result inside a Snapshot, in order of
// arrival. The race it belongs to is found again from its entries.
type Standing struct {
	Finishers []FinishEntry `yaml:"finishers"`
}

type FinishEntry struct {
	Name string `yaml:"name"`
	Lap  string `yaml:"lap"`
}

// Snapshot captures the current state of the ledger.
func (tour *Tournament) Snapshot() *Snapshot {
	snapshot := Snapshot{
		Config:  tour.Config(),
		Entries: make([]string, len(tour.entries)),
		Races:   make([][]string, len(tour.races)),
		Results: make([]Standing, len(tour.results)),
	}

	for i, entry := range tour.entries {
		snapshot.Entries[i] = entry.Name
	}

	for i, race := range tour.races {
		snapshot.Races[i] = tour.Names(race)
	}

	for i, result := range tour.results {
		var standing Standing
		for _, finish := range result.Finishers {
			standing.Finishers = append(standing.Finishers, FinishEntry{
				Name: tour.entries[finish.Entry].Name,
				Lap:  FormatLap(finish.Lap),
			})
		}

		snapshot.Results[i] = standing
	}

	return &snapshot
}

// Restore rebuilds a tournament from a snapshot by replaying every race and
// result through the ledger, so the restored ledger obeys the same
// invariants as one built by hand.
func Restore(snapshot *Snapshot) (*Tournament, error) {
	tour, err := New(snapshot.Entries, snapshot.Config)
	if err != nil {
		return nil, err
	}

	for i, names := range snapshot.Races {
		race, err := tour.lookupAll(names)
		if err != nil {
			return nil, fmt.Errorf("restore race %d: %w", i+1, err)
		}

		if err := tour.CommitRace(race...); err != nil {
			return nil, fmt.Errorf("restore race %d: %w", i+1, err)
		}
	}

	for i, standing := range snapshot.Results {
		submissions := make([]Submission, len(standing.Finishers))
		for position, finish := range standing.Finishers {
			id, found := tour.Lookup(finish.Name)
			if !found {
				return nil, fmt.Errorf("restore result %d: %w: %s", i+1, ErrUnknownEntry, finish.Name)
			}

			lap, err := ParseLap(finish.Lap)
			if err != nil {
				return nil, fmt.Errorf("restore result %d: %w", i+1, err)
			}

			submissions[position] = Submission{Entry: id, Position: position + 1, Lap: lap}
		}

		if err := tour.RecordResult(submissions); err != nil {
			return nil, fmt.Errorf("restore result %d: %w", i+1, err)
		}
	}

	return tour, nil
}

func (tour *Tournament) lookupAll(names []string) (Race, error) {
	race := make(Race, len(names))
	for i, name := range names {
		id, found := tour.Lookup(name)
		if !found {
			return nil, fmt.Errorf("%w: %s", ErrUnknownEntry, name)
		}

		race[i] = id
	}

	return race, nil
}
