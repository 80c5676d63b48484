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
	"strings"
	"time"
)

// ID identifies an Entry inside the Tournament that owns it. IDs are dense
// indices in roster order, so they double as keys into the ledger's tables.
type ID int

// Entry is the bookkeeping the ledger keeps for a single participant.
type Entry struct {
	ID   ID
	Name string

	Races     int // races the entry has been scheduled into
	RacesDone int // races with a recorded result
	Points    int

	FastestLap time.Duration
	HasLap     bool
}

func (entry Entry) String() string {
	return entry.Name
}

// Race is an unordered set of distinct entries that compete together.
type Race []ID

// Contains reports whether the entry is part of the race.
func (race Race) Contains(id ID) bool {
	for _, entry := range race {
		if entry == id {
			return true
		}
	}

	return false
}

// Same reports whether both races consist of the same entries, in any order.
func (race Race) Same(other Race) bool {
	if len(race) != len(other) {
		return false
	}

	for i := range race {
		if !other.Contains(race[i]) || !race.Contains(other[i]) {
			return false
		}
	}

	return true
}

// Source is the random capability used for every tie-break. *rand.Rand
// satisfies it; tests plug in deterministic stubs.
type Source interface {
	Intn(n int) int
}

// Submission is a single entry's line of a race result as it is entered.
type Submission struct {
	Entry    ID
	Position int
	Lap      time.Duration
}

// Finish is a single entry's line of a recorded race result.
type Finish struct {
	Entry ID
	Lap   time.Duration
}

// Result is the outcome of one committed race, in order of arrival.
type Result struct {
	Race      int // index of the race in Tournament.Races
	Finishers []Finish
}

// Entries returns the ids of the result's finishers in order of arrival.
func (result Result) Entries() Race {
	entries := make(Race, len(result.Finishers))
	for i, finish := range result.Finishers {
		entries[i] = finish.Entry
	}

	return entries
}

func joinNames(names []string) string {
	return "[" + strings.Join(names, ",") + "]"
}
