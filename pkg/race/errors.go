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

import "errors"

var (
	// ErrInvalidRaceComposition is returned when a race has the wrong number
	// of entries, repeats an entry, or names an entry outside the roster.
	ErrInvalidRaceComposition = errors.New("race: invalid race composition")

	// ErrEmptyRoster is returned when a tournament would have no entries.
	ErrEmptyRoster = errors.New("race: empty roster")

	ErrDuplicateEntry = errors.New("race: duplicate entry")
	ErrUnknownEntry   = errors.New("race: unknown entry")
	ErrInvalidConfig  = errors.New("race: invalid config")

	// ErrUnknownRace is returned when a result is submitted for a set of
	// entries that never raced together.
	ErrUnknownRace = errors.New("race: result does not match a committed race")

	// ErrRaceAlreadyRecorded is returned when every committed race matching a
	// result's entries already has a result.
	ErrRaceAlreadyRecorded = errors.New("race: race already has a result")

	ErrInvalidResult = errors.New("race: invalid result")
	ErrInvalidLap    = errors.New("race: invalid lap time")
)
