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
	"math"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// RecordResult records the outcome of a committed race. The submitted
// entries must be exactly the entries of a committed race without a result.
//
// Entries score the points table by finishing position, their best lap is
// updated and their completed race count bumped. The single fastest lap of
// the race earns the fastest lap bonus; a tie goes to the better finisher.
func (tour *Tournament) RecordResult(submissions []Submission) error {
	sorted := slices.Clone(submissions)
	slices.SortStableFunc(sorted, func(a, b Submission) int {
		return a.Position - b.Position
	})

	race, err := tour.matchResult(sorted)
	if err != nil {
		return err
	}

	result := Result{Race: race, Finishers: make([]Finish, len(sorted))}
	fastest := 0

	for rank, submission := range sorted {
		entry := &tour.entries[submission.Entry]

		if rank < len(tour.config.Points) {
			entry.Points += tour.config.Points[rank]
		}

		if !entry.HasLap || submission.Lap < entry.FastestLap {
			entry.FastestLap, entry.HasLap = submission.Lap, true
		}

		entry.RacesDone++

		if submission.Lap < sorted[fastest].Lap {
			fastest = rank
		}

		result.Finishers[rank] = Finish{Entry: submission.Entry, Lap: submission.Lap}
	}

	tour.entries[sorted[fastest].Entry].Points += tour.config.FastestLapPoints
	tour.results = append(tour.results, result)

	logrus.WithFields(logrus.Fields{
		"number":  race + 1,
		"winner":  tour.entries[sorted[0].Entry].Name,
		"fastest": tour.entries[sorted[fastest].Entry].Name,
	}).Debug("Recorded result")
	return nil
}

// matchResult validates sorted submissions and finds the index of the first
// committed race without a result which they belong to.
func (tour *Tournament) matchResult(sorted []Submission) (int, error) {
	if len(sorted) == 0 {
		return 0, fmt.Errorf("%w: no submissions", ErrInvalidResult)
	}

	entries := make(Race, len(sorted))
	for i, submission := range sorted {
		switch {
		case !tour.valid(submission.Entry):
			return 0, fmt.Errorf("%w: entry %d", ErrUnknownEntry, submission.Entry)
		case slices.Contains(entries[:i], submission.Entry):
			return 0, fmt.Errorf("%w: %s finished twice", ErrInvalidResult, tour.entries[submission.Entry].Name)
		case submission.Position < 1:
			return 0, fmt.Errorf("%w: position %d", ErrInvalidResult, submission.Position)
		case i > 0 && submission.Position == sorted[i-1].Position:
			return 0, fmt.Errorf("%w: position %d is shared", ErrInvalidResult, submission.Position)
		case submission.Lap <= 0:
			return 0, fmt.Errorf("%w: %s has no lap time", ErrInvalidResult, tour.entries[submission.Entry].Name)
		}

		entries[i] = submission.Entry
	}

	matched := false
	for i, race := range tour.races {
		if !race.Same(entries) {
			continue
		}

		if !tour.Recorded(i) {
			return i, nil
		}

		matched = true
	}

	if matched {
		return 0, fmt.Errorf("%w: %s", ErrRaceAlreadyRecorded, joinNames(tour.Names(entries)))
	}

	return 0, fmt.Errorf("%w: %s", ErrUnknownRace, joinNames(tour.Names(entries)))
}

// ParseLap parses a lap time written as M:SS.mmm or SS.mmm.
func ParseLap(str string) (time.Duration, error) {
	str = strings.TrimSpace(str)

	minutes := 0
	if mins, secs, found := strings.Cut(str, ":"); found {
		n, err := strconv.Atoi(mins)
		if err != nil || n < 0 {
			return 0, fmt.Errorf("%w: %q", ErrInvalidLap, str)
		}

		minutes, str = n, secs
	}

	seconds, err := strconv.ParseFloat(str, 64)
	if err != nil || seconds < 0 || (minutes > 0 && seconds >= 60) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidLap, str)
	}

	lap := time.Duration(minutes)*time.Minute +
		time.Duration(math.Round(seconds*1000))*time.Millisecond
	if lap <= 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidLap, str)
	}

	return lap, nil
}

// FormatLap formats a lap time as M:SS.mmm.
func FormatLap(lap time.Duration) string {
	ms := lap.Milliseconds()
	return fmt.Sprintf("%d:%02d.%03d", ms/60000, ms/1000%60, ms%1000)
}
