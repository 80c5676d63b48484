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

// Package export writes a tournament out as a spreadsheet.
package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"laptudirm.com/x/pitlane/pkg/race"
)

const (
	RacesSheet       = "Races"
	StandingsSheet   = "Standings"
	FastestLapsSheet = "Fastest Laps"
)

// Write encodes the tournament as an xlsx workbook with one sheet each for
// the races, the points standings and the fastest laps.
func Write(tour *race.Tournament, w io.Writer) error {
	f, err := workbook(tour)
	if err != nil {
		return err
	}
	defer f.Close()

	return f.Write(w)
}

// Save writes the workbook to the given path.
func Save(tour *race.Tournament, path string) error {
	f, err := workbook(tour)
	if err != nil {
		return err
	}
	defer f.Close()

	return f.SaveAs(path)
}

func workbook(tour *race.Tournament) (*excelize.File, error) {
	f := excelize.NewFile()

	// Reuse the default sheet for the races.
	if err := f.SetSheetName(f.GetSheetName(0), RacesSheet); err != nil {
		f.Close()
		return nil, err
	}

	for _, sheet := range []string{StandingsSheet, FastestLapsSheet} {
		if _, err := f.NewSheet(sheet); err != nil {
			f.Close()
			return nil, err
		}
	}

	if err := writeRows(f, RacesSheet, races(tour)); err != nil {
		f.Close()
		return nil, err
	}

	if err := writeRows(f, StandingsSheet, standings(tour)); err != nil {
		f.Close()
		return nil, err
	}

	if err := writeRows(f, FastestLapsSheet, fastestLaps(tour)); err != nil {
		f.Close()
		return nil, err
	}

	f.SetActiveSheet(0)
	return f, nil
}

func races(tour *race.Tournament) [][]any {
	rows := [][]any{{"Race", "Entrants", "Done"}}
	for i, r := range tour.Races() {
		done := "no"
		if tour.Recorded(i) {
			done = "yes"
		}

		rows = append(rows, []any{i + 1, strings.Join(tour.Names(r), ", "), done})
	}

	return rows
}

func standings(tour *race.Tournament) [][]any {
	rows := [][]any{{"Position", "Name", "Races", "Done", "Points"}}
	for i, entry := range tour.StandingsByPoints() {
		rows = append(rows, []any{i + 1, entry.Name, entry.Races, entry.RacesDone, entry.Points})
	}

	return rows
}

func fastestLaps(tour *race.Tournament) [][]any {
	rows := [][]any{{"Position", "Name", "Lap"}}
	for i, entry := range tour.StandingsByFastestLap() {
		rows = append(rows, []any{i + 1, entry.Name, race.FormatLap(entry.FastestLap)})
	}

	return rows
}

func writeRows(f *excelize.File, sheet string, rows [][]any) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}

		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("write %s row %d: %w", sheet, i+1, err)
		}
	}

	return nil
}
