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

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"laptudirm.com/x/pitlane/pkg/race"
)

func Standings() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "standings tournament",
		Short: "Show the standings of a tournament",
		Args:  cobra.ExactArgs(1),

		RunE: func(cmd *cobra.Command, args []string) error {
			laps, _ := cmd.Flags().GetBool("laps")

			return withTournament(cmd, args[0], func(tour *race.Tournament) (bool, error) {
				out := cmd.OutOrStdout()
				if laps {
					lapsTable(tour).render(out)
					return false, nil
				}

				pointsTable(tour).render(out)
				if holder, found := tour.FastestLap(); found {
					fmt.Fprintf(out, "Fastest lap: %s %s\n", holder.Name, race.FormatLap(holder.FastestLap))
				}

				return false, nil
			})
		},
	}

	cmd.Flags().Bool("laps", false, "Rank the players by their fastest lap")
	return cmd
}

func pointsTable(tour *race.Tournament) *table {
	t := newTable("Pos", "Player", "Races", "Points").align(0, 2, 3)
	for i, entry := range tour.StandingsByPoints() {
		t.add(i+1, entry.Name, fmt.Sprintf("%d/%d", entry.RacesDone, entry.Races), entry.Points)
	}

	return t
}

func lapsTable(tour *race.Tournament) *table {
	t := newTable("Pos", "Player", "Lap").align(0)
	for i, entry := range tour.StandingsByFastestLap() {
		t.add(i+1, entry.Name, race.FormatLap(entry.FastestLap))
	}

	return t
}
