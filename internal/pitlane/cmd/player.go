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
	"strings"

	"github.com/spf13/cobra"

	"laptudirm.com/x/pitlane/pkg/race"
)

func Player() *cobra.Command {
	return &cobra.Command{
		Use:   "player tournament player",
		Short: "Show the races and opponents of a player",
		Args:  cobra.ExactArgs(2),

		RunE: func(cmd *cobra.Command, args []string) error {
			return withTournament(cmd, args[0], func(tour *race.Tournament) (bool, error) {
				id, found := tour.Lookup(args[1])
				if !found {
					return false, fmt.Errorf("%w: %s", race.ErrUnknownEntry, args[1])
				}

				entry := tour.Entry(id)
				out := cmd.OutOrStdout()

				lap := "-"
				if entry.HasLap {
					lap = race.FormatLap(entry.FastestLap)
				}

				fmt.Fprintf(out, "%s: %d/%d races, %d points, fastest lap %s\n",
					entry.Name, entry.RacesDone, entry.Races, entry.Points, lap)

				races := tour.Races()
				racesTable(tour, func(i int) bool {
					return races[i].Contains(id)
				}).render(out)

				t := newTable("Opponent", "Times").align(1)
				for _, opponent := range tour.Faced(id) {
					t.add(tour.Entry(opponent).Name, tour.TimesFaced(id, opponent))
				}
				t.render(out)

				if missing := tour.NotFaced(id); len(missing) > 0 {
					fmt.Fprintf(out, "Not faced: %s\n", strings.Join(tour.Names(missing), ", "))
				}

				return false, nil
			})
		},
	}
}
