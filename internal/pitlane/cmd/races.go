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

func Races() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "races tournament",
		Short: "List the races of a tournament",
		Args:  cobra.ExactArgs(1),

		RunE: func(cmd *cobra.Command, args []string) error {
			todo, _ := cmd.Flags().GetBool("todo")
			done, _ := cmd.Flags().GetBool("done")

			return withTournament(cmd, args[0], func(tour *race.Tournament) (bool, error) {
				var show func(int) bool
				switch {
				case todo:
					show = func(i int) bool { return !tour.Recorded(i) }
				case done:
					show = tour.Recorded
				}

				racesTable(tour, show).render(cmd.OutOrStdout())
				return false, nil
			})
		},
	}

	cmd.Flags().Bool("todo", false, "Only list the races without a result")
	cmd.Flags().Bool("done", false, "Only list the races with a result")
	cmd.MarkFlagsMutuallyExclusive("todo", "done")

	return cmd
}

// racesTable lists the tournament's races for which show returns true, or
// every race if show is nil.
func racesTable(tour *race.Tournament, show func(index int) bool) *table {
	t := newTable("#", "Players", "Done").align(0)
	for i, r := range tour.Races() {
		if show != nil && !show(i) {
			continue
		}

		done := ""
		if tour.Recorded(i) {
			done = "✓"
		}

		t.add(i+1, strings.Join(tour.Names(r), ", "), done)
	}

	return t
}

// entriesTable lists how many races and distinct opponents every player
// has, in roster order.
func entriesTable(tour *race.Tournament) *table {
	t := newTable("Player", "Races", "Faced").align(1, 2)
	for _, entry := range tour.Entries() {
		t.add(entry.Name, entry.Races, fmt.Sprintf("%d/%d", len(tour.Faced(entry.ID)), tour.Size()-1))
	}

	return t
}
