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

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"laptudirm.com/x/pitlane/pkg/race"
)

func Result() *cobra.Command {
	return &cobra.Command{
		Use:   "result tournament player@lap...",
		Short: "Record the result of a race",
		Args:  cobra.MinimumNArgs(2),
		Long: heredoc.Doc(`result records the result of one of the tournament's races.
			The players are given in finishing order, each followed by
			their best lap of the race, like Max@1:21.340 or Max@81.34.

			The players must be exactly the players of a scheduled race
			which has no result yet.`),
		Example: heredoc.Doc(`
			$ pitlane result cup A@1:21.340 E@1:21.484 D@1:23.000 B@1:22.450`),

		RunE: func(cmd *cobra.Command, args []string) error {
			return withTournament(cmd, args[0], func(tour *race.Tournament) (bool, error) {
				submissions, err := parseFinishers(tour, args[1:])
				if err != nil {
					return false, err
				}

				if err := tour.RecordResult(submissions); err != nil {
					return false, err
				}

				logrus.Infof("Recorded result, %d races to go", len(tour.RacesToDo()))

				results := tour.Results()
				resultTable(tour, results[len(results)-1]).render(cmd.OutOrStdout())
				return true, nil
			})
		},
	}
}

// parseFinishers parses NAME@LAP arguments given in finishing order. The
// name ends at the last @, so names may contain one.
func parseFinishers(tour *race.Tournament, args []string) ([]race.Submission, error) {
	submissions := make([]race.Submission, len(args))
	for i, arg := range args {
		at := strings.LastIndex(arg, "@")
		if at <= 0 {
			return nil, fmt.Errorf("result: %q is not of the form player@lap", arg)
		}

		name, lapStr := arg[:at], arg[at+1:]

		id, found := tour.Lookup(name)
		if !found {
			return nil, fmt.Errorf("%w: %s", race.ErrUnknownEntry, name)
		}

		lap, err := race.ParseLap(lapStr)
		if err != nil {
			return nil, err
		}

		submissions[i] = race.Submission{Entry: id, Position: i + 1, Lap: lap}
	}

	return submissions, nil
}

func resultTable(tour *race.Tournament, result race.Result) *table {
	t := newTable("Pos", "Player", "Lap").align(0)
	for i, finish := range result.Finishers {
		t.add(i+1, tour.Entry(finish.Entry).Name, race.FormatLap(finish.Lap))
	}

	return t
}
