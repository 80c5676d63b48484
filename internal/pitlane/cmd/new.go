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

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"laptudirm.com/x/pitlane/pkg/race"
	"laptudirm.com/x/pitlane/pkg/race/roster"
	"laptudirm.com/x/pitlane/pkg/race/schedule"
	"laptudirm.com/x/pitlane/pkg/store"
)

func New() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "new [name]",
		Short: "Schedule the races of a new tournament",
		Args:  cobra.MaximumNArgs(1),
		Long: heredoc.Doc(`new generates the races of a new tournament and saves it
			under the given name, or a random one if no name is given.

			The players are either named A, B, C, ... (--players), read
			from a file with one name per line (--file), or made up
			(--fake). Every race has --per-race players in it.

			The balanced strategy first makes sure every player meets
			every other player, and then adds races until every player
			has the same number of races. The low-cost strategy keeps
			adding the cheapest race over the whole roster instead.

			All random choices are made from --seed, so the same seed and
			settings always produce the same schedule.`),
		Example: heredoc.Doc(`
			$ pitlane new cup --per-race 4 --players 10
			$ pitlane new --per-race 3 --file drivers.txt --points 4,3,2,1
			$ pitlane new --config league.yaml --seed 42`),

		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := newConfig(cmd, args)
			if err != nil {
				return err
			}

			if err := store.ValidateName(config.Name); err != nil {
				return err
			}

			pick, ok := schedule.ParsePick(config.Pick)
			if !ok {
				return fmt.Errorf("new tour: invalid pick %s", config.Pick)
			}

			st, err := openStore(cmd)
			if err != nil {
				return err
			}
			defer st.Close()

			if force, _ := cmd.Flags().GetBool("force"); !force {
				found, err := exists(st, config.Name)
				if err != nil {
					return err
				} else if found {
					return fmt.Errorf("new tour: tournament %s already exists", config.Name)
				}
			}

			source, err := roster.New(config.Source, config.rosterArg(), config.Seed)
			if err != nil {
				return err
			}

			names, err := source.Generate()
			if err != nil {
				return err
			}

			tour, err := race.New(names, config.Config)
			if err != nil {
				return err
			}

			scheduler, err := schedule.New(config.Strategy, tour,
				schedule.WithSeed(config.Seed),
				schedule.WithPick(pick),
			)
			if err != nil {
				return err
			}

			logrus.WithFields(logrus.Fields{
				"players":  tour.Size(),
				"per-race": config.PlayersPerRace,
				"strategy": config.Strategy,
				"seed":     config.Seed,
			}).Info("Scheduling races")

			s := newSpinner(cmd, " Scheduling races")
			s.Start()
			err = scheduler.Run()
			s.Stop()

			if err != nil {
				return err
			}

			if err := st.Save(tour.Snapshot()); err != nil {
				return err
			}

			logrus.Infof("Saved tournament %s with %d races", config.Name, len(tour.Races()))

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Tournament %s\n", config.Name)
			racesTable(tour, nil).render(out)
			entriesTable(tour).render(out)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.IntP("per-race", "r", 0, "Number of players in every race")
	flags.IntP("players", "n", 0, "Generate N players named A, B, C, ...")
	flags.StringP("file", "f", "", "Read the player names from a file")
	flags.Int("fake", 0, "Make up the names of N players")
	flags.IntSlice("points", nil, "Points awarded by finishing position")
	flags.Int("fastest-lap-points", race.DefaultFastestLapPoints, "Bonus points for the fastest lap of a race")
	flags.StringP("strategy", "s", "balanced", "Scheduling strategy (balanced, low-cost)")
	flags.String("pick", "first", "Player served next during coverage (first, random)")
	flags.Int64("seed", 0, "Seed for random choices (default from the clock)")
	flags.StringP("config", "c", "", "Read the tournament settings from a YAML file")
	flags.Bool("force", false, "Overwrite an existing tournament of the same name")

	cmd.MarkFlagsMutuallyExclusive("players", "file", "fake")
	return cmd
}
