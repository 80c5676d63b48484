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

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func List() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Lists the saved tournaments and their progress",
		Args:  cobra.ExactArgs(0),

		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore(cmd)
			if err != nil {
				return err
			}
			defer st.Close()

			names, err := st.List()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(names) == 0 {
				fmt.Fprintln(out, "No saved tournaments.")
				return nil
			}

			t := newTable("Tournament", "Players", "Per Race", "Done").align(1, 2, 3)
			for _, name := range names {
				tour, err := load(st, name)
				if err != nil {
					logrus.WithField("tournament", name).Warn(err)
					continue
				}

				config := tour.Config()
				t.add(name, tour.Size(), config.PlayersPerRace, fmt.Sprintf("%d/%d", len(tour.RacesDone()), len(tour.Races())))
			}

			t.render(out)
			return nil
		},
	}
}

func Delete() *cobra.Command {
	return &cobra.Command{
		Use:   "delete tournament",
		Short: "Delete a saved tournament",
		Args:  cobra.ExactArgs(1),

		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore(cmd)
			if err != nil {
				return err
			}
			defer st.Close()

			if err := st.Delete(args[0]); err != nil {
				return err
			}

			logrus.Infof("Deleted tournament %s", args[0])
			return nil
		},
	}
}
