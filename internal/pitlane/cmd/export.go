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
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"laptudirm.com/x/pitlane/pkg/export"
	"laptudirm.com/x/pitlane/pkg/race"
)

func Export() *cobra.Command {
	return &cobra.Command{
		Use:   "export tournament file.xlsx",
		Short: "Export the races and standings of a tournament to a spreadsheet",
		Args:  cobra.ExactArgs(2),

		RunE: func(cmd *cobra.Command, args []string) error {
			return withTournament(cmd, args[0], func(tour *race.Tournament) (bool, error) {
				if err := export.Save(tour, args[1]); err != nil {
					return false, err
				}

				logrus.Infof("Exported tournament %s to %s", args[0], args[1])
				return false, nil
			})
		},
	}
}
