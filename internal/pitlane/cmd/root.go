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
	"github.com/MakeNowJust/heredoc/v2"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func Root() *cobra.Command {
	root := &cobra.Command{
		Use:  "pitlane",
		Args: cobra.NoArgs,
		Long: heredoc.Doc(`pitlane schedules racing tournaments where a fixed number
			of players take part in every race. It makes sure every player
			meets every other player at least once, keeps the number of
			races of each player level, and avoids rematches where it can.

			Tournaments are saved between runs, so results can be entered
			race by race and the standings looked up at any time.`),

		SilenceErrors: true,
		SilenceUsage:  true,

		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// If --trace flag is provided, set logging level to Trace.
			if cmd.Flag("trace").Changed {
				logrus.SetLevel(logrus.TraceLevel)
			}
		},
	}

	// global flags
	root.PersistentFlags().BoolP("help", "h", false, "Show Help Information")
	root.PersistentFlags().BoolP("version", "v", false, "Show Pitlane's Version")
	root.PersistentFlags().BoolP("trace", "t", false, "Show Trace Information")
	root.PersistentFlags().String("store", "file", "Storage driver for tournaments (file, sqlite)")
	root.PersistentFlags().String("dir", "", "Directory tournaments are stored in (default ~/pitlane)")

	versionStr := "v0.1.0\n"
	root.SetVersionTemplate(versionStr)
	root.Version = versionStr

	// Register the various commands.
	root.AddCommand(New())
	root.AddCommand(Races())
	root.AddCommand(Result())
	root.AddCommand(Standings())
	root.AddCommand(Player())
	root.AddCommand(List())
	root.AddCommand(Delete())
	root.AddCommand(Export())

	return root
}
