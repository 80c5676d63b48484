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
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"laptudirm.com/x/pitlane/pkg/race"
)

// Config describes a tournament to generate. It can be read from a YAML
// file with --config, and every field can be overridden by a flag.
type Config struct {
	race.Config `yaml:",inline"`

	// Where the player names come from: alphabet, file or fake.
	Source  string `yaml:"source"`
	Players int    `yaml:"players"` // number of alphabet or fake players
	File    string `yaml:"file"`    // name list for the file source

	Strategy string `yaml:"strategy"`
	Pick     string `yaml:"pick"`

	// Seed of every random choice. Zero picks a seed from the clock.
	Seed int64 `yaml:"seed"`
}

// rosterArg returns the argument of the roster source.
func (config *Config) rosterArg() string {
	if config.Source == "file" {
		return config.File
	}

	return strconv.Itoa(config.Players)
}

// newConfig builds the config of the new command from its config file,
// flags and arguments, in increasing order of precedence.
func newConfig(cmd *cobra.Command, args []string) (Config, error) {
	config := Config{
		Config: race.Config{
			FastestLapPoints: race.DefaultFastestLapPoints,
		},
		Strategy: "balanced",
		Pick:     "first",
	}

	flags := cmd.Flags()

	if path, _ := flags.GetString("config"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return config, err
		}

		if err := yaml.Unmarshal(data, &config); err != nil {
			return config, fmt.Errorf("config %s: %w", path, err)
		}
	}

	if flags.Changed("per-race") {
		config.PlayersPerRace, _ = flags.GetInt("per-race")
	}

	switch {
	case flags.Changed("players"):
		config.Source = "alphabet"
		config.Players, _ = flags.GetInt("players")
	case flags.Changed("fake"):
		config.Source = "fake"
		config.Players, _ = flags.GetInt("fake")
	case flags.Changed("file"):
		config.Source = "file"
		config.File, _ = flags.GetString("file")
	}

	if flags.Changed("points") {
		config.Points, _ = flags.GetIntSlice("points")
	}

	if flags.Changed("fastest-lap-points") {
		config.FastestLapPoints, _ = flags.GetInt("fastest-lap-points")
	}

	if flags.Changed("strategy") {
		config.Strategy, _ = flags.GetString("strategy")
	}

	if flags.Changed("pick") {
		config.Pick, _ = flags.GetString("pick")
	}

	if flags.Changed("seed") {
		config.Seed, _ = flags.GetInt64("seed")
	}

	if len(args) > 0 {
		config.Name = args[0]
	}

	if config.Name == "" {
		config.Name = "tour-" + uuid.NewString()[:8]
	}

	if config.Seed == 0 {
		config.Seed = time.Now().UnixNano()
	}

	if config.Source == "" {
		return config, errors.New("new tour: no players, use --players, --file or --fake")
	}

	if config.PlayersPerRace == 0 {
		return config, errors.New("new tour: number of players per race not given, use --per-race")
	}

	return config, nil
}
