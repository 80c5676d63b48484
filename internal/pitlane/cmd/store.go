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
	"path/filepath"
	"time"

	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"

	pitlane "laptudirm.com/x/pitlane/pkg/common"
	"laptudirm.com/x/pitlane/pkg/race"
	"laptudirm.com/x/pitlane/pkg/store"
)

const spin = 31

func newSpinner(cmd *cobra.Command, suffix string) *spinner.Spinner {
	s := spinner.New(spinner.CharSets[spin], 100*time.Millisecond, spinner.WithWriter(cmd.ErrOrStderr()))
	s.Suffix = suffix
	return s
}

// openStore opens the store selected by the global --store and --dir flags.
func openStore(cmd *cobra.Command) (store.Store, error) {
	driver, _ := cmd.Flags().GetString("store")
	dir, _ := cmd.Flags().GetString("dir")
	if dir == "" {
		dir = pitlane.Directory
	}

	path := dir
	if driver == "sqlite" {
		path = filepath.Join(dir, "pitlane.db")
	}

	return store.Open(store.Config{Driver: driver, Path: path})
}

// load restores the named tournament from the store.
func load(st store.Store, name string) (*race.Tournament, error) {
	snapshot, err := st.Load(name)
	if err != nil {
		return nil, err
	}

	tour, err := race.Restore(snapshot)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", name, err)
	}

	return tour, nil
}

// exists reports whether a tournament of the given name has been saved.
func exists(st store.Store, name string) (bool, error) {
	_, err := st.Load(name)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, store.ErrNotFound):
		return false, nil
	default:
		return false, err
	}
}

// withTournament loads the named tournament, runs fn
// on it and saves it back if fn reports a change.
func withTournament(cmd *cobra.Command, name string, fn func(tour *race.Tournament) (bool, error)) error {
	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	tour, err := load(st, name)
	if err != nil {
		return err
	}

	changed, err := fn(tour)
	if err != nil || !changed {
		return err
	}

	return st.Save(tour.Snapshot())
}
