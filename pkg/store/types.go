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

// Package store persists tournament snapshots between runs.
package store

import (
	"errors"
	"fmt"
	"regexp"

	"laptudirm.com/x/pitlane/pkg/race"
)

var (
	ErrNotFound    = errors.New("store: tournament not found")
	ErrInvalidName = errors.New("store: invalid tournament name")
)

// Config configures storage.
//
// Driver values:
//   - "file" or "": one YAML document per tournament inside Path
//   - "sqlite": SQLite database file at Path
type Config struct {
	Driver string
	Path   string
}

// Store is the persistence API used by the command line.
type Store interface {
	// Save writes the snapshot under its config name, replacing any
	// previous snapshot of the same tournament.
	Save(snapshot *race.Snapshot) error
	Load(name string) (*race.Snapshot, error)

	// List returns the names of every saved tournament, sorted.
	List() ([]string, error)
	Delete(name string) error

	Close() error
}

var validName = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)

// ValidateName checks that a tournament name is safe to use as a key in
// every backend.
func ValidateName(name string) error {
	if !validName.MatchString(name) {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}

	return nil
}
