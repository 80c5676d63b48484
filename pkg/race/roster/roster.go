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

// Package roster provides the sources a tournament's entry names come from.
package roster

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/xuri/excelize/v2"

	"laptudirm.com/x/pitlane/pkg/race"
)

var ErrInvalidCount = errors.New("roster: player count must be positive")

// Generator produces an ordered list of unique entry names.
type Generator interface {
	Generate() ([]string, error)
}

// New returns the named generator. The argument is the number of players
// for "alphabet" and "fake", and the path of the name list for "file".
func New(source string, arg string, seed int64) (Generator, error) {
	switch source {
	case "alphabet", "":
		n, err := strconv.Atoi(arg)
		if err != nil {
			return nil, fmt.Errorf("new roster: invalid player count %q", arg)
		}

		return Alphabet(n), nil
	case "file":
		return File(arg), nil
	case "fake":
		n, err := strconv.Atoi(arg)
		if err != nil {
			return nil, fmt.Errorf("new roster: invalid player count %q", arg)
		}

		return Fake{Count: n, Seed: seed}, nil
	default:
		return nil, fmt.Errorf("new roster: invalid source %s", source)
	}
}

// Alphabet names n players A, B, ..., Z, AA, AB, ... like spreadsheet
// columns.
type Alphabet int

func (n Alphabet) Generate() ([]string, error) {
	if n <= 0 {
		return nil, ErrInvalidCount
	}

	names := make([]string, n)
	for i := range names {
		name, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return nil, fmt.Errorf("alphabet roster: %w", err)
		}

		names[i] = name
	}

	return names, nil
}

// File reads one name per line from the file at the given path. Surrounding
// whitespace is trimmed and blank lines are skipped.
type File string

func (path File) Generate() ([]string, error) {
	file, err := os.Open(string(path))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var names []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	for line := 1; scanner.Scan(); line++ {
		name := strings.TrimSpace(scanner.Text())
		if name == "" {
			continue
		}

		if seen[name] {
			return nil, fmt.Errorf("%s:%d: %w: %s", path, line, race.ErrDuplicateEntry, name)
		}

		seen[name] = true
		names = append(names, name)
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	if len(names) == 0 {
		return nil, fmt.Errorf("%s: %w", path, race.ErrEmptyRoster)
	}

	return names, nil
}

// Fake makes up Count unique player names. The same seed always produces
// the same names.
type Fake struct {
	Count int
	Seed  int64
}

func (fake Fake) Generate() ([]string, error) {
	if fake.Count <= 0 {
		return nil, ErrInvalidCount
	}

	faker := gofakeit.New(uint64(fake.Seed))

	names := make([]string, 0, fake.Count)
	seen := make(map[string]bool, fake.Count)

	for attempts := 0; len(names) < fake.Count; attempts++ {
		if attempts > 100*fake.Count {
			return nil, fmt.Errorf("fake roster: could not make up %d unique names", fake.Count)
		}

		// First names run out quickly, fall back to full names.
		name := faker.FirstName()
		if seen[name] {
			name += " " + faker.LastName()
		}

		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}

	return names, nil
}
