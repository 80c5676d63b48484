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

package store

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
	_ "modernc.org/sqlite"

	pitlane "laptudirm.com/x/pitlane/pkg/common"
	"laptudirm.com/x/pitlane/pkg/race"
)

//go:embed migrations.sql
var migrationsFS embed.FS

// sqliteStore keeps every snapshot as a YAML document in a single table.
type sqliteStore struct {
	db *sql.DB
}

func openSQLite(cfg Config) (Store, error) {
	path := strings.TrimSpace(cfg.Path)
	if path == "" {
		path = filepath.Join(pitlane.Directory, "pitlane.db")
	}

	if err := pitlane.TryMkdir(filepath.Dir(path)); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// A command line session is the only writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	st := &sqliteStore{db: db}
	if err := st.migrate(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return st, nil
}

func (s *sqliteStore) migrate() error {
	b, err := migrationsFS.ReadFile("migrations.sql")
	if err != nil {
		return err
	}

	_, err = s.db.Exec(string(b))
	return err
}

func (s *sqliteStore) Save(snapshot *race.Snapshot) error {
	name := snapshot.Config.Name
	if err := ValidateName(name); err != nil {
		return err
	}

	data, err := yaml.Marshal(snapshot)
	if err != nil {
		return err
	}

	_, err = s.db.Exec(
		`INSERT INTO snapshots(name, data, updated_at) VALUES(?,?,?)
		 ON CONFLICT(name) DO UPDATE SET data=excluded.data, updated_at=excluded.updated_at`,
		name, string(data), time.Now().UTC().Format(time.RFC3339Nano),
	)
	return err
}

func (s *sqliteStore) Load(name string) (*race.Snapshot, error) {
	if err := ValidateName(name); err != nil {
		return nil, err
	}

	var data string
	err := s.db.QueryRow(`SELECT data FROM snapshots WHERE name = ?`, name).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	} else if err != nil {
		return nil, err
	}

	var snapshot race.Snapshot
	if err := yaml.Unmarshal([]byte(data), &snapshot); err != nil {
		return nil, fmt.Errorf("load %s: %w", name, err)
	}

	return &snapshot, nil
}

func (s *sqliteStore) List() ([]string, error) {
	rows, err := s.db.Query(`SELECT name FROM snapshots ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}

		names = append(names, name)
	}

	return names, rows.Err()
}

func (s *sqliteStore) Delete(name string) error {
	if err := ValidateName(name); err != nil {
		return err
	}

	result, err := s.db.Exec(`DELETE FROM snapshots WHERE name = ?`, name)
	if err != nil {
		return err
	}

	if n, err := result.RowsAffected(); err != nil {
		return err
	} else if n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, name)
	}

	return nil
}

func (s *sqliteStore) Close() error {
	return s.db.Close()
}
