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
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
	pitlane "laptudirm.com/x/pitlane/pkg/common"
	"laptudirm.com/x/pitlane/pkg/race"
)

const extension = ".yaml"

// fileStore keeps every tournament in its own YAML file:
//
//	<dir>/<name>.yaml
type fileStore struct {
	dir string
}

func openFile(cfg Config) (Store, error) {
	dir := strings.TrimSpace(cfg.Path)
	if dir == "" {
		dir = pitlane.Directory
	}

	if err := pitlane.TryMkdir(dir); err != nil {
		return nil, err
	}

	return &fileStore{dir: dir}, nil
}

func (s *fileStore) path(name string) string {
	return filepath.Join(s.dir, name+extension)
}

func (s *fileStore) Save(snapshot *race.Snapshot) error {
	name := snapshot.Config.Name
	if err := ValidateName(name); err != nil {
		return err
	}

	data, err := yaml.Marshal(snapshot)
	if err != nil {
		return err
	}

	// Write next to the target and rename, so a crash never leaves a
	// half written snapshot behind.
	tmp, err := os.CreateTemp(s.dir, name+".*.tmp")
	if err != nil {
		return err
	}

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return err
	}

	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return err
	}

	return os.Rename(tmp.Name(), s.path(name))
}

func (s *fileStore) Load(name string) (*race.Snapshot, error) {
	if err := ValidateName(name); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.path(name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	} else if err != nil {
		return nil, err
	}

	var snapshot race.Snapshot
	if err := yaml.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("load %s: %w", name, err)
	}

	return &snapshot, nil
}

func (s *fileStore) List() ([]string, error) {
	files, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, err
	}

	var names []string
	for _, file := range files {
		name, found := strings.CutSuffix(file.Name(), extension)
		if file.IsDir() || !found || ValidateName(name) != nil {
			continue
		}

		names = append(names, name)
	}

	slices.Sort(names)
	return names, nil
}

func (s *fileStore) Delete(name string) error {
	if err := ValidateName(name); err != nil {
		return err
	}

	err := os.Remove(s.path(name))
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %s", ErrNotFound, name)
	}

	return err
}

func (s *fileStore) Close() error {
	return nil
}
