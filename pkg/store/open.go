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
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
)

// Open initializes the configured store.
func Open(cfg Config) (Store, error) {
	driver := strings.ToLower(strings.TrimSpace(cfg.Driver))

	logrus.WithFields(logrus.Fields{
		"driver": driver,
		"path":   cfg.Path,
	}).Debug("Opening store")

	switch driver {
	case "file", "":
		return openFile(cfg)
	case "sqlite", "sqlite3":
		return openSQLite(cfg)
	default:
		return nil, fmt.Errorf("open store: unknown driver %s", driver)
	}
}
