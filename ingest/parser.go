// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package ingest

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/poiesic/curio/core"
)

// listDocuments walks the corpus directory tree and returns the paths of all
// leaf .json documents. Traversal order carries no meaning: chunk ids derive
// from record id and chunk index, never from walk order.
func listDocuments(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(d.Name(), ".json") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk corpus directory %q: %w", dir, err)
	}
	return files, nil
}

// loadRecord parses one corpus document into a Record. Malformed and empty
// documents return an error for the caller to log and skip.
func loadRecord(path string) (*core.Record, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if len(strings.TrimSpace(string(raw))) == 0 {
		return nil, ErrEmptyDocument
	}

	var record core.Record
	if err := json.Unmarshal(raw, &record); err != nil {
		return nil, fmt.Errorf("failed to parse %q: %w", path, err)
	}
	if record.Id == "" {
		return nil, fmt.Errorf("%q: %w", path, core.ErrMissingRecordID)
	}
	return &record, nil
}
