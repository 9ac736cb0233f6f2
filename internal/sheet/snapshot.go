// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package sheet

import (
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/voidhawk/rollsheet/pkg/types"
)

// Snapshot is the on-disk representation of one fetch of the sheet. A
// snapshot can be converted later without re-hitting the export endpoint.
type Snapshot struct {
	Sheet   SheetInfo         `yaml:"sheet"`
	Rows    []types.SourceRow `yaml:"rows"`
	Summary SnapshotSummary   `yaml:"summary"`
}

// SheetInfo records which sheet the rows came from.
type SheetInfo struct {
	SheetID string `yaml:"sheet_id"`
	GID     string `yaml:"gid"`
}

// SnapshotSummary stores row statistics and a fetch timestamp.
type SnapshotSummary struct {
	Rows      int       `yaml:"rows"`
	Skipped   int       `yaml:"skipped"`
	FetchedAt time.Time `yaml:"fetched_at"`
}

// WriteSnapshot saves fetched rows to a YAML file.
func WriteSnapshot(path string, cfg types.SheetConfig, rows []types.SourceRow, skipped int) error {
	snap := Snapshot{
		Sheet: SheetInfo{SheetID: cfg.SheetID, GID: cfg.GID},
		Rows:  rows,
		Summary: SnapshotSummary{
			Rows:      len(rows),
			Skipped:   skipped,
			FetchedAt: time.Now(),
		},
	}

	data, err := yaml.Marshal(&snap)
	if err != nil {
		return fmt.Errorf("marshaling snapshot: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadSnapshot loads a previously saved snapshot from disk.
func ReadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading snapshot: %w", err)
	}
	var snap Snapshot
	if err := yaml.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("parsing snapshot: %w", err)
	}
	return &snap, nil
}
