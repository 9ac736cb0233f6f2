// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package sheet

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/voidhawk/rollsheet/pkg/types"
)

// Sheet column layout. The perks cell holds one or more perk sets:
// sets are separated by ";", perks within a set by ",".
const (
	colItem = iota
	colPerks
	colNotes
	colTags
)

// ParseTSV reads tab-separated rows and returns the valid SourceRows plus
// the count of rows skipped for row-level defects. A header row (first cell
// "item", any case) is ignored. Each skipped row produces one warning on w;
// only an unreadable stream is an error.
func ParseTSV(r io.Reader, w io.Writer) ([]types.SourceRow, int, error) {
	cr := csv.NewReader(r)
	cr.Comma = '\t'
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, 0, fmt.Errorf("reading TSV: %w", err)
	}

	var rows []types.SourceRow
	skipped := 0
	for i, rec := range records {
		if i == 0 && isHeader(rec) {
			continue
		}
		if isBlank(rec) {
			continue
		}
		row, err := parseRecord(rec)
		if err != nil {
			fmt.Fprintf(w, "warning: skipping row %d: %v\n", i+1, err)
			skipped++
			continue
		}
		rows = append(rows, row)
	}
	return rows, skipped, nil
}

// parseRecord converts one TSV record into a SourceRow. Any defect in the
// item hash or perks cell fails the whole record.
func parseRecord(rec []string) (types.SourceRow, error) {
	if len(rec) <= colPerks {
		return types.SourceRow{}, fmt.Errorf("too few columns (%d)", len(rec))
	}

	item, err := parseHash(rec[colItem])
	if err != nil {
		return types.SourceRow{}, fmt.Errorf("item hash: %w", err)
	}

	sets, err := parsePerkSets(rec[colPerks])
	if err != nil {
		return types.SourceRow{}, fmt.Errorf("perks: %w", err)
	}

	row := types.SourceRow{Item: item, PerkSets: sets}
	if len(rec) > colNotes {
		row.Notes = strings.TrimSpace(rec[colNotes])
	}
	if len(rec) > colTags {
		row.Tags = splitTags(rec[colTags])
	}
	return row, nil
}

// parsePerkSets splits a perks cell like "111,222;333,444" into perk sets.
// Empty sets (stray ";") are dropped; a cell with no valid set is a defect.
func parsePerkSets(cell string) ([]types.PerkSet, error) {
	var sets []types.PerkSet
	for _, group := range strings.Split(cell, ";") {
		group = strings.TrimSpace(group)
		if group == "" {
			continue
		}
		var set types.PerkSet
		for _, tok := range strings.Split(group, ",") {
			tok = strings.TrimSpace(tok)
			if tok == "" {
				continue
			}
			perk, err := parseHash(tok)
			if err != nil {
				return nil, err
			}
			set = append(set, perk)
		}
		if len(set) > 0 {
			sets = append(sets, set)
		}
	}
	if len(sets) == 0 {
		return nil, fmt.Errorf("no perk sets")
	}
	return sets, nil
}

// parseHash parses a manifest hash. Hashes are unsigned 32-bit and never
// zero in game data, so zero is treated as missing.
func parseHash(s string) (uint32, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty hash")
	}
	n, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("bad hash %q", s)
	}
	if n == 0 {
		return 0, fmt.Errorf("zero hash")
	}
	return uint32(n), nil
}

func splitTags(cell string) []string {
	var tags []string
	for _, t := range strings.Split(cell, ",") {
		t = strings.TrimSpace(t)
		if t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

func isHeader(rec []string) bool {
	return len(rec) > 0 && strings.EqualFold(strings.TrimSpace(rec[colItem]), "item")
}

func isBlank(rec []string) bool {
	for _, cell := range rec {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
