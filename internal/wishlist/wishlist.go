// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package wishlist converts spreadsheet rows into a DIM wishlist document.
package wishlist

import (
	"fmt"
	"io"

	"github.com/voidhawk/rollsheet/pkg/types"
)

// Namer resolves item hashes to display names for annotation comments.
// The lookup store implements it; a nil Namer disables annotation.
type Namer interface {
	WeaponName(hash uint32) (string, bool)
}

// Document is the ordered wishlist output. Line order mirrors source row
// order; converting the same rows twice yields an identical document.
type Document struct {
	Title       string
	Description string
	Lines       []string
}

// BatchResult holds the outcome of one conversion run.
type BatchResult struct {
	Converted int
	Skipped   int
}

// Total returns the total number of rows processed.
func (r BatchResult) Total() int {
	return r.Converted + r.Skipped
}

// Convert turns source rows into a wishlist document. Each valid row emits
// one line per perk set, preceded by a name comment when names knows the
// item and a notes comment when the row carries notes or tags. Defective
// rows are reported to w and skipped; duplicates are emitted as-is.
func Convert(rows []types.SourceRow, cfg types.WishlistConfig, names Namer, w io.Writer) (Document, BatchResult) {
	doc := Document{Title: cfg.Title, Description: cfg.Description}
	var result BatchResult

	for i, row := range rows {
		if err := validateRow(row); err != nil {
			fmt.Fprintf(w, "warning: skipping row %d: %v\n", i+1, err)
			result.Skipped++
			continue
		}

		if names != nil {
			if name, ok := names.WeaponName(row.Item); ok {
				doc.Lines = append(doc.Lines, CommentPrefix+" "+name)
			}
		}
		if row.Notes != "" || len(row.Tags) > 0 {
			doc.Lines = append(doc.Lines, FormatNotes(row.Notes, row.Tags))
		}
		for _, set := range row.PerkSets {
			doc.Lines = append(doc.Lines, FormatLine(types.Roll{Item: row.Item, Perks: set}))
		}
		result.Converted++
	}

	return doc, result
}

// validateRow rejects rows whose output would not satisfy the line grammar.
func validateRow(row types.SourceRow) error {
	if row.Item == 0 {
		return fmt.Errorf("missing item hash")
	}
	if len(row.PerkSets) == 0 {
		return fmt.Errorf("no perk sets")
	}
	for _, set := range row.PerkSets {
		if len(set) == 0 {
			return fmt.Errorf("empty perk set")
		}
		for _, p := range set {
			if p == 0 {
				return fmt.Errorf("zero perk hash")
			}
		}
	}
	return nil
}
