// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines the shared data model for the wishlist pipeline.
package types

// PerkSet is one recommended perk combination: the perk hashes that make
// up a single roll, in column order.
type PerkSet []uint32

// SourceRow is one parsed spreadsheet entry: a weapon and the perk
// combinations recommended for it. Rows are immutable once parsed; the
// converter never writes back to them.
type SourceRow struct {
	// Item is the weapon's item-definition hash from the game manifest.
	Item uint32 `yaml:"item"`

	// PerkSets holds one entry per recommended roll. A row with N sets
	// yields N wishlist lines.
	PerkSets []PerkSet `yaml:"perk_sets"`

	// Notes is free text from the sheet, carried into a comment line.
	Notes string `yaml:"notes,omitempty"`

	// Tags are short labels (pve, pvp, gm, ...) appended to the notes
	// comment in the form the consuming tool understands.
	Tags []string `yaml:"tags,omitempty"`
}

// Roll pairs an item with one specific perk combination. It renders as
// exactly one wishlist line.
type Roll struct {
	Item  uint32
	Perks PerkSet
}
