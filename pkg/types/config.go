// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "rollsheet/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// SheetConfig holds settings for fetching the roll-recommendation sheet.
type SheetConfig struct {
	HTTPConfig `yaml:",inline"`

	// SheetID is the Google Sheets document ID of the published sheet.
	SheetID string `json:"sheet_id" yaml:"sheet_id"`

	// GID is the numeric worksheet (tab) ID to export. "0" is the first tab.
	GID string `json:"gid" yaml:"gid"`
}

// WishlistConfig holds settings for the wishlist writer.
type WishlistConfig struct {
	// OutputPath is where the wishlist file is written (default "wishlist.txt").
	OutputPath string `json:"output_path" yaml:"output_path"`

	// Title and Description become the header lines of the wishlist file.
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
}

// ManifestConfig holds settings for the Bungie manifest lookup dumper.
type ManifestConfig struct {
	HTTPConfig `yaml:",inline"`

	// APIKey is the Bungie platform API key sent as X-API-Key.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// LookupDir is the directory for the lookup CSVs
	// (weapon_names.csv, perk_names.csv).
	LookupDir string `json:"lookup_dir" yaml:"lookup_dir"`

	// DBPath is the SQLite name store the converter consults for
	// annotation comments.
	DBPath string `json:"db_path" yaml:"db_path"`
}
