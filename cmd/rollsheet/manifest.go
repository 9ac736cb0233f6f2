// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/voidhawk/rollsheet/internal/lookup"
	"github.com/voidhawk/rollsheet/internal/manifest"
	"github.com/voidhawk/rollsheet/pkg/types"
)

// The content blobs are large; give them more room than the sheet fetch.
const defaultManifestTimeout = 5 * time.Minute

var manifestCmd = &cobra.Command{
	Use:   "manifest",
	Short: "Rebuild the weapon and perk name lookup tables",
	Long: `Manifest pulls the Destiny 2 manifest from the Bungie API, walks the
inventory item, item category, and plug set tables, and writes lookup
CSVs (weapon_names.csv, perk_names.csv) for pasting into the sheet. It
also refreshes the local SQLite store convert uses for name comments.

A Bungie API key is required: --api-key, .secrets/bungie-api-key, or the
BUNGIE_API_KEY environment variable.`,
	RunE: runManifest,
}

func init() {
	manifestCmd.Flags().String("api-key", "", "Bungie platform API key")
	manifestCmd.Flags().String("lookup-dir", "lookup", "directory for the lookup CSVs")
	manifestCmd.Flags().String("db", defaultDBPath, "lookup store to refresh")
	manifestCmd.Flags().Bool("no-db", false, "write CSVs only, skip the lookup store")
	manifestCmd.Flags().Duration("timeout", 0, "HTTP request timeout (default 5m)")

	rootCmd.AddCommand(manifestCmd)
}

func runManifest(cmd *cobra.Command, args []string) error {
	apiKeyFlag, _ := cmd.Flags().GetString("api-key")
	apiKey := secretDefault("bungie-api-key", apiKeyFlag)
	if apiKey == "" {
		apiKey = os.Getenv("BUNGIE_API_KEY")
	}
	if apiKey == "" {
		return fmt.Errorf("no Bungie API key (use --api-key, .secrets/bungie-api-key, or BUNGIE_API_KEY)")
	}

	lookupDir, _ := cmd.Flags().GetString("lookup-dir")
	dbPath, _ := cmd.Flags().GetString("db")
	noDB, _ := cmd.Flags().GetBool("no-db")
	timeout, _ := cmd.Flags().GetDuration("timeout")
	if timeout == 0 {
		timeout = defaultManifestTimeout
	}

	cfg := types.ManifestConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   timeout,
			UserAgent: defaultUserAgent,
		},
		APIKey:    apiKey,
		LookupDir: lookupDir,
		DBPath:    dbPath,
	}

	client := &manifest.Client{
		HTTP:      &http.Client{Timeout: cfg.Timeout},
		APIKey:    cfg.APIKey,
		UserAgent: cfg.UserAgent,
	}

	var store *lookup.Store
	if !noDB {
		var err error
		store, err = lookup.Open(cfg.DBPath)
		if err != nil {
			return err
		}
		defer store.Close()
	}

	result, err := manifest.Dump(cmd.Context(), client, cfg, store, os.Stdout)
	if err != nil {
		return err
	}
	if store != nil {
		fmt.Printf("lookup store %s refreshed (%d weapons, %d perks)\n",
			cfg.DBPath, result.Weapons, result.Perks)
	}
	return nil
}
