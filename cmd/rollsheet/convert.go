// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/voidhawk/rollsheet/internal/lookup"
	"github.com/voidhawk/rollsheet/internal/sheet"
	"github.com/voidhawk/rollsheet/internal/wishlist"
	"github.com/voidhawk/rollsheet/pkg/types"
)

const (
	defaultTimeout   = 60 * time.Second
	defaultUserAgent = "rollsheet/0.1"
	defaultOutput    = "wishlist.txt"
	defaultDBPath    = "lookup/names.db"
)

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Fetch the roll sheet and write the wishlist file",
	Long: `Convert fetches the published sheet as TSV, turns each row into
wishlist lines (one per recommended perk combination), and writes the
output file. Rows with a missing or malformed item hash or perks cell
are skipped with a warning; an unreachable sheet or unwritable output
aborts the run.

When the lookup store exists, each weapon block is preceded by a comment
carrying the weapon's display name.`,
	RunE: runConvert,
}

func init() {
	convertCmd.Flags().String("sheet-id", "", "Google Sheets document ID (default from config sheet.sheet_id)")
	convertCmd.Flags().String("gid", "0", "worksheet tab ID to export")
	convertCmd.Flags().String("out", defaultOutput, "output wishlist path")
	convertCmd.Flags().String("title", "", "wishlist title header line")
	convertCmd.Flags().String("description", "", "wishlist description header line")
	convertCmd.Flags().Duration("timeout", 0, "HTTP request timeout (default 60s)")
	convertCmd.Flags().String("db", defaultDBPath, "lookup store for name annotations")
	convertCmd.Flags().String("snapshot", "", "save fetched rows to a YAML snapshot")
	convertCmd.Flags().String("from-snapshot", "", "convert a saved snapshot instead of fetching")

	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	sheetID, _ := cmd.Flags().GetString("sheet-id")
	if sheetID == "" {
		sheetID = viper.GetString("sheet.sheet_id")
	}
	gid, _ := cmd.Flags().GetString("gid")
	out, _ := cmd.Flags().GetString("out")
	title, _ := cmd.Flags().GetString("title")
	description, _ := cmd.Flags().GetString("description")
	timeout, _ := cmd.Flags().GetDuration("timeout")
	if timeout == 0 {
		timeout = defaultTimeout
	}
	dbPath, _ := cmd.Flags().GetString("db")
	snapshotPath, _ := cmd.Flags().GetString("snapshot")
	fromSnapshot, _ := cmd.Flags().GetString("from-snapshot")

	sheetCfg := types.SheetConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   timeout,
			UserAgent: defaultUserAgent,
		},
		SheetID: sheetID,
		GID:     gid,
	}

	var (
		rows    []types.SourceRow
		skipped int
	)
	if fromSnapshot != "" {
		snap, err := sheet.ReadSnapshot(fromSnapshot)
		if err != nil {
			return err
		}
		rows = snap.Rows
	} else {
		client := &http.Client{Timeout: sheetCfg.Timeout}
		var err error
		rows, skipped, err = sheet.FetchRows(cmd.Context(), client, sheetCfg, os.Stderr)
		if err != nil {
			return err
		}
	}

	if snapshotPath != "" {
		if err := sheet.WriteSnapshot(snapshotPath, sheetCfg, rows, skipped); err != nil {
			return err
		}
		fmt.Printf("saved snapshot to %s\n", snapshotPath)
	}

	var names wishlist.Namer
	if _, err := os.Stat(dbPath); err == nil {
		store, err := lookup.Open(dbPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: lookup store unavailable: %v\n", err)
		} else {
			defer store.Close()
			names = store
		}
	}

	wishCfg := types.WishlistConfig{
		OutputPath:  out,
		Title:       title,
		Description: description,
	}
	doc, result := wishlist.Convert(rows, wishCfg, names, os.Stderr)
	if err := wishlist.Write(doc, wishCfg.OutputPath); err != nil {
		return err
	}

	fmt.Printf("wrote %s: %d line(s) from %d row(s), %d skipped\n",
		wishCfg.OutputPath, len(doc.Lines), result.Converted, result.Skipped+skipped)
	return nil
}
