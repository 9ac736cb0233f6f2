// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package sheet fetches the community roll-recommendation spreadsheet and
// parses its rows into the shared data model.
package sheet

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/voidhawk/rollsheet/pkg/types"
)

// sheetExportBase is the Google Sheets export endpoint. Declared as a var
// so tests can substitute an httptest server.
var sheetExportBase = "https://docs.google.com/spreadsheets/d"

// FetchRows downloads the published sheet as TSV and parses it. Row-level
// defects are reported to w and skipped; transport failures, non-200
// responses, and unreadable TSV are returned as errors.
func FetchRows(ctx context.Context, client *http.Client, cfg types.SheetConfig, w io.Writer) ([]types.SourceRow, int, error) {
	if cfg.SheetID == "" {
		return nil, 0, fmt.Errorf("no sheet ID configured")
	}
	gid := cfg.GID
	if gid == "" {
		gid = "0"
	}

	exportURL := fmt.Sprintf("%s/%s/export?format=tsv&gid=%s",
		sheetExportBase, url.PathEscape(cfg.SheetID), url.QueryEscape(gid))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, exportURL, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", cfg.UserAgent)

	resp, err := client.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("sheet export request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, 0, fmt.Errorf("sheet export returned HTTP %d", resp.StatusCode)
	}

	rows, skipped, err := ParseTSV(resp.Body, w)
	if err != nil {
		return nil, 0, fmt.Errorf("parsing sheet export: %w", err)
	}
	return rows, skipped, nil
}
