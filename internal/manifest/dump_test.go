// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package manifest

import (
	"bytes"
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/voidhawk/rollsheet/internal/lookup"
	"github.com/voidhawk/rollsheet/pkg/types"
)

func TestDump(t *testing.T) {
	ts := platformTestServer(t)
	defer ts.Close()
	overridePlatform(t, ts.URL)

	dir := t.TempDir()
	store, err := lookup.Open(filepath.Join(dir, "names.db"))
	if err != nil {
		t.Fatalf("lookup.Open: %v", err)
	}
	defer store.Close()

	cfg := types.ManifestConfig{LookupDir: filepath.Join(dir, "lookup")}
	var out bytes.Buffer
	result, err := Dump(context.Background(), testClient(ts), cfg, store, &out)
	if err != nil {
		t.Fatalf("Dump: %v", err)
	}

	if result.Weapons != 2 || result.Perks != 2 {
		t.Errorf("result = %+v, want 2 weapons, 2 perks", result)
	}

	// CSVs are sorted by name with a header row.
	records := readCSV(t, filepath.Join(cfg.LookupDir, "weapon_names.csv"))
	want := [][]string{
		{"name", "hash"},
		{"Fixed Roll Rifle", "101"},
		{"Midnight Coup", "100"},
	}
	if !reflect.DeepEqual(records, want) {
		t.Errorf("weapon CSV = %v, want %v", records, want)
	}

	records = readCSV(t, filepath.Join(cfg.LookupDir, "perk_names.csv"))
	want = [][]string{
		{"name", "hash"},
		{"Outlaw", "500"},
		{"Rampage", "501"},
	}
	if !reflect.DeepEqual(records, want) {
		t.Errorf("perk CSV = %v, want %v", records, want)
	}

	// Store refreshed too.
	if name, ok := store.WeaponName(100); !ok || name != "Midnight Coup" {
		t.Errorf("store WeaponName(100) = %q, %v", name, ok)
	}
	if name, ok := store.PerkName(501); !ok || name != "Rampage" {
		t.Errorf("store PerkName(501) = %q, %v", name, ok)
	}
}

func TestDumpWithoutStore(t *testing.T) {
	ts := platformTestServer(t)
	defer ts.Close()
	overridePlatform(t, ts.URL)

	cfg := types.ManifestConfig{LookupDir: t.TempDir()}
	var out bytes.Buffer
	result, err := Dump(context.Background(), testClient(ts), cfg, nil, &out)
	if err != nil {
		t.Fatalf("Dump: %v", err)
	}
	if result.Weapons != 2 {
		t.Errorf("result = %+v", result)
	}
	if _, err := os.Stat(filepath.Join(cfg.LookupDir, "weapon_names.csv")); err != nil {
		t.Errorf("weapon CSV missing: %v", err)
	}
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("opening %s: %v", path, err)
	}
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return records
}
