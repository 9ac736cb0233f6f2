// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package manifest

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/voidhawk/rollsheet/internal/lookup"
	"github.com/voidhawk/rollsheet/pkg/types"
)

// Lookup CSV filenames, matching the columns the sheet imports.
const (
	weaponCSV = "weapon_names.csv"
	perkCSV   = "perk_names.csv"
)

// DumpResult holds the outcome of a lookup dump run.
type DumpResult struct {
	Weapons int
	Perks   int
}

// Dump pulls the manifest tables, writes the weapon and perk lookup CSVs
// into cfg.LookupDir, and refreshes store when it is non-nil. Progress is
// reported to w.
func Dump(ctx context.Context, c *Client, cfg types.ManifestConfig, store *lookup.Store, w io.Writer) (DumpResult, error) {
	fmt.Fprintln(w, "fetching manifest index")
	paths, err := c.ComponentPaths(ctx)
	if err != nil {
		return DumpResult{}, err
	}

	var (
		items      map[string]itemDef
		categories map[string]categoryDef
		plugSets   map[string]plugSetDef
	)
	for _, blob := range []struct {
		key string
		out any
	}{
		{itemComponent, &items},
		{categoryComponent, &categories},
		{plugSetComponent, &plugSets},
	} {
		fmt.Fprintf(w, "fetching %s\n", blob.key)
		if err := c.component(ctx, paths, blob.key, blob.out); err != nil {
			return DumpResult{}, err
		}
	}

	weapons, err := weaponNames(categories, items)
	if err != nil {
		return DumpResult{}, err
	}
	perks, err := randomRollPerkNames(categories, items, plugSets)
	if err != nil {
		return DumpResult{}, err
	}

	if err := os.MkdirAll(cfg.LookupDir, 0o755); err != nil {
		return DumpResult{}, fmt.Errorf("creating lookup directory: %w", err)
	}
	if err := writeLookupCSV(filepath.Join(cfg.LookupDir, weaponCSV), weapons); err != nil {
		return DumpResult{}, err
	}
	if err := writeLookupCSV(filepath.Join(cfg.LookupDir, perkCSV), perks); err != nil {
		return DumpResult{}, err
	}

	if store != nil {
		if err := store.ReplaceWeapons(weapons); err != nil {
			return DumpResult{}, fmt.Errorf("refreshing weapon store: %w", err)
		}
		if err := store.ReplacePerks(perks); err != nil {
			return DumpResult{}, fmt.Errorf("refreshing perk store: %w", err)
		}
	}

	result := DumpResult{Weapons: len(weapons), Perks: len(perks)}
	fmt.Fprintf(w, "dumped %d weapons, %d perks to %s\n", result.Weapons, result.Perks, cfg.LookupDir)
	return result, nil
}

// weaponCategoryHash finds the hash of the item category named "Weapon".
func weaponCategoryHash(categories map[string]categoryDef) (uint32, error) {
	for _, c := range categories {
		if c.DisplayProperties.Name == "Weapon" {
			return c.Hash, nil
		}
	}
	return 0, fmt.Errorf("no Weapon item category in manifest")
}

// weaponNames returns a hash→name map containing only weapons.
func weaponNames(categories map[string]categoryDef, items map[string]itemDef) (map[uint32]string, error) {
	weaponHash, err := weaponCategoryHash(categories)
	if err != nil {
		return nil, err
	}

	names := make(map[uint32]string)
	for _, item := range items {
		if hasCategory(item, weaponHash) {
			names[item.Hash] = item.DisplayProperties.Name
		}
	}
	return names, nil
}

// randomRollPerkIDs collects the plug hashes reachable through an item's
// randomized plug sets. Sockets without a random roll are ignored.
func randomRollPerkIDs(item itemDef, plugSets map[string]plugSetDef) map[uint32]struct{} {
	perkIDs := make(map[uint32]struct{})
	for _, entry := range item.Sockets.SocketEntries {
		if entry.RandomizedPlugSetHash == 0 {
			continue
		}
		set, ok := plugSets[strconv.FormatUint(uint64(entry.RandomizedPlugSetHash), 10)]
		if !ok {
			continue
		}
		for _, plug := range set.ReusablePlugItems {
			perkIDs[plug.PlugItemHash] = struct{}{}
		}
	}
	return perkIDs
}

// randomRollPerkNames returns a hash→name map of every perk that can roll
// on any weapon, resolved through the item table.
func randomRollPerkNames(categories map[string]categoryDef, items map[string]itemDef, plugSets map[string]plugSetDef) (map[uint32]string, error) {
	weaponHash, err := weaponCategoryHash(categories)
	if err != nil {
		return nil, err
	}

	perkIDs := make(map[uint32]struct{})
	for _, item := range items {
		if !hasCategory(item, weaponHash) {
			continue
		}
		for id := range randomRollPerkIDs(item, plugSets) {
			perkIDs[id] = struct{}{}
		}
	}

	names := make(map[uint32]string)
	for id := range perkIDs {
		def, ok := items[strconv.FormatUint(uint64(id), 10)]
		if !ok {
			continue
		}
		names[id] = def.DisplayProperties.Name
	}
	return names, nil
}

func hasCategory(item itemDef, category uint32) bool {
	for _, h := range item.ItemCategoryHashes {
		if h == category {
			return true
		}
	}
	return false
}

// writeLookupCSV writes a name,hash CSV sorted by name so sheet imports
// diff cleanly between runs.
func writeLookupCSV(path string, names map[uint32]string) error {
	type entry struct {
		hash uint32
		name string
	}
	entries := make([]entry, 0, len(names))
	for h, n := range names {
		entries = append(entries, entry{hash: h, name: n})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].name != entries[j].name {
			return entries[i].name < entries[j].name
		}
		return entries[i].hash < entries[j].hash
	})

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}

	cw := csv.NewWriter(f)
	if err := cw.Write([]string{"name", "hash"}); err != nil {
		f.Close()
		return fmt.Errorf("writing header: %w", err)
	}
	for _, e := range entries {
		if err := cw.Write([]string{e.name, strconv.FormatUint(uint64(e.hash), 10)}); err != nil {
			f.Close()
			return fmt.Errorf("writing %s: %w", path, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		f.Close()
		return fmt.Errorf("flushing %s: %w", path, err)
	}
	return f.Close()
}
