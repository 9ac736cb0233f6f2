// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package lookup persists weapon and perk name tables in SQLite so the
// converter can annotate wishlist blocks without re-fetching the manifest.
package lookup

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

// Store manages the name lookup SQLite database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the lookup database at path, creating the schema
// if it does not exist.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating lookup directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS weapons (
			hash INTEGER PRIMARY KEY,
			name TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS perks (
			hash INTEGER PRIMARY KEY,
			name TEXT NOT NULL
		)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// ReplaceWeapons swaps the weapon table contents for names atomically.
func (s *Store) ReplaceWeapons(names map[uint32]string) error {
	return s.replace("weapons", names)
}

// ReplacePerks swaps the perk table contents for names atomically.
func (s *Store) ReplacePerks(names map[uint32]string) error {
	return s.replace("perks", names)
}

func (s *Store) replace(table string, names map[uint32]string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM " + table); err != nil {
		return fmt.Errorf("clearing %s: %w", table, err)
	}

	stmt, err := tx.Prepare("INSERT INTO " + table + " (hash, name) VALUES (?, ?)")
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for hash, name := range names {
		if _, err := stmt.Exec(int64(hash), name); err != nil {
			return fmt.Errorf("inserting into %s: %w", table, err)
		}
	}
	return tx.Commit()
}

// WeaponName returns the display name for a weapon hash. Lookup is
// best-effort: a missing row or a query error both report not-found.
func (s *Store) WeaponName(hash uint32) (string, bool) {
	return s.name("weapons", hash)
}

// PerkName returns the display name for a perk hash.
func (s *Store) PerkName(hash uint32) (string, bool) {
	return s.name("perks", hash)
}

func (s *Store) name(table string, hash uint32) (string, bool) {
	var name string
	err := s.db.QueryRow("SELECT name FROM "+table+" WHERE hash = ?", int64(hash)).Scan(&name)
	if err != nil {
		return "", false
	}
	return name, true
}

// Counts returns the number of weapon and perk rows, for run summaries.
func (s *Store) Counts() (weapons, perks int, err error) {
	if err = s.db.QueryRow("SELECT COUNT(*) FROM weapons").Scan(&weapons); err != nil {
		return 0, 0, fmt.Errorf("counting weapons: %w", err)
	}
	if err = s.db.QueryRow("SELECT COUNT(*) FROM perks").Scan(&perks); err != nil {
		return 0, 0, fmt.Errorf("counting perks: %w", err)
	}
	return weapons, perks, nil
}
