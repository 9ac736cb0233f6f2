// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/voidhawk/rollsheet/internal/wishlist"
)

var checkCmd = &cobra.Command{
	Use:   "check [file]",
	Short: "Validate a wishlist file against the line grammar",
	Long: `Check parses every roll line of a wishlist file and reports the ones
that do not match the grammar. Comment and header lines are ignored.
Exits non-zero when any line is malformed.`,
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("provide exactly one wishlist file")
	}
	path := args[0]

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	rolls, bad := 0, 0
	lineNo := 0
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || skippableLine(line) {
			continue
		}
		if _, err := wishlist.ParseLine(line); err != nil {
			fmt.Printf("line %d: %v\n", lineNo, err)
			bad++
			continue
		}
		rolls++
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	if bad > 0 {
		return fmt.Errorf("%d malformed line(s) in %s", bad, path)
	}
	fmt.Printf("%s: %d roll line(s), all parseable\n", path, rolls)
	return nil
}

// skippableLine reports whether a line is a comment or a header line
// rather than a roll line.
func skippableLine(line string) bool {
	return strings.HasPrefix(line, wishlist.CommentPrefix) ||
		strings.HasPrefix(line, "title:") ||
		strings.HasPrefix(line, "description:")
}
