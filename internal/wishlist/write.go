// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package wishlist

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Render produces the full file content: header lines, a blank separator,
// then the roll and comment lines in order.
func (d Document) Render() string {
	var b strings.Builder
	if d.Title != "" {
		b.WriteString("title:" + d.Title + "\n")
	}
	if d.Description != "" {
		b.WriteString("description:" + d.Description + "\n")
	}
	if b.Len() > 0 && len(d.Lines) > 0 {
		b.WriteByte('\n')
	}
	for _, line := range d.Lines {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return b.String()
}

// Write saves the document to path, replacing any previous content. The
// content goes to a temp file in the destination directory first and is
// renamed into place, so a failed run never leaves a half-written wishlist.
func Write(d Document, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating directory %s: %w", dir, err)
	}

	tmpFile, err := os.CreateTemp(dir, ".wishlist-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	_, writeErr := tmpFile.WriteString(d.Render())
	closeErr := tmpFile.Close()
	if writeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("writing wishlist: %w", writeErr)
	}
	if closeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing temp file: %w", closeErr)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
