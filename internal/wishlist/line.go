// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package wishlist

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/voidhawk/rollsheet/pkg/types"
)

// Wishlist line grammar, as consumed by DIM:
//
//	dimwishlist:item=<hash>&perks=<hash>,<hash>,...
//
// Lines starting with "//" are comments; "//notes:" comments attach notes
// (and "|tags:..." labels) to the roll lines that follow.
const (
	LinePrefix    = "dimwishlist:"
	CommentPrefix = "//"
	notesPrefix   = "//notes:"
)

// FormatLine renders one roll as a wishlist line.
func FormatLine(r types.Roll) string {
	perks := make([]string, len(r.Perks))
	for i, p := range r.Perks {
		perks[i] = strconv.FormatUint(uint64(p), 10)
	}
	return fmt.Sprintf("%sitem=%d&perks=%s", LinePrefix, r.Item, strings.Join(perks, ","))
}

// newlineFlattener collapses line breaks inside a sheet cell. Quoted TSV
// cells may span lines; the comment must stay a single line or Render
// would emit text outside the grammar.
var newlineFlattener = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ")

// FormatNotes renders the comment line carrying a row's notes and tags.
func FormatNotes(notes string, tags []string) string {
	parts := make([]string, 0, 2)
	if notes != "" {
		parts = append(parts, notes)
	}
	if len(tags) > 0 {
		parts = append(parts, "tags:"+strings.Join(tags, ","))
	}
	return notesPrefix + " " + newlineFlattener.Replace(strings.Join(parts, "|"))
}

// ParseLine parses a roll line back into a Roll. Anything FormatLine
// emits parses back to the same Roll; because the payload is query-
// parameter syntax, percent-encoded separators and extra parameters are
// tolerated too, matching the consuming tool's lenient parser.
func ParseLine(line string) (types.Roll, error) {
	if !strings.HasPrefix(line, LinePrefix) {
		return types.Roll{}, fmt.Errorf("missing %q prefix", LinePrefix)
	}

	values, err := url.ParseQuery(strings.TrimPrefix(line, LinePrefix))
	if err != nil {
		return types.Roll{}, fmt.Errorf("parsing line parameters: %w", err)
	}

	item, err := parseLineHash(values.Get("item"))
	if err != nil {
		return types.Roll{}, fmt.Errorf("item: %w", err)
	}

	perksField := values.Get("perks")
	if perksField == "" {
		return types.Roll{}, fmt.Errorf("missing perks")
	}

	var perks types.PerkSet
	for _, tok := range strings.Split(perksField, ",") {
		p, err := parseLineHash(tok)
		if err != nil {
			return types.Roll{}, fmt.Errorf("perks: %w", err)
		}
		perks = append(perks, p)
	}

	return types.Roll{Item: item, Perks: perks}, nil
}

func parseLineHash(s string) (uint32, error) {
	if s == "" {
		return 0, fmt.Errorf("empty hash")
	}
	n, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("bad hash %q", s)
	}
	if n == 0 {
		return 0, fmt.Errorf("zero hash")
	}
	return uint32(n), nil
}
