// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package manifest walks the Bungie platform manifest and rebuilds the
// weapon and perk name lookup tables the sheet maintainers work from.
//
// The Destiny 2 API is self-referential and thinly documented; the manifest
// is an index into per-table content blobs that can be pulled separately,
// so a run never downloads the entire game database.
package manifest

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/voidhawk/rollsheet/internal/httputil"
)

// platformBase is the Bungie platform host. Declared as a var so tests can
// substitute an httptest server.
var platformBase = "https://www.bungie.net"

// Content blob keys resolved through the manifest index.
const (
	itemComponent     = "DestinyInventoryItemDefinition"
	categoryComponent = "DestinyItemCategoryDefinition"
	plugSetComponent  = "DestinyPlugSetDefinition"
)

// Client talks to the Bungie platform API.
type Client struct {
	HTTP      *http.Client
	APIKey    string
	UserAgent string
}

// Bungie platform JSON structures. Content blobs are keyed by the string
// form of the definition hash.
type manifestResponse struct {
	ErrorStatus string        `json:"ErrorStatus"`
	Message     string        `json:"Message"`
	Response    manifestIndex `json:"Response"`
}

type manifestIndex struct {
	ComponentPaths map[string]map[string]string `json:"jsonWorldComponentContentPaths"`
}

type itemDef struct {
	Hash               uint32       `json:"hash"`
	DisplayProperties  displayProps `json:"displayProperties"`
	ItemCategoryHashes []uint32     `json:"itemCategoryHashes"`
	Sockets            socketBlock  `json:"sockets"`
}

type displayProps struct {
	Name string `json:"name"`
}

type socketBlock struct {
	SocketEntries []socketEntry `json:"socketEntries"`
}

type socketEntry struct {
	// RandomizedPlugSetHash is zero when the socket has no random roll.
	RandomizedPlugSetHash uint32 `json:"randomizedPlugSetHash"`
}

type categoryDef struct {
	Hash              uint32       `json:"hash"`
	DisplayProperties displayProps `json:"displayProperties"`
}

type plugSetDef struct {
	ReusablePlugItems []plugItem `json:"reusablePlugItems"`
}

type plugItem struct {
	PlugItemHash uint32 `json:"plugItemHash"`
}

// ComponentPaths fetches the manifest index and returns the English
// content paths, keyed by definition table name.
func (c *Client) ComponentPaths(ctx context.Context) (map[string]string, error) {
	var mr manifestResponse
	if err := c.fetchJSON(ctx, platformBase+"/platform/Destiny2/Manifest/", &mr); err != nil {
		return nil, fmt.Errorf("fetching manifest: %w", err)
	}
	if mr.ErrorStatus != "Success" {
		return nil, fmt.Errorf("manifest error %s: %s", mr.ErrorStatus, mr.Message)
	}

	paths, ok := mr.Response.ComponentPaths["en"]
	if !ok {
		return nil, fmt.Errorf("manifest has no English content paths")
	}
	return paths, nil
}

// component fetches one content blob resolved through the manifest index
// and decodes it into out.
func (c *Client) component(ctx context.Context, paths map[string]string, key string, out any) error {
	path, ok := paths[key]
	if !ok {
		return fmt.Errorf("manifest has no path for %s", key)
	}
	if err := c.fetchJSON(ctx, platformBase+path, out); err != nil {
		return fmt.Errorf("fetching %s: %w", key, err)
	}
	return nil
}

// fetchJSON performs a GET with the API key header and decodes the JSON
// response. The content endpoints rate-limit aggressively, so requests go
// through the 429 retry helper.
func (c *Client) fetchJSON(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("X-API-Key", c.APIKey)
	req.Header.Set("User-Agent", c.UserAgent)

	resp, err := httputil.DoWithRetry(ctx, c.HTTP, req, 0)
	if err != nil {
		return fmt.Errorf("platform request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("platform returned HTTP %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("parsing response: %w", err)
	}
	return nil
}
