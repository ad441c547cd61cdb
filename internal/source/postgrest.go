// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package source

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/pdiddy/pub-catalog/internal/httputil"
	"github.com/pdiddy/pub-catalog/pkg/types"
)

// restPath is the PostgREST mount point on a Supabase project.
const restPath = "/rest/v1/"

// PostgRESTSource reads rows through a PostgREST (Supabase) HTTP API.
type PostgRESTSource struct {
	Client *http.Client
	// BaseURL is the project URL, e.g. "https://xyz.supabase.co".
	BaseURL string
	// APIKey is sent as the apikey header and as a bearer token.
	APIKey string
	HTTP   types.HTTPConfig
}

// Name returns the backend identifier.
func (s *PostgRESTSource) Name() string { return "postgrest" }

// Fetch issues GET /rest/v1/{table}?select={fields}.
func (s *PostgRESTSource) Fetch(ctx context.Context, table string, fields []string) ([]types.PublicationRecord, error) {
	table = tableOrDefault(table)
	if _, err := splitIdent(table); err != nil {
		return nil, err
	}

	params := url.Values{"select": {strings.Join(fields, ",")}}
	reqURL := strings.TrimRight(s.BaseURL, "/") + restPath + table + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if s.HTTP.UserAgent != "" {
		req.Header.Set("User-Agent", s.HTTP.UserAgent)
	}
	if s.APIKey != "" {
		req.Header.Set("apikey", s.APIKey)
		req.Header.Set("Authorization", "Bearer "+s.APIKey)
	}

	resp, err := httputil.DoWithRetry(ctx, s.Client, req, s.HTTP.RateLimitRetries)
	if err != nil {
		return nil, fmt.Errorf("PostgREST request: %w", err)
	}
	defer resp.Body.Close()

	if err := httputil.CheckStatus(resp); err != nil {
		return nil, fmt.Errorf("PostgREST %s: %w", table, err)
	}

	dec := json.NewDecoder(resp.Body)
	dec.UseNumber()
	var rows []map[string]any
	if err := dec.Decode(&rows); err != nil {
		return nil, fmt.Errorf("parsing PostgREST response: %w", err)
	}

	records := make([]types.PublicationRecord, len(rows))
	for i, row := range rows {
		records[i] = types.RecordFromMap(row)
	}
	return records, nil
}
