// Package gprofiler is a minimal client for the g:Profiler g:GOSt
// over-representation analysis service.
package gprofiler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/carbocation/pfx"
)

// DefaultBaseURL is the public g:Profiler API root.
const DefaultBaseURL = "https://biit.cs.ut.ee/gprofiler/api"

const userAgent = "genes2terms"

// Client calls the g:Profiler API. The zero value uses the public service and
// http.DefaultClient; the HTTP client's own timeout (or the caller's context)
// bounds the request.
type Client struct {
	BaseURL string
	HTTP    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{BaseURL: baseURL}
}

// ProfileQuery describes a single over-representation analysis request.
type ProfileQuery struct {
	Organism string
	Genes    []string

	// Sources restricts the annotation databases queried. Empty means all.
	Sources []string

	// IncludeIEA retains electronically inferred annotations.
	IncludeIEA bool
}

type profileRequest struct {
	Organism string   `json:"organism"`
	Query    []string `json:"query"`
	Sources  []string `json:"sources,omitempty"`
	NoIEA    bool     `json:"no_iea"`

	// Server-side significance filtering stays disabled so that the caller's
	// threshold is applied locally, independent of service defaults.
	UserThreshold float64 `json:"user_threshold"`

	// Evidence lists carry the intersecting gene identifiers.
	NoEvidences bool `json:"no_evidences"`
}

type profileResponse struct {
	Result []Result `json:"result"`
}

// Profile submits the query and returns the service's term rows, unfiltered.
// A service response with zero matching terms yields an empty slice and no
// error. Transport and non-200 failures carry the underlying cause.
func (c *Client) Profile(ctx context.Context, q ProfileQuery) ([]Result, error) {
	body, err := json.Marshal(profileRequest{
		Organism:      q.Organism,
		Query:         q.Genes,
		Sources:       q.Sources,
		NoIEA:         !q.IncludeIEA,
		UserThreshold: 1.0,
		NoEvidences:   false,
	})
	if err != nil {
		return nil, pfx.Err(err)
	}

	url := strings.TrimSuffix(c.baseURL(), "/") + "/gost/profile/"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, pfx.Err(err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return nil, fmt.Errorf("querying %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("%s returned %s: %s", url, resp.Status, bytes.TrimSpace(snippet))
	}

	var pr profileResponse
	if err := json.NewDecoder(resp.Body).Decode(&pr); err != nil {
		return nil, fmt.Errorf("decoding response from %s: %w", url, err)
	}

	return pr.Result, nil
}

func (c *Client) baseURL() string {
	if c.BaseURL == "" {
		return DefaultBaseURL
	}

	return c.BaseURL
}

func (c *Client) httpClient() *http.Client {
	if c.HTTP == nil {
		return http.DefaultClient
	}

	return c.HTTP
}
