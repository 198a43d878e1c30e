// Package discogs is a read-only client for the two marketplace endpoints the
// pricer needs: release metadata and price suggestions.
package discogs

import (
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/andybalholm/brotli"

	"vinyl-pricer/internal/config"
	"vinyl-pricer/internal/grade"
)

const mediaType = "application/vnd.discogs.v2.discogs+json"

// Client issues authenticated GET requests against the marketplace API.
type Client struct {
	baseURL    string
	token      string
	userAgent  string
	httpClient *http.Client
}

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// New builds a Client from configuration. No retries are attempted.
func New(cfg config.Config, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		token:      cfg.Token,
		userAgent:  cfg.UserAgent,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ReleaseInfo fetches the title and artist names of a release.
func (c *Client) ReleaseInfo(ctx context.Context, releaseID int) (ReleaseInfo, error) {
	const op = "fetch release"

	var resp releaseResponse
	if err := c.get(ctx, op, "/releases/"+strconv.Itoa(releaseID), releaseID, &resp); err != nil {
		return ReleaseInfo{}, err
	}

	if resp.Title == nil {
		return ReleaseInfo{}, &UpstreamError{Op: op, Message: "response has no title"}
	}
	if resp.Artists == nil {
		return ReleaseInfo{}, &UpstreamError{Op: op, Message: "response has no artists"}
	}

	info := ReleaseInfo{
		ID:      releaseID,
		Title:   *resp.Title,
		Artists: make([]string, 0, len(*resp.Artists)),
	}
	for i, a := range *resp.Artists {
		if a.Name == nil {
			return ReleaseInfo{}, &UpstreamError{Op: op, Message: fmt.Sprintf("artist %d has no name", i)}
		}
		info.Artists = append(info.Artists, *a.Name)
	}
	return info, nil
}

// PriceSuggestion fetches the suggested price of a release for one grade.
// A missing entry for the grade yields *GradeNotAvailableError.
func (c *Client) PriceSuggestion(ctx context.Context, releaseID int, code grade.Code) (PriceSuggestion, error) {
	const op = "fetch price suggestions"

	label, ok := grade.Label(code)
	if !ok {
		return PriceSuggestion{}, fmt.Errorf("unknown grade %q", code)
	}

	var resp map[string]*suggestionPayload
	if err := c.get(ctx, op, "/marketplace/price_suggestions/"+strconv.Itoa(releaseID), releaseID, &resp); err != nil {
		return PriceSuggestion{}, err
	}

	entry, ok := resp[label]
	if !ok || entry == nil {
		return PriceSuggestion{}, &GradeNotAvailableError{ReleaseID: releaseID, Grade: code}
	}
	if entry.Value == nil {
		return PriceSuggestion{}, &UpstreamError{Op: op, Message: fmt.Sprintf("suggestion for %q has no value", label)}
	}
	if entry.Currency == nil {
		return PriceSuggestion{}, &UpstreamError{Op: op, Message: fmt.Sprintf("suggestion for %q has no currency", label)}
	}

	return PriceSuggestion{Amount: *entry.Value, Currency: *entry.Currency}, nil
}

func (c *Client) get(ctx context.Context, op, path string, releaseID int, into any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return &UpstreamError{Op: op, Message: "build request", Err: err}
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", mediaType)
	req.Header.Set("Accept-Encoding", "gzip, br")
	if c.token != "" {
		req.Header.Set("Authorization", "Discogs token="+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &UpstreamError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return &NotFoundError{Resource: "release", ID: releaseID}
	}

	body, err := bodyReader(resp)
	if err != nil {
		return &UpstreamError{Op: op, StatusCode: resp.StatusCode, Message: "decode body", Err: err}
	}
	defer body.Close()
	if resp.StatusCode/100 != 2 {
		return &UpstreamError{Op: op, StatusCode: resp.StatusCode, Message: errorMessage(body)}
	}

	if err := json.NewDecoder(body).Decode(into); err != nil {
		return &UpstreamError{Op: op, StatusCode: resp.StatusCode, Message: "invalid JSON", Err: err}
	}
	return nil
}

// bodyReader undoes the Content-Encoding. Setting Accept-Encoding by hand
// turns off net/http's transparent gzip handling. Closing the returned reader
// does not close resp.Body.
func bodyReader(resp *http.Response) (io.ReadCloser, error) {
	switch strings.ToLower(strings.TrimSpace(resp.Header.Get("Content-Encoding"))) {
	case "gzip":
		zr, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, err
		}
		return zr, nil
	case "br":
		return io.NopCloser(brotli.NewReader(resp.Body)), nil
	case "", "identity":
		return io.NopCloser(resp.Body), nil
	default:
		return nil, fmt.Errorf("unsupported content encoding %q", resp.Header.Get("Content-Encoding"))
	}
}

func errorMessage(body io.Reader) string {
	raw, _ := io.ReadAll(io.LimitReader(body, 4<<10))
	var e errorResponse
	if err := json.Unmarshal(raw, &e); err == nil && e.Message != "" {
		return e.Message
	}
	return strings.TrimSpace(string(raw))
}
