// Package searchclient provides the HTTP client for the skrytki search API.
package searchclient

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"skrytki/internal/search/transport"
	"skrytki/platform/config"
	"skrytki/platform/logger"
)

const defaultTimeout = 10 * time.Second

// maxErrorBody caps how much of an error response is kept in StatusError.
const maxErrorBody = 512

// StatusError is returned for non-2xx responses.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("upstream error: status %d", e.StatusCode)
	}
	return fmt.Sprintf("upstream error: status %d: %s", e.StatusCode, e.Body)
}

// Client talks to the search API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	log        *logger.Logger
}

// New creates a client for the API at cfg.GetAPIBaseURL().
func New(cfg config.ClientConfig, log *logger.Logger) *Client {
	timeout := cfg.GetClientTimeout()
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if log == nil {
		log = logger.Discard()
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(cfg.GetAPIBaseURL(), "/"),
		log:        log,
	}
}

// Search calls GET /search with the query and options as query parameters.
func (c *Client) Search(ctx context.Context, query string, czyUrzad bool, limit int) ([]transport.AddressRecord, error) {
	params := url.Values{}
	params.Set("query", query)
	params.Set("czy_urzad", strconv.FormatBool(czyUrzad))
	params.Set("limit", strconv.Itoa(limit))

	var records []transport.AddressRecord
	if err := c.get(ctx, c.baseURL+"/search?"+params.Encode(), &records); err != nil {
		return nil, err
	}
	if records == nil {
		records = []transport.AddressRecord{}
	}
	return records, nil
}

// Details calls GET /get_uris/{addressID} and returns every skrytka of the
// entity the address belongs to. addressID is escaped as a single path
// component, so reserved characters such as ':' '@' '&' '+' never reach the
// server unescaped.
func (c *Client) Details(ctx context.Context, addressID string) ([]string, error) {
	var uris []string
	if err := c.get(ctx, c.baseURL+"/get_uris/"+escapeComponent(addressID), &uris); err != nil {
		return nil, err
	}
	if uris == nil {
		uris = []string{}
	}
	return uris, nil
}

// escapeComponent escapes everything except unreserved characters and
// encodes spaces as %20.
func escapeComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

func (c *Client) get(ctx context.Context, reqURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Error("search api request failed", "error", err, "url", reqURL)
		return fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		c.log.Error("search api upstream error", "status", resp.StatusCode, "url", reqURL)
		return &StatusError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		c.log.Error("search api decode failed", "error", err, "url", reqURL)
		return fmt.Errorf("decode response: %w", err)
	}

	return nil
}
