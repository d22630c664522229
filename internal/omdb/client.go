// Package omdb implements the movie metadata lookup against the OMDB
// API (http://www.omdbapi.com). A lookup resolves a title to year,
// genre, plot, director and poster URL.
package omdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"time"

	"movie-reviews/pkg/utils"
)

var (
	// ErrNotFound means OMDB answered but knows no movie with that
	// title. Callers treat this as a client error.
	ErrNotFound = errors.New("omdb: movie not found")
	// ErrUnavailable covers timeouts, transport failures and non-2xx
	// answers. Callers treat this as an upstream outage.
	ErrUnavailable = errors.New("omdb: service unavailable")
)

// Movie is the descriptor OMDB resolves a title to. Fields OMDB
// reports as "N/A" are nil.
type Movie struct {
	Title    string
	Year     *int
	ImdbID   *string
	Genre    *string
	Plot     *string
	Poster   *string
	Director *string
}

type lookupResponse struct {
	Title    string `json:"Title"`
	Year     string `json:"Year"`
	Genre    string `json:"Genre"`
	Plot     string `json:"Plot"`
	Poster   string `json:"Poster"`
	Director string `json:"Director"`
	ImdbID   string `json:"imdbID"`
	Response string `json:"Response"`
	Error    string `json:"Error"`
}

type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

func NewClient(config utils.OMDBConfig) *Client {
	timeout := time.Duration(config.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &Client{
		apiKey:  config.APIKey,
		baseURL: config.BaseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// FetchByTitle resolves a movie title. Exactly one attempt is made;
// there is no retry.
func (c *Client) FetchByTitle(ctx context.Context, title string) (*Movie, error) {
	q := url.Values{}
	q.Set("t", title)
	q.Set("apikey", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", ErrUnavailable, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: unexpected status %d", ErrUnavailable, resp.StatusCode)
	}

	var body lookupResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", ErrUnavailable, err)
	}

	if body.Response != "True" {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, title)
	}

	return &Movie{
		Title:    body.Title,
		Year:     parseYear(body.Year),
		ImdbID:   optional(body.ImdbID),
		Genre:    optional(body.Genre),
		Plot:     optional(body.Plot),
		Poster:   optional(body.Poster),
		Director: optional(body.Director),
	}, nil
}

var yearPrefix = regexp.MustCompile(`^\d{4}`)

// parseYear handles plain years and ranges like "2001-2003" by taking
// the leading four digits.
func parseYear(s string) *int {
	match := yearPrefix.FindString(s)
	if match == "" {
		return nil
	}

	year, err := strconv.Atoi(match)
	if err != nil {
		return nil
	}

	return &year
}

func optional(s string) *string {
	if s == "" || s == "N/A" {
		return nil
	}
	return &s
}
