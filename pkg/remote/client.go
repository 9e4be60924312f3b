// Package remote fetches extra word candidates from a Datamuse style HTTP
// word service. Every failure degrades to an empty result.
package remote

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/tidwall/gjson"

	"github.com/bastiangx/wordcoach/internal/logger"
)

const (
	DefaultBaseURL    = "https://api.datamuse.com"
	DefaultTimeout    = 2 * time.Second
	DefaultMaxResults = 10

	maxBodyBytes = 1 << 20
)

// Options configures a Client. Zero values take the defaults.
type Options struct {
	BaseURL    string
	Timeout    time.Duration
	MaxResults int
}

// Client asks the word service for completions and follow-up words.
type Client struct {
	baseURL    string
	httpClient *http.Client
	maxResults int
	log        *log.Logger
}

// NewClient creates a Client.
func NewClient(opts Options) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.MaxResults <= 0 {
		opts.MaxResults = DefaultMaxResults
	}
	return &Client{
		baseURL:    strings.TrimRight(opts.BaseURL, "/"),
		httpClient: &http.Client{Timeout: opts.Timeout},
		maxResults: opts.MaxResults,
		log:        logger.New("remote"),
	}
}

// PrefixMatches returns words starting with fragment.
func (c *Client) PrefixMatches(ctx context.Context, fragment string) []string {
	fragment = strings.TrimSpace(fragment)
	if fragment == "" {
		return nil
	}
	return c.words(ctx, "/sug", url.Values{"s": {fragment}})
}

// Followups returns words that often come right after word.
func (c *Client) Followups(ctx context.Context, word string) []string {
	word = strings.TrimSpace(word)
	if word == "" {
		return nil
	}
	return c.words(ctx, "/words", url.Values{"lc": {strings.ToLower(word)}})
}

func (c *Client) words(ctx context.Context, path string, query url.Values) []string {
	query.Set("max", strconv.Itoa(c.maxResults))
	reqURL := c.baseURL + path + "?" + query.Encode()

	body, err := c.get(ctx, reqURL)
	if err != nil {
		if ctx.Err() != nil {
			c.log.Debugf("Request cancelled: %s", reqURL)
		} else {
			c.log.Warnf("Word service request failed: %v", err)
		}
		return nil
	}

	words, err := ParseWords(body, c.maxResults)
	if err != nil {
		c.log.Warnf("Word service returned a bad payload: %v", err)
		return nil
	}
	c.log.Debugf("%s -> %d words", reqURL, len(words))
	return words
}

func (c *Client) get(ctx context.Context, reqURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return body, nil
}

// ParseWords extracts the "word" field of each element of a JSON array, in
// order, skipping blanks and stopping after limit words. A non-positive limit
// keeps every word.
func ParseWords(body []byte, limit int) ([]string, error) {
	if !gjson.ValidBytes(body) {
		return nil, errors.New("invalid json")
	}
	result := gjson.ParseBytes(body)
	if !result.IsArray() {
		return nil, fmt.Errorf("expected array, got %s", result.Type)
	}

	var words []string
	result.ForEach(func(_, item gjson.Result) bool {
		w := strings.TrimSpace(item.Get("word").String())
		if w != "" {
			words = append(words, w)
		}
		return limit <= 0 || len(words) < limit
	})
	return words, nil
}
