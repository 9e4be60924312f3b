package remote

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bastiangx/wordcoach/pkg/suggest"
)

var _ suggest.Fetcher = (*Client)(nil)

func newTestServer(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(Options{BaseURL: srv.URL + "/", Timeout: time.Second, MaxResults: 3})
}

func TestPrefixMatches(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/sug", r.URL.Path)
		assert.Equal(t, "ele", r.URL.Query().Get("s"))
		assert.Equal(t, "3", r.URL.Query().Get("max"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"word":"elephant","score":900},{"word":" "},{"word":"elegant"},{"word":"element"},{"word":"elevator"}]`))
	})

	got := c.PrefixMatches(context.Background(), " ele ")
	assert.Equal(t, []string{"elephant", "elegant", "element"}, got)
}

func TestFollowups(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/words", r.URL.Path)
		assert.Equal(t, "happy", r.URL.Query().Get("lc"))
		w.Write([]byte(`[{"word":"birthday"},{"word":"ending"}]`))
	})

	assert.Equal(t, []string{"birthday", "ending"}, c.Followups(context.Background(), "Happy"))
}

func TestFailuresDegradeToEmpty(t *testing.T) {
	testCases := []struct {
		description string
		status      int
		body        string
	}{
		{"server error", http.StatusInternalServerError, `[{"word":"x"}]`},
		{"not found", http.StatusNotFound, ``},
		{"malformed json", http.StatusOK, `[{"word":`},
		{"object instead of array", http.StatusOK, `{"word":"x"}`},
		{"empty body", http.StatusOK, ``},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				w.Write([]byte(tc.body))
			})
			assert.Empty(t, c.PrefixMatches(context.Background(), "x"))
			assert.Empty(t, c.Followups(context.Background(), "x"))
		})
	}
}

func TestCancelledContext(t *testing.T) {
	release := make(chan struct{})
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	})
	defer close(release)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.Empty(t, c.PrefixMatches(ctx, "x"))
}

func TestBlankInputSkipsRequest(t *testing.T) {
	calls := 0
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
	})
	assert.Nil(t, c.PrefixMatches(context.Background(), "  "))
	assert.Nil(t, c.Followups(context.Background(), ""))
	assert.Zero(t, calls)
}

func TestUnreachableServer(t *testing.T) {
	c := NewClient(Options{BaseURL: "http://127.0.0.1:1", Timeout: 200 * time.Millisecond})
	assert.Empty(t, c.PrefixMatches(context.Background(), "x"))
}

func TestParseWords(t *testing.T) {
	words, err := ParseWords([]byte(`[{"word":"a"},{"score":1},{"word":"b"}]`), 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, words)

	words, err = ParseWords([]byte(`[]`), 5)
	require.NoError(t, err)
	assert.Empty(t, words)

	_, err = ParseWords([]byte(`"x"`), 5)
	assert.Error(t, err)
}

func TestDefaults(t *testing.T) {
	c := NewClient(Options{})
	assert.Equal(t, DefaultBaseURL, c.baseURL)
	assert.Equal(t, DefaultMaxResults, c.maxResults)
	assert.Equal(t, DefaultTimeout, c.httpClient.Timeout)
}
