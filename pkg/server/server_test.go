package server

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/bastiangx/wordcoach/pkg/config"
	"github.com/bastiangx/wordcoach/pkg/lexicon"
	"github.com/bastiangx/wordcoach/pkg/suggest"
)

type stubFetcher struct {
	words []string
}

func (f stubFetcher) PrefixMatches(context.Context, string) []string { return f.words }
func (f stubFetcher) Followups(context.Context, string) []string     { return f.words }

type harness struct {
	in   *io.PipeWriter
	enc  *msgpack.Encoder
	out  chan msgpack.RawMessage
	done chan error
}

func startServer(t *testing.T, cfg *config.Config, fetcher suggest.Fetcher) *harness {
	t.Helper()
	inR, inW := io.Pipe()
	outR, outW := io.Pipe()

	engine := suggest.NewEngine(lexicon.Builtin(), suggest.Options{PrefixLimit: suggest.DefaultPrefixLimit})
	srv := NewServerWithIO(engine, fetcher, cfg, "", inR, outW)

	h := &harness{
		in:   inW,
		enc:  msgpack.NewEncoder(inW),
		out:  make(chan msgpack.RawMessage, 64),
		done: make(chan error, 1),
	}
	go func() {
		h.done <- srv.Start()
		outW.Close()
	}()
	go func() {
		defer close(h.out)
		dec := msgpack.NewDecoder(outR)
		for {
			raw, err := dec.DecodeRaw()
			if err != nil {
				return
			}
			h.out <- raw
		}
	}()
	t.Cleanup(func() { inW.Close() })

	var ready StatusResponse
	h.next(t, &ready)
	require.Equal(t, "ready", ready.Status)
	return h
}

func (h *harness) send(t *testing.T, req any) {
	t.Helper()
	require.NoError(t, h.enc.Encode(req))
}

func (h *harness) next(t *testing.T, v any) {
	t.Helper()
	select {
	case raw, ok := <-h.out:
		require.True(t, ok, "output closed")
		require.NoError(t, msgpack.Unmarshal(raw, v))
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for response")
	}
}

func words(r SuggestResponse) []string {
	out := make([]string, len(r.Suggestions))
	for i, s := range r.Suggestions {
		out[i] = s.Word
	}
	return out
}

func intPtr(v int) *int { return &v }

func TestHealthAndUnknownOps(t *testing.T) {
	h := startServer(t, nil, nil)

	h.send(t, Request{ID: "h1", Op: "health"})
	var status StatusResponse
	h.next(t, &status)
	assert.Equal(t, StatusResponse{ID: "h1", Status: "ok"}, status)

	for _, op := range []string{"nope", ""} {
		h.send(t, Request{ID: "x", Op: op})
		var e ErrorResponse
		h.next(t, &e)
		assert.Equal(t, "x", e.ID)
		assert.Equal(t, 400, e.Code)
		assert.NotEmpty(t, e.Error)
	}
}

func TestSuggestEmptyText(t *testing.T) {
	h := startServer(t, nil, nil)

	h.send(t, Request{ID: "s1", Op: "suggest", Text: "", Level: "beginner", Cap: 6})
	var resp SuggestResponse
	h.next(t, &resp)

	assert.Equal(t, "s1", resp.ID)
	assert.Equal(t, "sentenceStart", resp.Label)
	assert.True(t, resp.Final)
	assert.Equal(t, []string{"I", "The", "My", "We", "There is", "There are"}, words(resp))
	assert.Equal(t, 6, resp.Count)
	for i, s := range resp.Suggestions {
		assert.Equal(t, uint16(i+1), s.Rank)
	}
}

func TestSuggestUsesCaret(t *testing.T) {
	h := startServer(t, nil, nil)

	h.send(t, Request{ID: "s2", Op: "suggest", Text: "I like it", Caret: intPtr(1), Cap: 10})
	var resp SuggestResponse
	h.next(t, &resp)
	assert.Equal(t, "sentenceStart", resp.Label)

	h.send(t, Request{ID: "s3", Op: "suggest", Text: "I like apples, pears, ", Cap: 10})
	h.next(t, &resp)
	assert.Equal(t, "s3", resp.ID)
	assert.True(t, resp.List)
	assert.Greater(t, resp.Token, uint64(1))
}

func TestSuggestCaps(t *testing.T) {
	h := startServer(t, nil, nil)

	var resp SuggestResponse
	h.send(t, Request{ID: "a", Op: "suggest", Level: "advanced"})
	h.next(t, &resp)
	assert.Equal(t, 10, resp.Count)

	h.send(t, Request{ID: "b", Op: "suggest", Level: "advanced", Flow: "wordbank"})
	h.next(t, &resp)
	assert.Equal(t, 6, resp.Count)

	h.send(t, Request{ID: "c", Op: "suggest", Level: "advanced", Cap: 1000})
	h.next(t, &resp)
	assert.Greater(t, resp.Count, 10)
	assert.LessOrEqual(t, resp.Count, 32)
}

func TestSuggestRejectsBadInput(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Server.MaxTextLength = 5
	h := startServer(t, cfg, nil)

	var e ErrorResponse
	h.send(t, Request{ID: "t", Op: "suggest", Text: "far too long"})
	h.next(t, &e)
	assert.Equal(t, "t", e.ID)
	assert.Equal(t, 413, e.Code)

	h.send(t, Request{ID: "t2", Op: "assess", Text: "far too long"})
	h.next(t, &e)
	assert.Equal(t, 413, e.Code)
}

func TestUnknownLevelFallsBackToBeginner(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Engine.DefaultLevel = "advanced"
	h := startServer(t, cfg, nil)

	var beginner, unknown SuggestResponse
	h.send(t, Request{ID: "b", Op: "suggest", Text: "The dog is ", Level: "beginner", Cap: 20})
	h.next(t, &beginner)
	h.send(t, Request{ID: "x", Op: "suggest", Text: "The dog is ", Level: "expert", Cap: 20})
	h.next(t, &unknown)

	assert.Equal(t, "x", unknown.ID)
	assert.NotEmpty(t, unknown.Suggestions)
	assert.Equal(t, words(beginner), words(unknown))

	var bank WordBankResponse
	h.send(t, Request{ID: "w", Op: "wordbank", Level: "Year 3"})
	h.next(t, &bank)
	assert.Equal(t, "w", bank.ID)
	assert.Equal(t, "beginner", bank.Level)
	assert.NotEmpty(t, bank.Categories)
}

func TestAssess(t *testing.T) {
	h := startServer(t, nil, nil)

	h.send(t, Request{ID: "a1", Op: "assess", Text: "the dog ran."})
	var resp AssessResponse
	h.next(t, &resp)

	assert.Equal(t, "a1", resp.ID)
	assert.Equal(t, 17, resp.Total)
	assert.Len(t, resp.Objectives, 17)
	assert.InDelta(t, float64(resp.Met)/17, resp.Score, 1e-9)

	byID := make(map[string]ObjectiveStatus)
	for _, o := range resp.Objectives {
		byID[o.ID] = o
	}
	assert.False(t, byID["capitalLetters"].Met)
	assert.NotEmpty(t, byID["capitalLetters"].Tip)
	assert.Equal(t, "Year 1", byID["capitalLetters"].Stage)
	assert.True(t, byID["fullStops"].Met)
	assert.Empty(t, byID["fullStops"].Tip)
}

func TestWordBank(t *testing.T) {
	h := startServer(t, nil, nil)

	h.send(t, Request{ID: "w1", Op: "wordbank", Level: "beginner"})
	var resp WordBankResponse
	h.next(t, &resp)

	assert.Equal(t, "beginner", resp.Level)
	require.NotEmpty(t, resp.Categories)
	first := resp.Categories[0]
	assert.Equal(t, "sentenceStarters", first.ID)
	assert.NotEmpty(t, first.Color)

	var texts []string
	for _, e := range first.Entries {
		texts = append(texts, e.Text)
	}
	assert.Contains(t, texts, "I")
	assert.NotContains(t, texts, "In my opinion")
}

func TestConfigOp(t *testing.T) {
	h := startServer(t, nil, nil)

	level := "advanced"
	h.send(t, Request{ID: "c1", Op: "config", WorkspaceCap: intPtr(3), DefaultLevel: &level})
	var cfgResp ConfigResponse
	h.next(t, &cfgResp)
	assert.Equal(t, "ok", cfgResp.Status)
	assert.Equal(t, 3, cfgResp.WorkspaceCap)
	assert.Equal(t, "advanced", cfgResp.DefaultLevel)
	assert.False(t, cfgResp.Remote)

	h.send(t, Request{ID: "s", Op: "suggest"})
	var resp SuggestResponse
	h.next(t, &resp)
	assert.Equal(t, 3, resp.Count)

	bad := "expert"
	h.send(t, Request{ID: "c2", Op: "config", DefaultLevel: &bad})
	var e ErrorResponse
	h.next(t, &e)
	assert.Equal(t, 400, e.Code)
}

func TestRemoteFollowUp(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Remote.Enabled = true
	cfg.Remote.DebounceMs = 1
	h := startServer(t, cfg, stubFetcher{words: []string{"walrus"}})

	h.send(t, Request{ID: "r1", Op: "suggest", Text: "I wal", Cap: 20})
	var local, remote SuggestResponse
	h.next(t, &local)
	assert.Equal(t, "r1", local.ID)
	assert.False(t, local.Final)
	assert.NotContains(t, words(local), "walrus")

	h.next(t, &remote)
	assert.Equal(t, "r1", remote.ID)
	assert.True(t, remote.Final)
	assert.Equal(t, local.Token, remote.Token)
	assert.Contains(t, words(remote), "walrus")
}

func TestRemoteToggledAtRuntime(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Remote.DebounceMs = 1
	h := startServer(t, cfg, stubFetcher{words: []string{"walrus"}})

	var resp SuggestResponse
	h.send(t, Request{ID: "a", Op: "suggest", Text: "I wal"})
	h.next(t, &resp)
	assert.True(t, resp.Final)

	on := true
	h.send(t, Request{ID: "c", Op: "config", RemoteEnabled: &on})
	var cfgResp ConfigResponse
	h.next(t, &cfgResp)
	assert.True(t, cfgResp.Remote)

	h.send(t, Request{ID: "b", Op: "suggest", Text: "I wal", Cap: 20})
	h.next(t, &resp)
	assert.False(t, resp.Final)
	h.next(t, &resp)
	assert.True(t, resp.Final)
	assert.Contains(t, words(resp), "walrus")
}

func TestInvalidRequestKeepsServing(t *testing.T) {
	h := startServer(t, nil, nil)

	h.send(t, "not a map")
	var e ErrorResponse
	h.next(t, &e)
	assert.Equal(t, 400, e.Code)

	h.send(t, Request{ID: "h", Op: "health"})
	var status StatusResponse
	h.next(t, &status)
	assert.Equal(t, "ok", status.Status)
}

func TestStartReturnsOnEOF(t *testing.T) {
	h := startServer(t, nil, nil)
	require.NoError(t, h.in.Close())

	select {
	case err := <-h.done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestSuggestResponseIsCapitalized(t *testing.T) {
	h := startServer(t, nil, nil)

	h.send(t, Request{ID: "s", Op: "suggest", Text: "It rained. Th", Cap: 10})
	var resp SuggestResponse
	h.next(t, &resp)
	require.NotEmpty(t, resp.Suggestions)
	for _, w := range words(resp) {
		assert.True(t, strings.HasPrefix(w, "Th"), w)
	}
}
