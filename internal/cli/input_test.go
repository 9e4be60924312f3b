package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bastiangx/wordcoach/pkg/lexicon"
	"github.com/bastiangx/wordcoach/pkg/suggest"
)

func run(t *testing.T, input string) string {
	t.Helper()
	engine := suggest.NewEngine(lexicon.Builtin(), suggest.Options{})
	var out bytes.Buffer
	h := NewInputHandler(engine, nil, 0, lexicon.Beginner, 6, strings.NewReader(input), &out)
	require.NoError(t, h.Start())
	return out.String()
}

func TestSplitCaret(t *testing.T) {
	testCases := []struct {
		line  string
		text  string
		caret int
	}{
		{"I like", "I like", 6},
		{"I |like", "I like", 2},
		{"|", "", 0},
		{"café| au lait", "café au lait", 4},
		{"a|b|c", "ab|c", 1},
	}
	for _, tc := range testCases {
		text, caret := SplitCaret(tc.line)
		assert.Equal(t, tc.text, text, tc.line)
		assert.Equal(t, tc.caret, caret, tc.line)
	}
}

func TestSuggestLine(t *testing.T) {
	out := run(t, "|\n")
	assert.Contains(t, out, "sentenceStart")
	assert.Contains(t, out, "There is")
	assert.Contains(t, out, "objectives met:")
}

func TestTrailingSpaceKept(t *testing.T) {
	out := run(t, "I \n")
	assert.Contains(t, out, "afterPronoun")
}

func TestCommands(t *testing.T) {
	out := run(t, ":level advanced\n:cap 3\n:level expert\n:cap x\n:bank\n:nope\n:quit\nI \n")
	assert.Contains(t, out, "level: advanced")
	assert.Contains(t, out, "cap: 3")
	assert.Contains(t, out, "Unknown level: expert")
	assert.Contains(t, out, "Invalid cap: x")
	assert.Contains(t, out, "Sentence starters")
	assert.Contains(t, out, "In my opinion")
	assert.Contains(t, out, "Unknown command: nope")
	// nothing after :quit runs
	assert.NotContains(t, out, "afterPronoun")
}
