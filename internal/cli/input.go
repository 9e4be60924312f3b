// Package cli handles cmd line input and suggestions for DBG and testing the engine
package cli

import (
	"bufio"
	"errors"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/bastiangx/wordcoach/internal/logger"
	"github.com/bastiangx/wordcoach/pkg/lexicon"
	"github.com/bastiangx/wordcoach/pkg/suggest"
)

// CaretMarker marks the caret inside an input line. Without it the caret
// sits at the end of the line.
const CaretMarker = "|"

var (
	wordStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("75"))
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true)
	tipStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Italic(true)
)

// InputHandler reads lines of text, one per keystroke snapshot, and prints
// what the engine would suggest at the caret. Lines starting with ':' are
// commands:
//
//	:level <beginner|intermediate|advanced>
//	:cap <n>
//	:bank
//	:quit
type InputHandler struct {
	engine  *suggest.Engine
	session *suggest.Session
	level   lexicon.Level
	limit   int

	in  io.Reader
	out *log.Logger
}

// NewInputHandler creates a handler reading from in and printing to out.
// fetcher may be nil; remote lists are printed as they arrive.
func NewInputHandler(engine *suggest.Engine, fetcher suggest.Fetcher, debounce time.Duration, level lexicon.Level, limit int, in io.Reader, out io.Writer) *InputHandler {
	h := &InputHandler{
		engine: engine,
		level:  level.Normalize(),
		limit:  max(limit, 1),
		in:     in,
		out:    logger.NewWithWriter(out, ""),
	}
	h.session = suggest.NewSession(engine, fetcher, debounce, h.printRemote)
	return h
}

// Start begins the interface loop. It returns nil at end of input or on :quit.
func (h *InputHandler) Start() error {
	defer h.session.Close()

	h.out.Print("WordCoach CLI [BETA]")
	h.out.Printf("type a sentence, use %q for the caret, press Enter for suggestions (:quit to exit):", CaretMarker)

	reader := bufio.NewReader(h.in)
	for {
		line, err := reader.ReadString('\n')
		line = strings.TrimRight(line, "\r\n")
		if line != "" {
			if !h.handleInput(line) {
				return nil
			}
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
	}
}

// handleInput runs one line. It returns false when the loop should stop.
func (h *InputHandler) handleInput(line string) bool {
	if strings.HasPrefix(line, ":") {
		return h.handleCommand(strings.Fields(line[1:]))
	}
	text, caretPos := SplitCaret(line)
	start := time.Now()
	up := h.session.Update(text, caretPos, h.level, h.limit)
	log.Debugf("Took [ %v ] for %q", time.Since(start), line)

	res := up.Result
	h.out.Printf("%s prefix=%q previous=%q list=%t",
		labelStyle.Render(res.Classification.Label.String()),
		res.Context.Prefix, res.Context.PreviousWord, res.Classification.List)

	if len(up.Suggestions) == 0 {
		h.out.Warn("No suggestions")
	}
	h.printList(up.Suggestions)

	unmet := res.Assessment.Unmet()
	h.out.Printf("objectives met: %d/%d", len(res.Assessment)-len(unmet), len(res.Assessment))
	for _, o := range unmet {
		if !h.level.Allows(o.Level()) {
			continue
		}
		h.out.Printf("  - %s (%s) %s", o.Label, o.Stage, tipStyle.Render(o.Tip))
	}
	return true
}

func (h *InputHandler) handleCommand(fields []string) bool {
	if len(fields) == 0 {
		h.out.Error("Empty command")
		return true
	}
	switch fields[0] {
	case "quit", "q":
		return false
	case "level":
		if len(fields) < 2 {
			h.out.Printf("level: %s", h.level)
			return true
		}
		lvl, ok := lexicon.ParseLevel(fields[1])
		if !ok {
			h.out.Errorf("Unknown level: %s", fields[1])
			return true
		}
		h.level = lvl
		h.out.Printf("level: %s", h.level)
	case "cap":
		if len(fields) < 2 {
			h.out.Printf("cap: %d", h.limit)
			return true
		}
		n, err := strconv.Atoi(fields[1])
		if err != nil || n < 1 {
			h.out.Errorf("Invalid cap: %s", fields[1])
			return true
		}
		h.limit = n
		h.out.Printf("cap: %d", h.limit)
	case "bank":
		for _, c := range h.engine.Store().WordBank(h.level) {
			texts := make([]string, len(c.Entries))
			for i, e := range c.Entries {
				texts[i] = e.Text
			}
			h.out.Printf("%s: %s", labelStyle.Render(c.Label), strings.Join(texts, ", "))
		}
	default:
		h.out.Errorf("Unknown command: %s", fields[0])
	}
	return true
}

// printRemote runs on the session goroutine.
func (h *InputHandler) printRemote(up suggest.Update) {
	h.out.Printf("remote list for #%d:", up.Token)
	h.printList(up.Suggestions)
}

func (h *InputHandler) printList(words []string) {
	for i, w := range words {
		h.out.Printf("%2d. %s", i+1, wordStyle.Render(w))
	}
}

// SplitCaret removes the first caret marker from line and returns the text
// with the rune offset of the caret. Without a marker the caret is at the end.
func SplitCaret(line string) (string, int) {
	idx := strings.Index(line, CaretMarker)
	if idx < 0 {
		return line, len([]rune(line))
	}
	text := line[:idx] + line[idx+len(CaretMarker):]
	return text, len([]rune(line[:idx]))
}
