package server

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/bastiangx/wordcoach/internal/logger"
	"github.com/bastiangx/wordcoach/internal/utils"
	"github.com/bastiangx/wordcoach/pkg/config"
	"github.com/bastiangx/wordcoach/pkg/lexicon"
	"github.com/bastiangx/wordcoach/pkg/suggest"
)

// Server handles the IPC for suggestions
type Server struct {
	engine     *suggest.Engine
	fetcher    suggest.Fetcher
	config     *config.Config
	configPath string

	reader io.Reader

	writeMu sync.Mutex
	encoder *msgpack.Encoder

	// session is only touched by the read loop
	session *suggest.Session

	requestCount int
	log          *log.Logger
}

// NewServer creates a server using stdin/stdout for IPC. fetcher may be nil;
// it is only used while remote suggestions are enabled in cfg.
func NewServer(engine *suggest.Engine, fetcher suggest.Fetcher, cfg *config.Config, configPath string) *Server {
	return NewServerWithIO(engine, fetcher, cfg, configPath, os.Stdin, os.Stdout)
}

// NewServerWithIO creates a server over the given streams.
func NewServerWithIO(engine *suggest.Engine, fetcher suggest.Fetcher, cfg *config.Config, configPath string, r io.Reader, w io.Writer) *Server {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	s := &Server{
		engine:     engine,
		fetcher:    fetcher,
		config:     cfg,
		configPath: configPath,
		reader:     r,
		encoder:    msgpack.NewEncoder(w),
		log:        logger.New("server"),
	}
	s.session = s.newSession()
	return s
}

func (s *Server) newSession() *suggest.Session {
	var fetcher suggest.Fetcher
	if s.config.Remote.Enabled {
		fetcher = s.fetcher
	}
	return suggest.NewSession(s.engine, fetcher, s.config.Remote.Debounce(), s.publishRemote)
}

// Start reads requests until the input ends. It returns nil on a clean EOF.
func (s *Server) Start() error {
	s.log.Debug("Starting Server.")
	defer func() { s.session.Close() }()

	s.send(StatusResponse{Status: "ready"})

	decoder := msgpack.NewDecoder(s.reader)
	for {
		raw, err := decoder.DecodeRaw()
		if err != nil {
			if errors.Is(err, io.EOF) {
				s.log.Debugf("Input closed after %d requests", s.requestCount)
				return nil
			}
			s.log.Errorf("Reading request stream: %v", err)
			s.sendError("", "Unreadable request stream", 400)
			return fmt.Errorf("read request: %w", err)
		}

		var req Request
		if err := msgpack.Unmarshal(raw, &req); err != nil {
			s.log.Warnf("Unmarshaling request: %v", err)
			s.sendError("", "Invalid msgpack request", 400)
			continue
		}
		s.requestCount++
		s.handleRequest(req)
	}
}

func (s *Server) handleRequest(req Request) {
	switch req.Op {
	case "suggest":
		s.handleSuggest(req)
	case "assess":
		s.handleAssess(req)
	case "wordbank":
		s.handleWordBank(req)
	case "config":
		s.handleConfig(req)
	case "health":
		s.send(StatusResponse{ID: req.ID, Status: "ok"})
	case "":
		s.sendError(req.ID, "Missing 'op' field", 400)
	default:
		s.sendError(req.ID, fmt.Sprintf("Unknown op: %s", req.Op), 400)
	}
}

func (s *Server) handleSuggest(req Request) {
	if !s.checkText(req) {
		return
	}
	level := s.levelFor(req)

	caretPos := len([]rune(req.Text))
	if req.Caret != nil {
		caretPos = *req.Caret
	}

	start := time.Now()
	up := s.session.UpdateTagged(req.ID, req.Text, caretPos, level, s.capFor(req))
	elapsed := time.Since(start)

	s.log.Debugf("suggest id=%s label=%s count=%d final=%t in %s",
		req.ID, up.Result.Classification.Label, len(up.Suggestions), up.Final, elapsed)
	s.send(suggestResponse(up, elapsed))
}

// publishRemote runs on the session's goroutine with the session lock held.
func (s *Server) publishRemote(up suggest.Update) {
	s.send(suggestResponse(up, 0))
}

func suggestResponse(up suggest.Update, elapsed time.Duration) SuggestResponse {
	ranks := utils.CreateRankList(len(up.Suggestions))
	suggestions := make([]Suggestion, len(up.Suggestions))
	for i, w := range up.Suggestions {
		suggestions[i] = Suggestion{Word: w, Rank: ranks[i]}
	}
	cls := up.Result.Classification
	return SuggestResponse{
		ID:          up.Tag,
		Suggestions: suggestions,
		Count:       len(suggestions),
		Label:       cls.Label.String(),
		List:        cls.List,
		Final:       up.Final,
		Token:       up.Token,
		TimeTaken:   elapsed.Microseconds(),
	}
}

func (s *Server) handleAssess(req Request) {
	if !s.checkText(req) {
		return
	}

	start := time.Now()
	assessment := s.engine.Assess(req.Text)
	objectives := make([]ObjectiveStatus, len(assessment))
	for i, v := range assessment {
		status := ObjectiveStatus{
			ID:    string(v.Objective.ID),
			Label: v.Objective.Label,
			Stage: v.Objective.Stage.String(),
			Met:   v.Met,
		}
		if !v.Met {
			status.Tip = v.Objective.Tip
		}
		objectives[i] = status
	}

	s.send(AssessResponse{
		ID:         req.ID,
		Objectives: objectives,
		Met:        len(assessment.Met()),
		Total:      len(assessment),
		Score:      assessment.Score(),
		TimeTaken:  time.Since(start).Microseconds(),
	})
}

func (s *Server) handleWordBank(req Request) {
	level := s.levelFor(req)
	bank := s.engine.Store().WordBank(level)
	categories := make([]WordBankCategory, len(bank))
	for i, c := range bank {
		entries := make([]WordBankEntry, len(c.Entries))
		for j, e := range c.Entries {
			entries[j] = WordBankEntry{Text: e.Text, Hint: e.Hint}
		}
		categories[i] = WordBankCategory{
			ID:      string(c.ID),
			Label:   c.Label,
			Color:   c.Color,
			Entries: entries,
		}
	}
	s.send(WordBankResponse{ID: req.ID, Level: level.String(), Categories: categories})
}

func (s *Server) handleConfig(req Request) {
	if req.DefaultLevel != nil {
		if _, ok := lexicon.ParseLevel(*req.DefaultLevel); !ok {
			s.sendError(req.ID, fmt.Sprintf("Unknown level: %s", *req.DefaultLevel), 400)
			return
		}
	}

	wasRemote := s.config.Remote.Enabled
	if err := s.config.Update(s.configPath, req.WordBankCap, req.WorkspaceCap, req.DefaultLevel, req.RemoteEnabled); err != nil {
		// the in-memory values are already applied
		s.log.Warnf("Saving config to %s: %v", s.configPath, err)
	}
	if s.config.Remote.Enabled != wasRemote {
		s.session.Close()
		s.session = s.newSession()
		s.log.Debugf("Remote suggestions enabled=%t", s.config.Remote.Enabled)
	}

	s.send(ConfigResponse{
		ID:           req.ID,
		Status:       "ok",
		WordBankCap:  s.config.Engine.WordBankCap,
		WorkspaceCap: s.config.Engine.WorkspaceCap,
		DefaultLevel: s.config.Engine.Level().String(),
		Remote:       s.config.Remote.Enabled && s.fetcher != nil,
	})
}

func (s *Server) checkText(req Request) bool {
	limit := s.config.Server.MaxTextLength
	if n := len([]rune(req.Text)); n > limit {
		s.sendError(req.ID, fmt.Sprintf("Text exceeds maximum length of %d characters", limit), 413)
		s.log.Debugf("Text too long in request %s: %d runes", req.ID, n)
		return false
	}
	return true
}

// levelFor resolves the request level, or the configured default when
// none is given. An unknown level falls back to beginner.
func (s *Server) levelFor(req Request) lexicon.Level {
	if req.Level == "" {
		return s.config.Engine.Level()
	}
	level, ok := lexicon.ParseLevel(req.Level)
	if !ok {
		s.log.Warnf("Unknown level %q in request %s, using %s", req.Level, req.ID, lexicon.Beginner)
		return lexicon.Beginner
	}
	return level
}

// capFor maps the requested cap onto [1, max_cap]. Zero or negative means
// the default of the request's flow.
func (s *Server) capFor(req Request) int {
	requested := req.Cap
	if requested <= 0 {
		requested = s.config.Engine.WorkspaceCap
		if req.Flow == "wordbank" {
			requested = s.config.Engine.WordBankCap
		}
	}
	return min(requested, s.config.Server.MaxCap)
}

func (s *Server) send(response any) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	if err := s.encoder.Encode(response); err != nil {
		s.log.Errorf("Encoding response: %v", err)
	}
}

func (s *Server) sendError(id, message string, code int) {
	s.send(ErrorResponse{ID: id, Error: message, Code: code})
}
