package server

import (
	"fmt"
	"io"
	"os"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/fluentkit/sift/pkg/config"
	"github.com/fluentkit/sift/pkg/match"
	"github.com/fluentkit/sift/pkg/suggest"
)

// maxQueryLength bounds incoming queries; anything longer is rejected
// rather than ranked.
const maxQueryLength = 60

// envelope is the superset of incoming message fields. Messages with an
// action are config requests; everything else is a query.
type envelope struct {
	ID             string `msgpack:"id"`
	Query          string `msgpack:"q"`
	Limit          int    `msgpack:"l"`
	Action         string `msgpack:"action"`
	MaxSuggestions *int   `msgpack:"max_suggestions"`
	MinQueryLength *int   `msgpack:"min_query_length"`
	DebounceMs     *int   `msgpack:"debounce_ms"`
	Fuzzy          *bool  `msgpack:"fuzzy"`
}

// Server handles the IPC for suggestion ranking
type Server struct {
	source *suggest.Lexicon
	cfg    *config.Config
	dec    *msgpack.Decoder
	enc    *msgpack.Encoder
}

// NewServer creates a ranking server over the lexicon using stdin/stdout
// for IPC.
func NewServer(source *suggest.Lexicon, cfg *config.Config) *Server {
	return NewServerWithIO(source, cfg, os.Stdin, os.Stdout)
}

// NewServerWithIO creates a ranking server over explicit streams.
func NewServerWithIO(source *suggest.Lexicon, cfg *config.Config, r io.Reader, w io.Writer) *Server {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return &Server{
		source: source,
		cfg:    cfg,
		dec:    msgpack.NewDecoder(r),
		enc:    msgpack.NewEncoder(w),
	}
}

// Start begins listening for IPC requests
func (s *Server) Start() error {
	log.Debug("Starting Server.")

	// Signal that the server is ready
	s.send(map[string]string{"status": "ready"})

	// incoming requests stdin
	for {
		var msg envelope
		if err := s.dec.Decode(&msg); err != nil {
			if err == io.EOF {
				return nil
			}
			log.Errorf("Decoding request: %v", err)
			return err
		}
		s.handleRequest(msg)
	}
}

func (s *Server) handleRequest(msg envelope) {
	if msg.Action != "" {
		s.handleConfig(msg)
		return
	}
	s.handleQuery(msg)
}

// handleQuery validates the request, ranks the query against the lexicon,
// and sends the response with 1-based rank positions and timing info.
func (s *Server) handleQuery(msg envelope) {
	query := msg.Query

	if query == "" {
		s.sendError(msg.ID, "Missing 'q' parameter", 400)
		log.Debug("Query is empty in request")
		return
	}
	if utf8.RuneCountInString(query) < s.cfg.Suggest.MinQueryLength {
		s.sendError(msg.ID, fmt.Sprintf("Query must be at least %d characters", s.cfg.Suggest.MinQueryLength), 400)
		log.Debug("Query is too short in request")
		return
	}
	if utf8.RuneCountInString(query) > maxQueryLength {
		s.sendError(msg.ID, fmt.Sprintf("Query exceeds maximum length of %d characters", maxQueryLength), 400)
		log.Debug("Query is too long in request")
		return
	}

	limit := msg.Limit
	if limit < 1 {
		limit = s.cfg.Suggest.MaxSuggestions
	}
	if max := s.cfg.Server.MaxLimit; max > 0 && limit > max {
		limit = max
	}

	opts := match.Options{
		Fuzzy:         s.cfg.Suggest.Fuzzy,
		CaseSensitive: s.cfg.Suggest.CaseSensitive,
	}

	start := time.Now()
	ranked := suggest.Rank(query, nil, s.source, limit, opts)
	elapsed := time.Since(start)

	suggestions := make([]RankedSuggestion, len(ranked))
	for i, r := range ranked {
		suggestions[i] = RankedSuggestion{Word: r.Text, Rank: uint16(i + 1)}
	}

	s.send(QueryResponse{
		ID:          msg.ID,
		Suggestions: suggestions,
		Count:       len(suggestions),
		TimeTaken:   elapsed.Microseconds(),
	})
}

// handleConfig applies runtime ranking parameter changes. "get" reports
// the current values; "set" applies the pointer fields that are present.
func (s *Server) handleConfig(msg envelope) {
	switch msg.Action {
	case "get":
		s.sendConfig(msg.ID, "ok")
	case "set":
		suggestCfg := &s.cfg.Suggest
		if msg.MaxSuggestions != nil {
			suggestCfg.MaxSuggestions = *msg.MaxSuggestions
		}
		if msg.MinQueryLength != nil {
			suggestCfg.MinQueryLength = *msg.MinQueryLength
		}
		if msg.DebounceMs != nil {
			suggestCfg.DebounceMs = *msg.DebounceMs
		}
		if msg.Fuzzy != nil {
			suggestCfg.Fuzzy = *msg.Fuzzy
		}
		s.sendConfig(msg.ID, "updated")
	default:
		s.send(ConfigResponse{
			ID:     msg.ID,
			Status: "error",
			Error:  fmt.Sprintf("Unknown action: %s", msg.Action),
		})
	}
}

func (s *Server) sendConfig(id, status string) {
	s.send(ConfigResponse{
		ID:             id,
		Status:         status,
		MaxSuggestions: s.cfg.Suggest.MaxSuggestions,
		MinQueryLength: s.cfg.Suggest.MinQueryLength,
		DebounceMs:     s.cfg.Suggest.DebounceMs,
		Fuzzy:          s.cfg.Suggest.Fuzzy,
	})
}

// send marshals the given response and writes it to the client stream.
func (s *Server) send(response interface{}) {
	if err := s.enc.Encode(response); err != nil {
		log.Errorf("Encoding response: %v", err)
	}
}

// sendError sends an error response
func (s *Server) sendError(id, message string, code int) {
	s.send(QueryError{
		ID:    id,
		Error: message,
		Code:  code,
	})
}
