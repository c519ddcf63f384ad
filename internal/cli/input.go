// Package cli handles cmd line input and suggestions for DBG and testing various features
package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/log"

	"github.com/fluentkit/sift/internal/utils"
	"github.com/fluentkit/sift/pkg/match"
	"github.com/fluentkit/sift/pkg/suggest"
)

// InputHandler processes user input from stdin, ranking each query
// against a suggestion source. It accepts flags to control behavior such
// as minimum and maximum query length and the suggestion limit.
type InputHandler struct {
	source         suggest.Source
	opts           match.Options
	minQueryLength int
	maxQueryLength int
	suggestLimit   int
}

// NewInputHandler handles initialization of the InputHandler with basic parameters
func NewInputHandler(source suggest.Source, opts match.Options, minLength, maxLength, limit int) *InputHandler {
	return &InputHandler{
		source:         source,
		opts:           opts,
		minQueryLength: minLength,
		maxQueryLength: maxLength,
		suggestLimit:   limit,
	}
}

// Start begins the interface loop.
// It continuously prompts for input, reads a line from stdin,
// and passes the trimmed input to handleInput() for processing.
// Loop terminates if an error occurs while reading from stdin
func (h *InputHandler) Start() error {
	log.Print("Sift CLI")
	reader := bufio.NewReader(os.Stdin)
	log.Print("type something and press Enter to see the ranked suggestions (Ctrl+C to exit):")

	for {
		log.Print("> ")
		query, err := reader.ReadString('\n')
		if err != nil {
			return err
		}
		query = strings.TrimSpace(query)
		if query == "" {
			continue
		}
		if utils.HasPrefixIgnoreCase(query, "exit") || utils.HasPrefixIgnoreCase(query, "quit") {
			return nil
		}
		h.handleInput(query)
	}
}

// handleInput ranks a single query. It validates the query's length, asks
// the source for candidates, and prints the scored results to the log.
func (h *InputHandler) handleInput(query string) {
	if utf8.RuneCountInString(query) < h.minQueryLength {
		log.Errorf("Query too short: %s", query)
		return
	}
	if utf8.RuneCountInString(query) > h.maxQueryLength {
		log.Errorf("Query too long: %s", query)
		return
	}

	start := time.Now()
	log.Debug("Processing request for", "query", query)

	suggestions := suggest.Rank(query, nil, h.source, h.suggestLimit, h.opts)

	elapsed := time.Since(start)
	log.Debugf("Took [ %v ] for query '%s'", elapsed, query)

	if len(suggestions) == 0 {
		log.Warnf("No suggestions found for query: '%s'", query)
		return
	}

	log.Printf("Found %d suggestions for query '%s':", len(suggestions), query)
	for i, s := range suggestions {
		clWord := fmt.Sprintf("\033[38;5;75m%s\033[0m", s.Text)
		log.Printf("%2d. %-40s (score: %6.2f)", i+1, clWord, s.Score)
	}
}
