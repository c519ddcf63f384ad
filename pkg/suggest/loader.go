package suggest

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
)

// LoadWordList reads a plain-text vocabulary into a Lexicon. Each line is
// either a bare word or "word<TAB>weight"; the weight, when present,
// becomes the entry payload. Blank lines and '#' comments are skipped,
// malformed weights are logged and the word kept without one.
func LoadWordList(path string) (*Lexicon, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open word list %s: %w", path, err)
	}
	defer file.Close()

	lexicon := NewLexicon()
	scanner := bufio.NewScanner(file)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		word, rest, hasWeight := strings.Cut(line, "\t")
		word = strings.TrimSpace(word)
		if word == "" {
			continue
		}

		var payload any
		if hasWeight {
			weight, err := strconv.Atoi(strings.TrimSpace(rest))
			if err != nil {
				log.Warnf("%s:%d: bad weight %q, keeping word without one", path, lineNum, rest)
			} else {
				payload = weight
			}
		}
		lexicon.Add(word, payload)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read word list %s: %w", path, err)
	}

	log.Debugf("loaded %d entries from %s", lexicon.Len(), path)
	return lexicon, nil
}
