package suggest

import (
	"errors"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/tchap/go-patricia/v2/patricia"
)

// maxHarvest caps how many candidates a single query pulls out of the
// trie before scoring. Ranking is O(candidates), so unbounded harvests
// would make short prefixes expensive on large lexicons.
const maxHarvest = 2048

// Lexicon is a patricia-trie backed Source over a fixed vocabulary.
// Lookups harvest the subtree under the folded query prefix; when the
// prefix yields nothing (typos, mid-word fragments) it falls back to a
// capped full visit so the substring and fuzzy tiers still get material.
//
// A Lexicon is safe to build once and query many times from a single
// owner; it does no internal locking.
type Lexicon struct {
	trie  *patricia.Trie
	count int
}

// lexiconEntry keeps the original casing alongside the caller payload.
// The trie key is case folded so prefix harvests are case-insensitive.
type lexiconEntry struct {
	text    string
	payload any
}

// NewLexicon creates an empty lexicon.
func NewLexicon() *Lexicon {
	return &Lexicon{trie: patricia.NewTrie()}
}

// Add inserts a candidate with an optional payload. Entries sharing the
// same folded text accumulate under one key and all surface on lookup.
func (l *Lexicon) Add(text string, payload any) {
	if text == "" {
		return
	}
	key := patricia.Prefix(strings.ToLower(text))
	entry := lexiconEntry{text: text, payload: payload}

	if item := l.trie.Get(key); item != nil {
		entries := item.([]lexiconEntry)
		l.trie.Set(key, append(entries, entry))
	} else {
		l.trie.Insert(key, []lexiconEntry{entry})
	}
	l.count++
}

// Len returns the number of entries added.
func (l *Lexicon) Len() int {
	return l.count
}

// Suggest implements Source. Returned suggestions carry a zero score;
// Rank scores them against the live query.
func (l *Lexicon) Suggest(query string) []Suggestion {
	prefix := strings.ToLower(strings.TrimSpace(query))
	if prefix == "" {
		return nil
	}

	items := l.harvest(patricia.Prefix(prefix))
	if len(items) > 0 {
		return items
	}
	// No subtree under the prefix: visit everything (capped) and let the
	// scorer sort out substring and fuzzy matches.
	return l.harvest(nil)
}

// errHarvestFull stops a trie walk once maxHarvest candidates are out.
var errHarvestFull = errors.New("harvest full")

func (l *Lexicon) harvest(prefix patricia.Prefix) []Suggestion {
	var items []Suggestion

	visit := func(p patricia.Prefix, item patricia.Item) error {
		entries, ok := item.([]lexiconEntry)
		if !ok {
			log.Errorf("unexpected trie item type %T at %q", item, p)
			return nil
		}
		for _, e := range entries {
			items = append(items, Suggestion{Text: e.text, Payload: e.payload})
		}
		if len(items) >= maxHarvest {
			return errHarvestFull
		}
		return nil
	}

	var err error
	if prefix == nil {
		err = l.trie.Visit(visit)
	} else {
		err = l.trie.VisitSubtree(prefix, visit)
	}
	if err != nil && err != errHarvestFull {
		log.Errorf("trie visit failed: %v", err)
		return nil
	}
	return items
}
