package suggest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/fluentkit/sift/pkg/match"
)

func TestLexiconPrefixHarvest(t *testing.T) {
	lex := NewLexicon()
	for _, w := range []string{"Apple", "Apricot", "Banana", "applesauce"} {
		lex.Add(w, nil)
	}

	items := lex.Suggest("ap")
	if len(items) != 3 {
		t.Fatalf("got %d candidates %v, want 3", len(items), texts(items))
	}
	for _, it := range items {
		if it.Score != 0 {
			t.Errorf("harvested candidate %q carries score %v, want 0", it.Text, it.Score)
		}
	}
}

func TestLexiconCaseInsensitiveKeys(t *testing.T) {
	lex := NewLexicon()
	lex.Add("Berlin", "de")

	items := lex.Suggest("BER")
	if len(items) != 1 || items[0].Text != "Berlin" || items[0].Payload != "de" {
		t.Errorf("got %v, want original casing with payload", items)
	}
}

func TestLexiconFullVisitFallback(t *testing.T) {
	lex := NewLexicon()
	for _, w := range []string{"banana", "cabana"} {
		lex.Add(w, nil)
	}

	// "ban" is not a stored prefix of "cabana" but the fallback visit must
	// surface it so the substring tier can score it.
	items := lex.Suggest("xan")
	if len(items) != 2 {
		t.Errorf("fallback visit returned %d candidates, want 2", len(items))
	}
}

func TestLexiconWithRanker(t *testing.T) {
	lex := NewLexicon()
	for _, w := range []string{"Apple", "Apricot", "Banana"} {
		lex.Add(w, nil)
	}

	ranked := Rank("ap", nil, lex, 8, match.Options{Fuzzy: true})
	got := texts(ranked)
	if len(got) != 2 || got[0] != "Apple" || got[1] != "Apricot" {
		t.Errorf("got %v, want [Apple Apricot]", got)
	}
}

func TestLexiconEmptyQuery(t *testing.T) {
	lex := NewLexicon()
	lex.Add("apple", nil)

	if items := lex.Suggest("  "); len(items) != 0 {
		t.Errorf("blank query harvested %v, want nothing", texts(items))
	}
}

func TestLexiconDuplicateFoldedKeys(t *testing.T) {
	lex := NewLexicon()
	lex.Add("API", 1)
	lex.Add("api", 2)

	items := lex.Suggest("ap")
	if len(items) != 2 {
		t.Fatalf("got %d entries, want both casings", len(items))
	}
	if lex.Len() != 2 {
		t.Errorf("Len = %d, want 2", lex.Len())
	}
}

func TestLoadWordList(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "words.txt")
	content := "# fruit lexicon\napple\t120\napricot\t80\n\nbanana\ncherry\tnotanumber\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	lex, err := LoadWordList(path)
	if err != nil {
		t.Fatal(err)
	}
	if lex.Len() != 4 {
		t.Errorf("Len = %d, want 4", lex.Len())
	}

	items := lex.Suggest("apple")
	if len(items) != 1 || items[0].Payload != 120 {
		t.Errorf("got %v, want apple with weight payload 120", items)
	}
}

func TestLoadWordListMissing(t *testing.T) {
	if _, err := LoadWordList(filepath.Join(t.TempDir(), "nope.txt")); err == nil {
		t.Error("expected error for missing file")
	}
}
