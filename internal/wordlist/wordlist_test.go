package wordlist

import "testing"

func TestNewBuildsValidCodec(t *testing.T) {
	codec, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if len(codec.Words()) != 1024 {
		t.Fatalf("expected 1024 words, got %d", len(codec.Words()))
	}
}

func TestWordsAreUnique(t *testing.T) {
	seen := make(map[string]bool, len(words))
	for _, w := range words {
		if seen[w] {
			t.Fatalf("duplicate word %q", w)
		}
		seen[w] = true
	}
}

func TestSuggestFindsCloseMatch(t *testing.T) {
	target := words[100]
	typo := target + "x"
	suggestion := Suggest(typo)
	if suggestion != target {
		t.Fatalf("Suggest(%q) = %q, want %q", typo, suggestion, target)
	}
}
