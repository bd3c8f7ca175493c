// Package wordlist supplies the fixed 1024-word dictionary that a
// slip39.WordCodec is built from, plus typo suggestions when decoding
// fails on an unrecognized word.
package wordlist

import (
	_ "embed"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/mrz1836/go-slip39/internal/slip39"
)

//go:embed words.txt
var wordlistAsset string

// words is the parsed, ordered dictionary; index i's word must encode
// to word-index i.
var words = parseWordlist(wordlistAsset)

func parseWordlist(asset string) []string {
	lines := strings.Split(strings.TrimSpace(asset), "\n")
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		l = strings.TrimSpace(l)
		if l != "" {
			out = append(out, l)
		}
	}
	return out
}

// New builds a slip39.WordCodec from the embedded dictionary.
func New() (*slip39.WordCodec, error) {
	return slip39.NewWordCodec(words)
}

// Words returns the embedded dictionary in index order.
func Words() []string {
	out := make([]string, len(words))
	copy(out, words)
	return out
}

// Suggest returns the dictionary word closest to w by Levenshtein
// distance, for a "did you mean" hint when decoding rejects an
// unrecognized word.
func Suggest(w string) string {
	w = strings.ToLower(strings.TrimSpace(w))
	best := ""
	bestDist := -1
	for _, candidate := range words {
		d := levenshtein.ComputeDistance(w, candidate)
		if bestDist == -1 || d < bestDist {
			bestDist = d
			best = candidate
		}
	}
	return best
}
