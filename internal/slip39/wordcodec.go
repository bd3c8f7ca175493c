package slip39

import (
	"strings"

	"github.com/mrz1836/go-sanitize"
)

// WordListSize is the fixed size of a SLIP-39 word list; each word
// maps to a 10-bit index.
const WordListSize = 1024

// WordCodec converts between mnemonic words and their 10-bit indices.
// Loading the actual word list is an external collaborator's job
// (internal/wordlist embeds a fixed 1024-word list, which is not the
// published SLIP-39 word list); WordCodec only
// constrains the word<->index conversion interface.
type WordCodec struct {
	words   []string
	indices map[string]int
}

// NewWordCodec builds a codec from an ordered list of exactly
// WordListSize words.
func NewWordCodec(words []string) (*WordCodec, error) {
	if len(words) != WordListSize {
		return nil, ErrInvalidGroupConfig
	}
	indices := make(map[string]int, len(words))
	for i, w := range words {
		indices[strings.ToLower(w)] = i
	}
	return &WordCodec{words: append([]string(nil), words...), indices: indices}, nil
}

// WordsToIndices converts a whitespace-separated mnemonic sentence
// into its word indices, case-insensitively. The sentence is sanitized
// first so that stray punctuation or control characters picked up from
// a pasted backup card don't masquerade as part of a word.
func (c *WordCodec) WordsToIndices(sentence string) ([]uint32, error) {
	fields := strings.Fields(sanitize.AlphaNumeric(sentence, true))
	out := make([]uint32, len(fields))
	for i, w := range fields {
		idx, ok := c.indices[strings.ToLower(w)]
		if !ok {
			return nil, ErrUnknownWord
		}
		out[i] = uint32(idx)
	}
	return out, nil
}

// IndicesToWords converts word indices back into a space-separated
// mnemonic sentence.
func (c *WordCodec) IndicesToWords(indices []uint32) (string, error) {
	words := make([]string, len(indices))
	for i, idx := range indices {
		if int(idx) >= len(c.words) {
			return "", ErrUnknownWord
		}
		words[i] = c.words[idx]
	}
	return strings.Join(words, " "), nil
}

// Contains reports whether w is a valid word in the list.
func (c *WordCodec) Contains(w string) bool {
	_, ok := c.indices[strings.ToLower(w)]
	return ok
}

// Words returns the full ordered word list.
func (c *WordCodec) Words() []string {
	return append([]string(nil), c.words...)
}
