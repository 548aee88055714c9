// Package vocab provides the token vocabulary used by all tokenizer families.
// A vocabulary maps token strings to integer IDs and back, and tracks which
// entries are registered special tokens (separators, padding, and so on).
package vocab

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
)

// ErrInvalidVocabulary is returned when a vocabulary file is malformed or a
// required token is missing from it.
var ErrInvalidVocabulary = errors.New("invalid vocabulary")

// Vocabulary is an immutable token-string to token-ID mapping with a reverse
// mapping and a registry of special tokens. It is built once at tokenizer
// construction and is safe for concurrent reads afterwards.
type Vocabulary struct {
	values  map[string]int64
	indices map[int64]string

	specialValues  map[string]int64
	specialIndices map[int64]string

	unknown string
}

// New builds a vocabulary from an explicit token to ID mapping. The unknown
// token must be present in the mapping; lookups of out-of-vocabulary tokens
// fall back to its ID. IDs must be unique.
func New(values map[string]int64, unknown string) (*Vocabulary, error) {
	if len(values) == 0 {
		return nil, fmt.Errorf("empty token mapping: %w", ErrInvalidVocabulary)
	}
	if _, ok := values[unknown]; !ok {
		return nil, fmt.Errorf("unknown token %q not in vocabulary: %w", unknown, ErrInvalidVocabulary)
	}

	indices := make(map[int64]string, len(values))
	owned := make(map[string]int64, len(values))
	for token, id := range values {
		if prev, ok := indices[id]; ok {
			return nil, fmt.Errorf("duplicate ID %d for tokens %q and %q: %w", id, prev, token, ErrInvalidVocabulary)
		}
		indices[id] = token
		owned[token] = id
	}

	return &Vocabulary{
		values:         owned,
		indices:        indices,
		specialValues:  make(map[string]int64),
		specialIndices: make(map[int64]string),
		unknown:        unknown,
	}, nil
}

// FromFlatFile loads a vocabulary from a flat text file with one token per
// line; the zero-based line number is the token ID. This is the format used
// by BERT-style vocab.txt files.
func FromFlatFile(path, unknown string) (*Vocabulary, error) {
	if path == "" {
		return nil, fmt.Errorf("vocabulary path is empty: %w", ErrInvalidVocabulary)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open vocabulary %q: %w", path, err)
	}
	defer f.Close()

	values := make(map[string]int64)
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var id int64
	for scanner.Scan() {
		token := scanner.Text()
		if _, ok := values[token]; ok {
			return nil, fmt.Errorf("duplicate token %q at line %d in %q: %w", token, id+1, path, ErrInvalidVocabulary)
		}
		values[token] = id
		id++
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read vocabulary %q: %w", path, err)
	}

	v, err := New(values, unknown)
	if err != nil {
		return nil, fmt.Errorf("vocabulary %q: %w", path, err)
	}
	return v, nil
}

// FromJSONFile loads a vocabulary from a JSON object mapping token strings to
// integer IDs, the format used by RoBERTa/GPT-2 vocab.json and Marian
// vocabulary files.
func FromJSONFile(path, unknown string) (*Vocabulary, error) {
	if path == "" {
		return nil, fmt.Errorf("vocabulary path is empty: %w", ErrInvalidVocabulary)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("open vocabulary %q: %w", path, err)
	}

	var values map[string]int64
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("decode vocabulary %q: %w", path, err)
	}

	v, err := New(values, unknown)
	if err != nil {
		return nil, fmt.Errorf("vocabulary %q: %w", path, err)
	}
	return v, nil
}

// Len returns the number of entries in the vocabulary.
func (v *Vocabulary) Len() int {
	return len(v.values)
}

// ToID maps a token string to its ID. Registered special tokens are checked
// first; tokens absent from the vocabulary resolve to the unknown token's ID.
func (v *Vocabulary) ToID(token string) int64 {
	if id, ok := v.specialValues[token]; ok {
		return id
	}
	if id, ok := v.values[token]; ok {
		return id
	}
	return v.values[v.unknown]
}

// ToToken maps an ID back to its token string. Unmapped IDs resolve to the
// unknown token string.
func (v *Vocabulary) ToToken(id int64) string {
	if token, ok := v.specialIndices[id]; ok {
		return token
	}
	if token, ok := v.indices[id]; ok {
		return token
	}
	return v.unknown
}

// Has reports whether the token has its own vocabulary entry (the unknown
// fallback does not count).
func (v *Vocabulary) Has(token string) bool {
	if _, ok := v.specialValues[token]; ok {
		return true
	}
	_, ok := v.values[token]
	return ok
}

// Register marks tokens as special. Every token must already be present in
// the vocabulary; registering an absent token reports ErrInvalidVocabulary.
// Empty strings are skipped so optional special tokens can be passed through.
func (v *Vocabulary) Register(tokens ...string) error {
	for _, token := range tokens {
		if token == "" {
			continue
		}
		id, ok := v.values[token]
		if !ok {
			return fmt.Errorf("special token %q not in vocabulary: %w", token, ErrInvalidVocabulary)
		}
		v.specialValues[token] = id
		v.specialIndices[id] = token
	}
	return nil
}

// IsSpecialID reports whether the ID belongs to a registered special token.
func (v *Vocabulary) IsSpecialID(id int64) bool {
	_, ok := v.specialIndices[id]
	return ok
}

// Specials returns the registered special tokens sorted by ID.
func (v *Vocabulary) Specials() []string {
	out := make([]string, 0, len(v.specialValues))
	for token := range v.specialValues {
		out = append(out, token)
	}
	sort.Slice(out, func(i, j int) bool {
		return v.specialValues[out[i]] < v.specialValues[out[j]]
	})
	return out
}

// UnknownToken returns the configured unknown token string.
func (v *Vocabulary) UnknownToken() string {
	return v.unknown
}

// UnknownID returns the ID of the unknown token.
func (v *Vocabulary) UnknownID() int64 {
	return v.values[v.unknown]
}
