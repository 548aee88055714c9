// Package dataset exposes small adapters for loading labelled sentence data.
// The library does not aim at built-in dataset support; these helpers exist
// for benchmarking and integration testing against SST-2 style files.
package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
)

// Label is a binary sentiment class, with an extra value for examples that
// have not been assigned one.
type Label int8

const (
	Unassigned Label = iota
	Negative
	Positive
)

func (l Label) String() string {
	switch l {
	case Negative:
		return "negative"
	case Positive:
		return "positive"
	default:
		return "unassigned"
	}
}

// Example holds up to two sentences and a label. SST-2 files carry a single
// sentence per example; pair datasets fill both.
type Example struct {
	SentenceA string
	SentenceB string
	Label     Label
}

// NewExample wraps an unlabelled sentence.
func NewExample(sentence string) Example {
	return Example{SentenceA: sentence, Label: Unassigned}
}

// NewExamplePair wraps an unlabelled sentence pair.
func NewExamplePair(a, b string) Example {
	return Example{SentenceA: a, SentenceB: b, Label: Unassigned}
}

// ReadSST2 reads a tab-separated SST-2 file with a header row and returns its
// examples. The first column is the sentence, the second the label class.
func ReadSST2(path string, sep rune) ([]Example, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset %q: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.Comma = sep
	r.LazyQuotes = true

	// Header row.
	if _, err := r.Read(); err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("dataset %q is empty", path)
		}
		return nil, fmt.Errorf("read dataset header: %w", err)
	}

	var examples []Example
	for line := 2; ; line++ {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read dataset record: %w", err)
		}
		if len(record) < 2 {
			return nil, fmt.Errorf("line %d: expected sentence and label columns, got %d fields", line, len(record))
		}

		label, err := parseLabel(record[1])
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		examples = append(examples, Example{SentenceA: record[0], Label: label})
	}
	return examples, nil
}

func parseLabel(raw string) (Label, error) {
	switch raw {
	case "0":
		return Negative, nil
	case "1":
		return Positive, nil
	default:
		return Unassigned, fmt.Errorf("invalid label class %q (must be 0 or 1)", raw)
	}
}
