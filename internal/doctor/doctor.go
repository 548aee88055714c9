// Package doctor provides environment preflight checks for gotok.
package doctor

import (
	"fmt"
	"io"
	"os"
)

// PassMark and FailMark are the prefix symbols printed for each check result.
const (
	PassMark = "✓"
	FailMark = "✗"
)

// CheckFunc probes one configured component and returns a human-readable
// detail string, or an error when the component is unusable.
type CheckFunc func() (string, error)

// Config holds injectable dependencies for each doctor check. Nil check
// functions and empty paths are skipped.
type Config struct {
	// Family normalizes the configured tokenizer family name.
	Family CheckFunc
	// Strategy parses the configured truncation strategy.
	Strategy CheckFunc
	// Tokenizer constructs the configured tokenizer end to end and reports
	// its vocabulary size. It runs last, after the file checks.
	Tokenizer CheckFunc
	// VocabPath is the vocabulary file to verify on disk.
	VocabPath string
	// ModelPath is the SentencePiece model file to verify on disk, for
	// families that need one.
	ModelPath string
	// SpecialTokens is the special-token map file to verify on disk, when
	// one is configured.
	SpecialTokens string
	// CacheDir is the pretrained asset directory. A missing directory is
	// not a failure; it is created by the first fetch.
	CacheDir string
}

// Result collects the outcome of all checks.
type Result struct {
	failures []string
}

// Failed returns true if any check failed.
func (r *Result) Failed() bool { return len(r.failures) > 0 }

// Failures returns the list of failure messages.
func (r *Result) Failures() []string { return append([]string(nil), r.failures...) }

// AddFailure appends an external failure message to the result.
func (r *Result) AddFailure(msg string) { r.failures = append(r.failures, msg) }

func (r *Result) fail(msg string) { r.failures = append(r.failures, msg) }

// Run executes all configured checks and writes human-readable output to w.
// Each check line is prefixed with PassMark or FailMark.
func Run(cfg Config, w io.Writer) Result {
	var res Result

	// ---- configuration values ---------------------------------------------
	runCheck(&res, w, "tokenizer family", cfg.Family)
	runCheck(&res, w, "truncation strategy", cfg.Strategy)

	// ---- files on disk ----------------------------------------------------
	checkFile(&res, w, "vocabulary file", cfg.VocabPath)
	if cfg.ModelPath != "" {
		checkFile(&res, w, "model file", cfg.ModelPath)
	}
	if cfg.SpecialTokens != "" {
		checkFile(&res, w, "special tokens map", cfg.SpecialTokens)
	}
	checkCacheDir(&res, w, cfg.CacheDir)

	// ---- full construction ------------------------------------------------
	runCheck(&res, w, "tokenizer", cfg.Tokenizer)

	return res
}

func runCheck(res *Result, w io.Writer, label string, fn CheckFunc) {
	if fn == nil {
		fmt.Fprintf(w, "%s %s: skipped\n", PassMark, label)
		return
	}

	detail, err := fn()
	if err != nil {
		res.fail(fmt.Sprintf("%s: %v", label, err))
		fmt.Fprintf(w, "%s %s: %v\n", FailMark, label, err)
		return
	}

	fmt.Fprintf(w, "%s %s: %s\n", PassMark, label, detail)
}

func checkFile(res *Result, w io.Writer, label, path string) {
	if path == "" {
		res.fail(fmt.Sprintf("%s: no path configured", label))
		fmt.Fprintf(w, "%s %s: no path configured\n", FailMark, label)
		return
	}

	info, err := os.Stat(path)
	if err != nil {
		res.fail(fmt.Sprintf("%s %q: %v", label, path, err))
		fmt.Fprintf(w, "%s %s %s: not found\n", FailMark, label, path)
		return
	}
	if info.IsDir() {
		res.fail(fmt.Sprintf("%s %q: is a directory", label, path))
		fmt.Fprintf(w, "%s %s %s: is a directory\n", FailMark, label, path)
		return
	}

	fmt.Fprintf(w, "%s %s: %s\n", PassMark, label, path)
}

func checkCacheDir(res *Result, w io.Writer, path string) {
	if path == "" {
		fmt.Fprintf(w, "%s cache dir: skipped\n", PassMark)
		return
	}

	info, err := os.Stat(path)
	if err != nil {
		fmt.Fprintf(w, "%s cache dir %s: not created yet\n", PassMark, path)
		return
	}
	if !info.IsDir() {
		res.fail(fmt.Sprintf("cache dir %q: not a directory", path))
		fmt.Fprintf(w, "%s cache dir %s: not a directory\n", FailMark, path)
		return
	}

	fmt.Fprintf(w, "%s cache dir: %s\n", PassMark, path)
}
