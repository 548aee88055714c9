// Package testutil provides shared skip helpers for integration tests.
//
// Each helper calls t.Skip with a clear human-readable reason when the named
// prerequisite is absent, so integration tests remain runnable in partial
// environments without failing noisily.
//
// Typical usage:
//
//	func TestMyIntegration(t *testing.T) {
//	    vocab := testutil.FindRepoAsset(t, "models/opus-mt-en-de/vocab.json")
//	    ...
//	}
package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// FindRepoAsset locates a repository-root-relative file by walking up from
// the current working directory. Tests run with cwd set to the package
// directory, so the walk covers the package, its parents and the repo root.
// The test is skipped when the asset cannot be found.
func FindRepoAsset(tb testing.TB, rel string) string {
	tb.Helper()

	dir, err := os.Getwd()
	if err != nil {
		tb.Fatalf("getwd: %v", err)
	}

	for i := 0; i < 6; i++ {
		p := filepath.Join(dir, rel)

		_, err := os.Stat(p)
		if err == nil {
			return p
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}

		dir = parent
	}

	tb.Skipf("asset %q not available; run `gotok fetch` to download model files", rel)
	return ""
}

// RequireNetwork skips the test unless the GOTOK_NETWORK_TESTS environment
// variable is set to a truthy value. Tests behind this gate reach
// huggingface.co and are opt-in.
func RequireNetwork(tb testing.TB) {
	tb.Helper()

	switch strings.ToLower(os.Getenv("GOTOK_NETWORK_TESTS")) {
	case "1", "true", "yes", "on":
		return
	}

	tb.Skip("network tests disabled; set GOTOK_NETWORK_TESTS=1 to enable")
}
