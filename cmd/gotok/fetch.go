package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/guillaume-be/gotokenizers/internal/pretrained"
	"github.com/spf13/cobra"
)

func newFetchCmd() *cobra.Command {
	var outDir string
	var hfToken string

	cmd := &cobra.Command{
		Use:   "fetch <name>",
		Short: "Download pretrained tokenizer assets from Hugging Face",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			cfg, err := requireConfig()
			if err != nil {
				return err
			}

			name := args[0]
			if hfToken == "" {
				hfToken = os.Getenv("HF_TOKEN")
			}

			err = pretrained.Download(pretrained.DownloadOptions{
				Name:    name,
				OutDir:  resolveFetchOutDir(outDir, cfg.Paths.CacheDir, name),
				HFToken: hfToken,
				Stdout:  os.Stdout,
				Stderr:  os.Stderr,
			})
			if err != nil {
				var denied *pretrained.AccessDeniedError
				if errors.As(err, &denied) && hfToken == "" {
					return fmt.Errorf("fetch failed: %w; set --hf-token or HF_TOKEN for gated repositories", err)
				}
				return fmt.Errorf("fetch failed: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&outDir, "out-dir", "", "Target directory (defaults to <cache-dir>/<name>)")
	cmd.Flags().StringVar(&hfToken, "hf-token", "", "Hugging Face token (falls back to HF_TOKEN env var)")

	return cmd
}

// resolveFetchOutDir picks the asset directory: an explicit --out-dir wins,
// otherwise assets land under the configured cache dir keyed by preset name.
func resolveFetchOutDir(flagDir, cacheDir, name string) string {
	if flagDir != "" {
		return flagDir
	}
	return filepath.Join(cacheDir, name)
}
