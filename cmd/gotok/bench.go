package main

import (
	"fmt"
	"log/slog"
	"os"
	"runtime/pprof"
	"time"

	"github.com/guillaume-be/gotokenizers/internal/bench"
	"github.com/guillaume-be/gotokenizers/internal/dataset"
	"github.com/guillaume-be/gotokenizers/internal/encode"
	"github.com/guillaume-be/gotokenizers/internal/tokenizer"
	"github.com/spf13/cobra"
)

func newBenchCmd() *cobra.Command {
	var (
		input      string
		runs       int
		warmup     int
		format     string
		threshold  float64
		cpuprofile string
	)

	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Benchmark encoding throughput over a dataset",
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := requireConfig()
			if err != nil {
				return err
			}

			if input == "" {
				return fmt.Errorf("--input is required for bench")
			}
			if runs < 1 {
				return fmt.Errorf("--runs must be at least 1")
			}
			if warmup < 0 {
				return fmt.Errorf("--warmup must be non-negative")
			}
			if format != "table" && format != "json" {
				return fmt.Errorf("--format must be 'table' or 'json'")
			}

			strategy, err := encode.ParseStrategy(cfg.Encode.Strategy)
			if err != nil {
				return err
			}

			tok, err := newTokenizerFromConfig(cfg)
			if err != nil {
				return err
			}

			examples, err := dataset.ReadSST2(input, '\t')
			if err != nil {
				return err
			}
			texts, pairs, paired := examplesToInputs(examples)

			if cpuprofile != "" {
				f, err := os.Create(cpuprofile)
				if err != nil {
					return fmt.Errorf("create cpuprofile: %w", err)
				}
				defer f.Close()

				if err := pprof.StartCPUProfile(f); err != nil {
					return fmt.Errorf("start cpuprofile: %w", err)
				}
				defer pprof.StopCPUProfile()
			}

			results, err := runBench(benchOptions{
				Tok:      tok,
				Texts:    texts,
				Pairs:    pairs,
				Paired:   paired,
				MaxLen:   cfg.Encode.MaxLength,
				Strategy: strategy,
				Stride:   cfg.Encode.Stride,
				Runs:     runs,
				Warmup:   warmup,
			})
			if err != nil {
				return err
			}

			durations := make([]time.Duration, len(results))
			for i, r := range results {
				durations[i] = r.Duration
			}
			stats := bench.ComputeStats(durations)

			switch format {
			case "json":
				bench.FormatJSON(results, stats, os.Stdout)
			default:
				bench.FormatTable(results, stats, os.Stdout)
			}

			// Compute mean throughput across all runs.
			var totalItemsPerSec float64
			for _, r := range results {
				totalItemsPerSec += r.ItemsPerSec
			}
			meanItemsPerSec := totalItemsPerSec / float64(len(results))

			return bench.CheckThroughputThreshold(meanItemsPerSec, threshold)
		},
	}

	cmd.Flags().StringVar(&input, "input", "", "TSV dataset to encode each run (required)")
	cmd.Flags().IntVar(&runs, "runs", 5, "Number of measured encoding runs")
	cmd.Flags().IntVar(&warmup, "warmup", 1, "Number of unrecorded warmup runs")
	cmd.Flags().StringVar(&format, "format", "table", "Output format: table|json")
	cmd.Flags().Float64Var(&threshold, "throughput-threshold", 0, "Exit non-zero if mean items/s falls below this value (0 = disabled)")
	cmd.Flags().StringVar(&cpuprofile, "cpuprofile", "", "Write a CPU profile of the measured runs")

	return cmd
}

type benchOptions struct {
	Tok      *tokenizer.Tokenizer
	Texts    []string
	Pairs    []tokenizer.Pair
	Paired   bool
	MaxLen   int
	Strategy encode.Strategy
	Stride   int
	Runs     int
	Warmup   int
}

func runBench(opts benchOptions) ([]bench.RunResult, error) {
	items := len(opts.Texts)
	if opts.Paired {
		items = len(opts.Pairs)
	}
	if items == 0 {
		return nil, fmt.Errorf("dataset contains no examples")
	}

	for i := 0; i < opts.Warmup; i++ {
		if _, err := encodeDataset(opts); err != nil {
			return nil, fmt.Errorf("warmup run %d failed: %w", i+1, err)
		}
	}

	results := make([]bench.RunResult, 0, opts.Runs)
	for i := 0; i < opts.Runs; i++ {
		start := time.Now()
		encs, err := encodeDataset(opts)
		if err != nil {
			return nil, fmt.Errorf("run %d failed: %w", i+1, err)
		}
		dur := time.Since(start)

		var tokens int
		for _, enc := range encs {
			tokens += len(enc.TokenIDs)
		}

		itemsPerSec, tokensPerSec := bench.Throughput(items, tokens, dur)
		slog.Debug("bench run complete",
			"run", i+1,
			"duration_ms", dur.Milliseconds(),
			"items_per_sec", itemsPerSec,
		)

		results = append(results, bench.RunResult{
			Index:        i,
			Cold:         i == 0 && opts.Warmup == 0,
			Duration:     dur,
			Items:        items,
			Tokens:       tokens,
			ItemsPerSec:  itemsPerSec,
			TokensPerSec: tokensPerSec,
		})
	}

	return results, nil
}

func encodeDataset(opts benchOptions) ([]encode.Encoding, error) {
	if opts.Paired {
		return opts.Tok.EncodePairList(opts.Pairs, opts.MaxLen, opts.Strategy, opts.Stride)
	}
	return opts.Tok.EncodeList(opts.Texts, opts.MaxLen, opts.Strategy, opts.Stride)
}
