// Command chunkmd chunks a markdown document and prints the result.
//
//	chunkmd [flags] [file.md]
//
// Reads from stdin when no file is given. Configuration comes from
// chunkmd.toml (or -config), with flags overriding the file.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"

	chunkmd "github.com/nevindra/chunkmd"
	"github.com/nevindra/chunkmd/analyze"
	"github.com/nevindra/chunkmd/internal/config"
	"github.com/nevindra/chunkmd/observer"
)

func main() {
	var (
		configPath = flag.String("config", os.Getenv("CHUNKMD_CONFIG"), "path to TOML config file")
		strategy   = flag.String("strategy", "", "force a strategy (code, table, list, mixed, structural, sentences)")
		maxSize    = flag.Int("max-size", 0, "maximum chunk size in characters")
		targetSize = flag.Int("target-size", 0, "target chunk size in characters")
		mode       = flag.String("mode", "", "selection mode (strict or weighted)")
		format     = flag.String("format", "", "output format (json or text)")
		pretty     = flag.Bool("pretty", false, "indent JSON output")
		verbose    = flag.Bool("v", false, "log strategy selection and fallbacks to stderr")
	)
	flag.Parse()

	cfg := config.Load(*configPath)
	if *maxSize > 0 {
		cfg.Chunking.MaxChunkSize = *maxSize
	}
	if *targetSize > 0 {
		cfg.Chunking.TargetChunkSize = *targetSize
	}
	if *mode != "" {
		cfg.Chunking.SelectionMode = *mode
	}
	if *format != "" {
		cfg.Output.Format = *format
	}
	if *pretty {
		cfg.Output.Pretty = true
	}

	text, err := readInput(flag.Arg(0))
	if err != nil {
		log.Fatal(err)
	}

	opts := []chunkmd.Option{chunkmd.WithConfig(cfg.Chunking)}
	if *verbose {
		opts = append(opts, chunkmd.WithLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))))
	}
	chunker, err := chunkmd.New(analyze.New(), opts...)
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	var result *chunkmd.ChunkingResult
	var callOpts []chunkmd.ChunkOption
	if *strategy != "" {
		callOpts = append(callOpts, chunkmd.WithStrategy(*strategy))
	}

	if cfg.Observer.Enabled {
		inst, shutdown, err := observer.Init(ctx)
		if err != nil {
			log.Fatal(err)
		}
		defer func() {
			if err := shutdown(context.Background()); err != nil {
				log.Printf("observer shutdown: %v", err)
			}
		}()
		result, err = observer.Wrap(chunker, inst).Chunk(ctx, text, callOpts...)
		if err != nil {
			log.Fatal(err)
		}
	} else {
		result, err = chunker.Chunk(text, callOpts...)
		if err != nil {
			log.Fatal(err)
		}
	}

	if err := emit(os.Stdout, result, cfg.Output); err != nil {
		log.Fatal(err)
	}
}

func readInput(path string) (string, error) {
	if path == "" || path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func emit(w io.Writer, result *chunkmd.ChunkingResult, out config.OutputConfig) error {
	if out.Format == "text" {
		return emitText(w, result)
	}
	enc := json.NewEncoder(w)
	if out.Pretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(result.ToMap())
}

func emitText(w io.Writer, result *chunkmd.ChunkingResult) error {
	fmt.Fprintf(w, "strategy: %s  chunks: %d  fallback: %v\n",
		result.StrategyUsed, len(result.Chunks), result.FallbackUsed)
	for i, c := range result.Chunks {
		fmt.Fprintf(w, "\n--- chunk %d (lines %d-%d, %d chars) ---\n%s\n",
			i, c.StartLine, c.EndLine, c.Size(), c.Content)
	}
	for _, warn := range result.Warnings {
		fmt.Fprintf(w, "\nwarning: %s\n", warn)
	}
	return nil
}
