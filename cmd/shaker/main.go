package main

import (
	"context"
	"flag"
	"log"
	"os"
	"strings"

	shaker "github.com/goliatone/go-shaker"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		log.Fatalf("shaker: %v", err)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("shaker", flag.ExitOnError)
	cache := fs.String("cache", ":memory:", "Cache location: :memory: or a SQLite file path (reused when it exists)")
	input := fs.String("input", "", "Input directory holding one sub-directory per ordinal")
	output := fs.String("output", "", "Output directory for the rendered tree")
	langs := fs.String("lang", "en", "Comma separated language resolution chain (first match wins)")
	exclude := fs.String("exclude", "", "Comma separated source entries to skip (defaults to assets,temario.md)")
	workers := fs.Int("workers", 1, "Number of sections rendered concurrently")
	htmlPreview := fs.Bool("html", false, "Also write goldmark-rendered .html previews")
	logLevel := fs.String("log-level", "info", "Log level (trace, debug, info, warn, error)")
	logFormat := fs.String("log-format", "console", "Log format (console, json, pretty)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg := shaker.DefaultConfig()
	cfg.Input = *input
	cfg.Output = *output
	cfg.Cache = *cache
	cfg.Languages = splitList(*langs)
	if list := splitList(*exclude); list != nil {
		cfg.Exclude = list
	}
	cfg.Workers = *workers
	cfg.HTMLPreview = *htmlPreview
	cfg.Logging.Level = *logLevel
	cfg.Logging.Format = *logFormat

	return shaker.Run(context.Background(), cfg)
}

func splitList(value string) []string {
	var out []string
	for _, item := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
