// Command worddefs extracts dictionary definitions for a list of target
// words from a Wiktionary pages-articles dump and writes them as one
// pipe-delimited line per word. When a database DSN is configured, the
// extracted entries and form relations are also stored in the catalog.
// It is intended to be run offline, not as part of a server.
//
// Flags:
//
//	--dump     path to the XML dump (plain or .bz2)
//	--words    path to the target word list
//	--output   path for the definitions file
//	--dry-run  extract without writing the output file or the catalog
//	--config   path to YAML config file
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/heartmarshall/worddefs/internal/app"
	"github.com/heartmarshall/worddefs/internal/catalog"
	"github.com/heartmarshall/worddefs/internal/config"
	"github.com/heartmarshall/worddefs/internal/extract"
	"github.com/heartmarshall/worddefs/internal/wordlist"
)

func main() {
	dumpFlag := flag.String("dump", "", "path to the XML dump (plain or .bz2)")
	wordsFlag := flag.String("words", "", "path to the target word list")
	outputFlag := flag.String("output", "", "path for the definitions file")
	dryRunFlag := flag.Bool("dry-run", false, "extract without writing output or catalog")
	configFlag := flag.String("config", "", "path to YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configFlag)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	// CLI flags override config.
	if *dumpFlag != "" {
		cfg.Extraction.DumpPath = *dumpFlag
	}
	if *wordsFlag != "" {
		cfg.Extraction.WordListPath = *wordsFlag
	}
	if *outputFlag != "" {
		cfg.Extraction.OutputPath = *outputFlag
	}
	if *dryRunFlag {
		cfg.Extraction.DryRun = true
	}

	logger := app.NewLogger(cfg.Log)
	logger.Info("starting extraction",
		slog.String("version", app.BuildVersion()),
		slog.String("dump", cfg.Extraction.DumpPath),
		slog.String("words", cfg.Extraction.WordListPath))

	ctx, cancel := context.WithTimeout(context.Background(), 6*time.Hour)
	defer cancel()

	if err := run(ctx, logger, cfg); err != nil {
		logger.Error("extraction failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(ctx context.Context, logger *slog.Logger, cfg *config.Config) error {
	words, err := wordlist.Load(cfg.Extraction.WordListPath)
	if err != nil {
		return fmt.Errorf("load word list: %w", err)
	}
	logger.Info("word list loaded", slog.Int("words", len(words)))

	pipeline := extract.NewPipeline(logger, extract.FileSource(cfg.Extraction.DumpPath), cfg.Extraction.ProgressEvery)
	res, _, err := pipeline.Run(ctx, words)
	if err != nil {
		return err
	}

	lines := extract.Compose(words, res)
	if cfg.Extraction.DryRun {
		fmt.Printf("Dry run: would write %d words to %s\n", len(lines), cfg.Extraction.OutputPath)
	} else {
		if err := extract.WriteFile(cfg.Extraction.OutputPath, lines); err != nil {
			return err
		}
		if cfg.Database.DSN != "" {
			if err := storeCatalog(ctx, logger, cfg, res); err != nil {
				return err
			}
		}
		fmt.Printf("Wrote %d words to %s\n", len(lines), cfg.Extraction.OutputPath)
	}
	fmt.Printf("Missing pages for %d words\n", len(res.Missing()))
	fmt.Printf("Found definitions for %d words\n", len(res.Definitions))
	return nil
}

func storeCatalog(ctx context.Context, logger *slog.Logger, cfg *config.Config, res *extract.Result) error {
	pool, err := catalog.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	sink := catalog.NewSink(logger, catalog.NewRepo(pool), cfg.Extraction.BatchSize)
	if err := sink.Store(ctx, catalog.BuildRecords(res)); err != nil {
		return fmt.Errorf("store catalog: %w", err)
	}
	return nil
}
