package extract

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/heartmarshall/worddefs/internal/dump"
	"github.com/heartmarshall/worddefs/internal/forms"
	"github.com/heartmarshall/worddefs/internal/wikitext"
)

// Source opens a fresh reader over the dump. Each pass consumes the stream
// from the beginning, so the pipeline reopens it per pass.
type Source func() (io.ReadCloser, error)

// FileSource reads the dump from a file, transparently decompressing
// bzip2 archives.
func FileSource(path string) Source {
	return func() (io.ReadCloser, error) {
		return dump.Open(path)
	}
}

// Stats tracks per-run page counters across all passes.
type Stats struct {
	Passes       int
	PagesScanned int
	PagesMatched int
	PagesSkipped int
}

type Pipeline struct {
	log           *slog.Logger
	source        Source
	progressEvery int
}

func NewPipeline(log *slog.Logger, source Source, progressEvery int) *Pipeline {
	if progressEvery <= 0 {
		progressEvery = 100_000
	}
	return &Pipeline{
		log:           log,
		source:        source,
		progressEvery: progressEvery,
	}
}

// Run extracts definitions for the given words. Pass one scans the full dump
// against the input set, growing it live as form-of and variant resolution
// discover lemmas not in the input. If any discovered lemma still has no
// definitions after pass one, a second pass scans for exactly those; lemmas
// discovered during pass two are recorded as targets (and so counted as
// missing when unseen) but never trigger a third pass.
func (p *Pipeline) Run(ctx context.Context, words []string) (*Result, Stats, error) {
	res := newResult()
	var stats Stats

	active := make(map[string]bool, len(words))
	for _, w := range words {
		key := strings.ToLower(strings.TrimSpace(w))
		if key == "" {
			continue
		}
		active[key] = true
		res.Targets[key] = true
	}

	p.log.Info("starting extraction pass", slog.Int("pass", 1), slog.Int("targets", len(active)))
	stats.Passes = 1
	if err := p.scanPass(ctx, res, &stats, active, true); err != nil {
		return nil, stats, fmt.Errorf("pass 1: %w", err)
	}

	pending := make(map[string]bool)
	for key := range res.Extra {
		if _, ok := res.Definitions[key]; !ok {
			pending[key] = true
		}
	}
	if len(pending) > 0 {
		p.log.Info("starting extraction pass", slog.Int("pass", 2), slog.Int("targets", len(pending)))
		stats.Passes = 2
		if err := p.scanPass(ctx, res, &stats, pending, false); err != nil {
			return nil, stats, fmt.Errorf("pass 2: %w", err)
		}
	}

	p.log.Info("extraction finished",
		slog.Int("passes", stats.Passes),
		slog.Int("pages_scanned", stats.PagesScanned),
		slog.Int("words_with_definitions", len(res.Definitions)),
		slog.Int("missing", len(res.Missing())))
	return res, stats, nil
}

// scanPass streams the dump once, processing every page whose title is in the
// active set. When grow is true, lemmas discovered along the way join the
// active set for the remainder of the pass.
func (p *Pipeline) scanPass(ctx context.Context, res *Result, stats *Stats, active map[string]bool, grow bool) error {
	rc, err := p.source()
	if err != nil {
		return fmt.Errorf("open dump: %w", err)
	}
	defer rc.Close()

	r := dump.NewReader(rc)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		page, err := r.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read page: %w", err)
		}

		stats.PagesScanned++
		if stats.PagesScanned%p.progressEvery == 0 {
			p.log.Debug("scanning dump",
				slog.String("pages", humanize.Comma(int64(stats.PagesScanned))),
				slog.Int("matched", stats.PagesMatched))
		}

		key := strings.ToLower(strings.TrimSpace(page.Title))
		if key == "" || page.Revision.Text == "" {
			stats.PagesSkipped++
			continue
		}
		if !active[key] {
			continue
		}

		stats.PagesMatched++
		res.Seen[key] = true
		p.processPage(res, active, grow, key, page.Revision.Text)
	}
}

// processPage extracts the page's glosses and routes each one: variant and
// inflection glosses become relations (their lemma joins the target set),
// everything else is stored as the word's own definition.
func (p *Pipeline) processPage(res *Result, active map[string]bool, grow bool, key, text string) {
	entries := wikitext.ExtractDefinitions(text)
	if len(entries) == 0 {
		return
	}

	var kept []wikitext.DefinitionEntry
	for _, entry := range entries {
		if base, ok := forms.ResolveAltSpelling(entry.Text); ok {
			res.addAltVariant(key, base)
			p.addTarget(res, active, grow, base)
			continue
		}
		if rel, ok := forms.ResolveInflection(key, entry.Text); ok {
			res.addFormOf(key, rel.Lemma, rel.Kind)
			p.addTarget(res, active, grow, rel.Lemma)
			continue
		}
		kept = append(kept, entry)
	}
	if len(kept) == 0 {
		return
	}
	res.addDefinitions(key, kept)
}

func (p *Pipeline) addTarget(res *Result, active map[string]bool, grow bool, lemma string) {
	if lemma == "" || res.Targets[lemma] {
		return
	}
	res.Targets[lemma] = true
	res.Extra[lemma] = true
	if grow {
		active[lemma] = true
	}
	p.log.Debug("discovered lemma", slog.String("lemma", lemma))
}
