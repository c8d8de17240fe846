package catalog

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repo persists extraction records with pgx.Batch bulk inserts. All inserts
// are idempotent: rows that already exist (by their natural key) are skipped
// via ON CONFLICT DO NOTHING, so re-running an extraction is safe.
type Repo struct {
	pool *pgxpool.Pool
}

func NewRepo(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// BulkInsertEntries inserts word_entries, skipping existing words.
// Returns the number of actually inserted rows.
func (r *Repo) BulkInsertEntries(ctx context.Context, entries []Entry) (int, error) {
	if len(entries) == 0 {
		return 0, nil
	}

	batch := &pgx.Batch{}
	for _, e := range entries {
		batch.Queue(
			`INSERT INTO word_entries (id, word, created_at)
			 VALUES ($1, $2, $3)
			 ON CONFLICT (word) DO NOTHING`,
			e.ID, e.Word, e.CreatedAt,
		)
	}

	return r.sendBatchExec(ctx, batch)
}

// BulkInsertDefinitions inserts word_definitions, skipping senses already
// recorded for the word.
func (r *Repo) BulkInsertDefinitions(ctx context.Context, defs []Definition) (int, error) {
	if len(defs) == 0 {
		return 0, nil
	}

	batch := &pgx.Batch{}
	for _, d := range defs {
		batch.Queue(
			`INSERT INTO word_definitions (id, word, language, part_of_speech, definition, position, created_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)
			 ON CONFLICT ON CONSTRAINT uq_word_definitions DO NOTHING`,
			d.ID, d.Word, d.Language, d.PartOfSpeech, d.Definition, d.Position, d.CreatedAt,
		)
	}

	return r.sendBatchExec(ctx, batch)
}

// BulkInsertRelations inserts word_relations, skipping existing
// (source, target, kind) triples.
func (r *Repo) BulkInsertRelations(ctx context.Context, rels []Relation) (int, error) {
	if len(rels) == 0 {
		return 0, nil
	}

	batch := &pgx.Batch{}
	for _, rel := range rels {
		batch.Queue(
			`INSERT INTO word_relations (id, source_word, target_word, kind, created_at)
			 VALUES ($1, $2, $3, $4, $5)
			 ON CONFLICT ON CONSTRAINT uq_word_relations DO NOTHING`,
			rel.ID, rel.SourceWord, rel.TargetWord, rel.Kind, rel.CreatedAt,
		)
	}

	return r.sendBatchExec(ctx, batch)
}

func (r *Repo) sendBatchExec(ctx context.Context, batch *pgx.Batch) (int, error) {
	results := r.pool.SendBatch(ctx, batch)
	defer results.Close()

	var inserted int
	for range batch.Len() {
		tag, err := results.Exec()
		if err != nil {
			return inserted, fmt.Errorf("batch exec: %w", err)
		}
		inserted += int(tag.RowsAffected())
	}

	return inserted, nil
}

// Sink stores extraction records in chunks of batchSize rows per round trip.
type Sink struct {
	log       *slog.Logger
	repo      *Repo
	batchSize int
}

func NewSink(log *slog.Logger, repo *Repo, batchSize int) *Sink {
	if batchSize <= 0 {
		batchSize = 500
	}
	return &Sink{log: log, repo: repo, batchSize: batchSize}
}

// Store writes all records. Entries go first so definition rows always have
// their word present.
func (s *Sink) Store(ctx context.Context, rec Records) error {
	entries, err := storeChunked(ctx, rec.Entries, s.batchSize, s.repo.BulkInsertEntries)
	if err != nil {
		return fmt.Errorf("store entries: %w", err)
	}
	defs, err := storeChunked(ctx, rec.Definitions, s.batchSize, s.repo.BulkInsertDefinitions)
	if err != nil {
		return fmt.Errorf("store definitions: %w", err)
	}
	rels, err := storeChunked(ctx, rec.Relations, s.batchSize, s.repo.BulkInsertRelations)
	if err != nil {
		return fmt.Errorf("store relations: %w", err)
	}

	s.log.Info("catalog stored",
		slog.Int("entries_inserted", entries),
		slog.Int("definitions_inserted", defs),
		slog.Int("relations_inserted", rels))
	return nil
}

// storeChunked splits items into fixed-size chunks and sums the inserted
// counts.
func storeChunked[T any](ctx context.Context, items []T, size int, insert func(context.Context, []T) (int, error)) (int, error) {
	var total int
	for start := 0; start < len(items); start += size {
		end := min(start+size, len(items))
		n, err := insert(ctx, items[start:end])
		if err != nil {
			return total, err
		}
		total += n
	}
	return total, nil
}
