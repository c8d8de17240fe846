package catalog

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/worddefs/internal/extract"
)

// Entry is a word with at least one definition of its own.
type Entry struct {
	ID        uuid.UUID
	Word      string
	CreatedAt time.Time
}

// Definition is one sense of an entry, positioned in page order.
type Definition struct {
	ID           uuid.UUID
	Word         string
	Language     string
	PartOfSpeech string
	Definition   string
	Position     int
	CreatedAt    time.Time
}

// Relation links a derived word to its base: inflections to their lemma and
// variant spellings to their canonical form. Either side may lack an Entry
// row when its page had no independent definitions.
type Relation struct {
	ID         uuid.UUID
	SourceWord string
	TargetWord string
	Kind       string
	CreatedAt  time.Time
}

// Records is the flat, insert-ready view of an extraction result.
type Records struct {
	Entries     []Entry
	Definitions []Definition
	Relations   []Relation
}

// KindAltSpelling is the relation kind for variant spellings; inflection
// relations carry the resolver's kind verbatim.
const KindAltSpelling = "alternative spelling"

// BuildRecords flattens an extraction result into insertable rows.
// Iteration is over sorted keys so the output is deterministic for a given
// result.
func BuildRecords(res *extract.Result) Records {
	now := time.Now().UTC()
	var rec Records

	for _, word := range sortedKeys(res.Definitions) {
		rec.Entries = append(rec.Entries, Entry{
			ID:        uuid.New(),
			Word:      word,
			CreatedAt: now,
		})
		for i, d := range res.Definitions[word] {
			rec.Definitions = append(rec.Definitions, Definition{
				ID:           uuid.New(),
				Word:         word,
				Language:     d.Language,
				PartOfSpeech: d.PartOfSpeech,
				Definition:   d.Text,
				Position:     i,
				CreatedAt:    now,
			})
		}
	}

	for _, word := range sortedKeys(res.FormOf) {
		for _, lemma := range sortedKeys(res.FormOf[word]) {
			rec.Relations = append(rec.Relations, Relation{
				ID:         uuid.New(),
				SourceWord: word,
				TargetWord: lemma,
				Kind:       res.FormOf[word][lemma],
				CreatedAt:  now,
			})
		}
	}
	for _, word := range sortedKeys(res.AltVariant) {
		for _, base := range sortedKeys(res.AltVariant[word]) {
			rec.Relations = append(rec.Relations, Relation{
				ID:         uuid.New(),
				SourceWord: word,
				TargetWord: base,
				Kind:       KindAltSpelling,
				CreatedAt:  now,
			})
		}
	}

	return rec
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
