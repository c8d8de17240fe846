// Package extract drives the two-pass extraction of definitions from a
// Wiktionary dump for a bounded, self-expanding set of target words, and
// composes the final per-word output.
package extract

import (
	"sort"

	"github.com/heartmarshall/worddefs/internal/wikitext"
)

// Result accumulates everything the passes learn about the target words.
// All maps are keyed by lowercase lookup key. Accumulation is append-only:
// entries are deduplicated on insert and never removed.
type Result struct {
	// Definitions holds the ordered, deduplicated glosses per word,
	// excluding glosses that resolved to a form relation.
	Definitions map[string][]wikitext.DefinitionEntry

	// FormOf maps an inflected word to its candidate lemmas (lemma → kind).
	FormOf map[string]map[string]string

	// AltVariant maps a variant spelling to its base lemmas; AltSpellings
	// is the reverse index used for the output suffix clause.
	AltVariant   map[string]map[string]bool
	AltSpellings map[string]map[string]bool

	// Targets is every lookup key ever pursued (input words plus
	// discovered lemmas); Extra is the discovered subset; Seen marks keys
	// whose page appeared in at least one pass.
	Targets map[string]bool
	Extra   map[string]bool
	Seen    map[string]bool
}

func newResult() *Result {
	return &Result{
		Definitions:  make(map[string][]wikitext.DefinitionEntry),
		FormOf:       make(map[string]map[string]string),
		AltVariant:   make(map[string]map[string]bool),
		AltSpellings: make(map[string]map[string]bool),
		Targets:      make(map[string]bool),
		Extra:        make(map[string]bool),
		Seen:         make(map[string]bool),
	}
}

// Missing returns the targets no page was found for, sorted for
// deterministic reporting.
func (r *Result) Missing() []string {
	var missing []string
	for key := range r.Targets {
		if !r.Seen[key] {
			missing = append(missing, key)
		}
	}
	sort.Strings(missing)
	return missing
}

// addDefinitions merges page entries into a word's list, skipping exact
// (language, part of speech, text) duplicates.
func (r *Result) addDefinitions(key string, entries []wikitext.DefinitionEntry) {
	existing := r.Definitions[key]
	for _, entry := range entries {
		dup := false
		for _, e := range existing {
			if e == entry {
				dup = true
				break
			}
		}
		if !dup {
			existing = append(existing, entry)
		}
	}
	r.Definitions[key] = existing
}

func (r *Result) addFormOf(key, lemma, kind string) {
	if r.FormOf[key] == nil {
		r.FormOf[key] = make(map[string]string)
	}
	r.FormOf[key][lemma] = kind
}

func (r *Result) addAltVariant(key, base string) {
	if r.AltVariant[key] == nil {
		r.AltVariant[key] = make(map[string]bool)
	}
	r.AltVariant[key][base] = true
	if r.AltSpellings[base] == nil {
		r.AltSpellings[base] = make(map[string]bool)
	}
	r.AltSpellings[base][key] = true
}

// smallestKey returns the lexicographically smallest key of a non-empty
// candidate set — the deterministic choice when several lemmas apply.
func smallestKey[V any](m map[string]V) string {
	best := ""
	for k := range m {
		if best == "" || k < best {
			best = k
		}
	}
	return best
}
