package extract

import (
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"
	"unicode"

	"github.com/heartmarshall/worddefs/internal/wikitext"
)

var leadingParenRe = regexp.MustCompile(`^\(([^)]*)\)`)

var transitivityFlags = []string{"transitive", "intransitive", "ditransitive"}

// Compose turns the accumulated result into output lines, one per emitted
// word, following the input order. A word whose glosses all redirected to a
// lemma collapses into that lemma's line (the lexicographically smallest when
// several apply); if the word also has definitions of its own, its line
// follows the lemma's. Each word is emitted at most once.
func Compose(words []string, res *Result) []string {
	var order []string
	emitted := make(map[string]bool)
	emit := func(key string) {
		if key != "" && !emitted[key] {
			emitted[key] = true
			order = append(order, key)
		}
	}

	for _, w := range words {
		key := strings.ToLower(strings.TrimSpace(w))
		if key == "" {
			continue
		}
		switch {
		case len(res.FormOf[key]) > 0:
			emit(smallestKey(res.FormOf[key]))
			if len(res.Definitions[key]) > 0 {
				emit(key)
			}
		case len(res.AltVariant[key]) > 0:
			emit(smallestKey(res.AltVariant[key]))
			if len(res.Definitions[key]) > 0 {
				emit(key)
			}
		default:
			emit(key)
		}
	}

	lines := make([]string, 0, len(order))
	for _, key := range order {
		lines = append(lines, renderLine(key, res))
	}
	return lines
}

// renderLine renders one word's output record: the word itself, then each
// definition as "<part of speech>: <gloss>", joined by " | ". Verb senses
// carry a transitivity annotation when the gloss's leading label names one,
// and non-English senses are prefixed with their language. Known alternate
// spellings are appended to the final field.
func renderLine(key string, res *Result) string {
	fields := []string{key}
	for _, entry := range res.Definitions[key] {
		fields = append(fields, renderEntry(entry))
	}
	if variants := res.AltSpellings[key]; len(variants) > 0 {
		names := make([]string, 0, len(variants))
		for v := range variants {
			names = append(names, v)
		}
		sort.Strings(names)
		suffix := fmt.Sprintf(" (alternate spellings: %s)", strings.Join(names, ", "))
		fields[len(fields)-1] += suffix
	}
	return strings.Join(fields, " | ")
}

func renderEntry(entry wikitext.DefinitionEntry) string {
	pos := entry.PartOfSpeech
	if pos == "verb" {
		if t := transitivity(entry.Text); t != "" {
			pos = fmt.Sprintf("verb (%s)", t)
		}
	}
	if entry.Language != "" && entry.Language != "english" {
		pos = entry.Language + " " + pos
	}
	return pos + ": " + entry.Text
}

// transitivity inspects a gloss's leading parenthesized label for
// transitivity markers. Matching is on whole tokens, so "intransitive" never
// doubles as "transitive".
func transitivity(text string) string {
	m := leadingParenRe.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	tokens := strings.FieldsFunc(strings.ToLower(m[1]), func(r rune) bool {
		return !unicode.IsLetter(r)
	})
	var found []string
	for _, flag := range transitivityFlags {
		for _, tok := range tokens {
			if tok == flag {
				found = append(found, flag)
				break
			}
		}
	}
	return strings.Join(found, ", ")
}

// WriteFile writes the composed lines to path, one per line with a trailing
// newline.
func WriteFile(path string, lines []string) error {
	var b strings.Builder
	for _, line := range lines {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}
