// Package forms resolves "form of" glosses — inflections and alternative
// spellings — to their canonical base lemma. Resolution is deliberately
// conservative: ASCII suffix checks gate every relation, and anything
// ambiguous is discarded rather than guessed, so irregular forms stay
// independent entries instead of being mis-linked.
package forms

import (
	"regexp"
	"strings"
)

// Relation kinds, as they appear in inflection glosses.
const (
	KindPlural              = "plural"
	KindPresentParticiple   = "present participle"
	KindPastTense           = "past tense"
	KindPastParticiple      = "past participle"
	KindThirdPersonSingular = "third-person singular"
	KindAlternativeSpelling = "alternative spelling"
)

// A Relation is a directed edge from an inflected or variant word to its
// base lemma.
type Relation struct {
	Kind  string
	Lemma string
}

var (
	inflectionRe = regexp.MustCompile(`(?i)^(plural|present participle|gerund|inflection|infl|past tense|past participle|simple past and past participle|simple past|third-person singular|third person singular) of (.+?)(?:[.;]|$)`)
	altVariantRe = regexp.MustCompile(`(?i)^(?:alternate|alternative) (?:spelling|form) of (.+?)(?:[.;]|$)`)

	leadingLabelRe   = regexp.MustCompile(`^\([^)]*\)\s*`)
	lemmaClauseEndRe = regexp.MustCompile(`\s*[(,;]`)
	altClauseEndRe   = regexp.MustCompile(`\s*[(,;:]`)
)

// ResolveInflection matches a cleaned gloss against the known inflection
// phrasings and returns the relation to the base lemma. The generic
// "inflection of" phrasing is disambiguated from the source word's own
// spelling; relations whose kind contradicts the word's suffix are
// discarded.
func ResolveInflection(word, gloss string) (Relation, bool) {
	match := inflectionRe.FindStringSubmatch(stripLeadingLabels(gloss))
	if match == nil {
		return Relation{}, false
	}
	kind := strings.ToLower(match[1])
	lemma := extractLemma(match[2], lemmaClauseEndRe)
	if lemma == "" {
		return Relation{}, false
	}
	if kind == "third person singular" {
		kind = KindThirdPersonSingular
	}

	// The generic phrasing carries no relation kind of its own; infer it
	// from the inflected word's suffix or give up.
	if kind == "inflection" || kind == "infl" {
		switch {
		case strings.HasSuffix(word, "ing"):
			kind = KindPresentParticiple
		case strings.HasSuffix(word, "ed"):
			kind = KindPastTense
		case strings.HasSuffix(word, "s"):
			kind = KindThirdPersonSingular
		default:
			return Relation{}, false
		}
	}

	// Suffix gates: irregular forms whose lemma cannot be inferred from
	// spelling alone are kept as standalone entries, not linked.
	switch kind {
	case KindPastTense, KindPastParticiple, "simple past":
		if !strings.HasSuffix(word, "ed") {
			return Relation{}, false
		}
	case KindThirdPersonSingular:
		if !strings.HasSuffix(word, "s") {
			return Relation{}, false
		}
	}

	return Relation{Kind: kind, Lemma: lemma}, true
}

// ResolveAltSpelling matches the "alternative spelling/form of" phrasing
// and returns the base lemma.
func ResolveAltSpelling(gloss string) (string, bool) {
	match := altVariantRe.FindStringSubmatch(stripLeadingLabels(gloss))
	if match == nil {
		return "", false
	}
	lemma := extractLemma(match[1], altClauseEndRe)
	if lemma == "" {
		return "", false
	}
	return lemma, true
}

// stripLeadingLabels removes any number of leading parenthetical qualifier
// groups, so "(obsolete) (rare) Plural of …" still resolves.
func stripLeadingLabels(text string) string {
	for {
		loc := leadingLabelRe.FindStringIndex(text)
		if loc == nil {
			return text
		}
		text = text[loc[1]:]
	}
}

// extractLemma cuts the lemma token run at the first qualifier or clause
// break, trims trailing punctuation, and lowercases.
func extractLemma(raw string, clauseEnd *regexp.Regexp) string {
	if loc := clauseEnd.FindStringIndex(raw); loc != nil {
		raw = raw[:loc[0]]
	}
	return strings.ToLower(strings.Trim(strings.TrimSpace(raw), " ."))
}
