package wikitext

import (
	"regexp"
	"strings"
)

// targetLanguages are the level-2 section headings whose glosses are
// extracted. Everything else (foreign-language sections of the same page)
// is skipped.
var targetLanguages = map[string]bool{
	"english":      true,
	"translingual": true,
}

// posHeadings maps normalized level-3+ heading text to the part-of-speech
// vocabulary used in output. Headings outside this map ("Etymology",
// "Usage notes", …) leave the current part of speech unchanged.
var posHeadings = map[string]string{
	"noun":         "noun",
	"proper noun":  "proper noun",
	"verb":         "verb",
	"adjective":    "adjective",
	"adverb":       "adverb",
	"pronoun":      "pronoun",
	"determiner":   "determiner",
	"article":      "article",
	"preposition":  "preposition",
	"conjunction":  "conjunction",
	"interjection": "interjection",
	"particle":     "particle",
	"numeral":      "numeral",
	"symbol":       "symbol",
	"letter":       "letter",
	"prefix":       "prefix",
	"suffix":       "suffix",
	"infix":        "infix",
	"circumfix":    "circumfix",
	"abbreviation": "abbreviation",
	"acronym":      "acronym",
	"initialism":   "initialism",
	"phrase":       "phrase",
	"proverb":      "proverb",
	"idiom":        "idiom",
}

var (
	glossLineRe = regexp.MustCompile(`^#+\s*(.*)`)
	hasAlnumRe  = regexp.MustCompile(`[A-Za-z0-9]`)
)

// A DefinitionEntry is one extracted gloss, scoped to the language and
// part-of-speech section it appeared under. PartOfSpeech is "unknown" when
// the gloss precedes any recognized part-of-speech heading.
type DefinitionEntry struct {
	Language     string
	PartOfSpeech string
	Text         string
}

// sectionWalker tracks which language and part-of-speech section the
// current line belongs to. A level-2 heading switches language and always
// resets the part of speech; a deeper heading updates the part of speech
// only when it names one.
type sectionWalker struct {
	language string
	pos      string
}

func (w *sectionWalker) inTarget() bool {
	return targetLanguages[w.language]
}

func (w *sectionWalker) observeHeading(level int, heading string) {
	if level == 2 {
		w.language = normalizeHeading(heading)
		w.pos = ""
		return
	}
	if level < 3 {
		return
	}
	if key, ok := posHeadings[normalizeHeading(heading)]; ok {
		w.pos = key
	}
}

// ExtractDefinitions walks a page body line by line and returns its glosses
// for the target languages, in source order, with exact duplicates skipped.
func ExtractDefinitions(text string) []DefinitionEntry {
	var entries []DefinitionEntry
	var walker sectionWalker
	for _, line := range strings.Split(text, "\n") {
		level, heading, isHeading := headingLevel(line)
		if isHeading && level == 2 {
			walker.observeHeading(level, heading)
			continue
		}
		if !walker.inTarget() {
			continue
		}
		if isHeading {
			walker.observeHeading(level, heading)
			continue
		}
		match := glossLineRe.FindStringSubmatch(line)
		if match == nil {
			continue
		}
		content := strings.TrimSpace(match[1])
		if content == "" || strings.HasPrefix(content, "*") || strings.HasPrefix(content, ":") {
			continue
		}
		cleaned := Clean(content)
		if cleaned == "" || !hasAlnumRe.MatchString(cleaned) {
			continue
		}
		pos := walker.pos
		if pos == "" {
			pos = "unknown"
		}
		entry := DefinitionEntry{Language: walker.language, PartOfSpeech: pos, Text: cleaned}
		if !containsEntry(entries, entry) {
			entries = append(entries, entry)
		}
	}
	return entries
}

func containsEntry(entries []DefinitionEntry, entry DefinitionEntry) bool {
	for _, e := range entries {
		if e == entry {
			return true
		}
	}
	return false
}

// headingLevel parses a "==Heading==" line. The level is the length of the
// shorter of the two "=" runs; surplus "=" on either side stay part of the
// heading text, matching how MediaWiki resolves unbalanced markers.
func headingLevel(line string) (level int, heading string, ok bool) {
	trimmed := strings.TrimRight(line, " \t")
	leading := runLen(trimmed, false)
	trailing := runLen(trimmed, true)
	if leading == 0 || trailing == 0 {
		return 0, "", false
	}
	level = min(leading, trailing)
	for ; level > 0; level-- {
		if 2*level >= len(trimmed) {
			continue
		}
		middle := strings.TrimSpace(trimmed[level : len(trimmed)-level])
		if middle != "" {
			return level, middle, true
		}
	}
	return 0, "", false
}

func runLen(s string, fromEnd bool) int {
	n := 0
	if fromEnd {
		for i := len(s) - 1; i >= 0 && s[i] == '='; i-- {
			n++
		}
		return n
	}
	for i := 0; i < len(s) && s[i] == '='; i++ {
		n++
	}
	return n
}

func normalizeHeading(heading string) string {
	return strings.ToLower(strings.TrimSpace(multiSpaceRe.ReplaceAllString(heading, " ")))
}
