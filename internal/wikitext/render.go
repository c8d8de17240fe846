package wikitext

import (
	"fmt"
	"regexp"
	"strings"
)

// family identifies one rendering rule. Dispatch is a closed match: every
// template name maps to exactly one family, and unknown names (apart from
// the generic "… of" fallback) render to nothing rather than leaking markup.
type family int

const (
	famUnknown family = iota
	famLabel
	famUsageLabel
	famLink
	famLang
	famEmpty
	famQualifier
	famName
	famPlace
	famTaxon
	famTaxlink
	famRelation
	famISO639
	famISO3166
	famISO4217
	famSIUnit
	famSIUnitAbbrev
	famAltForms
	famNameTranslit
	famNonGloss
	famUsage
	famQuote
	famDefinition
)

// families maps every recognized template name to its rendering family.
var families = map[string]family{
	"lb": famLabel, "lbl": famLabel, "label": famLabel, "labels": famLabel,
	"tag": famLabel, "tags": famLabel,
	"u": famUsageLabel,
	"l": famLink, "link": famLink, "m": famLink, "mention": famLink,
	"w": famLink, "wp": famLink, "wikipedia": famLink,
	"lang":    famLang,
	"senseid": famEmpty, "sid": famEmpty,
	"q": famQualifier, "qual": famQualifier, "qualifier": famQualifier,
	"surname": famName, "given name": famName,
	"place":   famPlace,
	"taxon":   famTaxon,
	"taxlink": famTaxlink, "taxfmt": famTaxlink,
	"syn": famRelation, "hol": famRelation, "mer": famRelation,
	"iso 639":     famISO639,
	"iso 3166":    famISO3166,
	"iso 4217":    famISO4217,
	"si-unit":     famSIUnit,
	"si-unit-abb": famSIUnitAbbrev,
	"alti":        famAltForms,
	"name translit": famNameTranslit,
	"non-gloss": famNonGloss, "ng": famNonGloss, "ngd": famNonGloss, "n-g": famNonGloss,
	"ux": famUsage, "uxi": famUsage, "uxa": famUsage,
	"quote-book": famQuote, "quote-journal": famQuote, "quote-text": famQuote,
	"quote-web": famQuote, "quote-av": famQuote, "quote-song": famQuote,
	"quote-hansard": famQuote,
}

func init() {
	for name := range definitionLabels {
		families[name] = famDefinition
	}
}

// definitionLabels gives the rendered label for each definitional
// "X of <term>" template. The generic "… of" fallback in render covers
// names missing from this table.
var definitionLabels = map[string]string{
	"abbreviation of":                    "Abbreviation of",
	"abbr of":                            "Abbreviation of",
	"acronym of":                         "Acronym of",
	"alternative form of":                "Alternative form of",
	"alt form":                           "Alternative form of",
	"alt form of":                        "Alternative form of",
	"altform":                            "Alternative form of",
	"alternative spelling of":            "Alternative spelling of",
	"alt spelling of":                    "Alternative spelling of",
	"alt sp":                             "Alternative spelling of",
	"alt sp of":                          "Alternative spelling of",
	"altsp":                              "Alternative spelling of",
	"alt spell":                          "Alternative spelling of",
	"alt spell of":                       "Alternative spelling of",
	"alternative case form of":           "Alternative case form of",
	"alternative letter-case of":         "Alternative letter-case of",
	"alternative capitalization of":      "Alternative capitalization of",
	"alt case":                           "Alternative case form of",
	"cap":                                "Capitalized form of",
	"contraction of":                     "Contraction of",
	"clipping of":                        "Clipping of",
	"comparative of":                     "Comparative of",
	"superlative of":                     "Superlative of",
	"initialism of":                      "Initialism of",
	"init of":                            "Initialism of",
	"misspelling of":                     "Misspelling of",
	"plural of":                          "Plural of",
	"plural form of":                     "Plural of",
	"past tense of":                      "Past tense of",
	"past participle of":                 "Past participle of",
	"present participle of":              "Present participle of",
	"simple past of":                     "Simple past of",
	"simple past and past participle of": "Simple past and past participle of",
	"third-person singular of":           "Third-person singular of",
	"third person singular of":           "Third-person singular of",
	"obs form":                           "Obsolete form of",
	"obs sp":                             "Obsolete spelling of",
	"obs sp of":                          "Obsolete spelling of",
	"stand sp":                           "Standard spelling of",
	"standard sp":                        "Standard spelling of",
	"pron sp":                            "Pronunciation spelling of",
	"ellipsis of":                        "Ellipsis of",
	"only used in":                       "Only used in",
	"short for":                          "Short for",
	"form of":                            "Form of",
	"inflection of":                      "Inflection of",
	"infl of":                            "Inflection of",
}

var nameLabels = map[string]string{
	"surname":    "Surname",
	"given name": "Given name",
}

var relationLabels = map[string]string{
	"syn": "Synonyms",
	"hol": "Holonyms",
	"mer": "Meronyms",
}

// Place templates describe locations with positional fragments like
// "c/Australia" (country), "s/New_York" (state) and a handful of annotated
// named fields.
var placePrefixes = []string{"c", "r", "s", "co", "par", "dist", "cc"}

var placeInlineRe = regexp.MustCompile(`(?i)\b(?:c|r|s|co|par|dist|cc)/([^\s,;]+)`)

// placeNamedFields maps named-parameter keys to their rendered annotation
// labels, in output order.
var placeNamedFields = []struct{ key, label string }{
	{"caplc", "capital"},
	{"capital", "capital"},
	{"official", "official name"},
	{"full", "full name"},
	{"short", "short name"},
	{"abbr", "abbreviation"},
	{"seat", "seat"},
}

var (
	annotationTagRe = regexp.MustCompile(`<[^>]+>`)
	multiSpaceRe    = regexp.MustCompile(`\s+`)
)

// render turns one parsed invocation into plain substitution text. Unmatched
// names fall through to the generic "… of" rule, then to empty — the
// renderer never fabricates text for a template it does not understand.
func render(inv Invocation) string {
	if inv.Name == "" {
		return ""
	}
	switch families[inv.Name] {
	case famLabel:
		return renderLabel(inv.Positional)
	case famUsageLabel:
		return renderUsageLabel(inv.Positional)
	case famLink:
		return first(inv.Positional)
	case famLang:
		if len(inv.Positional) > 0 {
			return strings.Join(inv.Positional, " ")
		}
		return firstNamed(inv.Named, "text", "passage")
	case famEmpty:
		return ""
	case famQualifier:
		return renderQualifier(inv.Positional)
	case famName:
		return renderName(nameLabels[inv.Name], inv.Positional, inv.Named)
	case famPlace:
		return renderPlace(inv.Positional, inv.Named)
	case famTaxon:
		return renderTaxon(inv.Positional)
	case famTaxlink:
		return renderTaxlink(inv.Positional)
	case famRelation:
		return renderRelation(inv.Name, inv.Positional)
	case famISO639:
		return renderISO639(inv.Positional)
	case famISO3166:
		return renderISO3166(inv.Positional)
	case famISO4217:
		return renderISO4217(inv.Positional)
	case famSIUnit:
		return renderSIUnit(inv.Positional, "SI unit %s", "SI unit")
	case famSIUnitAbbrev:
		return renderSIUnit(inv.Positional, "SI unit symbol for %s", "SI unit symbol")
	case famAltForms:
		return renderAltForms(inv.Positional)
	case famNameTranslit:
		return renderNameTranslit(inv.Positional, inv.Named)
	case famNonGloss:
		return first(inv.Positional)
	case famUsage:
		return renderUsage(inv.Positional, inv.Named)
	case famQuote:
		return renderQuote(inv.Named)
	case famDefinition:
		return renderDefinition(definitionLabels[inv.Name], inv.Positional)
	}
	if strings.HasSuffix(inv.Name, " of") && len(inv.Positional) > 0 {
		return fmt.Sprintf("%s %s", titleCase(inv.Name), inv.Positional[0])
	}
	return ""
}

func first(params []string) string {
	if len(params) > 0 {
		return params[0]
	}
	return ""
}

func firstNamed(named map[string]string, keys ...string) string {
	for _, key := range keys {
		if v := named[key]; v != "" {
			return v
		}
	}
	return ""
}

// renderLabel groups positional parameters on the "_" separator into
// comma-joined clusters, joins clusters with "; ", and wraps the whole in
// parentheses: {{lb|en|obsolete|_|dialectal|Scotland}} → "(obsolete;
// dialectal, Scotland)".
func renderLabel(params []string) string {
	if len(params) == 0 {
		return ""
	}
	var groups []string
	var current []string
	for _, p := range params {
		if p == "_" {
			if len(current) > 0 {
				groups = append(groups, strings.Join(current, ", "))
				current = nil
			}
			continue
		}
		current = append(current, p)
	}
	if len(current) > 0 {
		groups = append(groups, strings.Join(current, ", "))
	}
	if len(groups) == 0 {
		return ""
	}
	return "(" + strings.Join(groups, "; ") + ")"
}

func renderUsageLabel(params []string) string {
	label := strings.Trim(renderLabel(params), "()")
	if label == "" {
		return ""
	}
	return fmt.Sprintf("Used %s.", label)
}

func renderQualifier(params []string) string {
	if len(params) == 0 {
		return ""
	}
	return "(" + strings.Join(params, ", ") + ")"
}

func renderName(label string, params []string, named map[string]string) string {
	var details []string
	details = append(details, params...)
	if origin := firstNamed(named, "from", "origin"); origin != "" {
		details = append(details, "from "+origin)
	}
	if meaning := named["meaning"]; meaning != "" {
		details = append(details, "meaning "+meaning)
	}
	if len(details) > 0 {
		return fmt.Sprintf("%s (%s)", label, strings.Join(details, ", "))
	}
	return label
}

func renderDefinition(label string, params []string) string {
	if len(params) == 0 {
		return ""
	}
	text := fmt.Sprintf("%s %s", label, params[0])
	if len(params) > 1 {
		text = fmt.Sprintf("%s (%s)", text, strings.Join(params[1:], "; "))
	}
	return text
}

func renderUsage(params []string, named map[string]string) string {
	if len(params) > 0 {
		return params[0]
	}
	return firstNamed(named, "text", "passage", "quote")
}

func renderQuote(named map[string]string) string {
	if text := firstNamed(named, "text", "passage", "quote"); text != "" {
		return text
	}
	title := named["title"]
	author := named["author"]
	switch {
	case title != "" && author != "":
		return fmt.Sprintf("Quotation from %s by %s.", title, author)
	case title != "":
		return fmt.Sprintf("Quotation from %s.", title)
	}
	return "Quotation."
}

func renderTaxon(params []string) string {
	if len(params) == 0 {
		return "A taxonomic entity."
	}
	text := "A taxonomic " + params[0]
	if len(params) > 2 && params[1] != "" && params[2] != "" {
		text = fmt.Sprintf("%s within the %s %s", text, params[1], params[2])
	}
	if len(params) > 3 {
		if desc := strings.TrimSpace(strings.TrimLeft(params[3], "–- ")); desc != "" {
			text = fmt.Sprintf("%s – %s", text, desc)
		}
	}
	return text + "."
}

func renderTaxlink(params []string) string {
	if len(params) == 0 {
		return "Taxon."
	}
	name := cleanRelationTerm(params[0])
	if len(params) > 1 {
		if rank := cleanRelationTerm(params[1]); rank != "" {
			return fmt.Sprintf("Taxon %s (%s).", name, rank)
		}
	}
	return fmt.Sprintf("Taxon %s.", name)
}

func renderRelation(kind string, params []string) string {
	terms := cleanTermList(params, false)
	if len(terms) == 0 {
		return ""
	}
	label := relationLabels[kind]
	if label == "" {
		label = "Related terms"
	}
	if len(terms) == 1 {
		// Singular label: "Synonyms" → "Synonym".
		return fmt.Sprintf("%s: %s", strings.TrimSuffix(label, "s"), terms[0])
	}
	return fmt.Sprintf("%s: %s", label, strings.Join(terms, ", "))
}

func renderISO639(params []string) string {
	if len(params) == 0 {
		return "ISO 639 language code."
	}
	return fmt.Sprintf("ISO 639-%s language code.", cleanRelationTerm(params[0]))
}

func renderISO3166(params []string) string {
	switch {
	case len(params) >= 3:
		return fmt.Sprintf("ISO 3166-%s alpha-%s code for %s.",
			cleanRelationTerm(params[0]), cleanRelationTerm(params[1]), cleanRelationTerm(params[2]))
	case len(params) >= 2:
		return fmt.Sprintf("ISO 3166-%s alpha-%s code.",
			cleanRelationTerm(params[0]), cleanRelationTerm(params[1]))
	}
	return "ISO 3166 country code."
}

func renderISO4217(params []string) string {
	if len(params) == 0 {
		return "ISO 4217 currency code."
	}
	return fmt.Sprintf("ISO 4217 currency code %s.", cleanRelationTerm(params[0]))
}

// renderSIUnit handles both {{si-unit}} and {{si-unit-abb}}: a prefix+base
// unit pair (or a bare unit) with an optional measured quantity.
func renderSIUnit(params []string, withUnit, withoutUnit string) string {
	if len(params) == 0 {
		return withoutUnit + "."
	}
	var prefix, base, quantity string
	if len(params) > 1 {
		prefix = cleanRelationTerm(params[0])
		base = cleanRelationTerm(params[1])
	} else {
		base = cleanRelationTerm(params[0])
	}
	if len(params) > 2 {
		quantity = cleanRelationTerm(params[2])
	}
	unit := base
	if prefix != "" {
		unit = prefix + base
	}
	text := withoutUnit
	if unit != "" {
		text = fmt.Sprintf(withUnit, unit)
	}
	if quantity != "" {
		text = fmt.Sprintf("%s (%s)", text, quantity)
	}
	return text + "."
}

func renderAltForms(params []string) string {
	terms := cleanTermList(params, true)
	if len(terms) == 0 {
		return "Alternative forms."
	}
	return "Alternative forms: " + strings.Join(terms, ", ")
}

func renderNameTranslit(params []string, named map[string]string) string {
	base := "Transliteration"
	if len(params) > 0 {
		if name := cleanRelationTerm(params[len(params)-1]); name != "" {
			base = "Transliteration of " + name
		}
	}
	var details []string
	if kind := cleanRelationTerm(named["type"]); kind != "" {
		details = append(details, kind)
	}
	if addl := cleanRelationTerm(named["addl"]); addl != "" {
		details = append(details, addl)
	}
	if len(details) > 0 {
		return fmt.Sprintf("%s (%s)", base, strings.Join(details, "; "))
	}
	return base
}

// cleanTermList filters punctuation placeholders out of a positional list
// and normalizes each remaining term. squash removes inner spaces, which the
// alternative-forms template needs for its inline modifiers.
func cleanTermList(params []string, squash bool) []string {
	var terms []string
	for _, p := range params {
		switch p {
		case ";", "<", ">", "|", ",":
			continue
		}
		cleaned := cleanRelationTerm(p)
		if squash {
			cleaned = strings.ReplaceAll(cleaned, " ", "")
		}
		if cleaned != "" {
			terms = append(terms, cleaned)
		}
	}
	return terms
}

// cleanRelationTerm normalizes a cross-reference term: inline annotation
// tags, short language prefixes ("fr:", "roa-opt:"), wikilink piping, anchor
// fragments, and Thesaurus pointers all reduce to the bare term.
func cleanRelationTerm(term string) string {
	term = strings.TrimSpace(annotationTagRe.ReplaceAllString(term, ""))
	if prefix, rest, found := strings.Cut(term, ":"); found && len(prefix) <= 4 {
		term = rest
	}
	term = wikilinkPipedRe.ReplaceAllString(term, "$2")
	term = wikilinkRe.ReplaceAllString(term, "$1")
	if anchor := strings.IndexByte(term, '#'); anchor >= 0 {
		term = term[:anchor]
	}
	term = strings.ReplaceAll(term, "_", " ")
	if rest, found := strings.CutPrefix(strings.ToLower(term), "thesaurus:"); found {
		term = term[len(term)-len(rest):]
	}
	return strings.TrimSpace(term)
}

// normalizePlaceParam rewrites one positional place fragment: "c/Australia"
// → "in Australia", inline "s/New_York" references lose their prefix, and
// "abbrev of:" markers become readable clauses.
func normalizePlaceParam(param string) string {
	param = strings.ReplaceAll(param, "<<", "")
	param = strings.ReplaceAll(param, ">>", "")
	param = strings.TrimSpace(param)
	param = strings.TrimSpace(strings.TrimPrefix(param, "@"))

	lower := strings.ToLower(param)
	for _, marker := range []string{"abbrev of:", "abbrev of ", "abbr of:", "abbr of "} {
		if strings.HasPrefix(lower, marker) {
			param = "abbreviation of " + strings.TrimSpace(param[len(marker):])
			break
		}
	}

	lower = strings.ToLower(param)
	for _, prefix := range placePrefixes {
		token := prefix + "/"
		if strings.HasPrefix(lower, token) {
			if value := strings.TrimSpace(param[len(token):]); value != "" {
				return "in " + strings.ReplaceAll(value, "_", " ")
			}
		}
	}

	param = placeInlineRe.ReplaceAllString(param, "$1")
	param = strings.ReplaceAll(param, "/", " ")
	param = strings.ReplaceAll(param, "_", " ")
	return strings.TrimSpace(multiSpaceRe.ReplaceAllString(param, " "))
}

func renderPlace(params []string, named map[string]string) string {
	var parts []string
	for _, param := range params {
		if param == "" {
			continue
		}
		if strings.TrimSpace(param) == ";" {
			parts = append(parts, ";")
			continue
		}
		if normalized := normalizePlaceParam(param); normalized != "" {
			parts = append(parts, normalized)
		}
	}
	text := joinPlaceParts(parts)

	var details []string
	for _, field := range placeNamedFields {
		value := named[field.key]
		if value == "" {
			continue
		}
		cleaned := strings.ReplaceAll(value, "_", " ")
		cleaned = strings.ReplaceAll(cleaned, "<<", "")
		cleaned = strings.TrimSpace(strings.ReplaceAll(cleaned, ">>", ""))
		if cleaned != "" {
			details = append(details, field.label+": "+cleaned)
		}
	}
	if len(details) > 0 {
		detailsText := strings.Join(details, "; ")
		if text != "" {
			return text + "; " + detailsText
		}
		return detailsText
	}
	return text
}

func joinPlaceParts(parts []string) string {
	if len(parts) == 0 {
		return ""
	}
	combined := make([]string, 0, len(parts))
	for _, part := range parts {
		if part == ";" && len(combined) > 0 {
			combined[len(combined)-1] = strings.TrimRight(combined[len(combined)-1], " ")
		}
		combined = append(combined, part)
	}
	text := strings.Join(combined, " ")
	text = strings.ReplaceAll(text, " ;", ";")
	return strings.TrimSpace(multiSpaceRe.ReplaceAllString(text, " "))
}

// titleCase upper-cases the first letter of each space-separated word, used
// by the generic "… of" fallback ("feminine plural of" → "Feminine Plural
// Of").
func titleCase(s string) string {
	words := strings.Split(s, " ")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
