// Package wikitext parses and flattens the subset of MediaWiki markup that
// appears on Wiktionary definition lines: nested {{…}} templates, [[…]]
// links, headings, and inline HTML. Rendering is deliberately lossy — it
// produces plain text for a dictionary entry, not HTML.
package wikitext

// ExtractTemplate scans text from start, which must point at a "{{" opener,
// and returns the index just past the matching "}}" together with the inner
// content (the text between the outermost braces). Nested "{{…}}" pairs are
// tracked by depth so they do not terminate the span early.
//
// If no matching close exists before end-of-text, ok is false and the caller
// should treat the opener as literal text.
func ExtractTemplate(text string, start int) (end int, inner string, ok bool) {
	depth := 0
	idx := start
	for idx < len(text) {
		if hasAt(text, idx, "{{") {
			depth++
			idx += 2
			continue
		}
		if depth > 0 && hasAt(text, idx, "}}") {
			depth--
			idx += 2
			if depth == 0 {
				return idx, text[start+2 : idx-2], true
			}
			continue
		}
		idx++
	}
	return 0, "", false
}

// StripUnrendered removes every remaining {{…}} span from text, keeping only
// characters at brace depth zero. Spans left unterminated drop the rest of
// the text rather than leaking literal braces into output.
func StripUnrendered(text string) string {
	var b []byte
	depth := 0
	idx := 0
	for idx < len(text) {
		if hasAt(text, idx, "{{") {
			depth++
			idx += 2
			continue
		}
		if depth > 0 && hasAt(text, idx, "}}") {
			depth--
			idx += 2
			continue
		}
		if depth == 0 {
			b = append(b, text[idx])
		}
		idx++
	}
	return string(b)
}

func hasAt(s string, idx int, marker string) bool {
	return idx+len(marker) <= len(s) && s[idx:idx+len(marker)] == marker
}
