package wikitext

import "strings"

// maxExpandDepth bounds recursive template expansion. Real Wiktionary pages
// nest a handful of levels at most; anything deeper is treated as malformed
// and left unexpanded (StripUnrendered removes the residue later).
const maxExpandDepth = 40

// langSentinels are positional parameter values that mark the entry language
// rather than carrying content. They are dropped during parsing.
var langSentinels = map[string]bool{
	"en":      true,
	"eng":     true,
	"english": true,
}

// wikiNamespaces are interwiki prefixes stripped from parameter values.
var wikiNamespaces = map[string]bool{
	"w":          true,
	"wikipedia":  true,
	"wiktionary": true,
	"s":          true,
	"quote":      true,
	"commons":    true,
}

// Invocation is one parsed template call: lowercased name, ordered
// positional parameters, and named parameters (last write wins). Parameter
// values are fully expanded text, not raw markup.
type Invocation struct {
	Name       string
	Positional []string
	Named      map[string]string
}

// SplitParams splits template inner content into its top-level parts on "|",
// respecting both {{…}} nesting and [[…]] nesting so that a wikilink
// containing a pipe is not mistaken for a parameter separator. Empty parts
// are dropped; each part is trimmed.
func SplitParams(content string) []string {
	var parts []string
	var current strings.Builder
	depth := 0
	linkDepth := 0
	idx := 0
	for idx < len(content) {
		switch {
		case hasAt(content, idx, "{{"):
			depth++
			current.WriteString("{{")
			idx += 2
		case depth > 0 && hasAt(content, idx, "}}"):
			depth--
			current.WriteString("}}")
			idx += 2
		case hasAt(content, idx, "[["):
			linkDepth++
			current.WriteString("[[")
			idx += 2
		case linkDepth > 0 && hasAt(content, idx, "]]"):
			linkDepth--
			current.WriteString("]]")
			idx += 2
		case content[idx] == '|' && depth == 0 && linkDepth == 0:
			parts = append(parts, strings.TrimSpace(current.String()))
			current.Reset()
			idx++
		default:
			current.WriteByte(content[idx])
			idx++
		}
	}
	parts = append(parts, strings.TrimSpace(current.String()))

	filtered := parts[:0]
	for _, p := range parts {
		if p != "" {
			filtered = append(filtered, p)
		}
	}
	return filtered
}

// parseInvocation parses one template's inner content. Parameter values are
// expanded depth-first before classification, so nested templates inside a
// parameter never reach the renderer as raw markup.
func parseInvocation(content string, depth int) Invocation {
	parts := SplitParams(content)
	if len(parts) == 0 {
		return Invocation{}
	}

	inv := Invocation{
		Name:  strings.ToLower(strings.TrimSpace(parts[0])),
		Named: make(map[string]string),
	}

	for _, param := range parts[1:] {
		if key, value, found := strings.Cut(param, "="); found {
			key = strings.ToLower(strings.TrimSpace(key))
			value = strings.TrimSpace(expand(value, depth+1))
			if value != "" {
				inv.Named[key] = value
			}
			continue
		}
		value := strings.TrimSpace(expand(param, depth+1))
		if value != "" {
			inv.Positional = append(inv.Positional, value)
		}
	}

	// Language sentinels are formatting noise, not content.
	kept := inv.Positional[:0]
	for _, p := range inv.Positional {
		if !langSentinels[strings.ToLower(p)] {
			kept = append(kept, stripWikiPrefix(p))
		}
	}
	inv.Positional = kept

	for key, value := range inv.Named {
		inv.Named[key] = stripWikiPrefix(value)
	}

	return inv
}

// stripWikiPrefix removes a leading interwiki namespace ("w:", "wikipedia:",
// …) from a parameter value. Other colon-bearing values pass through.
func stripWikiPrefix(text string) string {
	prefix, rest, found := strings.Cut(text, ":")
	if !found {
		return text
	}
	if wikiNamespaces[strings.ToLower(prefix)] {
		return rest
	}
	return text
}

// ExpandTemplates replaces every balanced {{…}} span in text with its
// rendered plain-text form, scanning left to right in a single eager pass.
// Unterminated openers are kept as literal text. Templates that render to
// nothing are dropped entirely.
func ExpandTemplates(text string) string {
	return expand(text, 0)
}

func expand(text string, depth int) string {
	if depth > maxExpandDepth {
		return text
	}
	var b strings.Builder
	idx := 0
	for idx < len(text) {
		if hasAt(text, idx, "{{") {
			end, content, ok := ExtractTemplate(text, idx)
			if !ok {
				b.WriteByte(text[idx])
				idx++
				continue
			}
			b.WriteString(render(parseInvocation(content, depth)))
			idx = end
			continue
		}
		b.WriteByte(text[idx])
		idx++
	}
	return b.String()
}
