package wikitext

import (
	"html"
	"regexp"
	"strings"
)

var (
	htmlCommentRe        = regexp.MustCompile(`(?s)<!--.*?-->`)
	externalLinkRe       = regexp.MustCompile(`\[(https?://[^\s\]]+)\s+([^\]]+)\]`)
	externalLinkSimpleRe = regexp.MustCompile(`\[(https?://[^\s\]]+)\]`)
	wikilinkPipedRe      = regexp.MustCompile(`\[\[([^|\]]+)\|([^\]]+)\]\]`)
	wikilinkRe           = regexp.MustCompile(`\[\[([^\]]+)\]\]`)
	htmlTagRe            = regexp.MustCompile(`<[^>]+>`)
	spaceBeforePunctRe   = regexp.MustCompile(`\s+([.,;:!?])`)
)

// Clean flattens one line of raw wikitext into plain definition text. The
// stages are order-dependent: templates must expand before residual braces
// are stripped, links must resolve before HTML tags are removed, and
// whitespace normalization runs last.
func Clean(text string) string {
	text = htmlCommentRe.ReplaceAllString(text, "")
	text = ExpandTemplates(text)
	text = StripUnrendered(text)
	text = externalLinkRe.ReplaceAllString(text, "$2")
	text = externalLinkSimpleRe.ReplaceAllString(text, "$1")
	text = wikilinkPipedRe.ReplaceAllString(text, "$2")
	text = wikilinkRe.ReplaceAllString(text, "$1")
	text = strings.ReplaceAll(text, "'''", "")
	text = strings.ReplaceAll(text, "''", "")
	text = htmlTagRe.ReplaceAllString(text, "")
	text = html.UnescapeString(text)
	text = strings.TrimSpace(multiSpaceRe.ReplaceAllString(text, " "))
	text = spaceBeforePunctRe.ReplaceAllString(text, "$1")
	return text
}
