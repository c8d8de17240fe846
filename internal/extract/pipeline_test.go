package extract_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"reflect"
	"strings"
	"testing"

	"github.com/heartmarshall/worddefs/internal/extract"
)

type testPage struct {
	title string
	text  string
}

// pagesSource builds an in-memory dump stream in the given page order. Each
// call to the source replays the stream from the beginning, like reopening
// the file.
func pagesSource(pages ...testPage) extract.Source {
	var b strings.Builder
	b.WriteString("<mediawiki>\n")
	for _, p := range pages {
		fmt.Fprintf(&b, "<page><title>%s</title><revision><text>%s</text></revision></page>\n",
			p.title, p.text)
	}
	b.WriteString("</mediawiki>\n")
	doc := b.String()
	return func() (io.ReadCloser, error) {
		return io.NopCloser(strings.NewReader(doc)), nil
	}
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

var (
	catPage = testPage{
		title: "cat",
		text:  "==English==\n\n===Noun===\n# A small domesticated feline.\n",
	}
	catsPage = testPage{
		title: "cats",
		text:  "==English==\n\n===Noun===\n# {{plural of|en|cat}}\n",
	}
)

// An inflected word whose only gloss redirects to its lemma collapses into
// the lemma's line, even when the lemma's page was already behind the
// scan position and needed a second pass.
func TestPipeline_InflectionResolvedAcrossPasses(t *testing.T) {
	p := extract.NewPipeline(testLogger(), pagesSource(catPage, catsPage), 0)

	res, stats, err := p.Run(context.Background(), []string{"cats"})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if stats.Passes != 2 {
		t.Errorf("Passes = %d, want 2", stats.Passes)
	}
	if _, ok := res.Definitions["cats"]; ok {
		t.Error("cats should have no independent definitions")
	}
	if res.FormOf["cats"]["cat"] != "plural" {
		t.Errorf("FormOf[cats] = %#v, want plural of cat", res.FormOf["cats"])
	}
	if len(res.Missing()) != 0 {
		t.Errorf("Missing = %v, want none", res.Missing())
	}

	lines := extract.Compose([]string{"cats"}, res)
	want := []string{"cat | noun: A small domesticated feline."}
	if !reflect.DeepEqual(lines, want) {
		t.Errorf("Compose = %#v, want %#v", lines, want)
	}
}

// When the lemma's page comes after the inflected form's, the live target
// set picks it up within the first pass.
func TestPipeline_InflectionResolvedInSinglePass(t *testing.T) {
	p := extract.NewPipeline(testLogger(), pagesSource(catsPage, catPage), 0)

	res, stats, err := p.Run(context.Background(), []string{"cats"})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if stats.Passes != 1 {
		t.Errorf("Passes = %d, want 1", stats.Passes)
	}
	if len(res.Definitions["cat"]) != 1 {
		t.Errorf("Definitions[cat] = %#v, want one entry", res.Definitions["cat"])
	}
}

// Lemmas discovered during the second pass are recorded (and reported as
// missing when unseen) but never trigger a third pass.
func TestPipeline_FrontierBoundedAtTwoPasses(t *testing.T) {
	pages := []testPage{
		{title: "fo", text: "==English==\n\n===Noun===\n# The base word.\n"},
		{title: "foo", text: "==English==\n\n===Noun===\n# {{plural of|en|fo}}\n"},
		{title: "foos", text: "==English==\n\n===Noun===\n# {{plural of|en|foo}}\n"},
	}
	p := extract.NewPipeline(testLogger(), pagesSource(pages...), 0)

	res, stats, err := p.Run(context.Background(), []string{"foos"})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if stats.Passes != 2 {
		t.Errorf("Passes = %d, want 2", stats.Passes)
	}
	if res.Seen["fo"] {
		t.Error("fo was discovered in pass 2 and must not be scanned for")
	}
	if !res.Targets["fo"] {
		t.Error("fo should still be recorded as a target")
	}
	if got := res.Missing(); !reflect.DeepEqual(got, []string{"fo"}) {
		t.Errorf("Missing = %v, want [fo]", got)
	}
}

func TestPipeline_MissingWordReported(t *testing.T) {
	p := extract.NewPipeline(testLogger(), pagesSource(catPage), 0)

	res, _, err := p.Run(context.Background(), []string{"unicorn"})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if got := res.Missing(); !reflect.DeepEqual(got, []string{"unicorn"}) {
		t.Errorf("Missing = %v, want [unicorn]", got)
	}
	lines := extract.Compose([]string{"unicorn"}, res)
	if !reflect.DeepEqual(lines, []string{"unicorn"}) {
		t.Errorf("Compose = %#v, want the bare word", lines)
	}
}

func TestPipeline_AltSpellingRedirects(t *testing.T) {
	pages := []testPage{
		{title: "color", text: "==English==\n\n===Noun===\n# Any hue.\n"},
		{title: "colour", text: "==English==\n\n===Noun===\n# {{alternative spelling of|en|color}}\n"},
	}
	p := extract.NewPipeline(testLogger(), pagesSource(pages...), 0)

	res, _, err := p.Run(context.Background(), []string{"colour"})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if !res.AltVariant["colour"]["color"] {
		t.Errorf("AltVariant[colour] = %#v, want color", res.AltVariant["colour"])
	}
	lines := extract.Compose([]string{"colour"}, res)
	want := []string{"color | noun: Any hue. (alternate spellings: colour)"}
	if !reflect.DeepEqual(lines, want) {
		t.Errorf("Compose = %#v, want %#v", lines, want)
	}
}

// Page titles match case-insensitively against lowercased lookup keys.
func TestPipeline_TitleMatchingCaseInsensitive(t *testing.T) {
	pages := []testPage{
		{title: "Cheshire", text: "==English==\n\n===Proper noun===\n# A county of England.\n"},
	}
	p := extract.NewPipeline(testLogger(), pagesSource(pages...), 0)

	res, _, err := p.Run(context.Background(), []string{"cheshire"})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(res.Definitions["cheshire"]) != 1 {
		t.Errorf("Definitions = %#v, want cheshire entry", res.Definitions)
	}
}

// Two runs over the same dump and word list must produce identical output.
func TestPipeline_Deterministic(t *testing.T) {
	pages := []testPage{
		catPage, catsPage,
		{title: "anteater", text: "==English==\n\n===Noun===\n# A mammal that eats ants.\n"},
	}
	words := []string{"anteater", "cats"}

	run := func() []string {
		p := extract.NewPipeline(testLogger(), pagesSource(pages...), 0)
		res, _, err := p.Run(context.Background(), words)
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
		return extract.Compose(words, res)
	}

	first := run()
	for range 5 {
		if next := run(); !reflect.DeepEqual(first, next) {
			t.Fatalf("output not deterministic: %#v != %#v", first, next)
		}
	}
}

func TestPipeline_SourceError(t *testing.T) {
	failing := func() (io.ReadCloser, error) {
		return nil, fmt.Errorf("no such dump")
	}
	p := extract.NewPipeline(testLogger(), failing, 0)

	if _, _, err := p.Run(context.Background(), []string{"cat"}); err == nil {
		t.Error("expected error from failing source")
	}
}

func TestPipeline_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := extract.NewPipeline(testLogger(), pagesSource(catPage), 0)
	if _, _, err := p.Run(ctx, []string{"cat"}); err == nil {
		t.Error("expected error from cancelled context")
	}
}
