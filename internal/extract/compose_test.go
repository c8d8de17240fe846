package extract_test

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/heartmarshall/worddefs/internal/extract"
	"github.com/heartmarshall/worddefs/internal/wikitext"
)

func resultWith(defs map[string][]wikitext.DefinitionEntry) *extract.Result {
	return &extract.Result{
		Definitions:  defs,
		FormOf:       make(map[string]map[string]string),
		AltVariant:   make(map[string]map[string]bool),
		AltSpellings: make(map[string]map[string]bool),
	}
}

func TestCompose_VerbTransitivity(t *testing.T) {
	tests := []struct {
		name  string
		entry wikitext.DefinitionEntry
		want  string
	}{
		{
			name:  "transitive",
			entry: wikitext.DefinitionEntry{Language: "english", PartOfSpeech: "verb", Text: "(transitive) To chase."},
			want:  "chase | verb (transitive): (transitive) To chase.",
		},
		{
			name:  "both markers in label order",
			entry: wikitext.DefinitionEntry{Language: "english", PartOfSpeech: "verb", Text: "(intransitive, transitive, dated) To chase."},
			want:  "chase | verb (transitive, intransitive): (intransitive, transitive, dated) To chase.",
		},
		{
			name:  "intransitive only, not mistaken for transitive",
			entry: wikitext.DefinitionEntry{Language: "english", PartOfSpeech: "verb", Text: "(intransitive) To run about."},
			want:  "chase | verb (intransitive): (intransitive) To run about.",
		},
		{
			name:  "no leading label",
			entry: wikitext.DefinitionEntry{Language: "english", PartOfSpeech: "verb", Text: "To chase."},
			want:  "chase | verb: To chase.",
		},
		{
			name:  "non-verb label untouched",
			entry: wikitext.DefinitionEntry{Language: "english", PartOfSpeech: "noun", Text: "(transitive) Odd but possible."},
			want:  "chase | noun: (transitive) Odd but possible.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := resultWith(map[string][]wikitext.DefinitionEntry{"chase": {tt.entry}})
			lines := extract.Compose([]string{"chase"}, res)
			if len(lines) != 1 || lines[0] != tt.want {
				t.Errorf("Compose = %#v, want [%q]", lines, tt.want)
			}
		})
	}
}

func TestCompose_TranslingualPrefix(t *testing.T) {
	res := resultWith(map[string][]wikitext.DefinitionEntry{
		"am": {
			{Language: "translingual", PartOfSpeech: "symbol", Text: "Symbol for the attometer."},
			{Language: "english", PartOfSpeech: "verb", Text: "First-person singular of be."},
		},
	})
	lines := extract.Compose([]string{"am"}, res)
	want := []string{"am | translingual symbol: Symbol for the attometer. | verb: First-person singular of be."}
	if !reflect.DeepEqual(lines, want) {
		t.Errorf("Compose = %#v, want %#v", lines, want)
	}
}

func TestCompose_SmallestLemmaWins(t *testing.T) {
	res := resultWith(nil)
	res.FormOf["geese"] = map[string]string{"goose": "plural", "geese-archaic": "plural"}
	res.Definitions = map[string][]wikitext.DefinitionEntry{
		"goose": {{Language: "english", PartOfSpeech: "noun", Text: "A waterfowl."}},
	}

	// "geese-archaic" < "goose", so the redirect goes there even though only
	// goose has definitions.
	lines := extract.Compose([]string{"geese"}, res)
	if len(lines) != 1 || lines[0] != "geese-archaic" {
		t.Errorf("Compose = %#v, want the lexicographically smallest lemma", lines)
	}
}

func TestCompose_InflectedWordWithOwnDefinitions(t *testing.T) {
	res := resultWith(map[string][]wikitext.DefinitionEntry{
		"glass":   {{Language: "english", PartOfSpeech: "noun", Text: "A transparent solid."}},
		"glasses": {{Language: "english", PartOfSpeech: "noun", Text: "Spectacles."}},
	})
	res.FormOf["glasses"] = map[string]string{"glass": "plural"}

	lines := extract.Compose([]string{"glasses"}, res)
	want := []string{
		"glass | noun: A transparent solid.",
		"glasses | noun: Spectacles.",
	}
	if !reflect.DeepEqual(lines, want) {
		t.Errorf("Compose = %#v, want %#v", lines, want)
	}
}

func TestCompose_EachWordEmittedOnce(t *testing.T) {
	res := resultWith(map[string][]wikitext.DefinitionEntry{
		"cat": {{Language: "english", PartOfSpeech: "noun", Text: "A feline."}},
	})
	res.FormOf["cats"] = map[string]string{"cat": "plural"}

	lines := extract.Compose([]string{"cat", "cats", "cat"}, res)
	want := []string{"cat | noun: A feline."}
	if !reflect.DeepEqual(lines, want) {
		t.Errorf("Compose = %#v, want %#v", lines, want)
	}
}

func TestCompose_AltSpellingsSortedOnLastField(t *testing.T) {
	res := resultWith(map[string][]wikitext.DefinitionEntry{
		"color": {{Language: "english", PartOfSpeech: "noun", Text: "Any hue."}},
	})
	res.AltSpellings["color"] = map[string]bool{"coulor": true, "colour": true}

	lines := extract.Compose([]string{"color"}, res)
	want := []string{"color | noun: Any hue. (alternate spellings: colour, coulor)"}
	if !reflect.DeepEqual(lines, want) {
		t.Errorf("Compose = %#v, want %#v", lines, want)
	}
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")
	if err := extract.WriteFile(path, []string{"cat | noun: A feline.", "dog"}); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	want := "cat | noun: A feline.\ndog\n"
	if string(data) != want {
		t.Errorf("file = %q, want %q", string(data), want)
	}
}
