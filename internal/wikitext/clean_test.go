package wikitext

import "testing"

func TestClean(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "plain text unchanged",
			in:   "A small animal.",
			want: "A small animal.",
		},
		{
			name: "html comment removed",
			in:   "A <!-- hidden --> cat.",
			want: "A cat.",
		},
		{
			name: "template expanded",
			in:   "{{lb|en|transitive}} To chase.",
			want: "(transitive) To chase.",
		},
		{
			name: "unknown template stripped without residue",
			in:   "A {{rfquote|en}} cat.",
			want: "A cat.",
		},
		{
			name: "piped wikilink keeps display text",
			in:   "A [[domestic cat|cat]].",
			want: "A cat.",
		},
		{
			name: "simple wikilink unwrapped",
			in:   "A [[cat]].",
			want: "A cat.",
		},
		{
			name: "external link keeps label",
			in:   "See [https://example.com the site].",
			want: "See the site.",
		},
		{
			name: "bare external link keeps url",
			in:   "See [https://example.com].",
			want: "See https://example.com.",
		},
		{
			name: "bold and italic markers removed",
			in:   "A '''bold''' and ''italic'' word.",
			want: "A bold and italic word.",
		},
		{
			name: "html tags removed",
			in:   "A <b>cat</b><br/> indeed.",
			want: "A cat indeed.",
		},
		{
			name: "entities unescaped",
			in:   "fish &amp; chips",
			want: "fish & chips",
		},
		{
			name: "whitespace collapsed and punctuation tightened",
			in:   "A   cat , mostly .",
			want: "A cat, mostly.",
		},
		{
			name: "usage example with markup inside template",
			in:   "{{ux|en|The '''cat''' sat.}}",
			want: "The cat sat.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Clean(tt.in); got != tt.want {
				t.Errorf("Clean(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

// Clean's output contains no markup, so cleaning it again must change
// nothing.
func TestClean_Idempotent(t *testing.T) {
	inputs := []string{
		"{{lb|en|zoology}} A [[cat]] &amp; a '''dog'''.",
		"A <!-- x --> plain {{rfc|en}} line .",
		"{{plural of|en|cat}}",
	}
	for _, in := range inputs {
		once := Clean(in)
		if twice := Clean(once); once != twice {
			t.Errorf("Clean(%q) not idempotent: %q != %q", in, once, twice)
		}
	}
}
