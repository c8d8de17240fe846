package wikitext

import "testing"

func TestExtractTemplate(t *testing.T) {
	tests := []struct {
		name      string
		in        string
		start     int
		wantEnd   int
		wantInner string
		wantOK    bool
	}{
		{
			name:      "simple template",
			in:        "{{lb|en|rare}}",
			wantEnd:   14,
			wantInner: "lb|en|rare",
			wantOK:    true,
		},
		{
			name:      "nested template spans to outer close",
			in:        "{{a|{{b}}}}",
			wantEnd:   11,
			wantInner: "a|{{b}}",
			wantOK:    true,
		},
		{
			name:      "template mid-text",
			in:        "see {{l|en|cat}} here",
			start:     4,
			wantEnd:   16,
			wantInner: "l|en|cat",
			wantOK:    true,
		},
		{
			name:   "unterminated opener",
			in:     "{{lb|en|rare",
			wantOK: false,
		},
		{
			name:   "unterminated nested close",
			in:     "{{a|{{b}}",
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			end, inner, ok := ExtractTemplate(tt.in, tt.start)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if end != tt.wantEnd {
				t.Errorf("end = %d, want %d", end, tt.wantEnd)
			}
			if inner != tt.wantInner {
				t.Errorf("inner = %q, want %q", inner, tt.wantInner)
			}
		})
	}
}

func TestStripUnrendered(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "plain text unchanged",
			in:   "hello world",
			want: "hello world",
		},
		{
			name: "single span removed",
			in:   "a {{junk}} b",
			want: "a  b",
		},
		{
			name: "nested span removed whole",
			in:   "x{{a|{{b}}}}y",
			want: "xy",
		},
		{
			name: "unterminated span drops rest",
			in:   "keep {{broken and the rest",
			want: "keep ",
		},
		{
			name: "stray close braces kept",
			in:   "a }} b",
			want: "a }} b",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StripUnrendered(tt.in); got != tt.want {
				t.Errorf("StripUnrendered(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
