package segment

import (
	"strings"
	"testing"
)

func TestSections_Empty(t *testing.T) {
	for _, in := range []string{"", "   ", "\n\n\t"} {
		if got := Sections(in); len(got) != 0 {
			t.Errorf("Sections(%q) = %d sections, want 0", in, len(got))
		}
	}
}

func TestSections_NumberedHeadings(t *testing.T) {
	text := "MASTER AGREEMENT\n1. Definitions apply here.\n2. The term is one year.\nSection 3. Payment is due monthly.\nArticle IV. Notices go by mail."
	sections := Sections(text)

	if len(sections) != 5 {
		t.Fatalf("expected 5 sections, got %d: %+v", len(sections), sections)
	}

	if sections[0].Heading != "" || sections[0].Content != "MASTER AGREEMENT" {
		t.Errorf("unexpected preamble section: %+v", sections[0])
	}
	if sections[1].Heading != "1." {
		t.Errorf("expected heading '1.', got %q", sections[1].Heading)
	}
	if sections[3].Heading != "Section 3." || sections[3].Content != "Payment is due monthly." {
		t.Errorf("unexpected section 3: %+v", sections[3])
	}
	if sections[4].Heading != "Article IV." {
		t.Errorf("expected 'Article IV.', got %q", sections[4].Heading)
	}

	for i, s := range sections {
		if s.Index != i {
			t.Errorf("section %d has index %d", i, s.Index)
		}
	}
}

func TestSections_Paragraphs(t *testing.T) {
	text := "First paragraph here.\n\nSecond paragraph here.\n\nThird paragraph here."
	sections := Sections(text)
	if len(sections) != 3 {
		t.Fatalf("expected 3 paragraph sections, got %d", len(sections))
	}
	if sections[2].Content != "Third paragraph here." {
		t.Errorf("unexpected content: %q", sections[2].Content)
	}
}

func TestSections_FallsBackToLines(t *testing.T) {
	text := "line one\nline two\nline three\n\nline four"
	sections := Sections(text)
	if len(sections) != 4 {
		t.Fatalf("expected 4 line sections, got %d", len(sections))
	}
}

func TestSections_ChunksShortText(t *testing.T) {
	sections := Sections("The contract is excellent and the terms are favorable.")
	if len(sections) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(sections))
	}
	if sections[0].Content != "The contract is excellent and the terms are favorable." {
		t.Errorf("unexpected chunk: %q", sections[0].Content)
	}
}

func TestSections_ChunksTooManyPieces(t *testing.T) {
	var lines []string
	for i := 0; i < 40; i++ {
		lines = append(lines, "word word word word word")
	}
	sections := Sections(strings.Join(lines, "\n\n"))

	// 200 words, window max(50, 20) = 50
	if len(sections) != 4 {
		t.Errorf("expected 4 chunks, got %d", len(sections))
	}
}

func TestSplitSentences(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		newlines bool
		want     []string
	}{
		{
			name: "basic",
			text: "This is one. This is two? Yes! Note: done",
			want: []string{"This is one.", "This is two?", "Yes!", "Note:", "done"},
		},
		{
			name: "title abbreviation",
			text: "Ask Mr. Smith about it. Then leave.",
			want: []string{"Ask Mr. Smith about it.", "Then leave."},
		},
		{
			name: "initial",
			text: "Signed by J. Doe today. Done.",
			want: []string{"Signed by J. Doe today.", "Done."},
		},
		{
			name:     "newlines ignored",
			text:     "line one\nline two.",
			newlines: false,
			want:     []string{"line one\nline two."},
		},
		{
			name:     "newlines split",
			text:     "line one\nline two.",
			newlines: true,
			want:     []string{"line one", "line two."},
		},
		{
			name: "empty",
			text: "   ",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitSentences(tt.text, tt.newlines)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d sentences %q, want %d %q", len(got), got, len(tt.want), tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("sentence %d = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestWords(t *testing.T) {
	got := Words("The Party's obligations (Section 4.2) apply_now.")
	want := []string{"The", "Party", "s", "obligations", "Section", "4", "2", "apply_now"}
	if len(got) != len(want) {
		t.Fatalf("got %q, want %q", got, want)
	}
	for i := range got {
		if got[i] != want[i] {
			t.Errorf("word %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestTruncate(t *testing.T) {
	if got := Truncate("abcdef", 3); got != "abc" {
		t.Errorf("Truncate ascii = %q", got)
	}
	if got := Truncate("héllo", 2); got != "hé" {
		t.Errorf("Truncate multibyte = %q", got)
	}
	if got := Truncate("abc", 10); got != "abc" {
		t.Errorf("Truncate short = %q", got)
	}
	if got := Truncate("abc", 0); got != "abc" {
		t.Errorf("Truncate disabled = %q", got)
	}
}
