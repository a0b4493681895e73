package utils

import (
	"strings"
	"testing"
	"unicode/utf8"

	"go.uber.org/zap"
)

func TestClipForDisplay(t *testing.T) {
	tp := NewTextProcessor(zap.NewNop())

	tests := []struct {
		name     string
		text     string
		maxRunes int
		want     string
	}{
		{
			name:     "short text unchanged",
			text:     "https://example.com",
			maxRunes: 100,
			want:     "https://example.com",
		},
		{
			name:     "zero limit disables clipping",
			text:     strings.Repeat("a", 200),
			maxRunes: 0,
			want:     strings.Repeat("a", 200),
		},
		{
			name:     "long text clipped with ellipsis",
			text:     strings.Repeat("x", 150),
			maxRunes: 100,
			want:     strings.Repeat("x", 100) + "…",
		},
		{
			name:     "exact length unchanged",
			text:     strings.Repeat("y", 100),
			maxRunes: 100,
			want:     strings.Repeat("y", 100),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tp.ClipForDisplay(tt.text, tt.maxRunes); got != tt.want {
				t.Fatalf("ClipForDisplay() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestClipForDisplayMultibyte(t *testing.T) {
	tp := NewTextProcessor(zap.NewNop())

	text := strings.Repeat("ü", 120)
	got := tp.ClipForDisplay(text, 100)

	if !utf8.ValidString(got) {
		t.Fatal("clipping produced invalid UTF-8")
	}
	if utf8.RuneCountInString(got) != 101 {
		t.Fatalf("clipped length = %d runes, want 100 plus ellipsis", utf8.RuneCountInString(got))
	}
	if !strings.HasSuffix(got, "…") {
		t.Fatalf("clipped text missing ellipsis: %q", got[len(got)-8:])
	}
}

func TestSanitizeUTF8(t *testing.T) {
	tp := NewTextProcessor(zap.NewNop())

	if got := tp.SanitizeUTF8("plain ascii"); got != "plain ascii" {
		t.Fatalf("valid input changed: %q", got)
	}

	invalid := "abc\xff\xfedef"
	got := tp.SanitizeUTF8(invalid)
	if !utf8.ValidString(got) {
		t.Fatalf("output still invalid: %q", got)
	}
	if !strings.Contains(got, "abc") || !strings.Contains(got, "def") {
		t.Fatalf("valid runs lost: %q", got)
	}
}
