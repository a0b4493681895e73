package core

import (
	"math"
	"testing"
)

func scoresEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestLinkScorerScore(t *testing.T) {
	scorer := NewLinkScorer(DefaultScoringConfig())

	tests := []struct {
		name string
		link LinkCandidate
		want float64
	}{
		{
			name: "empty href returns sentinel",
			link: LinkCandidate{Text: "view project", Href: ""},
			want: -999.0,
		},
		{
			name: "no signals scores zero",
			link: LinkCandidate{Text: "hello", Href: "https://example.com/a"},
			want: 0.0,
		},
		{
			name: "portal invite stacks every bonus",
			// trusted 0.6, intent "view project"+"project" 0.6,
			// deep path 0.1, href hints project+invite+plan 0.3
			link: LinkCandidate{
				Text: "View Project Now",
				Href: "https://app.planhub.com/projects/123/invites/456",
			},
			want: 1.6,
		},
		{
			name: "matching is case insensitive",
			// trusted 0.6, intent "submit" 0.3, href hints bid+plan 0.2
			link: LinkCandidate{Text: "SUBMIT", Href: "HTTPS://APP.PLANHUB.COM/BID"},
			want: 1.1,
		},
		{
			name: "overlapping intent phrases each count",
			link: LinkCandidate{Text: "submit bid", Href: "https://x.co/a"},
			want: 0.6,
		},
		{
			name: "deep path bonus alone",
			link: LinkCandidate{Text: "x", Href: "https://a.example.com/b/c"},
			want: 0.1,
		},
		{
			name: "negative hint outweighs intent",
			link: LinkCandidate{Text: "bid updates", Href: "https://news.example.com/unsubscribe"},
			want: -0.7,
		},
		{
			name: "knowledge base link penalized",
			link: LinkCandidate{Text: "", Href: "https://kb.example.com/help"},
			want: -1.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := scorer.Score(tt.link)
			if !scoresEqual(got, tt.want) {
				t.Fatalf("Score(%+v) = %v, want %v", tt.link, got, tt.want)
			}
		})
	}
}

func TestLinkScorerDeterministic(t *testing.T) {
	scorer := NewLinkScorer(DefaultScoringConfig())
	link := LinkCandidate{Text: "Submit your bid", Href: "https://app.planhub.com/projects/9/bid"}

	first := scorer.Score(link)
	for i := 0; i < 10; i++ {
		if got := scorer.Score(link); got != first {
			t.Fatalf("score changed between calls: %v then %v", first, got)
		}
	}
}

func TestLinkScorerNormalizesConfiguredTerms(t *testing.T) {
	cfg := DefaultScoringConfig()
	cfg.TrustedDomains = []string{"  PlanHub.com "}
	cfg.IntentPhrases = nil
	cfg.StructuralHints = nil
	cfg.NegativeHints = nil
	scorer := NewLinkScorer(cfg)

	got := scorer.Score(LinkCandidate{Text: "x", Href: "https://planhub.com"})
	if !scoresEqual(got, cfg.TrustedWeight) {
		t.Fatalf("expected configured domain to match after normalization, got %v", got)
	}
}

func TestLinkScorerEmptyHrefIgnoresOtherRules(t *testing.T) {
	scorer := NewLinkScorer(DefaultScoringConfig())

	// Text full of intent phrases must not rescue a target-less link.
	got := scorer.Score(LinkCandidate{Text: "view project submit bid portal", Href: ""})
	if got != -999.0 {
		t.Fatalf("empty href score = %v, want -999", got)
	}
}
