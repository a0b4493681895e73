package core

import (
	"reflect"
	"testing"
)

func newTestRanker() *Ranker {
	return NewRanker(NewLinkScorer(DefaultScoringConfig()))
}

func TestRankEmptyInput(t *testing.T) {
	ranked := newTestRanker().Rank(nil)

	if ranked.Primary != "" {
		t.Fatalf("primary = %q, want empty", ranked.Primary)
	}
	if len(ranked.Auxiliary) != 0 {
		t.Fatalf("auxiliary length = %d, want 0", len(ranked.Auxiliary))
	}
	if len(ranked.AllScored) != 0 {
		t.Fatalf("all-scored length = %d, want 0", len(ranked.AllScored))
	}
}

func TestRankSelectsPrimaryAboveThreshold(t *testing.T) {
	links := []LinkCandidate{
		{Text: "Unsubscribe", Href: "https://news.example.com/unsubscribe"},
		{Text: "View Project", Href: "https://app.planhub.com/projects/123"},
		{Text: "Help", Href: "https://example.com/faq"},
	}

	ranked := newTestRanker().Rank(links)

	if ranked.Primary != "https://app.planhub.com/projects/123" {
		t.Fatalf("primary = %q, want the portal link", ranked.Primary)
	}
	if ranked.AllScored[0].Href != ranked.Primary {
		t.Fatalf("primary %q is not the top-ranked href %q", ranked.Primary, ranked.AllScored[0].Href)
	}
}

func TestRankThresholdIsStrict(t *testing.T) {
	// "bid" alone contributes exactly the threshold value, which must not
	// be enough.
	atThreshold := []LinkCandidate{{Text: "bid", Href: "https://x.co/a"}}
	ranked := newTestRanker().Rank(atThreshold)
	if ranked.Primary != "" {
		t.Fatalf("score at threshold promoted to primary %q", ranked.Primary)
	}

	// A deep path pushes the same link just past it.
	above := []LinkCandidate{{Text: "bid", Href: "https://x.co/a/b"}}
	ranked = newTestRanker().Rank(above)
	if ranked.Primary != "https://x.co/a/b" {
		t.Fatalf("score above threshold not promoted, primary = %q", ranked.Primary)
	}
}

func TestRankTieKeepsObservedOrder(t *testing.T) {
	// Identical scores; the earlier link must stay first.
	links := []LinkCandidate{
		{Text: "a", Href: "https://one.example.com/x"},
		{Text: "b", Href: "https://two.example.com/x"},
	}

	ranked := newTestRanker().Rank(links)

	if ranked.AllScored[0].Href != "https://one.example.com/x" {
		t.Fatalf("tie broken against observation order: %q first", ranked.AllScored[0].Href)
	}
	if ranked.AllScored[1].Href != "https://two.example.com/x" {
		t.Fatalf("second link misplaced: %q", ranked.AllScored[1].Href)
	}
}

func TestRankAuxiliaryWindow(t *testing.T) {
	manyLinks := make([]LinkCandidate, 0, 8)
	for _, href := range []string{
		"https://app.planhub.com/projects/1/invites/2", // clear primary
		"https://app.planhub.com/plans",
		"https://example.com/a/b/c/d",
		"https://example.com/x",
		"https://example.com/y",
		"https://example.com/z",
		"https://kb.example.com/article", // negative, still listed
		"https://news.example.com/unsubscribe",
	} {
		manyLinks = append(manyLinks, LinkCandidate{Text: "link", Href: href})
	}

	ranked := newTestRanker().Rank(manyLinks)

	if len(ranked.Auxiliary) != 5 {
		t.Fatalf("auxiliary length = %d, want 5", len(ranked.Auxiliary))
	}
	for i, aux := range ranked.Auxiliary {
		if aux != ranked.AllScored[i+1].LinkCandidate {
			t.Fatalf("auxiliary[%d] = %+v, want rank position %d", i, aux, i+1)
		}
	}

	// Fewer candidates than the cap: everything after the top is auxiliary.
	short := newTestRanker().Rank(manyLinks[:3])
	if len(short.Auxiliary) != 2 {
		t.Fatalf("auxiliary length = %d, want 2", len(short.Auxiliary))
	}
}

func TestRankNegativeTopIsNotPrimary(t *testing.T) {
	links := []LinkCandidate{
		{Text: "Preferences", Href: "https://example.com/preferences"},
		{Text: "Unsubscribe", Href: "https://example.com/unsubscribe"},
	}

	ranked := newTestRanker().Rank(links)

	if ranked.Primary != "" {
		t.Fatalf("negative-scored top promoted to primary %q", ranked.Primary)
	}
	if len(ranked.AllScored) != 2 {
		t.Fatalf("all-scored length = %d, want 2 (negative links stay visible)", len(ranked.AllScored))
	}
	if len(ranked.Auxiliary) != 1 {
		t.Fatalf("auxiliary length = %d, want 1", len(ranked.Auxiliary))
	}
}

func TestRankDeterministic(t *testing.T) {
	links := []LinkCandidate{
		{Text: "View Project", Href: "https://app.planhub.com/projects/123"},
		{Text: "Docs", Href: "https://example.com/docs"},
		{Text: "Unsubscribe", Href: "https://example.com/unsubscribe"},
	}
	ranker := newTestRanker()

	first := ranker.Rank(links)
	for i := 0; i < 5; i++ {
		if got := ranker.Rank(links); !reflect.DeepEqual(got, first) {
			t.Fatalf("ranking changed between calls:\nfirst: %+v\nthen:  %+v", first, got)
		}
	}
}

func TestRankScoresRoundTrip(t *testing.T) {
	scorer := NewLinkScorer(DefaultScoringConfig())
	ranker := NewRanker(scorer)
	links := []LinkCandidate{
		{Text: "View Project", Href: "https://app.planhub.com/projects/123"},
		{Text: "", Href: ""},
		{Text: "Unsubscribe", Href: "https://example.com/unsubscribe"},
		{Text: "plans", Href: "https://example.com/a/b/c"},
	}

	ranked := ranker.Rank(links)

	if len(ranked.AllScored) != len(links) {
		t.Fatalf("all-scored length = %d, want %d", len(ranked.AllScored), len(links))
	}
	for i, scored := range ranked.AllScored {
		if recomputed := scorer.Score(scored.LinkCandidate); recomputed != scored.Score {
			t.Fatalf("position %d: stored score %v, recomputed %v", i, scored.Score, recomputed)
		}
	}
}
