package core

import (
	"sort"
)

// Ranker orders link candidates by relevance and selects the primary
// portal link.
type Ranker struct {
	scorer *LinkScorer
}

// NewRanker creates a ranker backed by scorer.
func NewRanker(scorer *LinkScorer) *Ranker {
	return &Ranker{scorer: scorer}
}

// Rank scores every candidate, sorts them descending, and picks the
// primary. The sort is stable: candidates with equal scores keep their
// observed document order, so the first occurrence wins ties. The top
// candidate becomes primary only when its score strictly exceeds the
// threshold. Auxiliary always holds the next candidates by rank, capped,
// even when their scores are negative. An empty input yields an empty
// result, not an error.
func (r *Ranker) Rank(links []LinkCandidate) RankedLinks {
	scored := make([]ScoredLink, 0, len(links))
	for _, link := range links {
		scored = append(scored, ScoredLink{
			LinkCandidate: link,
			Score:         r.scorer.Score(link),
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	ranked := RankedLinks{AllScored: scored}
	if len(scored) > 0 && scored[0].Score > r.scorer.Threshold() {
		ranked.Primary = scored[0].Href
	}

	end := 1 + r.scorer.AuxiliaryLimit()
	if end > len(scored) {
		end = len(scored)
	}
	for i := 1; i < end; i++ {
		ranked.Auxiliary = append(ranked.Auxiliary, scored[i].LinkCandidate)
	}
	return ranked
}
