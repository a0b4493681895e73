package core

import (
	"strings"
)

// emptyHrefScore is the sentinel assigned to candidates without a target.
// It short-circuits every other rule and sorts below any real score.
const emptyHrefScore = -999.0

// deepPathSlashes is the slash count at which an href earns the deep-path
// bonus.
const deepPathSlashes = 4

// ScoringConfig carries the substring lists and weights used to rate link
// candidates. DefaultScoringConfig returns the tuning the estimating team
// uses in production.
type ScoringConfig struct {
	TrustedDomains   []string
	IntentPhrases    []string
	StructuralHints  []string
	NegativeHints    []string
	TrustedWeight    float64
	IntentWeight     float64
	DepthWeight      float64
	StructuralWeight float64
	NegativeWeight   float64
	PrimaryThreshold float64
	AuxiliaryLimit   int
}

// DefaultScoringConfig returns the built-in bid-portal tuning.
func DefaultScoringConfig() ScoringConfig {
	return ScoringConfig{
		TrustedDomains: []string{
			"planhub.com", "buildingconnected.com", "constructconnect.com",
			"isqft.com", "procore.com",
		},
		IntentPhrases:    []string{"view project", "submit", "bid", "open invite", "project", "plans", "portal", "itb"},
		StructuralHints:  []string{"project", "bid", "invite", "itb", "plan", "rfi"},
		NegativeHints:    []string{"unsubscribe", "preferences", "kb.", "knowledge", "support", "terms", "privacy"},
		TrustedWeight:    0.6,
		IntentWeight:     0.3,
		DepthWeight:      0.1,
		StructuralWeight: 0.1,
		NegativeWeight:   1.0,
		PrimaryThreshold: 0.3,
		AuxiliaryLimit:   5,
	}
}

// LinkScorer rates link candidates by how likely they are to lead to a bid
// portal. Scoring is pure and deterministic: the same candidate always
// receives the same score.
type LinkScorer struct {
	cfg ScoringConfig
}

// NewLinkScorer creates a scorer from cfg. Configured substrings are
// normalized to lowercase once here.
func NewLinkScorer(cfg ScoringConfig) *LinkScorer {
	cfg.TrustedDomains = normalizeTerms(cfg.TrustedDomains)
	cfg.IntentPhrases = normalizeTerms(cfg.IntentPhrases)
	cfg.StructuralHints = normalizeTerms(cfg.StructuralHints)
	cfg.NegativeHints = normalizeTerms(cfg.NegativeHints)
	return &LinkScorer{cfg: cfg}
}

func normalizeTerms(terms []string) []string {
	normalized := make([]string, len(terms))
	for i, term := range terms {
		normalized[i] = strings.ToLower(strings.TrimSpace(term))
	}
	return normalized
}

// Score rates one candidate. Rules are additive and each configured
// substring that matches contributes its full weight, so overlapping
// entries count more than once. An empty href returns the sentinel and
// nothing else is evaluated.
func (s *LinkScorer) Score(link LinkCandidate) float64 {
	href := strings.ToLower(link.Href)
	text := strings.ToLower(link.Text)

	if href == "" {
		return emptyHrefScore
	}

	score := 0.0
	for _, domain := range s.cfg.TrustedDomains {
		if domain != "" && strings.Contains(href, domain) {
			score += s.cfg.TrustedWeight
		}
	}
	for _, phrase := range s.cfg.IntentPhrases {
		if phrase != "" && strings.Contains(text, phrase) {
			score += s.cfg.IntentWeight
		}
	}
	if strings.Count(href, "/") >= deepPathSlashes {
		score += s.cfg.DepthWeight
	}
	for _, hint := range s.cfg.StructuralHints {
		if hint != "" && strings.Contains(href, hint) {
			score += s.cfg.StructuralWeight
		}
	}
	for _, hint := range s.cfg.NegativeHints {
		if hint != "" && strings.Contains(href, hint) {
			score -= s.cfg.NegativeWeight
		}
	}
	return score
}

// Threshold reports the minimum score the top candidate must strictly
// exceed before it is promoted to primary.
func (s *LinkScorer) Threshold() float64 {
	return s.cfg.PrimaryThreshold
}

// AuxiliaryLimit reports how many runner-up candidates are kept.
func (s *LinkScorer) AuxiliaryLimit() int {
	return s.cfg.AuxiliaryLimit
}
