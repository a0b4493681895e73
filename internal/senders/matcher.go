package senders

import (
	"strings"

	"go.uber.org/zap"
)

// Matcher decides whether a sender address satisfies the configured rules:
// an explicit allow-list entry matches exactly, otherwise the configured
// domain matches as a substring of the address. An empty allow-list and an
// empty domain match nothing.
type Matcher struct {
	allowed []string
	domain  string
	logger  *zap.Logger
}

// NewMatcher creates a matcher. Addresses and the domain are normalized
// to lowercase here.
func NewMatcher(allowed []string, domain string, logger *zap.Logger) *Matcher {
	normalized := make([]string, len(allowed))
	for i, addr := range allowed {
		normalized[i] = strings.ToLower(strings.TrimSpace(addr))
	}

	m := &Matcher{
		allowed: normalized,
		domain:  strings.ToLower(strings.TrimSpace(domain)),
		logger:  logger,
	}
	if logger != nil {
		logger.Info("Initialized sender matcher",
			zap.Strings("allowed", normalized),
			zap.String("domain", m.domain))
	}
	return m
}

// Matches checks smtp against the sender rules.
func (m *Matcher) Matches(smtp string) bool {
	addr := strings.ToLower(strings.TrimSpace(smtp))
	if addr == "" {
		return false
	}

	for _, allowed := range m.allowed {
		if allowed != "" && allowed == addr {
			if m.logger != nil {
				m.logger.Debug("Sender matched allow-list", zap.String("sender", addr))
			}
			return true
		}
	}

	if m.domain != "" && strings.Contains(addr, m.domain) {
		if m.logger != nil {
			m.logger.Debug("Sender matched domain rule",
				zap.String("sender", addr),
				zap.String("domain", m.domain))
		}
		return true
	}

	return false
}
