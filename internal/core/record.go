package core

import (
	"encoding/json"
)

// Assemble builds the immutable extraction record for one message,
// ranking the document's links exactly once.
func Assemble(ptr EmailPointer, doc *RenderedDoc, ranker *Ranker) *ExtractionRecord {
	links := doc.Links
	if links == nil {
		links = []LinkCandidate{}
	}
	return &ExtractionRecord{
		Pointer:     ptr,
		VisibleText: doc.VisibleText,
		Links:       links,
		Ranked:      ranker.Rank(links),
	}
}

// recordDump is the on-disk and on-demand JSON shape consumed by
// downstream estimating tools. The field names are part of that contract.
type recordDump struct {
	EmailPtr EmailPointer `json:"email_ptr"`
	DOM      domDump      `json:"dom"`
	Links    linksDump    `json:"links"`
}

type domDump struct {
	VisibleText string          `json:"visible_text"`
	Links       []LinkCandidate `json:"links"`
}

type linksDump struct {
	PrimaryPortal *string         `json:"primary_portal"`
	Aux           []LinkCandidate `json:"aux"`
}

// EncodeRecord renders rec as indented JSON with the email_ptr, dom and
// links sections. primary_portal is null when no link cleared the
// threshold; list fields encode as empty arrays, never null.
func EncodeRecord(rec *ExtractionRecord) ([]byte, error) {
	dump := recordDump{
		EmailPtr: rec.Pointer,
		DOM: domDump{
			VisibleText: rec.VisibleText,
			Links:       rec.Links,
		},
		Links: linksDump{
			Aux: rec.Ranked.Auxiliary,
		},
	}
	if dump.DOM.Links == nil {
		dump.DOM.Links = []LinkCandidate{}
	}
	if dump.Links.Aux == nil {
		dump.Links.Aux = []LinkCandidate{}
	}
	if rec.Ranked.Primary != "" {
		primary := rec.Ranked.Primary
		dump.Links.PrimaryPortal = &primary
	}
	return json.MarshalIndent(dump, "", "  ")
}
