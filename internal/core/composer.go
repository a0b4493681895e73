package core

import (
	"encoding/json"
	"strings"
)

// promptPreamble is the fixed instruction block appended to every prompt.
const promptPreamble = "You are a bid-invite extractor. Answer the user precisely.\n" +
	"If asked, extract fields as JSON using keys: project_name, address, zip, due_date, gc_name, contacts[], links.primary.\n"

// ComposeContext builds the context block from the selected sections of
// rec. Sections appear in fixed order (header, body, links), each under
// its label, separated by blank lines. Disabled sections contribute
// nothing; with all three disabled the result is empty.
func ComposeContext(rec *ExtractionRecord, includeHeader, includeBody, includeLinks bool) string {
	var parts []string
	if includeHeader {
		header, _ := json.MarshalIndent(rec.Pointer, "", "  ")
		parts = append(parts, "Header:\n"+string(header))
	}
	if includeBody {
		parts = append(parts, "Body:\n"+rec.VisibleText)
	}
	if includeLinks {
		links := rec.Links
		if links == nil {
			links = []LinkCandidate{}
		}
		encoded, _ := json.MarshalIndent(links, "", "  ")
		parts = append(parts, "Links:\n"+string(encoded))
	}

	return strings.Join(parts, "\n\n")
}

// BuildPrompt combines the composed context, the instruction preamble and
// the user's question into the final prompt.
func BuildPrompt(contextBlock, userMsg string) string {
	return contextBlock + "\n\n" + promptPreamble + "\nUser: " + userMsg
}
