package display

import (
	"fmt"
	"io"
	"sync"

	"github.com/mikey/llm-bid-scout/internal/core"
	"github.com/mikey/llm-bid-scout/internal/utils"
	"go.uber.org/zap"
)

const linkTextLimit = 100

// Console implements core.DisplaySink on a terminal. Chat lines arrive
// from dispatcher workers, so every write goes through one mutex to keep
// panels and chat from interleaving mid-line.
type Console struct {
	out    io.Writer
	proc   *utils.TextProcessor
	logger *zap.Logger
	mu     sync.Mutex
}

var _ core.DisplaySink = (*Console)(nil)

// NewConsole creates a console sink writing to out.
func NewConsole(out io.Writer, proc *utils.TextProcessor, logger *zap.Logger) *Console {
	return &Console{
		out:    out,
		proc:   proc,
		logger: logger,
	}
}

// ShowDetails prints the message panel.
func (c *Console) ShowDetails(ptr core.EmailPointer, primary string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintf(c.out, "\n=== Message ===\n")
	fmt.Fprintf(c.out, "Account: %s\n", ptr.Account)
	fmt.Fprintf(c.out, "Mailbox: %s\n", ptr.Mailbox)
	fmt.Fprintf(c.out, "Message Id: %s\n", ptr.MessageID)
	fmt.Fprintf(c.out, "Subject: %s\n", ptr.Subject)
	fmt.Fprintf(c.out, "From: %s\n", ptr.From)
	if primary == "" {
		primary = "none"
	}
	fmt.Fprintf(c.out, "Primary Portal: %s\n", primary)
}

// ShowBody prints the visible text panel. The text is sanitized for the
// terminal; the record keeps the original.
func (c *Console) ShowBody(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintf(c.out, "\n=== Body ===\n%s\n", c.proc.SanitizeUTF8(text))
}

// ShowLinks prints the hyperlink panel, one link per line with the label
// clipped for readability.
func (c *Console) ShowLinks(links []core.LinkCandidate) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintf(c.out, "\n=== Links ===\n")
	if len(links) == 0 {
		fmt.Fprintf(c.out, "(no links)\n")
		return
	}
	for _, link := range links {
		label := c.proc.ClipForDisplay(link.Text, linkTextLimit)
		if label == "" {
			label = "(no text)"
		}
		fmt.Fprintf(c.out, "%s -> %s\n", label, link.Href)
	}
}

// AppendChat prints one chat line.
func (c *Console) AppendChat(line string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintf(c.out, "%s\n", line)
}

// ShowError prints an error line.
func (c *Console) ShowError(msg string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintf(c.out, "Error: %s\n", msg)
}

func (c *Console) printf(format string, args ...interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintf(c.out, format, args...)
}

// Usage prints the command reference.
func (c *Console) Usage() {
	c.printf(`
Commands:
  :include header|body|links [on|off]  select context sections (bare form toggles)
  :include                             show current context selection
  :links                               show all extracted links
  :json                                print the extraction record as JSON
  :reload                              fetch the newest matching message again
  :help                                show this help
  :quit                                exit
Anything else is sent to the model as a question.
`)
}
