package display

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/mikey/llm-bid-scout/internal/core"
	"go.uber.org/zap"
)

type fakeSource struct{}

func (f *fakeSource) Newest(_ context.Context) (core.EmailPointer, string, error) {
	ptr := core.EmailPointer{
		Account: "Estimating",
		Mailbox: "INBOX",
		Subject: "ITB",
		From:    "invites@planhub.com",
	}
	return ptr, "You are invited to bid.", nil
}

func (f *fakeSource) Mailboxes(_ context.Context) ([]string, error) {
	return []string{"INBOX"}, nil
}

type fakeRenderer struct{}

func (f *fakeRenderer) Render(_ context.Context, raw string) (*core.RenderedDoc, error) {
	return &core.RenderedDoc{
		VisibleText: raw,
		Links: []core.LinkCandidate{
			{Text: "View Project", Href: "https://app.planhub.com/projects/42/view"},
		},
	}, nil
}

type fakeStore struct{}

func (f *fakeStore) Save(_ context.Context, _ *core.ExtractionRecord) error { return nil }

type fakeLLM struct{ reply string }

func (f *fakeLLM) Chat(_ context.Context, _ string) (string, error) { return f.reply, nil }
func (f *fakeLLM) ModelName() string                                { return "test-model" }

// runREPL drives a full session through the loop with the given input and
// returns everything printed, after all model replies have landed.
func runREPL(t *testing.T, input string) string {
	t.Helper()

	console, buf := newTestConsole()
	dispatcher := core.NewQueryDispatcher(
		&fakeLLM{reply: "the answer"}, nil, zap.NewNop(), 1, 4, time.Second, false, 0)
	ranker := core.NewRanker(core.NewLinkScorer(core.DefaultScoringConfig()))
	sess := core.NewSession(
		&fakeSource{}, &fakeRenderer{}, ranker, &fakeStore{},
		console, dispatcher, zap.NewNop(),
		core.SessionConfig{Serialize: true})
	if err := sess.Load(context.Background()); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	repl := NewREPL(sess, console, strings.NewReader(input), zap.NewNop())
	repl.loop()
	if err := sess.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	return buf.String()
}

func TestREPLQuestionAndQuit(t *testing.T) {
	out := runREPL(t, "what is the due date?\n:quit\n")

	if !strings.Contains(out, "You: what is the due date?") {
		t.Errorf("question not echoed:\n%s", out)
	}
	if !strings.Contains(out, "Model: the answer") {
		t.Errorf("answer not printed:\n%s", out)
	}
}

func TestREPLIncludeToggleAndSet(t *testing.T) {
	out := runREPL(t, ":include body\n:include header on\n:include body off\n:quit\n")

	for _, want := range []string{
		"Context: header=false body=true links=false",
		"Context: header=true body=true links=false",
		"Context: header=true body=false links=false",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q:\n%s", want, out)
		}
	}
}

func TestREPLIncludeUnknownSection(t *testing.T) {
	out := runREPL(t, ":include footer on\n:quit\n")
	if !strings.Contains(out, `unknown section "footer"`) {
		t.Errorf("unknown section not reported:\n%s", out)
	}
}

func TestREPLLinksCommand(t *testing.T) {
	out := runREPL(t, ":links\n:quit\n")
	if !strings.Contains(out, "View Project -> https://app.planhub.com/projects/42/view") {
		t.Errorf("links panel missing:\n%s", out)
	}
}

func TestREPLJSONCommand(t *testing.T) {
	out := runREPL(t, ":json\n:quit\n")
	for _, want := range []string{`"email_ptr"`, `"visible_text"`, `"primary_portal"`} {
		if !strings.Contains(out, want) {
			t.Errorf("json dump missing %q:\n%s", want, out)
		}
	}
}

func TestREPLUnknownCommand(t *testing.T) {
	out := runREPL(t, ":frobnicate\n:quit\n")
	if !strings.Contains(out, "Unknown command :frobnicate") {
		t.Errorf("unknown command not reported:\n%s", out)
	}
}

func TestREPLReload(t *testing.T) {
	out := runREPL(t, ":reload\n:quit\n")
	// Two loads, so the message panel prints twice.
	if strings.Count(out, "=== Message ===") != 2 {
		t.Errorf("expected two message panels after reload:\n%s", out)
	}
}

func TestREPLExitsOnEOF(t *testing.T) {
	out := runREPL(t, "")
	if !strings.Contains(out, "Type :help") {
		t.Errorf("banner missing:\n%s", out)
	}
}
