package display

import (
	"bufio"
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/mikey/llm-bid-scout/internal/core"
	"github.com/mikey/llm-bid-scout/internal/ports"
	"go.uber.org/zap"
)

const reloadTimeout = time.Minute

// REPL implements the interactive console frontend. Plain input lines go
// to the model as questions; lines starting with ':' are commands.
type REPL struct {
	session  *core.Session
	console  *Console
	in       io.Reader
	logger   *zap.Logger
	quit     chan struct{}
	done     chan struct{}
	stopOnce sync.Once
}

var _ ports.Frontend = (*REPL)(nil)

// NewREPL creates the frontend reading from in.
func NewREPL(session *core.Session, console *Console, in io.Reader, logger *zap.Logger) *REPL {
	return &REPL{
		session: session,
		console: console,
		in:      in,
		quit:    make(chan struct{}),
		done:    make(chan struct{}),
		logger:  logger,
	}
}

// Start launches the read loop. Done reports when the loop exits.
func (r *REPL) Start() error {
	r.logger.Info("Starting console frontend")
	go r.loop()
	return nil
}

// Stop asks the loop to exit after the current read.
func (r *REPL) Stop() error {
	r.stopOnce.Do(func() { close(r.quit) })
	return nil
}

// Done is closed when the user quits or input reaches EOF.
func (r *REPL) Done() <-chan struct{} {
	return r.done
}

func (r *REPL) loop() {
	defer close(r.done)
	r.console.printf("Type :help for commands.\n")

	scanner := bufio.NewScanner(r.in)
	for {
		select {
		case <-r.quit:
			return
		default:
		}

		r.console.printf("> ")
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				r.logger.Error("Reading input failed", zap.Error(err))
			}
			return
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, ":") {
			if r.command(line) {
				return
			}
			continue
		}
		if err := r.session.Ask(line); err != nil {
			r.console.ShowError(err.Error())
		}
	}
}

// command handles one ':' line and reports whether the loop should exit.
func (r *REPL) command(line string) bool {
	fields := strings.Fields(line)
	switch fields[0] {
	case ":quit", ":exit":
		return true
	case ":help":
		r.console.Usage()
	case ":links":
		if rec := r.session.Record(); rec != nil {
			r.console.ShowLinks(rec.Links)
		} else {
			r.console.ShowError(core.ErrNoRecord.Error())
		}
	case ":json":
		data, err := r.session.RecordJSON()
		if err != nil {
			r.console.ShowError(err.Error())
		} else {
			r.console.printf("%s\n", data)
		}
	case ":reload":
		r.reload()
	case ":include":
		r.include(fields[1:])
	default:
		r.console.printf("Unknown command %s. Type :help for commands.\n", fields[0])
	}
	return false
}

// reload fetches the newest matching message again. Extraction failures
// are already reported by the session, so only retrieval failures need a
// line here.
func (r *REPL) reload() {
	ctx, cancel := context.WithTimeout(context.Background(), reloadTimeout)
	defer cancel()

	err := r.session.Load(ctx)
	if err == nil {
		return
	}
	var exErr *core.ExtractionError
	if errors.As(err, &exErr) {
		return
	}
	r.console.ShowError(err.Error())
}

func (r *REPL) include(args []string) {
	if len(args) == 0 {
		r.showIncludes()
		return
	}

	section := strings.ToLower(args[0])
	var on bool
	switch {
	case len(args) >= 2:
		switch strings.ToLower(args[1]) {
		case "on":
			on = true
		case "off":
			on = false
		default:
			r.console.printf("Usage: :include header|body|links [on|off]\n")
			return
		}
	default:
		h, b, l := r.session.Includes()
		switch section {
		case "header":
			on = !h
		case "body":
			on = !b
		case "links":
			on = !l
		}
	}

	if err := r.session.SetInclude(section, on); err != nil {
		r.console.ShowError(err.Error())
		return
	}
	r.showIncludes()
}

func (r *REPL) showIncludes() {
	h, b, l := r.session.Includes()
	r.console.printf("Context: header=%t body=%t links=%t\n", h, b, l)
}
