package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/mikey/llm-bid-scout/internal/core"
	"github.com/mikey/llm-bid-scout/internal/di"
	"go.uber.org/zap"
)

const runTimeout = 5 * time.Minute

func main() {
	flags := di.ParseFlags()

	container, err := di.BuildCLIContainer(flags)
	if err != nil {
		fmt.Printf("Failed to build dependency container: %v\n", err)
		os.Exit(1)
	}

	if err := container.Invoke(run); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

// run performs one extraction and exits
func run(
	flags *di.CLIFlags,
	logger *zap.Logger,
	source core.MailboxSource,
	renderer core.Renderer,
	ranker *core.Ranker,
	extractionStore core.ExtractionStore,
	llmClient core.InferenceClient,
) error {
	defer logger.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()

	if flags.ListMailboxes {
		return listMailboxes(ctx, source)
	}

	startTime := time.Now()

	ptr, raw, err := source.Newest(ctx)
	if err != nil {
		return err
	}

	doc, err := renderer.Render(ctx, raw)
	if err != nil {
		return fmt.Errorf("rendering message: %w", err)
	}

	rec := core.Assemble(ptr, doc, ranker)

	if err := extractionStore.Save(ctx, rec); err != nil {
		logger.Error("Failed to persist extraction record", zap.Error(err))
	}

	if flags.JSONOutput {
		data, err := core.EncodeRecord(rec)
		if err != nil {
			return err
		}
		fmt.Printf("%s\n", data)
	} else {
		printRecord(rec, flags.Verbose, time.Since(startTime))
	}

	if flags.Ask != "" {
		return ask(ctx, llmClient, rec, flags.Ask)
	}
	return nil
}

func listMailboxes(ctx context.Context, source core.MailboxSource) error {
	boxes, err := source.Mailboxes(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("=== Mailboxes ===\n")
	for _, name := range boxes {
		fmt.Printf("%s\n", name)
	}
	return nil
}

// printRecord prints the extraction panels
func printRecord(rec *core.ExtractionRecord, verbose bool, duration time.Duration) {
	fmt.Printf("\n=== Message ===\n")
	fmt.Printf("Account: %s\n", rec.Pointer.Account)
	fmt.Printf("Mailbox: %s\n", rec.Pointer.Mailbox)
	fmt.Printf("Message Id: %s\n", rec.Pointer.MessageID)
	fmt.Printf("Subject: %s\n", rec.Pointer.Subject)
	fmt.Printf("From: %s\n", rec.Pointer.From)
	fmt.Printf("Body length: %d bytes\n", len(rec.VisibleText))

	if verbose {
		fmt.Printf("\n=== Body ===\n%s\n", rec.VisibleText)
	}

	fmt.Printf("\n=== Links ===\n")
	if len(rec.Ranked.AllScored) == 0 {
		fmt.Printf("(no links)\n")
	}
	for _, scored := range rec.Ranked.AllScored {
		fmt.Printf("%.2f  %s -> %s\n", scored.Score, scored.Text, scored.Href)
	}

	fmt.Printf("\n=== Results ===\n")
	primary := rec.Ranked.Primary
	if primary == "" {
		primary = "none"
	}
	fmt.Printf("Primary portal: %s\n", primary)
	fmt.Printf("Auxiliary links: %d\n", len(rec.Ranked.Auxiliary))
	fmt.Printf("Processing time: %v\n", duration)
}

// ask sends one question about the extracted message with every context
// section included
func ask(ctx context.Context, llmClient core.InferenceClient, rec *core.ExtractionRecord, question string) error {
	prompt := core.BuildPrompt(core.ComposeContext(rec, true, true, true), question)

	fmt.Printf("\n=== Model ===\n")
	startTime := time.Now()
	reply, err := llmClient.Chat(ctx, prompt)
	if err != nil {
		return fmt.Errorf("model query failed: %w", err)
	}
	fmt.Printf("%s\n", reply)
	fmt.Printf("\nModel used: %s\n", llmClient.ModelName())
	fmt.Printf("Processing time: %v\n", time.Since(startTime))
	return nil
}
