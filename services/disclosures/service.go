package disclosures

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"malobby-backend/lib/scrapers/masslobby"
	"malobby-backend/lib/worker"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

var tracer = otel.Tracer("services/disclosures")

// Document is one fetched filing handed to the batch by the fetcher (or
// read off disk): its locator plus the raw markup.
type Document struct {
	Locator string
	Markup  []byte
}

// Skip is one line of the batch's diagnostics channel: a document that
// produced no records, and why.
type Skip struct {
	Locator string
	Reason  masslobby.SkipReason
	Detail  string
}

type Summary struct {
	Total     int
	Processed int
	Skipped   map[masslobby.SkipReason]int
}

type RunResult struct {
	Collections Collections
	Skips       []Skip
	Summary     Summary
}

type outcome struct {
	locator string
	bundle  masslobby.Bundle
	err     error
}

// Run extracts every document with up to `workers` goroutines and merges
// the bundles through a single aggregator. One document failing never
// touches the others; it becomes a Skip entry and the batch moves on.
func Run(ctx context.Context, docs []Document, workers int) RunResult {
	ctx, span := tracer.Start(ctx, "Run")
	defer span.End()
	span.SetAttributes(attribute.Int("documents", len(docs)))

	outcomes := worker.Map(ctx, workers, docs, func(ctx context.Context, doc Document) outcome {
		bundle, err := masslobby.ExtractDocument(ctx, doc.Locator, doc.Markup)
		return outcome{locator: doc.Locator, bundle: bundle, err: err}
	})

	agg := NewAggregator()
	result := RunResult{
		Summary: Summary{
			Total:   len(docs),
			Skipped: map[masslobby.SkipReason]int{},
		},
	}

	for _, o := range outcomes {
		if o.err != nil {
			reason := masslobby.SkipParseError
			var skip *masslobby.SkipError
			if errors.As(o.err, &skip) {
				reason = skip.Reason
			}
			result.Summary.Skipped[reason]++
			result.Skips = append(result.Skips, Skip{
				Locator: o.locator,
				Reason:  reason,
				Detail:  o.err.Error(),
			})
			slog.WarnContext(
				ctx, "skipped document",
				"locator", o.locator,
				"reason", reason,
				"err", o.err,
			)
			continue
		}
		agg.Add(o.bundle)
		result.Summary.Processed++
	}

	result.Collections = agg.Collections()

	slog.InfoContext(
		ctx, "batch extraction complete",
		"total", result.Summary.Total,
		"processed", result.Summary.Processed,
		"skipped", len(result.Skips),
	)
	return result
}

// ReadDir loads every .html file under dir as a Document, using the
// filename as its locator (the fetcher embeds the disclosure query in
// the name it saves under).
func ReadDir(dir string) ([]Document, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var docs []Document
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".html") {
			continue
		}
		markup, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, err
		}
		docs = append(docs, Document{Locator: entry.Name(), Markup: markup})
	}
	return docs, nil
}

// WriteSkipLog writes one line per skipped document, mirroring the
// format of the run summary for later grepping.
func WriteSkipLog(path string, skips []Skip) error {
	var b strings.Builder
	for _, s := range skips {
		b.WriteString(s.Locator)
		b.WriteString(" (Reason: ")
		b.WriteString(string(s.Reason))
		if s.Detail != "" {
			b.WriteString(" - ")
			b.WriteString(s.Detail)
		}
		b.WriteString(")\n")
	}
	return os.WriteFile(path, []byte(b.String()), 0644)
}
