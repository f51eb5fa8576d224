package fetcher

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/url"

	"malobby-backend/lib/scrapers/masslobby"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// Discover visits each summary page and collects every disclosure url
// it links to, deduplicated across pages in first-seen order.
func (f *Fetcher) Discover(ctx context.Context, summaryURLs []string) ([]string, error) {
	ctx, span := tracer.Start(ctx, "Discover")
	defer span.End()
	span.SetAttributes(attribute.Int("summary_pages", len(summaryURLs)))

	seen := map[string]bool{}
	var out []string

	for _, summary := range summaryURLs {
		base, err := url.Parse(summary)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "parse summary url")
			return nil, fmt.Errorf("parse summary url %q: %w", summary, err)
		}

		err = f.limiter.Wait(ctx)
		if err != nil {
			return nil, err
		}
		res, err := f.client.R().SetContext(ctx).Get(summary)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "fetch summary page")
			return nil, err
		}
		if res.IsError() {
			return nil, fmt.Errorf("fetch summary page %q: status code %d", summary, res.StatusCode())
		}

		doc, err := goquery.NewDocumentFromReader(bytes.NewReader(res.Body()))
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "parse summary page")
			return nil, err
		}

		links := masslobby.DisclosureLinks(base, doc)
		slog.InfoContext(ctx, "discovered disclosure links",
			"summary", summary, "count", len(links))
		for _, link := range links {
			if seen[link] {
				continue
			}
			seen[link] = true
			out = append(out, link)
		}
	}

	return out, nil
}
