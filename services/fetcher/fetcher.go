package fetcher

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"malobby-backend/lib/restyutil"
	"malobby-backend/lib/worker"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/go-resty/resty/v2"
	"github.com/mazen160/go-random"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/time/rate"
)

var tracer = otel.Tracer("services/fetcher")

const (
	defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36"

	// Responses below this size are truncated error pages, not
	// disclosure documents.
	minResponseBytes = 1024

	retryPause = 10 * time.Second
)

var (
	schemeRegex = regexp.MustCompile(`^https?://`)
	unsafeRegex = regexp.MustCompile(`[/:*?"<>|]`)
)

// SaveName derives the output filename for a disclosure url. The query
// string survives the substitution, so the disclosure id can later be
// recovered from the filename alone.
func SaveName(url string) string {
	name := schemeRegex.ReplaceAllString(url, "")
	return unsafeRegex.ReplaceAllString(name, "_") + ".html"
}

type Options struct {
	OutputDir      string
	StatePath      string
	Workers        int
	RequestsPerSec float64
	UserAgent      string
}

type Fetcher struct {
	client  *resty.Client
	state   *StateManager
	limiter *rate.Limiter
	robots  *robotsCache
	opts    Options
}

func New(opts Options) (*Fetcher, error) {
	if opts.Workers <= 0 {
		opts.Workers = 8
	}
	if opts.RequestsPerSec <= 0 {
		opts.RequestsPerSec = 4
	}
	if opts.UserAgent == "" {
		opts.UserAgent = defaultUserAgent
	}

	err := os.MkdirAll(opts.OutputDir, 0755)
	if err != nil {
		return nil, err
	}
	state, err := NewStateManager(opts.StatePath)
	if err != nil {
		return nil, err
	}

	client := resty.New()
	client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)
	client.SetHeader("user-agent", opts.UserAgent)
	client.SetTimeout(time.Second * 30)
	restyutil.InstrumentClient(client, otel.Tracer("services/fetcher/http"))

	return &Fetcher{
		client:  client,
		state:   state,
		limiter: rate.NewLimiter(rate.Limit(opts.RequestsPerSec), 1),
		robots:  newRobotsCache(client, opts.UserAgent),
		opts:    opts,
	}, nil
}

// Run fetches every url not already completed in the state file and
// returns the final per-status counts.
func (f *Fetcher) Run(ctx context.Context, urls []string) (map[Status]int, error) {
	ctx, span := tracer.Start(ctx, "Run")
	defer span.End()

	err := f.state.Initialize(urls)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "initialize state")
		return nil, err
	}

	pending := f.state.Pending()
	span.SetAttributes(attribute.Int("pending", len(pending)))
	slog.InfoContext(ctx, "fetching disclosure pages",
		"pending", len(pending), "workers", f.opts.Workers)

	worker.Map(ctx, f.opts.Workers, pending, func(ctx context.Context, url string) struct{} {
		f.fetchOne(ctx, url)
		return struct{}{}
	})

	return f.state.Counts(), nil
}

func (f *Fetcher) fetchOne(ctx context.Context, url string) {
	ctx, span := tracer.Start(ctx, "fetchOne")
	defer span.End()
	span.SetAttributes(attribute.String("url", url))

	if !f.robots.Allowed(ctx, url) {
		slog.WarnContext(ctx, "blocked by robots.txt", "url", url)
		f.setStatus(ctx, url, StatusFailedFetch)
		return
	}

	var lastErr error
	failStatus := StatusFailedFetch
	for attempt := 0; attempt < 2; attempt++ {
		if attempt > 0 {
			slog.WarnContext(ctx, "pausing before retry", "url", url, "err", lastErr)
			pause(ctx)
		}

		status, err := f.attempt(ctx, url)
		if err == nil {
			f.setStatus(ctx, url, StatusCompleted)
			return
		}
		lastErr = err
		failStatus = status
	}

	span.RecordError(lastErr)
	span.SetStatus(codes.Error, "fetch failed")
	slog.ErrorContext(ctx, "failed to fetch page", "url", url, "err", lastErr)
	f.setStatus(ctx, url, failStatus)
}

// attempt fetches and writes one page. The returned status is the
// failure status to record if no further attempt succeeds.
func (f *Fetcher) attempt(ctx context.Context, url string) (Status, error) {
	err := f.limiter.Wait(ctx)
	if err != nil {
		return StatusFailedFetch, err
	}

	res, err := f.client.R().SetContext(ctx).Get(url)
	if err != nil {
		return StatusFailedFetch, err
	}
	if res.IsError() {
		return StatusFailedFetch, fmt.Errorf("status code %d", res.StatusCode())
	}

	body := res.Body()
	if len(body) < minResponseBytes {
		return StatusFailedSmall, fmt.Errorf("response too small: %d bytes", len(body))
	}

	path := filepath.Join(f.opts.OutputDir, SaveName(url))
	err = os.WriteFile(path, body, 0644)
	if err != nil {
		return StatusFailedFetch, err
	}

	slog.InfoContext(ctx, "saved page", "url", url, "bytes", len(body))
	return "", nil
}

func (f *Fetcher) setStatus(ctx context.Context, url string, status Status) {
	err := f.state.SetStatus(url, status)
	if err != nil {
		slog.ErrorContext(ctx, "failed to persist state", "err", err)
	}
}

// pause sleeps the retry delay plus jitter so parallel retries do not
// hammer the server in lockstep.
func pause(ctx context.Context) {
	jitter, err := random.IntRange(0, 3000)
	if err != nil {
		jitter = 0
	}
	delay := retryPause + time.Duration(jitter)*time.Millisecond
	select {
	case <-ctx.Done():
	case <-time.After(delay):
	}
}
