package fetcher

import (
	"context"
	"fmt"
	"net/url"
	"sync"

	"github.com/go-resty/resty/v2"
	"github.com/temoto/robotstxt"
)

// robotsCache fetches and caches robots.txt per host.
type robotsCache struct {
	client    *resty.Client
	userAgent string

	mu    sync.Mutex
	hosts map[string]*robotstxt.RobotsData
}

func newRobotsCache(client *resty.Client, userAgent string) *robotsCache {
	return &robotsCache{
		client:    client,
		userAgent: userAgent,
		hosts:     map[string]*robotstxt.RobotsData{},
	}
}

// Allowed reports whether the target url may be fetched. A robots.txt
// that cannot be fetched or parsed allows everything.
func (r *robotsCache) Allowed(ctx context.Context, rawURL string) bool {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return false
	}

	data := r.data(ctx, parsed)
	if data == nil {
		return true
	}
	return data.TestAgent(parsed.Path, r.userAgent)
}

func (r *robotsCache) data(ctx context.Context, target *url.URL) *robotstxt.RobotsData {
	r.mu.Lock()
	data, ok := r.hosts[target.Host]
	r.mu.Unlock()
	if ok {
		return data
	}

	res, err := r.client.R().
		SetContext(ctx).
		Get(fmt.Sprintf("%s://%s/robots.txt", target.Scheme, target.Host))
	if err != nil {
		return nil
	}
	data, err = robotstxt.FromStatusAndBytes(res.StatusCode(), res.Body())
	if err != nil {
		return nil
	}

	r.mu.Lock()
	r.hosts[target.Host] = data
	r.mu.Unlock()
	return data
}
