// Package netcache provides a network-first HTTP transport. Responses from
// matching URLs are cached and served only when the network fails.
package netcache

import (
	"bufio"
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httputil"
	"regexp"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

const (
	DefaultMaxEntries = 50
	DefaultMaxAge     = 86400 * time.Second
)

type entry struct {
	storedAt time.Time
	dump     []byte
}

// Transport is an http.RoundTripper with a network-first cache.
type Transport struct {
	// Base performs the network request. http.DefaultTransport is used if
	// nil.
	Base http.RoundTripper
	// Pattern selects the URLs that are cached. Every GET is cached if nil.
	Pattern *regexp.Regexp
	// MaxEntries caps the number of cached responses. It is read when the
	// first response is cached.
	MaxEntries int
	// MaxAge is how long a cached response may be served.
	MaxAge time.Duration

	now   func() time.Time
	cache *expirable.LRU[string, entry]
	once  sync.Once
}

// New returns a transport with the default limits.
func New(base http.RoundTripper, pattern *regexp.Regexp) *Transport {
	return &Transport{
		Base:       base,
		Pattern:    pattern,
		MaxEntries: DefaultMaxEntries,
		MaxAge:     DefaultMaxAge,
	}
}

func (t *Transport) base() http.RoundTripper {
	if t.Base == nil {
		return http.DefaultTransport
	}

	return t.Base
}

func (t *Transport) clock() time.Time {
	if t.now == nil {
		return time.Now()
	}

	return t.now()
}

func (t *Transport) cacheable(req *http.Request) bool {
	if req.Method != http.MethodGet {
		return false
	}

	return t.Pattern == nil || t.Pattern.MatchString(req.URL.String())
}

// RoundTrip tries the network first. Successful responses to matching
// requests are stored; if the network fails a fresh stored response is
// returned instead.
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	if !t.cacheable(req) {
		return t.base().RoundTrip(req)
	}

	key := req.URL.String()

	resp, err := t.base().RoundTrip(req)
	if err != nil {
		cached, ok := t.lookup(key, req)
		if !ok {
			return nil, err
		}

		slog.DebugContext(req.Context(), "serving cached response",
			slog.String("url", key),
			slog.Any("network_error", err),
		)

		return cached, nil
	}

	if resp.StatusCode != http.StatusOK {
		return resp, nil
	}

	dump, err := httputil.DumpResponse(resp, true)
	if err != nil {
		resp.Body.Close()
		return nil, err
	}

	t.store(key, dump)

	return resp, nil
}

// Len returns the number of cached responses.
func (t *Transport) Len() int {
	return t.lru().Len()
}

func (t *Transport) lru() *expirable.LRU[string, entry] {
	t.once.Do(func() {
		t.cache = expirable.NewLRU[string, entry](t.MaxEntries, nil, t.MaxAge)
	})

	return t.cache
}

func (t *Transport) store(key string, dump []byte) {
	t.lru().Add(key, entry{storedAt: t.clock(), dump: dump})
}

func (t *Transport) lookup(key string, req *http.Request) (*http.Response, bool) {
	cache := t.lru()

	e, ok := cache.Get(key)
	if !ok {
		return nil, false
	}

	if t.MaxAge > 0 && t.clock().Sub(e.storedAt) > t.MaxAge {
		cache.Remove(key)
		return nil, false
	}

	resp, err := http.ReadResponse(bufio.NewReader(bytes.NewReader(e.dump)), req)
	if err != nil {
		cache.Remove(key)
		return nil, false
	}

	return resp, true
}
