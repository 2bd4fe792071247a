// Package pwa generates the service worker and hardening headers for the
// web build of reps and serves a built directory with them applied.
package pwa

import (
	"regexp"
)

// Caching strategies understood by the service worker.
const (
	NetworkFirst = "NetworkFirst"
	CacheFirst   = "CacheFirst"
)

// APIPattern matches requests to the hosted API.
const APIPattern = `^https:\/\/.*\.supabase\.co\/.*$`

// RuntimeCache is a runtime caching rule for the service worker.
type RuntimeCache struct {
	URLPattern    string `json:"urlPattern"`
	Handler       string `json:"handler"`
	CacheName     string `json:"cacheName"`
	MaxEntries    int    `json:"maxEntries"`
	MaxAgeSeconds int    `json:"maxAgeSeconds"`
}

// Regexp compiles the rule's URL pattern.
func (r RuntimeCache) Regexp() (*regexp.Regexp, error) {
	return regexp.Compile(r.URLPattern)
}

// APICache is the caching rule for API responses.
var APICache = RuntimeCache{
	URLPattern:    APIPattern,
	Handler:       NetworkFirst,
	CacheName:     "supabase-api",
	MaxEntries:    50,
	MaxAgeSeconds: 60 * 60 * 24,
}

// Header is a response header applied to every path.
type Header struct {
	Key   string
	Value string
}

// Headers are the hardening headers sent with every response.
var Headers = []Header{
	{
		Key:   "Content-Security-Policy",
		Value: "default-src 'self'; script-src 'self' 'unsafe-inline' 'unsafe-eval'; style-src 'self' 'unsafe-inline'; img-src 'self' blob: data: *.supabase.co; font-src 'self'; connect-src 'self' *.supabase.co *.vercel-storage.com; worker-src 'self' blob:;",
	},
	{
		Key:   "X-Frame-Options",
		Value: "DENY",
	},
	{
		Key:   "X-Content-Type-Options",
		Value: "nosniff",
	},
	{
		Key:   "Referrer-Policy",
		Value: "strict-origin-when-cross-origin",
	},
}
