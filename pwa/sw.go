package pwa

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"text/template"

	"github.com/ayoisaiah/reps/internal/apperr"
	"github.com/ayoisaiah/reps/internal/osutil"
)

const (
	ServiceWorkerFile = "sw.js"
	RegisterFile      = "register-sw.js"
)

var (
	errDisabled = &apperr.Error{
		Message: "the service worker is disabled in development mode",
	}

	errRenderWorker = &apperr.Error{
		Message: "unable to render %s",
	}
)

// Options controls service worker generation.
type Options struct {
	Caching     []RuntimeCache
	Development bool
	SkipWaiting bool
	// Register emits a script that registers the worker on page load.
	Register bool
}

// DefaultOptions mirrors the production build.
func DefaultOptions() Options {
	return Options{
		Caching:     []RuntimeCache{APICache},
		SkipWaiting: true,
		Register:    true,
	}
}

var funcs = template.FuncMap{
	"json": func(v any) (string, error) {
		b, err := json.Marshal(v)
		return string(b), err
	},
}

var swTmpl = template.Must(template.New(ServiceWorkerFile).Funcs(funcs).Parse(
	`const RUNTIME_CACHING = [
{{- range .Caching}}
  {
    pattern: new RegExp({{json .URLPattern}}),
    handler: {{json .Handler}},
    cacheName: {{json .CacheName}},
    maxEntries: {{.MaxEntries}},
    maxAgeSeconds: {{.MaxAgeSeconds}},
  },
{{- end}}
];

self.addEventListener("install", () => {
{{- if .SkipWaiting}}
  self.skipWaiting();
{{- end}}
});

self.addEventListener("activate", (event) => {
  event.waitUntil(self.clients.claim());
});

async function trim(cache, rule) {
  const keys = await cache.keys();
  const now = Date.now();

  for (const req of keys) {
    const res = await cache.match(req);
    const stored = Number(res && res.headers.get("sw-stored-at"));

    if (!stored || now - stored > rule.maxAgeSeconds * 1000) {
      await cache.delete(req);
    }
  }

  const fresh = await cache.keys();

  for (let i = 0; i < fresh.length - rule.maxEntries; i++) {
    await cache.delete(fresh[i]);
  }
}

async function stamp(res) {
  const headers = new Headers(res.headers);
  headers.set("sw-stored-at", String(Date.now()));

  return new Response(await res.blob(), {
    status: res.status,
    statusText: res.statusText,
    headers,
  });
}

async function fresh(rule, res) {
  const stored = Number(res.headers.get("sw-stored-at"));

  return stored && Date.now() - stored <= rule.maxAgeSeconds * 1000;
}

async function networkFirst(rule, request) {
  const cache = await caches.open(rule.cacheName);

  try {
    const res = await fetch(request);

    if (res.ok) {
      await cache.put(request, await stamp(res.clone()));
      await trim(cache, rule);
    }

    return res;
  } catch (err) {
    const cached = await cache.match(request);

    if (cached && (await fresh(rule, cached))) {
      return cached;
    }

    throw err;
  }
}

async function cacheFirst(rule, request) {
  const cache = await caches.open(rule.cacheName);
  const cached = await cache.match(request);

  if (cached && (await fresh(rule, cached))) {
    return cached;
  }

  const res = await fetch(request);

  if (res.ok) {
    await cache.put(request, await stamp(res.clone()));
    await trim(cache, rule);
  }

  return res;
}

self.addEventListener("fetch", (event) => {
  if (event.request.method !== "GET") {
    return;
  }

  const rule = RUNTIME_CACHING.find((r) => r.pattern.test(event.request.url));
  if (!rule) {
    return;
  }

  const handler = rule.handler === "CacheFirst" ? cacheFirst : networkFirst;

  event.respondWith(handler(rule, event.request));
});
`))

const registerScript = `if ("serviceWorker" in navigator) {
  window.addEventListener("load", () => {
    navigator.serviceWorker.register("/` + ServiceWorkerFile + `");
  });
}
`

// WriteServiceWorker renders the service worker script to w.
func WriteServiceWorker(w io.Writer, opts Options) error {
	if opts.Development {
		return errDisabled
	}

	if err := swTmpl.Execute(w, opts); err != nil {
		return errRenderWorker.Fmt(ServiceWorkerFile).Wrap(err)
	}

	return nil
}

// Build writes the service worker, and the registration script when
// requested, into dir. It returns the paths written.
func Build(dir string, opts Options) ([]string, error) {
	if err := os.MkdirAll(dir, osutil.DirPermission); err != nil {
		return nil, err
	}

	swPath := filepath.Join(dir, ServiceWorkerFile)

	f, err := os.Create(swPath)
	if err != nil {
		return nil, err
	}

	err = WriteServiceWorker(f, opts)
	if cerr := f.Close(); err == nil {
		err = cerr
	}

	if err != nil {
		_ = os.Remove(swPath)
		return nil, err
	}

	written := []string{swPath}

	if opts.Register {
		regPath := filepath.Join(dir, RegisterFile)

		err = os.WriteFile(regPath, []byte(registerScript), 0o644)
		if err != nil {
			return written, err
		}

		written = append(written, regPath)
	}

	return written, nil
}
