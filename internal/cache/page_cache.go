// Package cache holds the time-bounded page cache used for the home feed.
//
// Entries are only ever dropped by expiry: writes elsewhere in the
// application do not invalidate them, so a new or deleted post shows up in a
// cached page after at most one TTL.
package cache

import (
	"bytes"
	"net/http"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"yatube/internal/logger"
)

const HeaderCache = "X-Cache"

type page struct {
	status int
	header http.Header
	body   []byte
}

type PageCache struct {
	store *gocache.Cache
	ttl   time.Duration
	log   *logger.Logger
}

func NewPageCache(ttl time.Duration, log *logger.Logger) *PageCache {
	return &PageCache{
		store: gocache.New(ttl, 2*ttl),
		ttl:   ttl,
		log:   log,
	}
}

// Key identifies a cached page by route and query string.
func Key(r *http.Request) string {
	return r.Method + " " + r.URL.RequestURI()
}

// flush drops every cached page.
func (c *PageCache) flush() {
	c.store.Flush()
}

// itemCount reports the number of cached pages, expired ones included until
// the janitor runs.
func (c *PageCache) itemCount() int {
	return c.store.ItemCount()
}

// Middleware serves GET requests from the cache and stores successful
// responses of next for the configured TTL.
func (c *PageCache) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			next.ServeHTTP(w, r)
			return
		}

		key := Key(r)
		if cached, ok := c.store.Get(key); ok {
			p := cached.(*page)
			// headers already set by outer handlers belong to this request
			for name, values := range p.header {
				if _, set := w.Header()[name]; !set {
					w.Header()[name] = values
				}
			}
			w.Header().Set(HeaderCache, "HIT")
			w.WriteHeader(p.status)
			w.Write(p.body)
			return
		}

		rec := &recorder{ResponseWriter: w, status: http.StatusOK}
		w.Header().Set(HeaderCache, "MISS")
		next.ServeHTTP(rec, r)

		if rec.status != http.StatusOK {
			return
		}

		header := rec.header
		if header == nil {
			header = w.Header().Clone()
		}
		header.Del(HeaderCache)
		header.Del("Set-Cookie")

		c.store.Set(key, &page{
			status: rec.status,
			header: header,
			body:   rec.body.Bytes(),
		}, c.ttl)
		c.log.Debug("cache", "page cached", "key", key, "ttl", c.ttl.String())
	})
}

// recorder passes the response through while keeping a copy of it.
type recorder struct {
	http.ResponseWriter
	status      int
	header      http.Header
	body        bytes.Buffer
	wroteHeader bool
}

func (r *recorder) WriteHeader(status int) {
	if r.wroteHeader {
		return
	}
	r.wroteHeader = true
	r.status = status
	r.header = r.ResponseWriter.Header().Clone()
	r.ResponseWriter.WriteHeader(status)
}

func (r *recorder) Write(b []byte) (int, error) {
	if !r.wroteHeader {
		r.WriteHeader(http.StatusOK)
	}
	r.body.Write(b)
	return r.ResponseWriter.Write(b)
}
