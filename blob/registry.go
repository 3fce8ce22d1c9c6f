// Package blob issues revocable loopback URLs for local files so that a media engine can stream them.
package blob

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/watchroom-cli/watchroom/filesystem"
	"github.com/watchroom-cli/watchroom/log"
	"github.com/watchroom-cli/watchroom/media"
)

// PathPrefix is the route under which handles are served.
const PathPrefix = "/blob/"

var (
	// ErrUnknownHandle is returned when releasing a handle that was never issued or is already released.
	ErrUnknownHandle = errors.New("unknown handle")
	// ErrNotStarted is returned when allocating before the registry has a base URL.
	ErrNotStarted = errors.New("handle server not started")
)

// Registry maps handle ids to files and serves them over HTTP.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]media.FileRef
	base    string

	router  chi.Router
	metrics *Metrics
	server  *http.Server
}

// New returns a registry. Metrics are mounted at /metrics when withMetrics is set.
func New(withMetrics bool) *Registry {
	r := &Registry{
		entries: make(map[string]media.FileRef),
		metrics: NewMetrics(),
	}

	router := chi.NewRouter()
	router.Use(r.metrics.middleware)
	router.Get(PathPrefix+"{id}", r.serve)
	router.Head(PathPrefix+"{id}", r.serve)
	if withMetrics {
		router.Get("/metrics", func(w http.ResponseWriter, req *http.Request) {
			r.metrics.Handler(func() { r.metrics.active.Set(float64(r.Active())) }).ServeHTTP(w, req)
		})
	}
	r.router = router

	return r
}

// Handler exposes the router, e.g. for httptest.
func (r *Registry) Handler() http.Handler {
	return r.router
}

// SetBase sets the URL prefix of issued handles.
func (r *Registry) SetBase(base string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.base = strings.TrimSuffix(base, "/")
}

// Start listens on a loopback port and serves handles until Close.
func (r *Registry) Start() error {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}

	r.SetBase("http://" + listener.Addr().String())
	r.server = &http.Server{Handler: r.router, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		if err := r.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Error("handle server stopped")
		}
	}()

	log.WithField("addr", listener.Addr().String()).Info("handle server started")
	return nil
}

// Allocate registers ref and returns its URL.
func (r *Registry) Allocate(ref media.FileRef) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.base == "" {
		return "", ErrNotStarted
	}

	id := uuid.NewString()
	r.entries[id] = ref
	r.metrics.allocations.Inc()
	r.metrics.active.Set(float64(len(r.entries)))

	return r.base + PathPrefix + id, nil
}

// Release revokes url. Requests for it fail afterwards.
func (r *Registry) Release(url string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := strings.TrimPrefix(url, r.base+PathPrefix)
	if id == url {
		return ErrUnknownHandle
	}
	if _, ok := r.entries[id]; !ok {
		return ErrUnknownHandle
	}

	delete(r.entries, id)
	r.metrics.releases.Inc()
	r.metrics.active.Set(float64(len(r.entries)))
	return nil
}

// Active returns the number of unreleased handles.
func (r *Registry) Active() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// Close stops the server. Outstanding handles stop resolving.
func (r *Registry) Close() error {
	if r.server == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	return r.server.Shutdown(ctx)
}

func (r *Registry) lookup(id string) (media.FileRef, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ref, ok := r.entries[id]
	return ref, ok
}

func (r *Registry) serve(w http.ResponseWriter, req *http.Request) {
	ref, ok := r.lookup(chi.URLParam(req, "id"))
	if !ok {
		http.NotFound(w, req)
		return
	}

	file, err := filesystem.API().Open(ref.Path)
	if err != nil {
		log.WithError(err).WithField("file", ref.Path).Warn("open handle")
		http.Error(w, "unavailable", http.StatusGone)
		return
	}
	defer file.Close()

	if ref.Type != "" {
		w.Header().Set("Content-Type", ref.Type)
	}
	http.ServeContent(w, req, ref.Name, ref.ModTime, file)
}
