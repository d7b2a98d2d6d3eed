package metrics

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/Lllllllleong/linkedlens/internal/models"
	"github.com/Lllllllleong/linkedlens/internal/store"
)

var (
	DocumentLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "linkedlens", Name: "document_lookups_total", Help: "Number of document store lookups by backend, collection and result."},
		[]string{"backend", "collection", "result"},
	)
	LookupDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Namespace: "linkedlens", Name: "document_lookup_duration_seconds", Help: "Latency of document store lookups.", Buckets: prometheus.DefBuckets},
		[]string{"backend", "collection"},
	)
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "linkedlens", Name: "http_requests_total", Help: "Number of HTTP requests by route and status code."},
		[]string{"route", "code"},
	)
)

func RegisterCollectors(reg prometheus.Registerer) {
	reg.MustRegister(DocumentLookups)
	reg.MustRegister(LookupDuration)
	reg.MustRegister(HTTPRequests)
}

// Result classifies a lookup error for the "result" label.
func Result(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, store.ErrNotFound):
		return "not_found"
	case errors.Is(err, store.ErrInvalidArgument):
		return "invalid_argument"
	case errors.Is(err, store.ErrUpstream):
		return "upstream_error"
	default:
		return "error"
	}
}

// instrumentedStore records lookup counts and latency around another Store.
type instrumentedStore struct {
	next    store.Store
	backend string
}

// InstrumentStore wraps s so every Get is counted under the given backend label.
func InstrumentStore(s store.Store, backend string) store.Store {
	return &instrumentedStore{next: s, backend: backend}
}

func (s *instrumentedStore) Get(ctx context.Context, collection, id string) (models.Document, error) {
	start := time.Now()
	doc, err := s.next.Get(ctx, collection, id)
	LookupDuration.WithLabelValues(s.backend, collection).Observe(time.Since(start).Seconds())
	DocumentLookups.WithLabelValues(s.backend, collection, Result(err)).Inc()
	return doc, err
}

func (s *instrumentedStore) Close() error {
	return s.next.Close()
}
