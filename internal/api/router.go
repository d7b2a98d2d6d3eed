// Package api serves documents over HTTP.
package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Lllllllleong/linkedlens/internal/metrics"
	"github.com/Lllllllleong/linkedlens/internal/models"
	"github.com/Lllllllleong/linkedlens/internal/services"
	"github.com/Lllllllleong/linkedlens/internal/store"
)

const (
	// RequestIDHeader carries the request ID in and out.
	RequestIDHeader = "X-Request-ID"

	missingIDMessage = "Post ID is required"
	fallbackNotFound = "Document not found"
)

// DocumentReader is the read side used by the routes.
type DocumentReader interface {
	GetJob(ctx context.Context, id string) (models.Document, error)
	GetEnrichedPost(ctx context.Context, id string) (models.Document, error)
}

// NewRouter builds the gin engine with all routes. gatherer serves /metrics;
// a nil gatherer leaves /metrics unregistered.
func NewRouter(svc DocumentReader, backend string, gatherer prometheus.Gatherer) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestContext(), countRequests())

	RegisterDocumentRoutes(r, svc)

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, models.HealthResponse{Status: "ok", Backend: backend})
	})
	if gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	}
	return r
}

// RegisterDocumentRoutes registers GET /jobs/:id and GET /posts/:id.
// The bare collection paths are registered too so an empty ID gets a 400
// rather than a routing 404.
func RegisterDocumentRoutes(r *gin.Engine, svc DocumentReader) {
	jobs := documentHandler(svc.GetJob)
	posts := documentHandler(svc.GetEnrichedPost)

	r.GET("/jobs/", jobs)
	r.GET("/jobs/:id", jobs)
	r.GET("/posts/", posts)
	r.GET("/posts/:id", posts)
}

func documentHandler(get func(ctx context.Context, id string) (models.Document, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		if strings.TrimSpace(id) == "" {
			c.String(http.StatusBadRequest, "%s", missingIDMessage)
			return
		}

		doc, err := get(c.Request.Context(), id)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, doc)
	}
}

// writeError maps a lookup error to a status code and a plain-text body.
func writeError(c *gin.Context, err error) {
	msg := err.Error()
	if msg == "" {
		msg = fallbackNotFound
	}
	c.String(statusFor(err), "%s", msg)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, store.ErrInvalidArgument):
		return http.StatusBadRequest
	case errors.Is(err, store.ErrUpstream):
		return http.StatusBadGateway
	default:
		return http.StatusNotFound
	}
}

// requestContext assigns a request ID and puts a request logger in the context.
func requestContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Header(RequestIDHeader, requestID)

		logCtx := slog.With("requestId", requestID, "method", c.Request.Method, "path", c.Request.URL.Path)
		c.Request = c.Request.WithContext(services.WithLogger(c.Request.Context(), logCtx))

		c.Next()

		logCtx.Info("Request handled.", "status", c.Writer.Status())
	}
}

func countRequests() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		metrics.HTTPRequests.WithLabelValues(route, strconv.Itoa(c.Writer.Status())).Inc()
	}
}
