package store

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Lllllllleong/linkedlens/internal/models"
)

// maxErrorBody bounds how much of an error response is read.
const maxErrorBody = 64 << 10

// APIError is a non-success response from the REST backend.
type APIError struct {
	StatusCode int
	Body       models.APIErrorBody
	// Raw holds the undecoded response body.
	Raw []byte
}

func (e *APIError) Error() string {
	if msg := e.Body.Text(); msg != "" {
		return fmt.Sprintf("api returned %d: %s", e.StatusCode, msg)
	}
	return fmt.Sprintf("api returned %d", e.StatusCode)
}

// RESTStore reads documents from a generic JSON API that serves
// GET {baseURL}/{collection}/{id} behind a bearer token.
type RESTStore struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

func NewRESTStore(baseURL, token string, timeout time.Duration) *RESTStore {
	return NewRESTStoreWithClient(baseURL, token, &http.Client{Timeout: timeout})
}

// NewRESTStoreWithClient uses the given HTTP client instead of building one.
func NewRESTStoreWithClient(baseURL, token string, client *http.Client) *RESTStore {
	return &RESTStore{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		httpClient: client,
	}
}

// GetPost fetches a post from the API without author enrichment.
func (s *RESTStore) GetPost(ctx context.Context, postID string) (models.Document, error) {
	return s.Get(ctx, models.PostsCollection, postID)
}

// GetJob fetches a job from the API.
func (s *RESTStore) GetJob(ctx context.Context, jobID string) (models.Document, error) {
	return s.Get(ctx, models.JobsCollection, jobID)
}

func (s *RESTStore) Get(ctx context.Context, collection, id string) (models.Document, error) {
	if err := validate(collection, id); err != nil {
		return nil, err
	}
	endpoint := fmt.Sprintf("%s/%s/%s", s.baseURL, url.PathEscape(collection), url.PathEscape(id))
	logCtx := slog.With("collection", collection, "documentId", id, "url", endpoint)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, upstream(collection, id, fmt.Errorf("failed to build request: %w", err))
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		logCtx.Error("Request to document API failed", "error", err)
		return nil, upstream(collection, id, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := readAPIError(resp)
		logCtx.Warn("Document API returned an error", "status", resp.StatusCode, "error", apiErr)
		if resp.StatusCode == http.StatusNotFound {
			return nil, &NotFoundError{Collection: collection, ID: id, Detail: apiErr.Body.Text()}
		}
		return nil, upstream(collection, id, apiErr)
	}

	var fields map[string]any
	dec := json.NewDecoder(resp.Body)
	dec.UseNumber()
	if err := dec.Decode(&fields); err != nil {
		logCtx.Error("Failed to decode document API response", "error", err)
		return nil, upstream(collection, id, fmt.Errorf("failed to decode response: %w", err))
	}
	return models.NewDocument(id, fields), nil
}

func (s *RESTStore) Close() error {
	s.httpClient.CloseIdleConnections()
	return nil
}

// readAPIError parses the JSON error body of a failed response. A body that
// is not JSON is kept raw and used as the message.
func readAPIError(resp *http.Response) *APIError {
	apiErr := &APIError{StatusCode: resp.StatusCode}
	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil {
		return apiErr
	}
	apiErr.Raw = raw
	if jsonErr := json.Unmarshal(raw, &apiErr.Body); jsonErr != nil || apiErr.Body.Text() == "" {
		apiErr.Body = models.APIErrorBody{Message: strings.TrimSpace(string(raw))}
	}
	return apiErr
}
