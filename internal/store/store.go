// Package store reads single documents from a document database.
//
// Every backend implements Store and reports failures with the error kinds
// declared here, so callers never depend on which database is behind it.
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/Lllllllleong/linkedlens/internal/models"
)

// Store looks up documents by collection and ID.
type Store interface {
	// Get returns the stored fields of collection/id with "id" merged in.
	Get(ctx context.Context, collection, id string) (models.Document, error)
	Close() error
}

var (
	// ErrNotFound reports that the requested document does not exist.
	ErrNotFound = errors.New("document not found")
	// ErrUpstream reports an I/O, permission or decoding failure in the backend.
	ErrUpstream = errors.New("document store unavailable")
	// ErrInvalidArgument reports an empty collection name or document ID.
	ErrInvalidArgument = errors.New("invalid argument")
)

// NotFoundError is returned when a document does not exist.
type NotFoundError struct {
	Collection string
	ID         string
	// Detail overrides the default message when the backend supplied one.
	Detail string
}

func (e *NotFoundError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return fmt.Sprintf("Document with ID %s not found", e.ID)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// UpstreamError wraps a backend failure that is not a plain miss.
type UpstreamError struct {
	Collection string
	ID         string
	Err        error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("failed to fetch document %s/%s: %v", e.Collection, e.ID, e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

func (e *UpstreamError) Is(target error) bool { return target == ErrUpstream }

func notFound(collection, id string) error {
	return &NotFoundError{Collection: collection, ID: id}
}

func upstream(collection, id string, err error) error {
	return &UpstreamError{Collection: collection, ID: id, Err: err}
}

// validate rejects empty lookup keys before any round trip.
func validate(collection, id string) error {
	if collection == "" {
		return fmt.Errorf("collection name must not be empty: %w", ErrInvalidArgument)
	}
	if id == "" {
		return fmt.Errorf("document ID must not be empty: %w", ErrInvalidArgument)
	}
	return nil
}
