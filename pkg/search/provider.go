// Package search routes media searches to the provider that serves each media type.
package search

import (
	"context"

	"mediasearch/pkg/models"
)

// Provider is the set of catalog operations a media source offers. Every
// failure is an *apperr.Error.
type Provider interface {
	Search(ctx context.Context, query string, page uint32) (*models.SearchResponse, error)
	Details(ctx context.Context, id string) (*models.SearchResult, error)
	Popular(ctx context.Context, page uint32) (*models.SearchResponse, error)
	NewReleases(ctx context.Context, page uint32) (*models.SearchResponse, error)
	Upcoming(ctx context.Context, page uint32) (*models.SearchResponse, error)
}
