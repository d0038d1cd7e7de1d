package handlers

import (
	"mediasearch/pkg/models"
	"mediasearch/pkg/search"
)

// ProviderRegistry resolves the provider serving a media type.
type ProviderRegistry interface {
	Provider(mt models.MediaType) (search.Provider, error)
	Supports(mt models.MediaType) bool
}
