package search

import (
	"slices"

	"github.com/samber/lo"

	"mediasearch/pkg/apperr"
	"mediasearch/pkg/models"
)

// ErrUnsupportedMediaType is returned for media types no provider is registered for.
var ErrUnsupportedMediaType = apperr.BadRequest("unsupported media type")

// Registry maps media types to providers. It is populated at startup and only
// read afterwards, so lookups need no locking.
type Registry struct {
	providers map[models.MediaType]Provider
}

func NewRegistry() *Registry {
	return &Registry{providers: make(map[models.MediaType]Provider)}
}

// Register binds p to mt, replacing any earlier binding.
func (r *Registry) Register(mt models.MediaType, p Provider) {
	r.providers[mt] = p
}

// Provider returns the provider for mt.
func (r *Registry) Provider(mt models.MediaType) (Provider, error) {
	p, ok := r.providers[mt]
	if !ok || p == nil {
		return nil, ErrUnsupportedMediaType
	}
	return p, nil
}

// Supported lists the media types with a provider, in declaration order.
func (r *Registry) Supported() []models.MediaType {
	return lo.Filter(models.AllMediaTypes(), func(mt models.MediaType, _ int) bool {
		_, ok := r.providers[mt]
		return ok
	})
}

// Supports reports whether mt has a provider.
func (r *Registry) Supports(mt models.MediaType) bool {
	return slices.Contains(r.Supported(), mt)
}
