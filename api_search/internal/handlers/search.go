package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"mediasearch/api_search/internal/validation"
	"mediasearch/pkg/logging"
	"mediasearch/pkg/middleware"
	"mediasearch/pkg/search"
)

const unknownMediaType = "unknown"

// SearchHandler serves POST /api/v1/search, routing by media_type.
type SearchHandler struct {
	registry ProviderRegistry
	logger   logging.Logger
	metrics  *SearchMetrics
}

func NewSearchHandler(registry ProviderRegistry, logger logging.Logger, metrics *SearchMetrics) *SearchHandler {
	return &SearchHandler{
		registry: registry,
		logger:   logger,
		metrics:  metrics,
	}
}

func (h *SearchHandler) Search(c *gin.Context) {
	var req validation.SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logBindError(c, h.logger, err)
		h.fail(c, unknownMediaType, ErrInvalidBody)
		return
	}
	s, err := req.Validate()
	if err != nil {
		h.fail(c, unknownMediaType, err)
		return
	}

	mediaType := s.MediaType.String()
	if !h.registry.Supports(s.MediaType) {
		h.fail(c, mediaType, search.ErrUnsupportedMediaType)
		return
	}
	provider, err := h.registry.Provider(s.MediaType)
	if err != nil {
		h.fail(c, mediaType, err)
		return
	}

	middleware.GetContextLogger(c, h.logger).WithFields(logging.Fields{
		"media_type": mediaType,
		"query":      loggableQuery(s.Query),
		"page":       s.Page,
	}).Debug("Media search")

	start := time.Now()
	resp, err := provider.Search(c.Request.Context(), s.Query, s.Page)
	h.metrics.Observe("search", mediaType, err, time.Since(start))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *SearchHandler) fail(c *gin.Context, mediaType string, err error) {
	h.metrics.Reject("search", mediaType, err)
	_ = c.Error(err)
}
