package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"mediasearch/api_search/internal/validation"
	"mediasearch/pkg/logging"
	"mediasearch/pkg/middleware"
	"mediasearch/pkg/models"
	"mediasearch/pkg/search"
)

// listFunc is a paged listing on a provider, e.g. search.Provider.Popular.
type listFunc func(search.Provider, context.Context, uint32) (*models.SearchResponse, error)

// GameHandler serves the /api/v1/game routes.
type GameHandler struct {
	registry ProviderRegistry
	logger   logging.Logger
	metrics  *SearchMetrics
}

func NewGameHandler(registry ProviderRegistry, logger logging.Logger, metrics *SearchMetrics) *GameHandler {
	return &GameHandler{
		registry: registry,
		logger:   logger,
		metrics:  metrics,
	}
}

// Search handles POST /game/search.
func (h *GameHandler) Search(c *gin.Context) {
	var req validation.GameSearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logBindError(c, h.logger, err)
		h.fail(c, "search", ErrInvalidBody)
		return
	}
	s, err := req.Validate()
	if err != nil {
		h.fail(c, "search", err)
		return
	}

	middleware.GetContextLogger(c, h.logger).WithFields(logging.Fields{
		"query": loggableQuery(s.Query),
		"page":  s.Page,
	}).Debug("Game search")

	h.serve(c, "search", func(ctx context.Context, p search.Provider) (any, error) {
		return p.Search(ctx, s.Query, s.Page)
	})
}

func (h *GameHandler) Popular(c *gin.Context) {
	h.list(c, "popular", search.Provider.Popular)
}

func (h *GameHandler) NewReleases(c *gin.Context) {
	h.list(c, "new_releases", search.Provider.NewReleases)
}

func (h *GameHandler) Upcoming(c *gin.Context) {
	h.list(c, "upcoming", search.Provider.Upcoming)
}

// Details handles GET /game/:id. The id is passed to the provider verbatim.
func (h *GameHandler) Details(c *gin.Context) {
	id, err := validation.ValidateID(c.Param("id"))
	if err != nil {
		h.fail(c, "details", err)
		return
	}
	h.serve(c, "details", func(ctx context.Context, p search.Provider) (any, error) {
		return p.Details(ctx, id)
	})
}

func (h *GameHandler) list(c *gin.Context, operation string, fn listFunc) {
	page, err := validation.ParsePage(c.Query("page"))
	if err != nil {
		h.fail(c, operation, err)
		return
	}
	h.serve(c, operation, func(ctx context.Context, p search.Provider) (any, error) {
		return fn(p, ctx, page)
	})
}

// serve runs exactly one provider call and writes its result or records its error.
func (h *GameHandler) serve(c *gin.Context, operation string, call func(context.Context, search.Provider) (any, error)) {
	start := time.Now()
	result, err := h.call(c.Request.Context(), call)
	h.metrics.Observe(operation, models.MediaGame.String(), err, time.Since(start))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *GameHandler) call(ctx context.Context, call func(context.Context, search.Provider) (any, error)) (any, error) {
	p, err := h.registry.Provider(models.MediaGame)
	if err != nil {
		return nil, err
	}
	return call(ctx, p)
}

func (h *GameHandler) fail(c *gin.Context, operation string, err error) {
	h.metrics.Reject(operation, models.MediaGame.String(), err)
	_ = c.Error(err)
}
