package handlers

import (
	"github.com/gin-gonic/gin"

	"mediasearch/pkg/apperr"
)

// RegisterRoutes mounts the public API under /api/v1. Unknown routes answer
// with the NotFound error body.
func RegisterRoutes(router *gin.Engine, games *GameHandler, searches *SearchHandler) {
	v1 := router.Group("/api/v1")
	v1.GET("/health", Health)
	v1.POST("/search", searches.Search)

	game := v1.Group("/game")
	game.POST("/search", games.Search)
	game.GET("/popular", games.Popular)
	game.GET("/new_releases", games.NewReleases)
	game.GET("/upcoming", games.Upcoming)
	game.GET("/:id", games.Details)

	router.NoRoute(func(c *gin.Context) {
		_ = c.Error(apperr.NotFound())
	})
}
