package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"mediasearch/pkg/version"
)

// HealthResponse is the liveness body. It never depends on the provider.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	Service string `json:"service"`
}

func Health(c *gin.Context) {
	info := version.GetInfo()
	c.JSON(http.StatusOK, HealthResponse{
		Status:  "ok",
		Version: info.Version,
		Service: info.Service,
	})
}
