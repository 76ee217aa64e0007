package handlers

import (
	"context"
	"net/http"

	"poll-service/internal/middleware"
	"poll-service/internal/service"

	"github.com/gin-gonic/gin"
)

type AnalyticsHandler struct {
	Service *service.AnalyticsService
}

func NewAnalyticsHandler(s *service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{Service: s}
}

// GetSummary returns the per-poll counters and choice tallies to the
// poll's creator.
func (h *AnalyticsHandler) GetSummary(c *gin.Context) {
	summary, err := h.Service.Summary(context.Background(), c.Param("id"), middleware.CurrentUser(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}
