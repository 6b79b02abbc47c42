package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/flashcart/chargeback-intelligence/internal/dto"
	"github.com/flashcart/chargeback-intelligence/internal/service"
)

type MetricsHandler struct {
	svc *service.MetricsService
}

func NewMetricsHandler(svc *service.MetricsService) *MetricsHandler {
	return &MetricsHandler{svc: svc}
}

// GetMetrics computes the metrics summary for the requested filter.
func (h *MetricsHandler) GetMetrics(c *gin.Context) {
	spec, err := dto.ParseFilter(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	summary, err := h.svc.Summary(spec)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, summary)
}
