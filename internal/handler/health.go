package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/flashcart/chargeback-intelligence/internal/dto"
	"github.com/flashcart/chargeback-intelligence/internal/store"
)

const Version = "1.0.0"

type HealthHandler struct {
	store *store.Store
}

func NewHealthHandler(st *store.Store) *HealthHandler {
	return &HealthHandler{store: st}
}

// Health reports readiness: the dataset is loaded and countable.
func (h *HealthHandler) Health(c *gin.Context) {
	if !h.store.Ready() {
		c.JSON(http.StatusServiceUnavailable, dto.HealthResponse{
			Status:  "loading",
			Version: Version,
		})
		return
	}

	c.JSON(http.StatusOK, dto.HealthResponse{
		Status:        "ok",
		Version:       Version,
		RecordsLoaded: h.store.RecordCount(),
	})
}
