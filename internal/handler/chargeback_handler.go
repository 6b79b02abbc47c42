package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/flashcart/chargeback-intelligence/internal/dto"
	"github.com/flashcart/chargeback-intelligence/internal/service"
)

type ChargebackHandler struct {
	svc *service.ChargebackService
}

func NewChargebackHandler(svc *service.ChargebackService) *ChargebackHandler {
	return &ChargebackHandler{svc: svc}
}

// List returns one page of the filtered, sorted chargeback records.
func (h *ChargebackHandler) List(c *gin.Context) {
	spec, err := dto.ParseFilter(c)
	if err != nil {
		_ = c.Error(err)
		return
	}
	ps, err := dto.ParsePageSort(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	result, err := h.svc.List(spec, ps)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.NewChargebackListResponse(result))
}
