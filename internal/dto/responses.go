package dto

import (
	"time"

	"github.com/flashcart/chargeback-intelligence/internal/model"
	"github.com/flashcart/chargeback-intelligence/internal/service"
)

type ChargebackResponse struct {
	ChargebackID     string  `json:"chargeback_id"`
	Date             string  `json:"date"`
	MerchantID       string  `json:"merchant_id"`
	MerchantName     string  `json:"merchant_name"`
	MerchantCategory string  `json:"merchant_category"`
	Country          string  `json:"country"`
	ReasonCategory   string  `json:"reason_category"`
	ReasonCode       string  `json:"reason_code"`
	PaymentMethod    string  `json:"payment_method"`
	AmountUSD        float64 `json:"amount_usd"`
	Status           string  `json:"status"`
}

type ChargebackListResponse struct {
	Records  []ChargebackResponse `json:"records"`
	Total    int                  `json:"total"`
	Page     int                  `json:"page"`
	PageSize int                  `json:"page_size"`
}

func NewChargebackResponse(rec model.ChargebackRecord) ChargebackResponse {
	amount, _ := rec.AmountUSD.Round(2).Float64()
	return ChargebackResponse{
		ChargebackID:     rec.ID,
		Date:             rec.Date.Format(time.DateOnly),
		MerchantID:       rec.MerchantID,
		MerchantName:     rec.MerchantName,
		MerchantCategory: rec.MerchantCategory,
		Country:          string(rec.Country),
		ReasonCategory:   string(rec.ReasonCategory),
		ReasonCode:       rec.ReasonCode,
		PaymentMethod:    string(rec.PaymentMethod),
		AmountUSD:        amount,
		Status:           string(rec.Status),
	}
}

func NewChargebackListResponse(result service.ListResult) ChargebackListResponse {
	records := make([]ChargebackResponse, len(result.Records))
	for i, rec := range result.Records {
		records[i] = NewChargebackResponse(rec)
	}
	return ChargebackListResponse{
		Records:  records,
		Total:    result.Total,
		Page:     result.Page,
		PageSize: result.PageSize,
	}
}

type HealthResponse struct {
	Status        string `json:"status"`
	Version       string `json:"version"`
	RecordsLoaded int    `json:"records_loaded"`
}
