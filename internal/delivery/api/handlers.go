package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"stockwatch/internal/domain"
	"stockwatch/internal/usecase"
)

type Handlers struct {
	alerts *usecase.AlertUsecase
	logger *zap.Logger
}

func NewHandlers(alerts *usecase.AlertUsecase, logger *zap.Logger) *Handlers {
	return &Handlers{alerts: alerts, logger: logger}
}

type createAlertRequest struct {
	Ticker    string   `json:"ticker" binding:"required"`
	Threshold *float64 `json:"threshold" binding:"required"`
	Condition string   `json:"condition" binding:"required"`
}

type alertResponse struct {
	ID        string    `json:"id"`
	Ticker    string    `json:"ticker"`
	Threshold float64   `json:"threshold"`
	Condition string    `json:"condition"`
	CreatedAt time.Time `json:"createdAt"`
}

func (h *Handlers) ListAlerts(c *gin.Context) {
	alerts, err := h.alerts.ListAlerts(c.Request.Context(), ownerID(c))
	if err != nil {
		h.logger.Error("list alerts failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list alerts"})
		return
	}

	response := make([]alertResponse, 0, len(alerts))
	for _, alert := range alerts {
		response = append(response, mapAlertResponse(alert))
	}
	c.JSON(http.StatusOK, response)
}

func (h *Handlers) CreateAlert(c *gin.Context) {
	var request createAlertRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ticker, threshold and condition are required"})
		return
	}

	alert, err := h.alerts.CreateAlert(c.Request.Context(), ownerID(c), request.Ticker, *request.Threshold, request.Condition)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrInvalidSymbol),
			errors.Is(err, usecase.ErrInvalidThreshold),
			errors.Is(err, usecase.ErrInvalidCondition):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			h.logger.Error("create alert failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create alert"})
		}
		return
	}

	c.JSON(http.StatusCreated, mapAlertResponse(*alert))
}

func (h *Handlers) DeleteAlert(c *gin.Context) {
	err := h.alerts.DeleteAlert(c.Request.Context(), ownerID(c), c.Param("id"))
	if err != nil {
		if errors.Is(err, usecase.ErrAlertNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "alert not found"})
			return
		}
		h.logger.Error("delete alert failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete alert"})
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handlers) ListIndices(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"results": IndexETFs})
}

func mapAlertResponse(alert domain.Alert) alertResponse {
	return alertResponse{
		ID:        alert.ID,
		Ticker:    alert.Symbol,
		Threshold: alert.Threshold,
		Condition: string(alert.Condition),
		CreatedAt: alert.CreatedAt,
	}
}
