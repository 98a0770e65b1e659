package rest

import (
	"context"
	"errors"
	"net/http"
	"time"

	"sizefit/domain"
	"sizefit/pkg/logger"
	"sizefit/pkg/metrics"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type SizingService interface {
	RecommendSize(ctx context.Context, clientID, productID string) (domain.SizeRecommendation, error)
	RecordFeedback(ctx context.Context, clientID, productID, size, feedback string, eventCtx map[string]any) error
}

type RecommendationHandler struct {
	sizingService SizingService
	validator     *validator.Validate
	timeout       time.Duration
}

func NewRecommendationHandler(sizingService SizingService) *RecommendationHandler {
	return &RecommendationHandler{
		sizingService: sizingService,
		validator:     validator.New(),
		timeout:       10 * time.Second,
	}
}

type FeedbackRequest struct {
	ClientID  string         `json:"client_id" validate:"required"`
	ProductID string         `json:"product_id" validate:"required"`
	Size      string         `json:"size" validate:"required"`
	Feedback  string         `json:"feedback" validate:"required"`
	Context   map[string]any `json:"context,omitempty"`
}

func (h *RecommendationHandler) GetRecommendation(c echo.Context) error {
	clientID := c.QueryParam("client_id")
	productID := c.QueryParam("product_id")

	if clientID == "" || productID == "" {
		return c.JSON(http.StatusBadRequest, ResponseError{
			Message: "client_id and product_id query parameters are required",
		})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	metrics.RecommendRequests.Inc()
	start := time.Now()

	rec, err := h.sizingService.RecommendSize(ctx, clientID, productID)
	metrics.RecommendLatency.Observe(time.Since(start).Seconds())
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrClientNotFound), errors.Is(err, domain.ErrProductNotFound):
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		case errors.Is(err, domain.ErrNoSizesAvailable):
			return c.JSON(http.StatusUnprocessableEntity, ResponseError{Message: err.Error()})
		}
		logger.Error("Failed to generate recommendation", "client_id", clientID, "product_id", productID, "error", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(rec))
}

func (h *RecommendationHandler) RecordFeedback(c echo.Context) error {
	var req FeedbackRequest

	if err := c.Bind(&req); err != nil {
		logger.Error("Invalid request body", "error", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		logger.Error("Failed to validate feedback request", "error", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	err := h.sizingService.RecordFeedback(ctx, req.ClientID, req.ProductID, req.Size, req.Feedback, req.Context)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrClientNotFound), errors.Is(err, domain.ErrProductNotFound):
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		logger.Error("Failed to record feedback", "error", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusCreated, fres.Response.StatusCreated("feedback recorded"))
}
