package rest

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"sizefit/domain"
	"sizefit/pkg/logger"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type ClientService interface {
	GetAllClients(ctx context.Context) ([]domain.Client, error)
	GetClient(ctx context.Context, clientID string) (*domain.Client, error)
	SearchClients(ctx context.Context, query string, limit int) ([]domain.Client, error)
	CreateClient(ctx context.Context, client *domain.Client) (*domain.Client, error)
	UpdateClient(ctx context.Context, client *domain.Client) (*domain.Client, error)
}

type ClientHandler struct {
	clientService ClientService
	validator     *validator.Validate
	timeout       time.Duration
}

func NewClientHandler(clientService ClientService) *ClientHandler {
	return &ClientHandler{
		clientService: clientService,
		validator:     validator.New(),
		timeout:       10 * time.Second,
	}
}

type CreateClientRequest struct {
	ClientID     string   `json:"client_id" validate:"required"`
	Name         string   `json:"name" validate:"required"`
	Age          int      `json:"age" validate:"gte=0,lte=120"`
	HeightCM     int      `json:"height_cm" validate:"gte=0"`
	WeightKG     float64  `json:"weight_kg" validate:"gte=0"`
	BustCM       *float64 `json:"bust_cm,omitempty" validate:"omitempty,gt=0"`
	WaistCM      *float64 `json:"waist_cm,omitempty" validate:"omitempty,gt=0"`
	HipsCM       *float64 `json:"hips_cm,omitempty" validate:"omitempty,gt=0"`
	PreferredFit string   `json:"preferred_fit,omitempty"`
}

type UpdateClientRequest struct {
	Name         string   `json:"name,omitempty"`
	Age          int      `json:"age,omitempty" validate:"omitempty,gte=0,lte=120"`
	HeightCM     int      `json:"height_cm,omitempty" validate:"omitempty,gte=0"`
	WeightKG     float64  `json:"weight_kg,omitempty" validate:"omitempty,gte=0"`
	BustCM       *float64 `json:"bust_cm,omitempty" validate:"omitempty,gt=0"`
	WaistCM      *float64 `json:"waist_cm,omitempty" validate:"omitempty,gt=0"`
	HipsCM       *float64 `json:"hips_cm,omitempty" validate:"omitempty,gt=0"`
	PreferredFit string   `json:"preferred_fit,omitempty"`
}

// ResponseError represent the response error struct
type ResponseError struct {
	Message string `json:"message"`
}

func (h *ClientHandler) GetAllClients(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	clients, err := h.clientService.GetAllClients(ctx)
	if err != nil {
		logger.Error("Failed to get all clients", "error", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(clients))
}

func (h *ClientHandler) GetClient(c echo.Context) error {
	clientID := c.Param("id")

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	client, err := h.clientService.GetClient(ctx, clientID)
	if err != nil {
		if errors.Is(err, domain.ErrClientNotFound) {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(client))
}

func (h *ClientHandler) SearchClients(c echo.Context) error {
	query := c.QueryParam("q")
	if query == "" {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "query parameter q is required"})
	}

	limit := 10
	if limitStr := c.QueryParam("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil || parsed <= 0 {
			return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid limit"})
		}
		limit = parsed
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	clients, err := h.clientService.SearchClients(ctx, query, limit)
	if err != nil {
		logger.Error("Failed to search clients", "query", query, "error", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(clients))
}

func (h *ClientHandler) CreateClient(c echo.Context) error {
	var req CreateClientRequest

	if err := c.Bind(&req); err != nil {
		logger.Error("Invalid request body", "error", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		logger.Error("Failed to validate client request", "error", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	client, err := h.clientService.CreateClient(ctx, &domain.Client{
		ClientID:     req.ClientID,
		Name:         req.Name,
		Age:          req.Age,
		HeightCM:     req.HeightCM,
		WeightKG:     req.WeightKG,
		BustCM:       req.BustCM,
		WaistCM:      req.WaistCM,
		HipsCM:       req.HipsCM,
		PreferredFit: req.PreferredFit,
	})
	if err != nil {
		logger.Error("Failed to create client", "error", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusCreated, fres.Response.StatusCreated(client))
}

func (h *ClientHandler) UpdateClient(c echo.Context) error {
	clientID := c.Param("id")

	var req UpdateClientRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Invalid request body", "error", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		logger.Error("Failed to validate client update", "error", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	client, err := h.clientService.UpdateClient(ctx, &domain.Client{
		ClientID:     clientID,
		Name:         req.Name,
		Age:          req.Age,
		HeightCM:     req.HeightCM,
		WeightKG:     req.WeightKG,
		BustCM:       req.BustCM,
		WaistCM:      req.WaistCM,
		HipsCM:       req.HipsCM,
		PreferredFit: req.PreferredFit,
	})
	if err != nil {
		if errors.Is(err, domain.ErrClientNotFound) {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		logger.Error("Failed to update client", "error", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(client))
}
