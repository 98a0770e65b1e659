package rest

import (
	"net/http"
	"time"

	"sizefit/pkg/config"
	"sizefit/pkg/logger"
	"sizefit/pkg/utils"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type AuthHandler struct {
	admin     config.AdminConfig
	validator *validator.Validate
	tokenTTL  time.Duration
}

func NewAuthHandler(admin config.AdminConfig) *AuthHandler {
	return &AuthHandler{
		admin:     admin,
		validator: validator.New(),
		tokenTTL:  24 * time.Hour,
	}
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Login authenticates the catalog administrator and issues a JWT for the
// write endpoints.
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest

	if err := c.Bind(&req); err != nil {
		logger.Error("Invalid request body", "error", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		logger.Error("Failed to validate login request", "error", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if req.Username != h.admin.Username || !utils.CheckPassword(req.Password, h.admin.PasswordHash) {
		logger.Warn("Failed admin login attempt", "username", req.Username, "ip", c.RealIP())
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "invalid credentials"})
	}

	token, err := utils.GenerateJWT(req.Username, "ADMIN", h.tokenTTL)
	if err != nil {
		logger.Error("Failed to generate token", "error", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Login successful",
		"token":   token,
	})
}
