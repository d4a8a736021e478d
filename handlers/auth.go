package handlers

import (
	"errors"
	"net/http"

	"github.com/LovationAdmin/finanzas/models"
	"github.com/LovationAdmin/finanzas/services"

	"github.com/gin-gonic/gin"
)

// AuthHandler exposes the identity lookup. Nothing here verifies that the
// caller is who they claim to be.
type AuthHandler struct {
	Identity services.IdentityProvider
}

func NewAuthHandler(identity services.IdentityProvider) *AuthHandler {
	return &AuthHandler{Identity: identity}
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.Identity.Find(c.Request.Context(), req.Name)
	if errors.Is(err, services.ErrNotFound) {
		c.JSON(http.StatusNotFound, models.MessageResponse{Message: "Usuario no encontrado"})
		return
	}
	if err != nil {
		storeError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.Identity.Register(c.Request.Context(), req)
	if errors.Is(err, services.ErrConflict) {
		c.JSON(http.StatusBadRequest, models.MessageResponse{Message: "El usuario ya existe"})
		return
	}
	if err != nil {
		storeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, models.RegisterResponse{
		Message: "Usuario registrado",
		Name:    user.Name,
		Role:    user.Role,
	})
}
