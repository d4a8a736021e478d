package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/LovationAdmin/finanzas/models"
	"github.com/LovationAdmin/finanzas/services"

	"github.com/gin-gonic/gin"
)

const (
	msgNotFound = "No encontrado"
	msgDeleted  = "Eliminado correctamente"
)

type MovementHandler struct {
	Service *services.MovementService
}

func NewMovementHandler(service *services.MovementService) *MovementHandler {
	return &MovementHandler{Service: service}
}

// GetMovements returns every movement, newest first
func (h *MovementHandler) GetMovements(c *gin.Context) {
	movements, err := h.Service.List(c.Request.Context())
	if err != nil {
		storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, movements)
}

// GetMovement returns a single movement
func (h *MovementHandler) GetMovement(c *gin.Context) {
	movement, err := h.Service.Get(c.Request.Context(), c.Param("id"))
	if errors.Is(err, services.ErrNotFound) {
		c.JSON(http.StatusNotFound, models.MessageResponse{Message: msgNotFound})
		return
	}
	if err != nil {
		storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, movement)
}

// CreateMovement stores a new movement
func (h *MovementHandler) CreateMovement(c *gin.Context) {
	var req models.MovementRequest
	if !bindJSON(c, &req) {
		return
	}

	movement, err := h.Service.Create(c.Request.Context(), req)
	if err != nil {
		storeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, movement)
}

// UpdateMovement overwrites an existing movement
func (h *MovementHandler) UpdateMovement(c *gin.Context) {
	var req models.MovementRequest
	if !bindJSON(c, &req) {
		return
	}

	movement, err := h.Service.Update(c.Request.Context(), c.Param("id"), req)
	if errors.Is(err, services.ErrNotFound) {
		c.JSON(http.StatusNotFound, models.MessageResponse{Message: msgNotFound})
		return
	}
	if err != nil {
		storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, movement)
}

// DeleteMovement removes a movement
func (h *MovementHandler) DeleteMovement(c *gin.Context) {
	_, err := h.Service.Delete(c.Request.Context(), c.Param("id"))
	if errors.Is(err, services.ErrNotFound) {
		c.JSON(http.StatusNotFound, models.MessageResponse{Message: msgNotFound})
		return
	}
	if err != nil {
		storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.MessageResponse{Message: msgDeleted})
}

// storeError answers 500 with the underlying store message.
func storeError(c *gin.Context, err error) {
	c.Error(err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}

// bindJSON decodes the request body into obj. An empty body decodes as an
// empty object so absent fields reach the store. Malformed JSON answers 400.
func bindJSON(c *gin.Context, obj any) bool {
	err := c.ShouldBindJSON(obj)
	if err == nil || errors.Is(err, io.EOF) {
		return true
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	return false
}
