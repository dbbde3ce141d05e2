package catalog

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"cortado/internal/pricing"
)

type Handler struct {
	service *Service
}

type AdminHandler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func NewAdminHandler(service *Service) *AdminHandler {
	return &AdminHandler{service: service}
}

// --------------------------------------------------
// Public menu
// --------------------------------------------------
func (h *Handler) GetMenu(c *gin.Context) {
	menu, err := h.service.Menu(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load menu"})
		return
	}

	c.JSON(http.StatusOK, menu)
}

// --------------------------------------------------
// Manager: create drink
// --------------------------------------------------
func (h *AdminHandler) CreateDrink(c *gin.Context) {
	var req CreateDrinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	drink, err := h.service.CreateDrink(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, pricing.ErrInvalidValue) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, drink)
}

// --------------------------------------------------
// Manager: update drink (partial)
// --------------------------------------------------
func (h *AdminHandler) UpdateDrink(c *gin.Context) {
	var req UpdateDrinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	drink, err := h.service.UpdateDrink(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, pricing.ErrInvalidValue):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, drink)
}

// --------------------------------------------------
// Manager: create extra
// --------------------------------------------------
func (h *AdminHandler) CreateExtra(c *gin.Context) {
	var req CreateExtraRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	extra, err := h.service.CreateExtra(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, pricing.ErrInvalidValue) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, extra)
}

// --------------------------------------------------
// Manager: update extra (partial)
// --------------------------------------------------
func (h *AdminHandler) UpdateExtra(c *gin.Context) {
	var req UpdateExtraRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	extra, err := h.service.UpdateExtra(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, pricing.ErrInvalidValue):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, extra)
}
