package order

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"cortado/internal/catalog"
	"cortado/internal/pricing"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// quoteStatus maps pricing/catalog failures onto HTTP codes. Quote and
// Place share the same failure surface.
func quoteStatus(err error) int {
	switch {
	case errors.Is(err, catalog.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, catalog.ErrUnavailable):
		return http.StatusConflict
	case errors.Is(err, pricing.ErrInvalidValue):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// --------------------------------------------------
// POST /orders/quote (public)
// --------------------------------------------------
func (h *Handler) Quote(c *gin.Context) {
	var req QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	quote, err := h.service.Quote(c.Request.Context(), req)
	if err != nil {
		c.JSON(quoteStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, quote)
}

// --------------------------------------------------
// POST /orders (staff)
// --------------------------------------------------
func (h *Handler) Create(c *gin.Context) {
	var req PlaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	o, err := h.service.Place(c.Request.Context(), c.GetString("staffID"), req)
	if err != nil {
		c.JSON(quoteStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, o)
}

// --------------------------------------------------
// GET /orders?status= (staff)
// --------------------------------------------------
func (h *Handler) List(c *gin.Context) {
	orders, err := h.service.List(c.Request.Context(), c.Query("status"))
	if err != nil {
		if errors.Is(err, pricing.ErrInvalidValue) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

// --------------------------------------------------
// GET /orders/:id (staff)
// --------------------------------------------------
func (h *Handler) Get(c *gin.Context) {
	o, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, o)
}

// --------------------------------------------------
// POST /orders/claim (staff)
// --------------------------------------------------
func (h *Handler) Claim(c *gin.Context) {
	o, err := h.service.Claim(c.Request.Context(), c.GetString("staffID"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if o == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no orders waiting"})
		return
	}

	c.JSON(http.StatusOK, o)
}

// --------------------------------------------------
// POST /orders/:id/complete (staff)
// --------------------------------------------------
func (h *Handler) Complete(c *gin.Context) {
	o, err := h.service.Complete(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondTransition(c, err)
		return
	}

	c.JSON(http.StatusOK, o)
}

// --------------------------------------------------
// POST /orders/:id/cancel (staff)
// --------------------------------------------------
func (h *Handler) Cancel(c *gin.Context) {
	o, err := h.service.Cancel(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondTransition(c, err)
		return
	}

	c.JSON(http.StatusOK, o)
}

func (h *Handler) respondTransition(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, ErrInvalidTransition):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
