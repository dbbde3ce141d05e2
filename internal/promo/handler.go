package promo

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"cortado/internal/pricing"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

//
// --------------------------------------------------
// GET /promos
// --------------------------------------------------
//

func (h *Handler) List() gin.HandlerFunc {
	return func(c *gin.Context) {
		promos, err := h.service.ListActive(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load promos"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"promos": promos})
	}
}

//
// --------------------------------------------------
// POST /admin/promos
// --------------------------------------------------
//

func (h *Handler) Create() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}

		p, err := h.service.Create(c.Request.Context(), req)
		if err != nil {
			if errors.Is(err, pricing.ErrInvalidValue) {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusCreated, p)
	}
}

//
// --------------------------------------------------
// POST /admin/promos/:id/activate
// --------------------------------------------------
//

func (h *Handler) Activate() gin.HandlerFunc {
	return func(c *gin.Context) {
		p, err := h.service.Activate(c.Request.Context(), c.Param("id"))
		if err != nil {
			h.respond(c, err)
			return
		}

		c.JSON(http.StatusOK, p)
	}
}

//
// --------------------------------------------------
// POST /admin/promos/:id/end
// --------------------------------------------------
//

func (h *Handler) End() gin.HandlerFunc {
	return func(c *gin.Context) {
		p, err := h.service.End(c.Request.Context(), c.Param("id"))
		if err != nil {
			h.respond(c, err)
			return
		}

		c.JSON(http.StatusOK, p)
	}
}

//
// --------------------------------------------------
// GET /admin/promos/suggestion?category=
// --------------------------------------------------
//

func (h *Handler) Suggestion() gin.HandlerFunc {
	return func(c *gin.Context) {
		suggestion, err := h.service.Suggest(c.Request.Context(), c.Query("category"))
		if err != nil {
			switch {
			case errors.Is(err, pricing.ErrInvalidValue):
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			case errors.Is(err, ErrNoSalesData):
				c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			default:
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			}
			return
		}

		c.JSON(http.StatusOK, suggestion)
	}
}

func (h *Handler) respond(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrPromoNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, pricing.ErrInvalidValue):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
