package insights

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// GET /insights?category=
func (h *Handler) Get(c *gin.Context) {
	category := c.Query("category")

	if category == "" {
		snapshots, err := h.service.Snapshots(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"snapshots": snapshots})
		return
	}

	snapshot, err := h.service.Snapshot(c.Request.Context(), category)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "no data available",
		})
		return
	}

	c.JSON(http.StatusOK, snapshot)
}

// POST /admin/insights/recompute
func (h *Handler) Recompute(c *gin.Context) {
	if err := h.service.Recompute(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}
