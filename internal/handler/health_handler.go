package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const apiVersion = "0.1.0"

type HealthHandler struct {
	db *gorm.DB
}

func NewHealthHandler(db *gorm.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

// Root handles GET /
func (h *HealthHandler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Sitecel API v" + apiVersion,
		"status":  "running",
	})
}

// Health handles GET /health
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
	})
}

// DBCheck handles GET /db-check
func (h *HealthHandler) DBCheck(c *gin.Context) {
	var one int
	if err := h.db.Raw("SELECT 1").Scan(&one).Error; err != nil {
		c.JSON(http.StatusOK, gin.H{
			"database": "error",
			"message":  "database unreachable",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"database": "connected",
		"status":   "ok",
	})
}
