package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Meenakshi1402/project-ReadRater/internal/database"
)

type HealthController struct {
	db      *database.Database
	version string
}

func NewHealthController(db *database.Database, version string) *HealthController {
	return &HealthController{db: db, version: version}
}

// Health reports whether the database is reachable.
func (controller *HealthController) Health(c *gin.Context) {
	if err := controller.db.Ping(); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "unhealthy",
			"error":  err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"version": controller.version,
	})
}
