package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	healthUC "github.com/khoahotran/hireboard/internal/application/usecase/health"
	"github.com/khoahotran/hireboard/pkg/logger"
)

const dbUnavailableMessage = "database unavailable"

type HealthHandler struct {
	checkDBUC *healthUC.CheckDBUseCase
	logger    logger.Logger
}

func NewHealthHandler(checkDBUC *healthUC.CheckDBUseCase, log logger.Logger) *HealthHandler {
	return &HealthHandler{checkDBUC: checkDBUC, logger: log}
}

func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "UP"})
}

// CheckDB answers with its own envelope so health checkers can read success directly.
// The driver error stays in the log.
func (h *HealthHandler) CheckDB(c *gin.Context) {
	output, err := h.checkDBUC.Execute(c.Request.Context())
	if err != nil {
		h.logger.Error("Database health check failed", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   dbUnavailableMessage,
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"message":   "Database connection is healthy",
		"userCount": output.UserCount,
	})
}
