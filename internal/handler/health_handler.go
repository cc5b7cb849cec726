package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// HealthHandler обрабатывает проверки живости и готовности
type HealthHandler struct {
	db *gorm.DB
}

// NewHealthHandler создает новый обработчик health-чеков
func NewHealthHandler(db *gorm.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

// Health обрабатывает GET /health: процесс жив
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// DeepHealth обрабатывает GET /health/deep: проверяет доступность БД
func (h *HealthHandler) DeepHealth(c *gin.Context) {
	if h.db == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "db": false, "error": "database_not_configured"})
		return
	}

	sqlDB, err := h.db.DB()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "db": false, "error": "db_unreachable"})
		return
	}
	if err := sqlDB.PingContext(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "db": false, "error": "db_unreachable"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "db": true})
}
