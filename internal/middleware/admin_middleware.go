package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/yourusername/waiver-api/internal/config"
)

// AdminMiddleware защищает административные маршруты статическим API-ключом
type AdminMiddleware struct {
	apiKey     string
	apiKeyHash string
}

// NewAdminMiddleware создает новый middleware по конфигурации админ-доступа
func NewAdminMiddleware(cfg config.AdminConfig) *AdminMiddleware {
	return &AdminMiddleware{
		apiKey:     cfg.APIKey,
		apiKeyHash: cfg.APIKeyHash,
	}
}

// RequireAdminKey проверяет заголовок x-admin-key.
// Отказ происходит до любого обращения к БД или хранилищу.
func (m *AdminMiddleware) RequireAdminKey() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader("x-admin-key")
		if key == "" || !m.keyMatches(key) {
			c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "unauthorized"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// keyMatches сравнивает ключ с bcrypt-хешем, если он задан,
// иначе с открытым значением за константное время
func (m *AdminMiddleware) keyMatches(key string) bool {
	if m.apiKeyHash != "" {
		return bcrypt.CompareHashAndPassword([]byte(m.apiKeyHash), []byte(key)) == nil
	}
	if m.apiKey == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(m.apiKey), []byte(key)) == 1
}
