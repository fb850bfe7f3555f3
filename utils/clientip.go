package utils

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// GetClientIP достаёт IP клиента из заголовков прокси (Cloudflare, Vercel и т.д.)
// в порядке приоритета; если ничего нет - "unknown"
func GetClientIP(c *gin.Context) string {
	if cfIP := c.GetHeader("CF-Connecting-IP"); cfIP != "" {
		return cfIP
	}
	if realIP := c.GetHeader("X-Real-IP"); realIP != "" {
		return realIP
	}
	if forwarded := c.GetHeader("X-Forwarded-For"); forwarded != "" {
		first := strings.TrimSpace(strings.Split(forwarded, ",")[0])
		if first != "" {
			return first
		}
	}
	return "unknown"
}
