package middleware

import (
	"errors"
	"net/http"

	"TaskNestGo/services"

	"github.com/gin-gonic/gin"
)

// SessionCookieName 会话Cookie名称，HttpOnly，页面脚本不可见
const SessionCookieName = "session_id"

// AuthMiddleware 认证中间件：解析会话Cookie并把当前用户ID写入上下文
func AuthMiddleware(auth *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(SessionCookieName)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "未提供认证信息"})
			return
		}

		user, err := auth.CurrentUser(c.Request.Context(), token)
		if err != nil {
			if errors.Is(err, services.ErrUnauthenticated) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "无效的认证信息"})
				return
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "服务器内部错误"})
			return
		}

		// 将 uid 存储在 gin.Context 中
		c.Set("uid", user.ID)
		c.Next()
	}
}
