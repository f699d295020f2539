package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/shubhamjhade/Social-Media-app/config"
	"github.com/shubhamjhade/Social-Media-app/internal/error/code"
	"github.com/shubhamjhade/Social-Media-app/internal/error/response"
	"github.com/shubhamjhade/Social-Media-app/services"
)

var (
	sessionService services.InterfaceSessionService
	cookieName     string
)

// InitAuthMiddleware 初始化认证中间件
func InitAuthMiddleware(cfg *config.Config, svc services.InterfaceSessionService) {
	sessionService = svc
	cookieName = cfg.SessionCookieName
}

// 上下文键。处理器通过这些键获取当前请求的主体身份
const (
	ContextUserIDKey   = "userID"
	ContextUsernameKey = "username"
	ContextIsAdminKey  = "isAdmin"
	ContextTokenKey    = "sessionToken"
)

// RequireLogin 验证会话。
// 从Cookie取出不透明令牌，在会话存储中解析出主体身份并放入请求上下文。
// 未登录(401)与权限不足(403)是两类不同的失败，分别由本中间件和 RequireAdmin 返回
func RequireLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(cookieName)
		if err != nil || token == "" {
			response.Unauthenticated(c)
			c.Abort()
			return
		}

		sess, err := sessionService.Read(token)
		if err != nil {
			if errors.Is(err, services.ErrSessionNotFound) {
				response.Unauthenticated(c)
			} else {
				response.Fail(c, code.ErrDatabase, nil)
			}
			c.Abort()
			return
		}

		// 存储主体身份到上下文
		c.Set(ContextUserIDKey, sess.UserID)
		c.Set(ContextUsernameKey, sess.Username)
		c.Set(ContextIsAdminKey, sess.IsAdmin)
		c.Set(ContextTokenKey, token)
		c.Next()
	}
}

// RequireAdmin 验证管理员权限，必须在 RequireLogin 之后使用
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		isAdmin, exists := c.Get(ContextIsAdminKey)
		if !exists {
			response.Unauthenticated(c)
			c.Abort()
			return
		}

		if admin, ok := isAdmin.(bool); !ok || !admin {
			response.Forbidden(c)
			c.Abort()
			return
		}

		c.Next()
	}
}

// CurrentPrincipal 从上下文取出当前主体身份
func CurrentPrincipal(c *gin.Context) (userID uint, username string, isAdmin bool) {
	if v, ok := c.Get(ContextUserIDKey); ok {
		userID, _ = v.(uint)
	}
	if v, ok := c.Get(ContextUsernameKey); ok {
		username, _ = v.(string)
	}
	if v, ok := c.Get(ContextIsAdminKey); ok {
		isAdmin, _ = v.(bool)
	}
	return userID, username, isAdmin
}
