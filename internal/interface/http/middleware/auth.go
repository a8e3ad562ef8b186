package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ayabook/bookshop/internal/infrastructure/persistence/redis"
	apperrors "github.com/ayabook/bookshop/pkg/errors"
	"github.com/ayabook/bookshop/pkg/jwt"
	"github.com/ayabook/bookshop/pkg/response"
)

// AuthMiddleware JWT认证中间件
// 设计说明：
// 1. 从Header提取Token
// 2. 验证Token有效性
// 3. 检查Token黑名单
// 4. 将用户信息注入Context
type AuthMiddleware struct {
	jwtManager   *jwt.Manager
	sessionStore *redis.SessionStore
}

// NewAuthMiddleware 创建认证中间件
func NewAuthMiddleware(jwtManager *jwt.Manager, sessionStore *redis.SessionStore) *AuthMiddleware {
	return &AuthMiddleware{
		jwtManager:   jwtManager,
		sessionStore: sessionStore,
	}
}

// RequireAuth 要求登录
// 使用方式：
//
//	authorized := r.Group("/api/v1")
//	authorized.Use(authMiddleware.RequireAuth())
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := m.authenticate(c)
		if !ok {
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("email", claims.Email)
		c.Set("role", claims.Role)

		c.Next()
	}
}

// RequireRole 要求指定角色(先过RequireAuth注入的信息,再校验角色)
// 使用方式：
//
//	admin := r.Group("/api/v1/admin")
//	admin.Use(authMiddleware.RequireAuth(), authMiddleware.RequireRole("admin"))
func (m *AuthMiddleware) RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if GetRole(c) != role {
			response.Error(c, apperrors.ErrForbidden)
			c.Abort()
			return
		}
		c.Next()
	}
}

// OptionalAuth 可选登录
// 有Token则验证并注入用户信息,没有则作为匿名用户继续
// (图书列表公开可访问,但管理员访问时走后台默认分页)
func (m *AuthMiddleware) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Next()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && parts[0] == "Bearer" {
			tokenString := parts[1]
			if claims, err := m.jwtManager.ParseToken(tokenString); err == nil {
				c.Set("user_id", claims.UserID)
				c.Set("email", claims.Email)
				c.Set("role", claims.Role)
			}
		}

		c.Next()
	}
}

// authenticate 提取并验证Token,失败时已写响应并Abort
func (m *AuthMiddleware) authenticate(c *gin.Context) (*jwt.Claims, bool) {
	// 格式：Authorization: Bearer <token>
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		response.Error(c, apperrors.ErrUnauthorized)
		c.Abort()
		return nil, false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		response.Error(c, apperrors.ErrInvalidToken)
		c.Abort()
		return nil, false
	}

	tokenString := parts[1]

	// 黑名单检查:用户已登出或Token被强制失效
	isBlacklisted, err := m.sessionStore.IsInBlacklist(c.Request.Context(), tokenString)
	if err != nil {
		response.Error(c, apperrors.Wrap(err, "验证Token失败"))
		c.Abort()
		return nil, false
	}
	if isBlacklisted {
		response.Error(c, apperrors.ErrTokenExpired)
		c.Abort()
		return nil, false
	}

	claims, err := m.jwtManager.ParseToken(tokenString)
	if err != nil {
		response.Error(c, err) // 自动处理ErrTokenExpired、ErrInvalidToken
		c.Abort()
		return nil, false
	}

	return claims, true
}

// =========================================
// Context辅助函数（供Handler使用）
// =========================================

// GetUserID 从Context获取当前登录用户ID(未登录返回0)
func GetUserID(c *gin.Context) uint {
	if userID, exists := c.Get("user_id"); exists {
		if uid, ok := userID.(uint); ok {
			return uid
		}
	}
	return 0
}

// GetRole 从Context获取当前登录用户角色(未登录返回空字符串)
func GetRole(c *gin.Context) string {
	if role, exists := c.Get("role"); exists {
		if r, ok := role.(string); ok {
			return r
		}
	}
	return ""
}

// GetAccessToken 从Header重新提取原始Token(登出时加黑名单用)
func GetAccessToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) == 2 && parts[0] == "Bearer" {
		return parts[1]
	}
	return ""
}

// MustGetUserID 从Context获取用户ID（已过RequireAuth的Handler使用）
func MustGetUserID(c *gin.Context) uint {
	userID := GetUserID(c)
	if userID == 0 {
		panic("user_id not found in context")
	}
	return userID
}
