package handler

import (
	"github.com/gin-gonic/gin"

	"hris/backend/pkg/response"
)

// MustGetUserID 从 Gin 上下文中安全提取 user_id。
// 如果 JWT 中间件未正确注入 user_id，返回 false 并写入 401 响应。
// 调用方应在 ok=false 时直接 return。
func MustGetUserID(c *gin.Context) (string, bool) {
	v, exists := c.Get("user_id")
	if !exists {
		response.Unauthorized(c, 10002, "未认证")
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		response.Unauthorized(c, 10002, "未认证")
		return "", false
	}
	return s, true
}

// MustGetTenantID 从 Gin 上下文中提取 tenant_id。
// 值为 0 表示 Token 未携带租户，由 Service 层回退到默认租户。
func MustGetTenantID(c *gin.Context) (int64, bool) {
	v, exists := c.Get("tenant_id")
	if !exists {
		response.Unauthorized(c, 10002, "未认证")
		return 0, false
	}
	id, ok := v.(int64)
	if !ok || id < 0 {
		response.Unauthorized(c, 10002, "未认证")
		return 0, false
	}
	return id, true
}
