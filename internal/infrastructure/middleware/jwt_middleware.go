package middleware

import (
	"net/http"
	"strings"

	"cedar_roots_server/pkg/errorx"
	"cedar_roots_server/pkg/util/jwt"

	"github.com/gin-gonic/gin"
)

// CtxUserIDKey 认证通过后写入 gin.Context 的用户 ID 键
const CtxUserIDKey = "user_id"

// JWTAuth 校验 Authorization: Bearer <token>
// Token 由外部认证服务签发，这里只做验签和过期检查
func JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusOK, gin.H{
				"code": errorx.CodeUnauthorized,
				"msg":  "缺少认证信息",
			})
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusOK, gin.H{
				"code": errorx.CodeUnauthorized,
				"msg":  "认证格式错误",
			})
			c.Abort()
			return
		}

		claims, err := jwt.ParseToken(parts[1])
		if err != nil {
			c.JSON(http.StatusOK, gin.H{
				"code": errorx.CodeUnauthorized,
				"msg":  "无效或过期的 Token",
			})
			c.Abort()
			return
		}

		c.Set(CtxUserIDKey, claims.UserID)
		c.Next()
	}
}
