package middleware

import (
	"quiz_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// ClientIP 每个请求只整理一次调用方地址，后续通过 util.GetClientIP 读取。
// 可信代理由 gin 引擎的 SetTrustedProxies 决定。
func ClientIP() gin.HandlerFunc {
	return func(c *gin.Context) {
		util.SetClientIP(c, util.CleanIPv4(c.ClientIP()))
		c.Next()
	}
}
