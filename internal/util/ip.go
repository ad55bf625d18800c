package util

import (
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	ipv4MappedPrefix = "::ffff:"
	ipv6Loopback     = "::1"
	ipv4Loopback     = "127.0.0.1"

	clientIPKey = "clientIP"
)

// CleanIPv4 将套接字上报的地址整理成 IPv4 形式
// '::ffff:192.168.1.1' -> '192.168.1.1'，'::1' -> '127.0.0.1'，其余原样返回
func CleanIPv4(ip string) string {
	if strings.HasPrefix(ip, ipv4MappedPrefix) {
		return ip[len(ipv4MappedPrefix):]
	}
	if ip == ipv6Loopback {
		return ipv4Loopback
	}
	return ip
}

func SetClientIP(c *gin.Context, ip string) {
	c.Set(clientIPKey, ip)
}

// GetClientIP 取中间件整理过的调用方地址，没有经过中间件时现场计算
func GetClientIP(c *gin.Context) string {
	if v, ok := c.Get(clientIPKey); ok {
		if ip, ok := v.(string); ok {
			return ip
		}
	}
	return CleanIPv4(c.ClientIP())
}
