package security

import (
	"context"
	"net/http"
	"quiz_backend/internal/util"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// CORS 中间件 配置了白名单时只放行名单内的 Origin；白名单为空时对任意来源开放
func CORS(allowedOrigins []string) gin.HandlerFunc {
	originSet := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		originSet[o] = true
	}
	allowAny := len(originSet) == 0

	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")

		switch {
		case allowAny:
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		case origin != "" && originSet[origin]:
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
			c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
			c.Writer.Header().Add("Vary", "Origin")
		}

		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// Secure 中间件
func Secure() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "DENY")
		if c.Request.TLS != nil {
			c.Header("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		}

		c.Next()
	}
}

// visitors 每个调用方一个令牌桶，长时间不活跃的条目定期清理
type visitors struct {
	mu    sync.Mutex
	m     map[string]*visitor
	limit rate.Limit
	burst int
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func newVisitors(maxRequests int, window time.Duration) *visitors {
	return &visitors{
		m:     make(map[string]*visitor),
		limit: rate.Every(window / time.Duration(maxRequests)),
		burst: maxRequests,
	}
}

func (vs *visitors) get(key string, now time.Time) *rate.Limiter {
	vs.mu.Lock()
	defer vs.mu.Unlock()
	v, ok := vs.m[key]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(vs.limit, vs.burst)}
		vs.m[key] = v
	}
	v.lastSeen = now
	return v.limiter
}

// sweep 删除 expiry 之前就不再活跃的条目，返回删除数量
func (vs *visitors) sweep(now time.Time, expiry time.Duration) int {
	vs.mu.Lock()
	defer vs.mu.Unlock()
	n := 0
	for key, v := range vs.m {
		if now.Sub(v.lastSeen) > expiry {
			delete(vs.m, key)
			n++
		}
	}
	return n
}

// sweepEvery 每隔 interval 清理一次，ctx 结束时返回
func (vs *visitors) sweepEvery(ctx context.Context, interval, expiry time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			vs.sweep(now, expiry)
		}
	}
}

// RateLimiter 按整理后的调用方 IP 限流，window 内最多 maxRequests 次；任一参数不为正数时不限流。
// 清理过期条目的协程在 ctx 结束后退出
func RateLimiter(ctx context.Context, maxRequests int, window time.Duration) gin.HandlerFunc {
	if maxRequests <= 0 || window <= 0 {
		return func(c *gin.Context) { c.Next() }
	}
	vs := newVisitors(maxRequests, window)
	// 补充一个令牌所需的秒数，向上取整
	interval := window / time.Duration(maxRequests)
	retryAfter := strconv.Itoa(max(1, int((interval+time.Second-1)/time.Second)))

	expiry := max(window*3, time.Minute)
	go vs.sweepEvery(ctx, time.Minute, expiry)

	return func(c *gin.Context) {
		if !vs.get(util.GetClientIP(c), time.Now()).Allow() {
			c.Header("Retry-After", retryAfter)
			c.AbortWithStatusJSON(http.StatusTooManyRequests, util.ErrorResponse{Error: "請求過於頻繁，請稍後再試"})
			return
		}
		c.Next()
	}
}
