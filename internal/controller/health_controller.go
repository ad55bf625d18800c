package controller

import (
	"context"
	"net/http"
	"quiz_backend/internal/util"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Pinger 后端存储的连通性检查
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingFunc 把普通函数适配成 Pinger
type PingFunc func(ctx context.Context) error

func (f PingFunc) Ping(ctx context.Context) error {
	return f(ctx)
}

type HealthController struct {
	// 组件名 -> 检查
	Components map[string]Pinger
}

func NewHealthController(components map[string]Pinger) *HealthController {
	return &HealthController{Components: components}
}

// @Summary 健康检查
// @Description 检查服务及其存储状态
// @Tags 系统
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /health [get]
func (c *HealthController) HealthCheck(ctx *gin.Context) {
	reqCtx, cancel := context.WithTimeout(ctx.Request.Context(), 3*time.Second)
	defer cancel()

	status := http.StatusOK
	components := gin.H{}
	for name, p := range c.Components {
		if err := p.Ping(reqCtx); err != nil {
			util.LogInternalErrorOnly(ctx, err, "health check failed", zap.String("component", name))
			components[name] = "down"
			status = http.StatusServiceUnavailable
			continue
		}
		components[name] = "up"
	}

	overall := "ok"
	if status != http.StatusOK {
		overall = "unavailable"
	}
	ctx.JSON(status, gin.H{
		"status":     overall,
		"components": components,
	})
}
