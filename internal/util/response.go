package util

import (
	"net/http"
	"quiz_backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorResponse 失败时的统一结构，与前端既有约定保持一致
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse 只携带提示信息的成功响应
type MessageResponse struct {
	Message string `json:"message"`
}

// 成功响应直接返回数据本身，不做额外包装
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, data)
}

func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

func Message(c *gin.Context, message string) {
	c.JSON(http.StatusOK, MessageResponse{Message: message})
}

func Error(c *gin.Context, code int, message string) {
	c.JSON(code, ErrorResponse{Error: message})
}

func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

func NotFound(c *gin.Context, message string) {
	Error(c, http.StatusNotFound, message)
}

func Conflict(c *gin.Context, message string) {
	Error(c, http.StatusConflict, message)
}

func InternalServerError(c *gin.Context, message string) {
	Error(c, http.StatusInternalServerError, message)
}

// LogInternalError 记录存储层错误并返回 500
func LogInternalError(c *gin.Context, err error, message string, fields ...zap.Field) {
	LogInternalErrorOnly(c, err, message, fields...)
	InternalServerError(c, message)
}

// LogInternalErrorOnly 只记录，不写响应
func LogInternalErrorOnly(c *gin.Context, err error, message string, fields ...zap.Field) {
	fields = append(fields,
		zap.Error(err),
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
	)
	logger.Log.Error(message, fields...)
}
