package controller

import (
	"errors"
	"fmt"
	"quiz_backend/internal/service"
	"quiz_backend/internal/util"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type QuizResultController struct {
	QuizResultService *service.QuizResultService
}

func NewQuizResultController(quizResultService *service.QuizResultService) *QuizResultController {
	return &QuizResultController{QuizResultService: quizResultService}
}

// @Summary 保存答题结果
// @Description 服务端记录调用方 IP 与时间戳
// @Tags 答题记录
// @Accept json
// @Produce json
// @Param result body service.QuizResultPayload true "答题结果"
// @Success 201 {object} model.QuizResult
// @Failure 400 {object} util.ErrorResponse
// @Failure 500 {object} util.ErrorResponse
// @Router /quiz-results [post]
func (c *QuizResultController) RecordResult(ctx *gin.Context) {
	var payload service.QuizResultPayload
	if err := ctx.ShouldBindJSON(&payload); err != nil {
		util.BadRequest(ctx, util.ErrInvalidQuizResult.Error())
		return
	}
	res, err := c.QuizResultService.Record(ctx.Request.Context(), payload, util.GetClientIP(ctx))
	if err != nil {
		if errors.Is(err, util.ErrInvalidQuizResult) || errors.Is(err, util.ErrMissingUserID) {
			util.BadRequest(ctx, err.Error())
			return
		}
		util.LogInternalError(ctx, err, "儲存答題結果失敗")
		return
	}
	util.Created(ctx, res)
}

// @Summary 获取全部答题记录
// @Tags 答题记录
// @Produce json
// @Success 200 {array} model.QuizResult
// @Failure 500 {object} util.ErrorResponse
// @Router /quiz-results [get]
func (c *QuizResultController) ListResults(ctx *gin.Context) {
	rs, err := c.QuizResultService.List(ctx.Request.Context())
	if err != nil {
		util.LogInternalError(ctx, err, "讀取答題結果失敗")
		return
	}
	util.Success(ctx, rs)
}

// @Summary 按调用方 IP 检查是否还能作答
// @Tags 答题记录
// @Produce json
// @Param category query string false "分类"
// @Success 200 {object} service.CompletionStatus
// @Failure 500 {object} util.ErrorResponse
// @Router /quiz-results/status/ip [get]
func (c *QuizResultController) StatusByIP(ctx *gin.Context) {
	ip := util.GetClientIP(ctx)
	status, err := c.QuizResultService.StatusByIP(ctx.Request.Context(), ip, queryCategory(ctx))
	if err != nil {
		util.LogInternalError(ctx, err, "檢查使用者作答狀態失敗", zap.String("ip", ip))
		return
	}
	util.Success(ctx, status)
}

// @Summary 按用户检查是否还能作答
// @Tags 答题记录
// @Produce json
// @Param userId path string true "用户ID"
// @Param category query string false "分类"
// @Success 200 {object} service.CompletionStatus
// @Failure 400 {object} util.ErrorResponse
// @Failure 500 {object} util.ErrorResponse
// @Router /quiz-results/status/{userId} [get]
func (c *QuizResultController) StatusByUser(ctx *gin.Context) {
	userID := ctx.Param("userId")
	status, err := c.QuizResultService.StatusByUser(ctx.Request.Context(), userID, queryCategory(ctx))
	if err != nil {
		if errors.Is(err, util.ErrMissingUserID) {
			util.BadRequest(ctx, err.Error())
			return
		}
		util.LogInternalError(ctx, err, "檢查使用者作答狀態失敗", zap.String("userId", userID))
		return
	}
	util.Success(ctx, status)
}

// @Summary 清空答题记录
// @Tags 答题记录
// @Produce json
// @Success 200 {object} util.MessageResponse
// @Failure 500 {object} util.ErrorResponse
// @Router /quiz-results [delete]
func (c *QuizResultController) DeleteAll(ctx *gin.Context) {
	if err := c.QuizResultService.DeleteAll(ctx.Request.Context()); err != nil {
		util.LogInternalError(ctx, err, "清除答題紀錄失敗")
		return
	}
	util.Message(ctx, "所有答題紀錄已成功刪除")
}

// @Summary 删除某个用户的答题记录
// @Tags 答题记录
// @Produce json
// @Param userId path string true "用户ID"
// @Success 200 {object} util.MessageResponse
// @Failure 404 {object} util.ErrorResponse
// @Router /quiz-results/user/{userId} [delete]
func (c *QuizResultController) DeleteByUser(ctx *gin.Context) {
	userID := ctx.Param("userId")
	if err := c.QuizResultService.DeleteByUser(ctx.Request.Context(), userID); err != nil {
		if errors.Is(err, util.ErrQuizResultNotFound) {
			util.NotFound(ctx, fmt.Sprintf("找不到使用者 %s 的答題紀錄", userID))
			return
		}
		util.LogInternalError(ctx, err, "依使用者刪除答題紀錄失敗", zap.String("userId", userID))
		return
	}
	util.Message(ctx, fmt.Sprintf("使用者 %s 的所有答題紀錄已成功刪除", userID))
}

// @Summary 按时间戳删除答题记录
// @Tags 答题记录
// @Produce json
// @Param timestamp path string true "RFC 3339 时间戳"
// @Success 200 {object} util.MessageResponse
// @Failure 400 {object} util.ErrorResponse
// @Failure 404 {object} util.ErrorResponse
// @Router /quiz-results/{timestamp} [delete]
func (c *QuizResultController) DeleteByTimestamp(ctx *gin.Context) {
	raw := ctx.Param("timestamp")
	err := c.QuizResultService.DeleteByTimestamp(ctx.Request.Context(), raw)
	switch {
	case err == nil:
		util.Message(ctx, "答題紀錄已成功刪除")
	case errors.Is(err, util.ErrInvalidQuizResult):
		util.BadRequest(ctx, err.Error())
	case errors.Is(err, util.ErrQuizResultNotFound):
		util.NotFound(ctx, util.ErrQuizResultNotFound.Error())
	default:
		util.LogInternalError(ctx, err, "刪除答題紀錄失敗", zap.String("timestamp", raw))
	}
}

// queryCategory 区分未提供分类和空分类
func queryCategory(ctx *gin.Context) *string {
	if category, ok := ctx.GetQuery("category"); ok {
		return &category
	}
	return nil
}
