package controller

import (
	"errors"
	"quiz_backend/internal/service"
	"quiz_backend/internal/util"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type QuestionController struct {
	QuestionService *service.QuestionService
}

func NewQuestionController(questionService *service.QuestionService) *QuestionController {
	return &QuestionController{QuestionService: questionService}
}

// @Summary 获取全部题目
// @Description 返回题库中所有题目的完整多语言内容，按 id 升序
// @Tags 题库
// @Produce json
// @Success 200 {array} model.Question
// @Failure 500 {object} util.ErrorResponse
// @Router /questions [get]
func (c *QuestionController) ListQuestions(ctx *gin.Context) {
	qs, err := c.QuestionService.List(ctx.Request.Context())
	if err != nil {
		util.LogInternalError(ctx, err, "無法讀取題庫資料")
		return
	}
	util.Success(ctx, qs)
}

// @Summary 随机抽题
// @Tags 题库
// @Produce json
// @Param count query int false "题目数量"
// @Param lang query string false "语言" default(zh)
// @Success 200 {array} service.LocalizedQuestion
// @Failure 500 {object} util.ErrorResponse
// @Router /questions/random [get]
func (c *QuestionController) RandomQuestions(ctx *gin.Context) {
	qs, err := c.QuestionService.Random(ctx.Request.Context(), service.RandomQuery{
		Count: util.ParseCount(ctx.Query("count"), 0),
		Lang:  ctx.Query("lang"),
	})
	if err != nil {
		util.LogInternalError(ctx, err, "無法取得隨機題目")
		return
	}
	util.Success(ctx, qs)
}

// @Summary 按分类获取题目
// @Description 分类不区分大小写，返回指定语言的题目
// @Tags 题库
// @Produce json
// @Param category path string true "分类"
// @Param lang query string false "语言" default(zh)
// @Success 200 {array} service.LocalizedQuestion
// @Failure 500 {object} util.ErrorResponse
// @Router /questions/category/{category} [get]
func (c *QuestionController) ListByCategory(ctx *gin.Context) {
	category := ctx.Param("category")
	qs, err := c.QuestionService.ListByCategory(ctx.Request.Context(), category, ctx.Query("lang"))
	if err != nil {
		util.LogInternalError(ctx, err, "無法依分類取得題目", zap.String("category", category))
		return
	}
	util.Success(ctx, qs)
}

// @Summary 按分类随机抽题
// @Tags 题库
// @Produce json
// @Param category path string true "分类"
// @Param count query int false "题目数量"
// @Param lang query string false "语言" default(zh)
// @Success 200 {array} service.LocalizedQuestion
// @Failure 500 {object} util.ErrorResponse
// @Router /questions/category/{category}/random [get]
func (c *QuestionController) RandomByCategory(ctx *gin.Context) {
	category := ctx.Param("category")
	qs, err := c.QuestionService.Random(ctx.Request.Context(), service.RandomQuery{
		Count:    util.ParseCount(ctx.Query("count"), 0),
		Lang:     ctx.Query("lang"),
		Category: category,
	})
	if err != nil {
		util.LogInternalError(ctx, err, "無法依分類取得隨機題目", zap.String("category", category))
		return
	}
	util.Success(ctx, qs)
}

// @Summary 获取单个题目
// @Tags 题库
// @Produce json
// @Param id path int true "题目ID"
// @Success 200 {object} model.Question
// @Failure 400 {object} util.ErrorResponse
// @Failure 404 {object} util.ErrorResponse
// @Router /questions/{id} [get]
func (c *QuestionController) GetQuestion(ctx *gin.Context) {
	id, err := util.ParseID(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "无效的题目ID")
		return
	}
	q, err := c.QuestionService.Get(ctx.Request.Context(), id)
	if err != nil {
		c.handleError(ctx, err, "無法取得指定題目", id)
		return
	}
	util.Success(ctx, q)
}

// @Summary 新增题目
// @Description 题干与选项必须包含 zh 与 en，answerIndex 对每种语言的选项都有效
// @Tags 题库
// @Accept json
// @Produce json
// @Param question body service.QuestionPayload true "题目"
// @Success 201 {object} model.Question
// @Failure 400 {object} util.ErrorResponse
// @Failure 409 {object} util.ErrorResponse
// @Router /questions [post]
func (c *QuestionController) CreateQuestion(ctx *gin.Context) {
	var payload service.QuestionPayload
	if err := ctx.ShouldBindJSON(&payload); err != nil {
		util.BadRequest(ctx, util.ErrInvalidQuestion.Error())
		return
	}
	q, err := c.QuestionService.Create(ctx.Request.Context(), payload)
	if err != nil {
		c.handleError(ctx, err, "新增題目失敗", 0)
		return
	}
	util.Created(ctx, q)
}

// @Summary 修改题目
// @Description 只覆盖请求中出现的字段，id 保持不变
// @Tags 题库
// @Accept json
// @Produce json
// @Param id path int true "题目ID"
// @Param question body service.QuestionPayload true "要修改的字段"
// @Success 200 {object} model.Question
// @Failure 400 {object} util.ErrorResponse
// @Failure 404 {object} util.ErrorResponse
// @Router /questions/{id} [put]
func (c *QuestionController) UpdateQuestion(ctx *gin.Context) {
	id, err := util.ParseID(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "无效的题目ID")
		return
	}
	var payload service.QuestionPayload
	if err := ctx.ShouldBindJSON(&payload); err != nil {
		util.BadRequest(ctx, util.ErrInvalidQuestion.Error())
		return
	}
	q, err := c.QuestionService.Update(ctx.Request.Context(), id, payload)
	if err != nil {
		c.handleError(ctx, err, "更新題目失敗", id)
		return
	}
	util.Success(ctx, q)
}

// @Summary 删除题目
// @Tags 题库
// @Param id path int true "题目ID"
// @Success 204
// @Failure 404 {object} util.ErrorResponse
// @Router /questions/{id} [delete]
func (c *QuestionController) DeleteQuestion(ctx *gin.Context) {
	id, err := util.ParseID(ctx.Param("id"))
	if err != nil {
		util.NotFound(ctx, "找不到要刪除的題目")
		return
	}
	if err := c.QuestionService.Delete(ctx.Request.Context(), id); err != nil {
		if errors.Is(err, util.ErrQuestionNotFound) {
			util.NotFound(ctx, "找不到要刪除的題目")
			return
		}
		util.LogInternalError(ctx, err, "刪除題目失敗", zap.Int64("id", id))
		return
	}
	util.NoContent(ctx)
}

func (c *QuestionController) handleError(ctx *gin.Context, err error, message string, id int64) {
	switch {
	case errors.Is(err, util.ErrQuestionNotFound):
		util.NotFound(ctx, util.ErrQuestionNotFound.Error())
	case errors.Is(err, util.ErrInvalidQuestion):
		util.BadRequest(ctx, err.Error())
	case errors.Is(err, util.ErrDuplicateQuestion):
		util.Conflict(ctx, util.ErrDuplicateQuestion.Error())
	default:
		util.LogInternalError(ctx, err, message, zap.Int64("id", id))
	}
}
