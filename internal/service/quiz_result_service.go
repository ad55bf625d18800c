package service

import (
	"context"
	"quiz_backend/internal/model"
	"quiz_backend/internal/repository"
	"quiz_backend/internal/util"
	"quiz_backend/pkg/monitoring"
	"strconv"
	"time"

	"github.com/pkg/errors"
)

const (
	perfectByIPMessage   = "This IP address has already achieved a perfect score for this category."
	perfectByUserMessage = "User has already achieved a perfect score for this category."
)

// QuizResultPayload 前端提交的答题结果，ip 与时间戳由服务端填写
// swagger:model QuizResultPayload
type QuizResultPayload struct {
	UserID      string  `json:"userId"`
	UserName    string  `json:"userName"`
	Score       int     `json:"score"`
	Total       int     `json:"total"`
	CorrectRate float64 `json:"correctRate"`
	Answers     []int   `json:"answers"`
	Lang        string  `json:"lang"`
	Category    *string `json:"category"`
}

// CompletionStatus 是否还能作答；已满分时附带当时的语言与姓名
// swagger:model CompletionStatus
type CompletionStatus struct {
	CanTakeQuiz bool    `json:"canTakeQuiz"`
	Lang        string  `json:"lang,omitempty"`
	UserName    *string `json:"userName,omitempty"`
	Message     string  `json:"message,omitempty"`
}

type QuizResultService struct {
	Repo repository.QuizResultRepository
}

func NewQuizResultService(repo repository.QuizResultRepository) *QuizResultService {
	return &QuizResultService{Repo: repo}
}

// Record 追加一条答题记录，ip 需为调用方原始地址
func (s *QuizResultService) Record(ctx context.Context, payload QuizResultPayload, ip string) (*model.QuizResult, error) {
	if err := validateResult(payload); err != nil {
		return nil, err
	}
	answers := payload.Answers
	if answers == nil {
		answers = []int{}
	}
	res := &model.QuizResult{
		UserID:      payload.UserID,
		UserName:    payload.UserName,
		Score:       payload.Score,
		Total:       payload.Total,
		CorrectRate: payload.CorrectRate,
		Answers:     answers,
		Lang:        payload.Lang,
		Category:    payload.Category,
		IP:          util.CleanIPv4(ip),
		Timestamp:   model.StampNow(),
	}
	if err := s.Repo.Create(ctx, res); err != nil {
		return nil, err
	}
	monitoring.ResultsRecorded.WithLabelValues(strconv.FormatBool(res.IsPerfect())).Inc()
	return res, nil
}

func (s *QuizResultService) List(ctx context.Context) ([]model.QuizResult, error) {
	rs, err := s.Repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if rs == nil {
		rs = []model.QuizResult{}
	}
	return rs, nil
}

// StatusByIP 同一 IP 在该分类下已有满分记录时不能再作答
func (s *QuizResultService) StatusByIP(ctx context.Context, ip string, category *string) (CompletionStatus, error) {
	rs, err := s.Repo.FindByIP(ctx, util.CleanIPv4(ip))
	if err != nil {
		return CompletionStatus{}, err
	}
	return gate("ip", rs, category, perfectByIPMessage), nil
}

func (s *QuizResultService) StatusByUser(ctx context.Context, userID string, category *string) (CompletionStatus, error) {
	if userID == "" {
		return CompletionStatus{}, util.ErrMissingUserID
	}
	rs, err := s.Repo.FindByUser(ctx, userID)
	if err != nil {
		return CompletionStatus{}, err
	}
	return gate("user", rs, category, perfectByUserMessage), nil
}

func (s *QuizResultService) DeleteAll(ctx context.Context) error {
	return s.Repo.DeleteAll(ctx)
}

func (s *QuizResultService) DeleteByUser(ctx context.Context, userID string) error {
	n, err := s.Repo.DeleteByUser(ctx, userID)
	if err != nil {
		return err
	}
	if n == 0 {
		return errors.Wrapf(util.ErrQuizResultNotFound, "user %s", userID)
	}
	return nil
}

// DeleteByTimestamp 时间戳按 RFC 3339 解析，按时刻比较
func (s *QuizResultService) DeleteByTimestamp(ctx context.Context, raw string) error {
	ts, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return errors.Wrapf(util.ErrInvalidQuizResult, "invalid timestamp %q", raw)
	}
	n, err := s.Repo.DeleteByTimestamp(ctx, ts)
	if err != nil {
		return err
	}
	if n == 0 {
		return util.ErrQuizResultNotFound
	}
	return nil
}

// gate rs 按时间正序，取第一条满分且分类一致的记录
func gate(key string, rs []model.QuizResult, category *string, message string) CompletionStatus {
	status := CompletionStatus{CanTakeQuiz: true}
	for _, r := range rs {
		if !r.IsPerfect() || !r.SameCategory(category) {
			continue
		}
		lang := r.Lang
		if lang == "" {
			lang = util.FallbackLang
		}
		userName := r.UserName
		status = CompletionStatus{
			CanTakeQuiz: false,
			Lang:        lang,
			UserName:    &userName,
			Message:     message,
		}
		break
	}
	monitoring.GateDecisions.WithLabelValues(key, strconv.FormatBool(status.CanTakeQuiz)).Inc()
	return status
}

func validateResult(p QuizResultPayload) error {
	switch {
	case p.UserID == "":
		return util.ErrMissingUserID
	case p.Score < 0 || p.Total < 0:
		return errors.Wrap(util.ErrInvalidQuizResult, "score and total must not be negative")
	case p.Score > p.Total:
		return errors.Wrap(util.ErrInvalidQuizResult, "score must not exceed total")
	case p.CorrectRate < 0 || p.CorrectRate > model.PerfectScore:
		return errors.Wrap(util.ErrInvalidQuizResult, "correctRate must be between 0 and 100")
	}
	return nil
}
