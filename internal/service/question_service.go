package service

import (
	"context"
	"encoding/json"
	"quiz_backend/internal/config"
	"quiz_backend/internal/model"
	"quiz_backend/internal/repository"
	"quiz_backend/internal/util"
	"quiz_backend/pkg/monitoring"
	"slices"
	"sync/atomic"

	"github.com/ecodeclub/ekit/slice"
	"github.com/pkg/errors"
)

const defaultCount = 10

// QuizSettings 出题默认值，配置文件变更时整体替换
type QuizSettings struct {
	DefaultCount int
	DefaultLang  string
}

func SettingsFromConfig(cfg config.QuizConfig) QuizSettings {
	return QuizSettings{DefaultCount: cfg.DefaultCount, DefaultLang: cfg.DefaultLang}
}

// QuestionPayload 新增、修改题目的请求体。修改时只覆盖出现的字段
// swagger:model QuestionPayload
type QuestionPayload struct {
	Question    json.RawMessage `json:"question" swaggertype:"object"`
	Options     json.RawMessage `json:"options" swaggertype:"object"`
	AnswerIndex *int            `json:"answerIndex"`
	Category    *string         `json:"category"`
}

// RandomQuery 抽题参数，Count 不为正数、Lang 为空时使用默认值
type RandomQuery struct {
	Count    int
	Lang     string
	Category string
}

type QuestionService struct {
	Repo     repository.QuestionRepository
	settings atomic.Pointer[QuizSettings]
}

func NewQuestionService(repo repository.QuestionRepository, settings QuizSettings) *QuestionService {
	s := &QuestionService{Repo: repo}
	if !s.ApplySettings(settings) {
		s.settings.Store(&QuizSettings{DefaultCount: defaultCount, DefaultLang: util.FallbackLang})
	}
	return s
}

// ApplySettings 热加载入口，非法值忽略并返回 false
func (s *QuestionService) ApplySettings(settings QuizSettings) bool {
	if settings.DefaultCount <= 0 || settings.DefaultLang == "" {
		return false
	}
	s.settings.Store(&settings)
	return true
}

func (s *QuestionService) Settings() QuizSettings {
	return *s.settings.Load()
}

func (s *QuestionService) List(ctx context.Context) ([]model.Question, error) {
	qs, err := s.Repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if qs == nil {
		qs = []model.Question{}
	}
	return qs, nil
}

func (s *QuestionService) Get(ctx context.Context, id int64) (*model.Question, error) {
	return s.Repo.FindByID(ctx, id)
}

func (s *QuestionService) ListByCategory(ctx context.Context, category, lang string) ([]LocalizedQuestion, error) {
	lang = s.lang(lang)
	qs, err := s.Repo.ListByCategory(ctx, category)
	if err != nil {
		return nil, err
	}
	return s.localize(qs, lang), nil
}

// Random 从整个题库或某个分类中随机抽题
func (s *QuestionService) Random(ctx context.Context, query RandomQuery) ([]LocalizedQuestion, error) {
	var (
		pool []model.Question
		err  error
	)
	if query.Category != "" {
		pool, err = s.Repo.ListByCategory(ctx, query.Category)
	} else {
		pool, err = s.Repo.List(ctx)
	}
	if err != nil {
		return nil, err
	}

	count := query.Count
	if count <= 0 {
		count = s.Settings().DefaultCount
	}
	return s.localize(SampleQuestions(pool, count), s.lang(query.Lang)), nil
}

func (s *QuestionService) Create(ctx context.Context, payload QuestionPayload) (*model.Question, error) {
	var q model.Question
	if payload.AnswerIndex == nil {
		return nil, errors.Wrap(util.ErrInvalidQuestion, "answerIndex is required")
	}
	if err := mergeQuestion(&q, payload); err != nil {
		return nil, err
	}
	if err := ValidateQuestion(q); err != nil {
		return nil, err
	}
	if err := s.Repo.Create(ctx, &q); err != nil {
		return nil, err
	}
	return &q, nil
}

// Update 把请求中出现的字段合并到已有题目上，id 不变，合并后重新校验
func (s *QuestionService) Update(ctx context.Context, id int64, payload QuestionPayload) (*model.Question, error) {
	q, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := mergeQuestion(q, payload); err != nil {
		return nil, err
	}
	q.ID = id
	if err := ValidateQuestion(*q); err != nil {
		return nil, err
	}
	if err := s.Repo.Update(ctx, q); err != nil {
		return nil, err
	}
	return q, nil
}

func (s *QuestionService) Delete(ctx context.Context, id int64) error {
	return s.Repo.Delete(ctx, id)
}

func (s *QuestionService) lang(lang string) string {
	if lang == "" {
		return s.Settings().DefaultLang
	}
	return lang
}

func (s *QuestionService) localize(qs []model.Question, lang string) []LocalizedQuestion {
	res := slice.Map(qs, func(_ int, q model.Question) LocalizedQuestion {
		return LocalizeQuestion(q, lang)
	})
	monitoring.QuestionsServed.WithLabelValues(s.langLabel(lang)).Add(float64(len(res)))
	return res
}

// langLabel lang 来自查询参数，指标里只保留必需语言与默认语言
func (s *QuestionService) langLabel(lang string) string {
	return monitoring.BoundedLabel(lang, append(slices.Clone(util.RequiredLangs), s.Settings().DefaultLang)...)
}

func mergeQuestion(q *model.Question, payload QuestionPayload) error {
	if len(payload.Question) > 0 {
		var text map[string]string
		if err := json.Unmarshal(payload.Question, &text); err != nil {
			return errors.Wrap(util.ErrInvalidQuestion, "question must map language to text")
		}
		q.Question = text
	}
	if len(payload.Options) > 0 {
		var opts map[string][]string
		if err := json.Unmarshal(payload.Options, &opts); err != nil {
			return errors.Wrap(util.ErrInvalidQuestion, "options must map language to a list of choices")
		}
		q.Options = opts
	}
	if payload.AnswerIndex != nil {
		q.AnswerIndex = *payload.AnswerIndex
	}
	if payload.Category != nil {
		q.Category = *payload.Category
	}
	return nil
}

// ValidateQuestion 题干与选项必须包含所有必需语言，答案下标对每种语言的选项都有效
func ValidateQuestion(q model.Question) error {
	if len(q.Question) == 0 || len(q.Options) == 0 {
		return errors.Wrap(util.ErrInvalidQuestion, "question and options are required")
	}
	for _, lang := range util.RequiredLangs {
		if q.Question[lang] == "" {
			return errors.Wrapf(util.ErrInvalidQuestion, "question.%s is required", lang)
		}
		if len(q.Options[lang]) == 0 {
			return errors.Wrapf(util.ErrInvalidQuestion, "options.%s is required", lang)
		}
	}
	for lang, opts := range q.Options {
		if q.AnswerIndex < 0 || q.AnswerIndex >= len(opts) {
			return errors.Wrapf(util.ErrInvalidQuestion, "answerIndex %d out of range for options.%s", q.AnswerIndex, lang)
		}
	}
	return nil
}
