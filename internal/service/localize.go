package service

import (
	"quiz_backend/internal/model"
	"quiz_backend/internal/util"
)

const (
	questionNotAvailable = "Question not available"
	invalidQuestion      = "Invalid Question"
)

// LocalizedQuestion 单一语言的题目，供前端答题使用
// swagger:model LocalizedQuestion
type LocalizedQuestion struct {
	ID          int64    `json:"id"`
	Question    string   `json:"question"`
	Options     []string `json:"options"`
	AnswerIndex int      `json:"answerIndex"`
	Category    string   `json:"category"`
}

// LocalizeQuestion 取指定语言的题干与选项，缺失时回退到中文
func LocalizeQuestion(q model.Question, lang string) LocalizedQuestion {
	res := LocalizedQuestion{
		ID:          q.ID,
		AnswerIndex: q.AnswerIndex,
		Category:    q.Category,
		Options:     []string{},
	}
	if q.Question == nil || q.Options == nil {
		res.Question = invalidQuestion
		return res
	}

	switch {
	case q.Question[lang] != "":
		res.Question = q.Question[lang]
	case q.Question[util.FallbackLang] != "":
		res.Question = q.Question[util.FallbackLang]
	default:
		res.Question = questionNotAvailable
	}

	if opts := q.Options[lang]; opts != nil {
		res.Options = append(res.Options, opts...)
	} else if opts := q.Options[util.FallbackLang]; opts != nil {
		res.Options = append(res.Options, opts...)
	}
	return res
}
