package util

import "errors"

var (
	ErrQuestionNotFound   = errors.New("題目不存在")
	ErrQuizResultNotFound = errors.New("找不到指定的答題紀錄")
	ErrDuplicateQuestion  = errors.New("題目 ID 重複")
	ErrInvalidQuestion    = errors.New("缺少必要的題目資訊或格式不符 (question, options, answerIndex)")
	ErrInvalidQuizResult  = errors.New("答題結果格式不符")
	ErrMissingUserID      = errors.New("需要提供使用者 ID")
)
