package model

import (
	"bytes"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// PerfectScore 正确率恰好为 100 视为满分
const PerfectScore = 100

// QuizResult 一次答题记录，只追加不修改
// swagger:model QuizResult
type QuizResult struct {
	// 数据库存储时分配，文件存储下为空
	ID          string                   `gorm:"primaryKey;type:varchar(36)" json:"_id,omitempty"`
	UserID      string                   `gorm:"size:64;not null;index" json:"userId"`
	UserName    string                   `gorm:"size:100" json:"userName"`
	Score       int                      `gorm:"not null" json:"score"`
	Total       int                      `gorm:"not null" json:"total"`
	CorrectRate float64                  `gorm:"not null" json:"correctRate"`
	Answers     datatypes.JSONSlice[int] `json:"answers"`
	Lang        string                   `gorm:"size:16" json:"lang"`
	Category    *string                  `gorm:"size:100;index" json:"category,omitempty"`
	IP          string                   `gorm:"size:64;index" json:"ip"`
	Timestamp   time.Time                `gorm:"precision:3;not null;index" json:"timestamp"`
}

func (QuizResult) TableName() string {
	return "quiz_results"
}

func (r *QuizResult) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	return
}

// ErrNotObject 答题记录不是 JSON 对象
var ErrNotObject = errors.New("quiz result is not a JSON object")

// UnmarshalJSON 逐字段宽松解析：数字形式的 userId 转成字符串，字符串形式的分数转成数字，
// 无法解释的字段保持零值。只有整条记录不是对象时才报错。
func (r *QuizResult) UnmarshalJSON(data []byte) error {
	if string(bytes.TrimSpace(data)) == "null" {
		return nil
	}
	raw, ok := decodeObject(data)
	if !ok {
		return ErrNotObject
	}

	var res QuizResult
	res.ID, _ = lenientString(raw["_id"])
	res.UserID, _ = lenientString(raw["userId"])
	res.UserName, _ = lenientString(raw["userName"])
	res.Score, _ = lenientInt(raw["score"])
	res.Total, _ = lenientInt(raw["total"])
	res.CorrectRate, _ = lenientFloat(raw["correctRate"])
	if answers, ok := lenientInts(raw["answers"]); ok {
		res.Answers = answers
	}
	res.Lang, _ = lenientString(raw["lang"])
	if category, ok := lenientString(raw["category"]); ok {
		res.Category = &category
	}
	res.IP, _ = lenientString(raw["ip"])
	res.Timestamp, _ = lenientTime(raw["timestamp"])

	*r = res
	return nil
}

// IsPerfect 是否满分
func (r QuizResult) IsPerfect() bool {
	return r.CorrectRate == PerfectScore
}

// SameCategory 分类必须完全一致，两者都缺失也算一致
func (r QuizResult) SameCategory(category *string) bool {
	if r.Category == nil || category == nil {
		return r.Category == nil && category == nil
	}
	return *r.Category == *category
}

// StampNow 服务端时间戳，UTC 毫秒精度
func StampNow() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}
