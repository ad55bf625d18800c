package model

// Question 题库中的一道题，保存全部语言版本
// swagger:model Question
type Question struct {
	ID          int64            `gorm:"primaryKey;autoIncrement" json:"id"`
	Question    LocalizedText    `json:"question"`
	Options     LocalizedOptions `json:"options"`
	AnswerIndex int              `gorm:"not null;default:0" json:"answerIndex"`
	Category    string           `gorm:"size:100;index" json:"category"`
}

func (Question) TableName() string {
	return "questions"
}
