package model

import "encoding/json"

// QuestionType 题型。封闭集合，评分逻辑按类型穷举匹配。
type QuestionType string

const (
	QuestionTypeChoice  QuestionType = "choice"  // 选择题，答案为单个选项标号
	QuestionTypeBoolean QuestionType = "boolean" // 判断题，答案为 O/X 文本
)

// Question 试题。考试发布后不再修改。
// swagger:model Question
type Question struct {
	BaseModel
	ExamID  uint            `gorm:"index;type:bigint unsigned" json:"examId"`
	Type    QuestionType    `gorm:"size:20;not null" json:"type"`
	Prompt  string          `gorm:"type:text;not null" json:"prompt"`
	Options json.RawMessage `gorm:"type:json" json:"options,omitempty"` // 选择题选项 JSON
	Order   int             `gorm:"default:0" json:"order"`
	Points  int             `gorm:"default:0" json:"points"`
}

func (Question) TableName() string {
	return "questions"
}

// AnswerKey 标准答案。按题型只填充其中一个字段：
// 选择题填 ChoiceLabel（单字符，区分大小写），判断题填 BooleanText（忽略大小写）。
// swagger:model AnswerKey
type AnswerKey struct {
	BaseModel
	QuestionID  uint   `gorm:"uniqueIndex;type:bigint unsigned" json:"questionId"`
	ExamID      uint   `gorm:"index;type:bigint unsigned" json:"examId"`
	ChoiceLabel string `gorm:"size:1" json:"choiceLabel,omitempty"`
	BooleanText string `gorm:"size:10" json:"booleanText,omitempty"`
}

func (AnswerKey) TableName() string {
	return "answer_keys"
}
