package model

import (
	"encoding/json"
	"time"
)

// Survey 问卷。生命周期与考试平行但更简单：无评分、无统计自增。
// swagger:model Survey
type Survey struct {
	UUIDBase
	Title       string     `gorm:"size:255;not null" json:"title"`
	Description string     `gorm:"type:text" json:"description"`
	OpensAt     time.Time  `gorm:"not null" json:"opensAt"`
	ClosesAt    time.Time  `gorm:"not null" json:"closesAt"`
	IsPublished bool       `gorm:"default:false" json:"isPublished"`
	PublishedAt *time.Time `json:"publishedAt,omitempty"`
}

func (Survey) TableName() string {
	return "surveys"
}

// swagger:model SurveyQuestion
type SurveyQuestion struct {
	UUIDBase
	SurveyID string          `gorm:"index;type:varchar(36)" json:"surveyId"`
	Prompt   string          `gorm:"type:text;not null" json:"prompt"`
	Options  json.RawMessage `gorm:"type:json" json:"options,omitempty"`
	Order    int             `gorm:"default:0" json:"order"`
}

func (SurveyQuestion) TableName() string {
	return "survey_questions"
}

// SurveyResponse 一名学生对一份问卷的应答头。(survey_id, student_id) 唯一，
// 与 ExamResult 采用同一套存储层防重机制。
// swagger:model SurveyResponse
type SurveyResponse struct {
	UUIDBase
	SurveyID    string    `gorm:"type:varchar(36);uniqueIndex:idx_survey_responses_survey_student" json:"surveyId"`
	StudentID   uint      `gorm:"type:bigint unsigned;uniqueIndex:idx_survey_responses_survey_student" json:"studentId"`
	CompletedAt time.Time `gorm:"not null" json:"completedAt"`
}

func (SurveyResponse) TableName() string {
	return "survey_responses"
}

// swagger:model SurveyAnswer
type SurveyAnswer struct {
	UUIDBase
	ResponseID string `gorm:"index;type:varchar(36)" json:"responseId"`
	QuestionID string `gorm:"index;type:varchar(36)" json:"questionId"`
	Content    string `gorm:"type:text" json:"content"`
}

func (SurveyAnswer) TableName() string {
	return "survey_answers"
}
