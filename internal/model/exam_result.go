package model

import "time"

// ExamResult 学生某场考试的最终成绩。(student_id, exam_id) 上的唯一索引
// 是防止重复交卷的权威保障，先查后插只是提前拦截。
// swagger:model ExamResult
type ExamResult struct {
	BaseModel
	StudentID   uint      `gorm:"type:bigint unsigned;uniqueIndex:idx_exam_results_student_exam" json:"studentId"`
	ExamID      uint      `gorm:"type:bigint unsigned;uniqueIndex:idx_exam_results_student_exam" json:"examId"`
	Score       int       `gorm:"not null;default:0" json:"score"` // 0-100
	CompletedAt time.Time `gorm:"not null" json:"completedAt"`
}

func (ExamResult) TableName() string {
	return "exam_results"
}
