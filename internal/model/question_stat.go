package model

// QuestionStat 单题的累计答题统计。被所有并发提交共享，
// 计数只允许通过数据库端原子自增修改，禁止读出后回写。
// swagger:model QuestionStat
type QuestionStat struct {
	BaseModel
	ExamID       uint    `gorm:"type:bigint unsigned;uniqueIndex:idx_question_stats_exam_question" json:"examId"`
	QuestionID   uint    `gorm:"type:bigint unsigned;uniqueIndex:idx_question_stats_exam_question" json:"questionId"`
	AttemptCount int     `gorm:"not null;default:0" json:"attemptCount"`
	CorrectCount int     `gorm:"not null;default:0" json:"correctCount"`
	CorrectRate  float64 `gorm:"type:decimal(5,1);not null;default:0" json:"correctRate"` // 百分比
}

func (QuestionStat) TableName() string {
	return "question_stats"
}
