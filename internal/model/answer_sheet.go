package model

// AnswerSheetEntry 学生某次考试对单题的作答记录。提交时一次性写入，核心流程不做更新和删除。
// swagger:model AnswerSheetEntry
type AnswerSheetEntry struct {
	BaseModel
	StudentID  uint   `gorm:"type:bigint unsigned;index:idx_answer_sheets_student_exam" json:"studentId"`
	ExamID     uint   `gorm:"type:bigint unsigned;index:idx_answer_sheets_student_exam" json:"examId"`
	QuestionID uint   `gorm:"index;type:bigint unsigned" json:"questionId"`
	Submitted  string `gorm:"size:255" json:"submitted"`
}

func (AnswerSheetEntry) TableName() string {
	return "answer_sheets"
}
