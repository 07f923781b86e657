package model

import "time"

// Exam 考试基本信息。开放时间窗由管理端设定，核心提交流程只读。
// swagger:model Exam
type Exam struct {
	BaseModel
	Subject         string     `gorm:"size:255;not null" json:"subject"`
	Description     string     `gorm:"type:text" json:"description"`
	OpensAt         time.Time  `gorm:"not null" json:"opensAt"`
	ClosesAt        time.Time  `gorm:"not null" json:"closesAt"` // 不变式: ClosesAt >= OpensAt
	DurationMinutes int        `gorm:"default:0" json:"durationMinutes"`
	QuestionCount   int        `gorm:"default:0" json:"questionCount"`
	IsPublished     bool       `gorm:"default:false" json:"isPublished"`
	PublishedAt     *time.Time `json:"publishedAt,omitempty"`
}

func (Exam) TableName() string {
	return "exams"
}

// ExamAssignment 考试与院系/年级群体的分配关系。Grade 为 0 表示整个院系。
// swagger:model ExamAssignment
type ExamAssignment struct {
	BaseModel
	ExamID       uint `gorm:"index;type:bigint unsigned;uniqueIndex:idx_exam_assignments_cohort" json:"examId"`
	DepartmentID uint `gorm:"type:bigint unsigned;uniqueIndex:idx_exam_assignments_cohort" json:"departmentId"`
	Grade        int  `gorm:"default:0;uniqueIndex:idx_exam_assignments_cohort" json:"grade"`
}

func (ExamAssignment) TableName() string {
	return "exam_assignments"
}
