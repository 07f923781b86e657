package repository

import (
	"unicbt_backend/internal/model"

	"gorm.io/gorm"
)

type AnswerSheetRepository struct {
	DB *gorm.DB
}

func NewAnswerSheetRepository(db *gorm.DB) *AnswerSheetRepository {
	return &AnswerSheetRepository{DB: db}
}

// AppendAllTx 在调用方事务内一次性写入整份答卷。
// 这里不做去重，重复交卷由 exam_results 的唯一约束在上游拦截。
func (r *AnswerSheetRepository) AppendAllTx(tx *gorm.DB, entries []model.AnswerSheetEntry) error {
	if len(entries) == 0 {
		return nil
	}
	return tx.Create(&entries).Error
}

func (r *AnswerSheetRepository) ListByStudentAndExam(studentID, examID uint) ([]model.AnswerSheetEntry, error) {
	var entries []model.AnswerSheetEntry
	err := r.DB.Where("student_id = ? AND exam_id = ?", studentID, examID).
		Order("question_id asc").Find(&entries).Error
	return entries, err
}

func (r *AnswerSheetRepository) CountByExam(examID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.AnswerSheetEntry{}).Where("exam_id = ?", examID).Count(&count).Error
	return count, err
}
