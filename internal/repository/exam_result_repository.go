package repository

import (
	"errors"

	"unicbt_backend/internal/model"

	"gorm.io/gorm"
)

type ExamResultRepository struct {
	DB *gorm.DB
}

func NewExamResultRepository(db *gorm.DB) *ExamResultRepository {
	return &ExamResultRepository{DB: db}
}

// Exists 交卷前的提前检查。只用来减少白做的评分工作，
// 权威的防重仍是 InsertTx 撞上的唯一索引。
func (r *ExamResultRepository) Exists(studentID, examID uint) (bool, error) {
	var count int64
	err := r.DB.Model(&model.ExamResult{}).
		Where("student_id = ? AND exam_id = ?", studentID, examID).
		Count(&count).Error
	return count > 0, err
}

// InsertTx 写入最终成绩。(student_id, exam_id) 唯一索引冲突时
// 返回 gorm.ErrDuplicatedKey（TranslateError 开启）。
func (r *ExamResultRepository) InsertTx(tx *gorm.DB, result *model.ExamResult) error {
	return tx.Create(result).Error
}

func (r *ExamResultRepository) IsDuplicate(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

func (r *ExamResultRepository) FindByStudentAndExam(studentID, examID uint) (*model.ExamResult, error) {
	var result model.ExamResult
	err := r.DB.Where("student_id = ? AND exam_id = ?", studentID, examID).First(&result).Error
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *ExamResultRepository) ListByExam(examID uint, page, limit int) ([]model.ExamResult, int64, error) {
	var results []model.ExamResult
	var total int64
	query := r.DB.Model(&model.ExamResult{}).Where("exam_id = ?", examID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	offset := (page - 1) * limit
	err := query.Order("score desc, completed_at asc").Offset(offset).Limit(limit).Find(&results).Error
	return results, total, err
}

// ExamScoreSummary 一场考试的成绩汇总
type ExamScoreSummary struct {
	Submissions  int64   `json:"submissions"`
	AverageScore float64 `json:"averageScore"`
	MaxScore     int     `json:"maxScore"`
	MinScore     int     `json:"minScore"`
}

func (r *ExamResultRepository) SummaryByExam(examID uint) (*ExamScoreSummary, error) {
	var summary ExamScoreSummary
	err := r.DB.Model(&model.ExamResult{}).
		Select("COUNT(*) as submissions, COALESCE(AVG(score), 0) as average_score, COALESCE(MAX(score), 0) as max_score, COALESCE(MIN(score), 0) as min_score").
		Where("exam_id = ?", examID).
		Scan(&summary).Error
	return &summary, err
}
