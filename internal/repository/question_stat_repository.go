package repository

import (
	"unicbt_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type QuestionStatRepository struct {
	DB *gorm.DB
}

func NewQuestionStatRepository(db *gorm.DB) *QuestionStatRepository {
	return &QuestionStatRepository{DB: db}
}

// RecordAttemptTx 在调用方事务内累计一次答题。
// 计数自增在数据库端单条 upsert 完成，首次答题时建行；
// 正确率紧接着由自增后的计数重算，两条语句同属一个事务，
// 外部读不到计数与正确率不配套的中间状态。
// 禁止改写成先查再算后写的形式，并发提交会互相覆盖计数。
func (r *QuestionStatRepository) RecordAttemptTx(tx *gorm.DB, examID, questionID uint, wasCorrect bool) error {
	delta := 0
	if wasCorrect {
		delta = 1
	}

	stat := &model.QuestionStat{
		ExamID:       examID,
		QuestionID:   questionID,
		AttemptCount: 1,
		CorrectCount: delta,
		CorrectRate:  float64(100 * delta),
	}

	err := tx.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "exam_id"}, {Name: "question_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"attempt_count": gorm.Expr("attempt_count + 1"),
			"correct_count": gorm.Expr("correct_count + ?", delta),
		}),
	}).Create(stat).Error
	if err != nil {
		return err
	}

	return tx.Model(&model.QuestionStat{}).
		Where("exam_id = ? AND question_id = ?", examID, questionID).
		Update("correct_rate", gorm.Expr("ROUND(100.0 * correct_count / attempt_count, 1)")).Error
}

func (r *QuestionStatRepository) FindByExamAndQuestion(examID, questionID uint) (*model.QuestionStat, error) {
	var stat model.QuestionStat
	err := r.DB.Where("exam_id = ? AND question_id = ?", examID, questionID).First(&stat).Error
	if err != nil {
		return nil, err
	}
	return &stat, nil
}

func (r *QuestionStatRepository) ListByExam(examID uint) ([]model.QuestionStat, error) {
	var stats []model.QuestionStat
	err := r.DB.Where("exam_id = ?", examID).Order("question_id asc").Find(&stats).Error
	return stats, err
}
