package service

import (
	"unicbt_backend/internal/model"
	"unicbt_backend/internal/repository"
)

// StatsService 报表侧的只读消费者。只读成绩与每题统计，从不回写。
type StatsService struct {
	StatRepo   *repository.QuestionStatRepository
	ResultRepo *repository.ExamResultRepository
	SheetRepo  *repository.AnswerSheetRepository
}

func NewStatsService(
	statRepo *repository.QuestionStatRepository,
	resultRepo *repository.ExamResultRepository,
	sheetRepo *repository.AnswerSheetRepository,
) *StatsService {
	return &StatsService{StatRepo: statRepo, ResultRepo: resultRepo, SheetRepo: sheetRepo}
}

func (s *StatsService) ListQuestionStats(examID uint) ([]model.QuestionStat, error) {
	return s.StatRepo.ListByExam(examID)
}

func (s *StatsService) GetStudentResult(studentID, examID uint) (*model.ExamResult, error) {
	return s.ResultRepo.FindByStudentAndExam(studentID, examID)
}

func (s *StatsService) ListExamResults(examID uint, page, limit int) ([]model.ExamResult, int64, error) {
	return s.ResultRepo.ListByExam(examID, page, limit)
}

func (s *StatsService) GetExamSummary(examID uint) (*repository.ExamScoreSummary, error) {
	return s.ResultRepo.SummaryByExam(examID)
}

func (s *StatsService) GetStudentSheet(studentID, examID uint) ([]model.AnswerSheetEntry, error) {
	return s.SheetRepo.ListByStudentAndExam(studentID, examID)
}
