package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"unicbt_backend/internal/model"
	"unicbt_backend/internal/repository"
	"unicbt_backend/internal/util"
	"unicbt_backend/pkg/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

type ExamService struct {
	Repo  *repository.ExamRepository
	Redis *redis.Client // 可为 nil，此时试卷视图直接走数据库
}

func NewExamService(repo *repository.ExamRepository, rdb *redis.Client) *ExamService {
	return &ExamService{Repo: repo, Redis: rdb}
}

type ExamRequest struct {
	Subject         string    `json:"subject" binding:"required"`
	Description     string    `json:"description"`
	OpensAt         time.Time `json:"opensAt" binding:"required"`
	ClosesAt        time.Time `json:"closesAt" binding:"required"`
	DurationMinutes int       `json:"durationMinutes"`
}

func (s *ExamService) CreateExam(req ExamRequest) (*model.Exam, error) {
	if req.ClosesAt.Before(req.OpensAt) {
		return nil, util.ErrInvalidExamWindow
	}

	exam := &model.Exam{
		Subject:         req.Subject,
		Description:     req.Description,
		OpensAt:         req.OpensAt,
		ClosesAt:        req.ClosesAt,
		DurationMinutes: req.DurationMinutes,
	}
	if err := s.Repo.Create(exam); err != nil {
		return nil, err
	}
	return exam, nil
}

func (s *ExamService) GetExam(id uint) (*model.Exam, error) {
	return s.Repo.FindByID(id)
}

func (s *ExamService) ListExams(page, limit int) ([]model.Exam, int64, error) {
	return s.Repo.List(page, limit)
}

type QuestionRequest struct {
	Type    model.QuestionType `json:"type" binding:"required"`
	Prompt  string             `json:"prompt" binding:"required"`
	Options json.RawMessage    `json:"options"`
	Order   int                `json:"order"`
	Points  int                `json:"points"`
	// 标准答案：按题型填其一
	ChoiceLabel string `json:"choiceLabel"`
	BooleanText string `json:"booleanText"`
}

// AddQuestion 新增试题并登记标准答案。考试发布后不再允许改动题目。
func (s *ExamService) AddQuestion(examID uint, req QuestionRequest) (*model.Question, error) {
	exam, err := s.Repo.FindByID(examID)
	if err != nil {
		return nil, util.ErrExamNotFound
	}
	if exam.IsPublished {
		return nil, util.ErrExamPublished
	}

	// 标准答案的形态必须和题型一致，且只能填一个字段
	key := &model.AnswerKey{ExamID: examID}
	switch req.Type {
	case model.QuestionTypeChoice:
		if len(req.ChoiceLabel) != 1 || req.BooleanText != "" {
			return nil, util.ErrInvalidAnswerKey
		}
		key.ChoiceLabel = req.ChoiceLabel
	case model.QuestionTypeBoolean:
		if req.BooleanText == "" || req.ChoiceLabel != "" {
			return nil, util.ErrInvalidAnswerKey
		}
		key.BooleanText = req.BooleanText
	default:
		return nil, util.ErrUnknownQuestionType
	}

	q := &model.Question{
		ExamID:  examID,
		Type:    req.Type,
		Prompt:  req.Prompt,
		Options: req.Options,
		Order:   req.Order,
		Points:  req.Points,
	}
	if err := s.Repo.CreateQuestion(q); err != nil {
		return nil, err
	}

	key.QuestionID = q.ID
	if err := s.Repo.SaveAnswerKey(key); err != nil {
		return nil, err
	}

	exam.QuestionCount++
	if err := s.Repo.Update(exam); err != nil {
		return nil, err
	}

	s.invalidatePaperCache(examID)
	return q, nil
}

func (s *ExamService) PublishExam(examID uint) (*model.Exam, error) {
	exam, err := s.Repo.FindByID(examID)
	if err != nil {
		return nil, util.ErrExamNotFound
	}
	if exam.IsPublished {
		return exam, nil
	}

	now := time.Now()
	exam.IsPublished = true
	exam.PublishedAt = &now
	if err := s.Repo.Update(exam); err != nil {
		return nil, err
	}
	return exam, nil
}

type AssignExamRequest struct {
	DepartmentID uint `json:"departmentId" binding:"required"`
	Grade        int  `json:"grade"` // 0 表示整个院系
}

func (s *ExamService) AssignExam(examID uint, req AssignExamRequest) (*model.ExamAssignment, error) {
	if _, err := s.Repo.FindByID(examID); err != nil {
		return nil, util.ErrExamNotFound
	}

	a := &model.ExamAssignment{
		ExamID:       examID,
		DepartmentID: req.DepartmentID,
		Grade:        req.Grade,
	}
	if err := s.Repo.CreateAssignment(a); err != nil {
		return nil, err
	}
	return a, nil
}

// StudentQuestion 学生端试卷里的单题视图，不含标准答案
type StudentQuestion struct {
	ID      uint               `json:"id"`
	Type    model.QuestionType `json:"type"`
	Prompt  string             `json:"prompt"`
	Options json.RawMessage    `json:"options,omitempty"`
	Order   int                `json:"order"`
	Points  int                `json:"points"`
}

type ExamPaper struct {
	ExamID          uint              `json:"examId"`
	Subject         string            `json:"subject"`
	DurationMinutes int               `json:"durationMinutes"`
	ClosesAt        time.Time         `json:"closesAt"`
	Questions       []StudentQuestion `json:"questions"`
}

const paperCacheTTL = 10 * time.Minute

func paperCacheKey(examID uint) string {
	return fmt.Sprintf("exam:paper:%d", examID)
}

// GetExamPaper 学生端取卷。已发布的试卷评分期间只读，适合读穿缓存。
func (s *ExamService) GetExamPaper(examID uint) (*ExamPaper, error) {
	if s.Redis != nil {
		val, err := s.Redis.Get(context.Background(), paperCacheKey(examID)).Result()
		if err == nil {
			var paper ExamPaper
			if err := json.Unmarshal([]byte(val), &paper); err == nil {
				return &paper, nil
			}
		}
	}

	exam, err := s.Repo.FindByID(examID)
	if err != nil {
		return nil, util.ErrExamNotFound
	}
	if !exam.IsPublished {
		return nil, util.ErrExamNotOpen
	}

	qs, err := s.Repo.ListQuestions(examID)
	if err != nil {
		return nil, err
	}

	paper := &ExamPaper{
		ExamID:          exam.ID,
		Subject:         exam.Subject,
		DurationMinutes: exam.DurationMinutes,
		ClosesAt:        exam.ClosesAt,
		Questions:       make([]StudentQuestion, len(qs)),
	}
	for i, q := range qs {
		paper.Questions[i] = StudentQuestion{
			ID:      q.ID,
			Type:    q.Type,
			Prompt:  q.Prompt,
			Options: q.Options,
			Order:   q.Order,
			Points:  q.Points,
		}
	}

	if s.Redis != nil {
		if data, err := json.Marshal(paper); err == nil {
			if err := s.Redis.Set(context.Background(), paperCacheKey(examID), data, paperCacheTTL).Err(); err != nil {
				logger.Log.Warn("failed to cache exam paper", zap.Uint("examId", examID), zap.Error(err))
			}
		}
	}
	return paper, nil
}

// ListOpenExams 学生可参加的考试列表（窗口内且已分配）
func (s *ExamService) ListOpenExams(student *model.User) ([]model.Exam, error) {
	exams, err := s.Repo.ListOpenForStudent(student.DepartmentID, student.Grade)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	open := make([]model.Exam, 0, len(exams))
	for _, e := range exams {
		if !now.Before(e.OpensAt) && !now.After(e.ClosesAt) {
			open = append(open, e)
		}
	}
	return open, nil
}

func (s *ExamService) invalidatePaperCache(examID uint) {
	if s.Redis == nil {
		return
	}
	if err := s.Redis.Del(context.Background(), paperCacheKey(examID)).Err(); err != nil {
		logger.Log.Warn("failed to invalidate exam paper cache", zap.Uint("examId", examID), zap.Error(err))
	}
}
