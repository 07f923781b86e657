package service

import (
	"encoding/json"
	"errors"
	"time"

	"unicbt_backend/internal/model"
	"unicbt_backend/internal/repository"
	"unicbt_backend/internal/util"

	"gorm.io/gorm"
)

// SurveyService 问卷流程。生命周期与考试平行但更简单：
// 不评分、不累计统计，防重复提交用同一套唯一索引机制。
type SurveyService struct {
	Repo *repository.SurveyRepository
	DB   *gorm.DB
}

func NewSurveyService(repo *repository.SurveyRepository, db *gorm.DB) *SurveyService {
	return &SurveyService{Repo: repo, DB: db}
}

type SurveyRequest struct {
	Title       string    `json:"title" binding:"required"`
	Description string    `json:"description"`
	OpensAt     time.Time `json:"opensAt" binding:"required"`
	ClosesAt    time.Time `json:"closesAt" binding:"required"`
}

func (s *SurveyService) CreateSurvey(req SurveyRequest) (*model.Survey, error) {
	if req.ClosesAt.Before(req.OpensAt) {
		return nil, util.ErrInvalidExamWindow
	}

	survey := &model.Survey{
		Title:       req.Title,
		Description: req.Description,
		OpensAt:     req.OpensAt,
		ClosesAt:    req.ClosesAt,
	}
	if err := s.Repo.Create(survey); err != nil {
		return nil, err
	}
	return survey, nil
}

type SurveyQuestionRequest struct {
	Prompt  string          `json:"prompt" binding:"required"`
	Options json.RawMessage `json:"options"`
	Order   int             `json:"order"`
}

func (s *SurveyService) AddQuestion(surveyID string, req SurveyQuestionRequest) (*model.SurveyQuestion, error) {
	if _, err := s.Repo.FindByID(surveyID); err != nil {
		return nil, util.ErrSurveyNotFound
	}

	q := &model.SurveyQuestion{
		SurveyID: surveyID,
		Prompt:   req.Prompt,
		Options:  req.Options,
		Order:    req.Order,
	}
	if err := s.Repo.CreateQuestion(q); err != nil {
		return nil, err
	}
	return q, nil
}

func (s *SurveyService) PublishSurvey(surveyID string) (*model.Survey, error) {
	survey, err := s.Repo.FindByID(surveyID)
	if err != nil {
		return nil, util.ErrSurveyNotFound
	}
	if survey.IsPublished {
		return survey, nil
	}

	now := time.Now()
	survey.IsPublished = true
	survey.PublishedAt = &now
	if err := s.Repo.Update(survey); err != nil {
		return nil, err
	}
	return survey, nil
}

func (s *SurveyService) GetSurvey(surveyID string) (*model.Survey, []model.SurveyQuestion, error) {
	survey, err := s.Repo.FindByID(surveyID)
	if err != nil {
		return nil, nil, util.ErrSurveyNotFound
	}
	qs, err := s.Repo.ListQuestions(surveyID)
	return survey, qs, err
}

func (s *SurveyService) ListSurveys(page, limit int) ([]model.Survey, int64, error) {
	return s.Repo.List(page, limit)
}

// SubmitResponse 学生提交一份问卷应答。应答头与各题答案同一事务写入，
// 每人每卷只收一份，重复提交由唯一索引拦截。
func (s *SurveyService) SubmitResponse(studentID uint, surveyID string, answers map[string]string) (*model.SurveyResponse, error) {
	if len(answers) == 0 {
		return nil, util.ErrEmptySubmission
	}

	survey, err := s.Repo.FindByID(surveyID)
	if err != nil {
		return nil, util.ErrSurveyNotFound
	}
	now := time.Now()
	if !survey.IsPublished || now.Before(survey.OpensAt) || now.After(survey.ClosesAt) {
		return nil, util.ErrSurveyNotOpen
	}

	exists, err := s.Repo.ResponseExists(surveyID, studentID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, util.ErrDuplicateResponse
	}

	response := &model.SurveyResponse{
		SurveyID:    surveyID,
		StudentID:   studentID,
		CompletedAt: now,
	}
	rows := make([]model.SurveyAnswer, 0, len(answers))
	for qid, content := range answers {
		rows = append(rows, model.SurveyAnswer{QuestionID: qid, Content: content})
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.Repo.CreateResponseTx(tx, response, rows); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return util.ErrDuplicateResponse
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return response, nil
}

func (s *SurveyService) CountResponses(surveyID string) (int64, error) {
	return s.Repo.CountResponses(surveyID)
}
