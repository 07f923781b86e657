package repository

import (
	"unicbt_backend/internal/model"

	"gorm.io/gorm"
)

type SurveyRepository struct {
	DB *gorm.DB
}

func NewSurveyRepository(db *gorm.DB) *SurveyRepository {
	return &SurveyRepository{DB: db}
}

func (r *SurveyRepository) Create(survey *model.Survey) error {
	return r.DB.Create(survey).Error
}

func (r *SurveyRepository) Update(survey *model.Survey) error {
	return r.DB.Save(survey).Error
}

func (r *SurveyRepository) FindByID(id string) (*model.Survey, error) {
	var s model.Survey
	if err := r.DB.Where("id = ?", id).First(&s).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SurveyRepository) List(page, limit int) ([]model.Survey, int64, error) {
	var ss []model.Survey
	var total int64
	query := r.DB.Model(&model.Survey{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	offset := (page - 1) * limit
	err := query.Order("created_at desc").Offset(offset).Limit(limit).Find(&ss).Error
	return ss, total, err
}

func (r *SurveyRepository) CreateQuestion(q *model.SurveyQuestion) error {
	return r.DB.Create(q).Error
}

func (r *SurveyRepository) ListQuestions(surveyID string) ([]model.SurveyQuestion, error) {
	var qs []model.SurveyQuestion
	err := r.DB.Where("survey_id = ?", surveyID).Order("`order` asc").Find(&qs).Error
	return qs, err
}

func (r *SurveyRepository) ResponseExists(surveyID string, studentID uint) (bool, error) {
	var count int64
	err := r.DB.Model(&model.SurveyResponse{}).
		Where("survey_id = ? AND student_id = ?", surveyID, studentID).
		Count(&count).Error
	return count > 0, err
}

// CreateResponseTx 应答头与答案同一事务写入。
// (survey_id, student_id) 唯一索引拦截重复提交，与考试成绩同一套机制。
func (r *SurveyRepository) CreateResponseTx(tx *gorm.DB, response *model.SurveyResponse, answers []model.SurveyAnswer) error {
	if err := tx.Create(response).Error; err != nil {
		return err
	}
	for i := range answers {
		answers[i].ResponseID = response.ID
	}
	if len(answers) == 0 {
		return nil
	}
	return tx.Create(&answers).Error
}

func (r *SurveyRepository) ListAnswers(responseID string) ([]model.SurveyAnswer, error) {
	var answers []model.SurveyAnswer
	err := r.DB.Where("response_id = ?", responseID).Find(&answers).Error
	return answers, err
}

func (r *SurveyRepository) CountResponses(surveyID string) (int64, error) {
	var count int64
	err := r.DB.Model(&model.SurveyResponse{}).Where("survey_id = ?", surveyID).Count(&count).Error
	return count, err
}
