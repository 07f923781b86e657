package repository

import (
	"unicbt_backend/internal/model"

	"gorm.io/gorm"
)

type ExamRepository struct {
	DB *gorm.DB
}

func NewExamRepository(db *gorm.DB) *ExamRepository {
	return &ExamRepository{DB: db}
}

func (r *ExamRepository) Create(exam *model.Exam) error {
	return r.DB.Create(exam).Error
}

func (r *ExamRepository) Update(exam *model.Exam) error {
	return r.DB.Save(exam).Error
}

func (r *ExamRepository) FindByID(id uint) (*model.Exam, error) {
	var exam model.Exam
	if err := r.DB.First(&exam, id).Error; err != nil {
		return nil, err
	}
	return &exam, nil
}

func (r *ExamRepository) List(page, limit int) ([]model.Exam, int64, error) {
	var exams []model.Exam
	var total int64
	query := r.DB.Model(&model.Exam{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	offset := (page - 1) * limit
	err := query.Order("opens_at desc").Offset(offset).Limit(limit).Find(&exams).Error
	return exams, total, err
}

// Question / AnswerKey ----------------------------------------------------

func (r *ExamRepository) CreateQuestion(q *model.Question) error {
	return r.DB.Create(q).Error
}

func (r *ExamRepository) FindQuestionByID(id uint) (*model.Question, error) {
	var q model.Question
	if err := r.DB.First(&q, id).Error; err != nil {
		return nil, err
	}
	return &q, nil
}

func (r *ExamRepository) ListQuestions(examID uint) ([]model.Question, error) {
	var qs []model.Question
	err := r.DB.Where("exam_id = ?", examID).Order("`order` asc, id asc").Find(&qs).Error
	return qs, err
}

func (r *ExamRepository) SaveAnswerKey(key *model.AnswerKey) error {
	return r.DB.Save(key).Error
}

func (r *ExamRepository) ListAnswerKeys(examID uint) ([]model.AnswerKey, error) {
	var keys []model.AnswerKey
	err := r.DB.Where("exam_id = ?", examID).Find(&keys).Error
	return keys, err
}

// LoadCatalog 一次取出评分需要的题目与标准答案，按题目ID建索引。
// 评分期间只读，在事务开启前加载。
func (r *ExamRepository) LoadCatalog(examID uint) (map[uint]model.Question, map[uint]model.AnswerKey, error) {
	qs, err := r.ListQuestions(examID)
	if err != nil {
		return nil, nil, err
	}
	keys, err := r.ListAnswerKeys(examID)
	if err != nil {
		return nil, nil, err
	}

	questionMap := make(map[uint]model.Question, len(qs))
	for _, q := range qs {
		questionMap[q.ID] = q
	}
	keyMap := make(map[uint]model.AnswerKey, len(keys))
	for _, k := range keys {
		keyMap[k.QuestionID] = k
	}
	return questionMap, keyMap, nil
}

// Assignment ---------------------------------------------------------------

func (r *ExamRepository) CreateAssignment(a *model.ExamAssignment) error {
	return r.DB.Create(a).Error
}

func (r *ExamRepository) ListAssignments(examID uint) ([]model.ExamAssignment, error) {
	var as []model.ExamAssignment
	err := r.DB.Where("exam_id = ?", examID).Find(&as).Error
	return as, err
}

// HasAssignmentFor 判断某院系/年级是否被分配了该考试。Grade 0 覆盖全院系。
func (r *ExamRepository) HasAssignmentFor(examID, departmentID uint, grade int) (bool, error) {
	var count int64
	err := r.DB.Model(&model.ExamAssignment{}).
		Where("exam_id = ? AND department_id = ? AND (grade = 0 OR grade = ?)", examID, departmentID, grade).
		Count(&count).Error
	return count > 0, err
}

// ListOpenForStudent 学生可参加的已发布考试（按分配关系过滤，窗口判断交给上层）
func (r *ExamRepository) ListOpenForStudent(departmentID uint, grade int) ([]model.Exam, error) {
	var exams []model.Exam
	err := r.DB.Model(&model.Exam{}).
		Joins("JOIN exam_assignments ON exam_assignments.exam_id = exams.id AND exam_assignments.deleted_at IS NULL").
		Where("exams.is_published = ?", true).
		Where("exam_assignments.department_id = ? AND (exam_assignments.grade = 0 OR exam_assignments.grade = ?)", departmentID, grade).
		Order("exams.opens_at asc").
		Find(&exams).Error
	return exams, err
}
