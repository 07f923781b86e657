package service

import (
	"time"

	"unicbt_backend/internal/repository"
	"unicbt_backend/internal/util"
)

// EligibilityChecker 判断学生当前能否参加某场考试。
// 提交流程只依赖这个接口，院系/年级的匹配规则可以整体替换。
type EligibilityChecker interface {
	CanAttempt(studentID, examID uint) error
}

type EligibilityService struct {
	ExamRepo *repository.ExamRepository
	UserRepo *repository.UserRepository
}

func NewEligibilityService(examRepo *repository.ExamRepository, userRepo *repository.UserRepository) *EligibilityService {
	return &EligibilityService{ExamRepo: examRepo, UserRepo: userRepo}
}

// CanAttempt 考试必须已发布且处于开放时间窗内，
// 且学生所在院系/年级有对应的分配记录。
func (s *EligibilityService) CanAttempt(studentID, examID uint) error {
	exam, err := s.ExamRepo.FindByID(examID)
	if err != nil {
		return util.ErrExamNotFound
	}

	now := time.Now()
	if !exam.IsPublished || now.Before(exam.OpensAt) || now.After(exam.ClosesAt) {
		return util.ErrExamNotOpen
	}

	student, err := s.UserRepo.FindByID(studentID)
	if err != nil {
		return util.ErrStudentNotFound
	}

	assigned, err := s.ExamRepo.HasAssignmentFor(examID, student.DepartmentID, student.Grade)
	if err != nil {
		return err
	}
	if !assigned {
		return util.ErrNotEligible
	}
	return nil
}
