package service

import (
	"unicbt_backend/internal/model"
	"unicbt_backend/internal/repository"
	"unicbt_backend/internal/util"
)

type UserService struct {
	Repo *repository.UserRepository
}

func NewUserService(repo *repository.UserRepository) *UserService {
	return &UserService{Repo: repo}
}

type StudentRequest struct {
	Name         string `json:"name" binding:"required"`
	StudentNo    string `json:"studentNo" binding:"required"`
	DepartmentID uint   `json:"departmentId" binding:"required"`
	Grade        int    `json:"grade" binding:"required"`
}

func (s *UserService) CreateStudent(req StudentRequest) (*model.User, error) {
	user := &model.User{
		Name:         req.Name,
		StudentNo:    req.StudentNo,
		DepartmentID: req.DepartmentID,
		Grade:        req.Grade,
		Role:         "student",
	}
	if err := s.Repo.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) GetStudent(id uint) (*model.User, error) {
	user, err := s.Repo.FindByID(id)
	if err != nil {
		return nil, util.ErrStudentNotFound
	}
	return user, nil
}

func (s *UserService) ListStudents(departmentID uint, grade int) ([]model.User, error) {
	return s.Repo.ListByDepartment(departmentID, grade)
}

type DepartmentRequest struct {
	Name string `json:"name" binding:"required"`
}

func (s *UserService) CreateDepartment(req DepartmentRequest) (*model.Department, error) {
	d := &model.Department{Name: req.Name}
	if err := s.Repo.CreateDepartment(d); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *UserService) ListDepartments() ([]model.Department, error) {
	return s.Repo.ListDepartments()
}
