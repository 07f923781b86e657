package repository

import (
	"unicbt_backend/internal/model"

	"gorm.io/gorm"
)

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) Create(user *model.User) error {
	return r.DB.Create(user).Error
}

func (r *UserRepository) FindByID(id uint) (*model.User, error) {
	var user model.User
	if err := r.DB.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) FindByStudentNo(no string) (*model.User, error) {
	var user model.User
	if err := r.DB.Where("student_no = ?", no).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) ListByDepartment(departmentID uint, grade int) ([]model.User, error) {
	var users []model.User
	query := r.DB.Where("department_id = ?", departmentID)
	if grade > 0 {
		query = query.Where("grade = ?", grade)
	}
	err := query.Order("student_no asc").Find(&users).Error
	return users, err
}

func (r *UserRepository) CreateDepartment(d *model.Department) error {
	return r.DB.Create(d).Error
}

func (r *UserRepository) ListDepartments() ([]model.Department, error) {
	var ds []model.Department
	err := r.DB.Order("name asc").Find(&ds).Error
	return ds, err
}
