package model

// swagger:model Department
type Department struct {
	BaseModel
	Name string `gorm:"size:100;not null;uniqueIndex" json:"name"`
}

func (Department) TableName() string {
	return "departments"
}

// User 学生账户（认证由外部网关负责，这里只保存分配考试所需的信息）
// swagger:model User
type User struct {
	BaseModel
	Name         string      `gorm:"size:100;not null" json:"name"`
	StudentNo    string      `gorm:"size:30;uniqueIndex" json:"studentNo"`
	DepartmentID uint        `gorm:"index;type:bigint unsigned" json:"departmentId"`
	Department   *Department `gorm:"foreignKey:DepartmentID" json:"department,omitempty"`
	Grade        int         `gorm:"default:1" json:"grade"` // 年级 1-4
	Role         string      `gorm:"size:20;default:'student'" json:"role"`
}

func (User) TableName() string {
	return "users"
}
