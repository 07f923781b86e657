package controller

import (
	"unicbt_backend/internal/service"
	"unicbt_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type UserController struct {
	Service *service.UserService
}

func NewUserController(svc *service.UserService) *UserController {
	return &UserController{Service: svc}
}

// @Summary 登记学生
// @Tags 学籍管理
// @Accept json
// @Produce json
// @Param body body service.StudentRequest true "学生信息"
// @Success 201 {object} util.Response
// @Router /admin/students [post]
func (c *UserController) CreateStudent(ctx *gin.Context) {
	var req service.StudentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	user, err := c.Service.CreateStudent(req)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Created(ctx, user)
}

// @Summary 按院系/年级查学生
// @Tags 学籍管理
// @Produce json
// @Param departmentId query int true "院系ID"
// @Param grade query int false "年级，0为全部"
// @Success 200 {object} util.Response
// @Router /admin/students [get]
func (c *UserController) ListStudents(ctx *gin.Context) {
	departmentID := util.MustParseUint(ctx.Query("departmentId"))
	grade := int(util.MustParseUint(ctx.DefaultQuery("grade", "0")))
	if departmentID == 0 {
		util.BadRequest(ctx, "invalid department id")
		return
	}

	users, err := c.Service.ListStudents(departmentID, grade)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, users)
}

// @Summary 创建院系
// @Tags 学籍管理
// @Accept json
// @Produce json
// @Param body body service.DepartmentRequest true "院系信息"
// @Success 201 {object} util.Response
// @Router /admin/departments [post]
func (c *UserController) CreateDepartment(ctx *gin.Context) {
	var req service.DepartmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	d, err := c.Service.CreateDepartment(req)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Created(ctx, d)
}

// @Summary 院系列表
// @Tags 学籍管理
// @Produce json
// @Success 200 {object} util.Response
// @Router /admin/departments [get]
func (c *UserController) ListDepartments(ctx *gin.Context) {
	ds, err := c.Service.ListDepartments()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, ds)
}
