package controller

import (
	"errors"
	"strconv"

	"unicbt_backend/internal/service"
	"unicbt_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ExamController struct {
	Service     *service.ExamService
	UserService *service.UserService
}

func NewExamController(svc *service.ExamService, userSvc *service.UserService) *ExamController {
	return &ExamController{Service: svc, UserService: userSvc}
}

// @Summary 创建考试
// @Tags 考试管理
// @Accept json
// @Produce json
// @Param body body service.ExamRequest true "考试信息"
// @Success 201 {object} util.Response
// @Router /admin/exams [post]
func (c *ExamController) CreateExam(ctx *gin.Context) {
	var req service.ExamRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	exam, err := c.Service.CreateExam(req)
	if err != nil {
		if errors.Is(err, util.ErrInvalidExamWindow) {
			util.BadRequest(ctx, err.Error())
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Created(ctx, exam)
}

// @Summary 考试列表
// @Tags 考试管理
// @Produce json
// @Param page query int false "页码"
// @Param limit query int false "每页数量"
// @Success 200 {object} util.Response
// @Router /admin/exams [get]
func (c *ExamController) ListExams(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))

	exams, total, err := c.Service.ListExams(page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, util.PageResponse{List: exams, Total: total, Page: page, Limit: limit})
}

// @Summary 考试详情
// @Tags 考试管理
// @Produce json
// @Param id path int true "考试ID"
// @Success 200 {object} util.Response
// @Router /admin/exams/{id} [get]
func (c *ExamController) GetExam(ctx *gin.Context) {
	examID := util.MustParseUint(ctx.Param("id"))

	exam, err := c.Service.GetExam(examID)
	if err != nil {
		util.NotFound(ctx)
		return
	}

	util.Success(ctx, exam)
}

// @Summary 新增试题（含标准答案）
// @Tags 考试管理
// @Accept json
// @Produce json
// @Param id path int true "考试ID"
// @Param body body service.QuestionRequest true "题目与标准答案"
// @Success 201 {object} util.Response
// @Router /admin/exams/{id}/questions [post]
func (c *ExamController) AddQuestion(ctx *gin.Context) {
	examID := util.MustParseUint(ctx.Param("id"))

	var req service.QuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	q, err := c.Service.AddQuestion(examID, req)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrExamNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrExamPublished),
			errors.Is(err, util.ErrInvalidAnswerKey),
			errors.Is(err, util.ErrUnknownQuestionType):
			util.BadRequest(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Created(ctx, q)
}

// @Summary 发布考试
// @Tags 考试管理
// @Produce json
// @Param id path int true "考试ID"
// @Success 200 {object} util.Response
// @Router /admin/exams/{id}/publish [post]
func (c *ExamController) PublishExam(ctx *gin.Context) {
	examID := util.MustParseUint(ctx.Param("id"))

	exam, err := c.Service.PublishExam(examID)
	if err != nil {
		if errors.Is(err, util.ErrExamNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, exam)
}

// @Summary 分配考试到院系/年级
// @Tags 考试管理
// @Accept json
// @Produce json
// @Param id path int true "考试ID"
// @Param body body service.AssignExamRequest true "院系与年级（年级0表示全院系）"
// @Success 201 {object} util.Response
// @Router /admin/exams/{id}/assignments [post]
func (c *ExamController) AssignExam(ctx *gin.Context) {
	examID := util.MustParseUint(ctx.Param("id"))

	var req service.AssignExamRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	a, err := c.Service.AssignExam(examID, req)
	if err != nil {
		if errors.Is(err, util.ErrExamNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Created(ctx, a)
}

// @Summary 学生端：取卷（不含标准答案）
// @Tags 考试应答
// @Produce json
// @Param id path int true "考试ID"
// @Success 200 {object} util.Response
// @Router /exams/{id}/paper [get]
func (c *ExamController) GetExamPaper(ctx *gin.Context) {
	examID := util.MustParseUint(ctx.Param("id"))

	paper, err := c.Service.GetExamPaper(examID)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrExamNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrExamNotOpen):
			util.BadRequest(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, paper)
}

// @Summary 学生端：可参加的考试列表
// @Tags 考试应答
// @Produce json
// @Param studentId query int true "学生ID"
// @Success 200 {object} util.Response
// @Router /exams/open [get]
func (c *ExamController) ListOpenExams(ctx *gin.Context) {
	studentID := util.MustParseUint(ctx.Query("studentId"))
	if studentID == 0 {
		util.BadRequest(ctx, "invalid student id")
		return
	}

	student, err := c.UserService.GetStudent(studentID)
	if err != nil {
		util.NotFound(ctx)
		return
	}

	exams, err := c.Service.ListOpenExams(student)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, exams)
}
