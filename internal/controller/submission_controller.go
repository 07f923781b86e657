package controller

import (
	"errors"
	"net/http"

	"unicbt_backend/internal/service"
	"unicbt_backend/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type SubmissionController struct {
	Service *service.SubmissionService
	Stats   *service.StatsService
}

func NewSubmissionController(svc *service.SubmissionService, stats *service.StatsService) *SubmissionController {
	return &SubmissionController{Service: svc, Stats: stats}
}

// @Summary 学生交卷
// @Description 一次性提交整卷答案，评分后返回最终得分
// @Tags 考试提交
// @Accept json
// @Produce json
// @Param id path int true "考试ID"
// @Param body body service.SubmitExamRequest true "学生ID与答案"
// @Success 200 {object} util.Response
// @Failure 409 {object} util.Response "已交过卷"
// @Router /exams/{id}/submit [post]
func (c *SubmissionController) SubmitExam(ctx *gin.Context) {
	examID := util.MustParseUint(ctx.Param("id"))
	if examID == 0 {
		util.BadRequest(ctx, "invalid exam id")
		return
	}

	var req service.SubmitExamRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	score, err := c.Service.SubmitExam(req.StudentID, examID, req.Answers)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrDuplicateAttempt):
			util.Conflict(ctx, err.Error())
		case errors.Is(err, util.ErrEmptySubmission),
			errors.Is(err, util.ErrExamNotOpen),
			errors.Is(err, util.ErrNotEligible):
			util.BadRequest(ctx, err.Error())
		case errors.Is(err, util.ErrExamNotFound), errors.Is(err, util.ErrStudentNotFound):
			util.NotFound(ctx)
		default:
			// 事务已整体回滚，对调用方来说可安全整卷重试
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, gin.H{"score": score})
}

// @Summary 查询本人成绩
// @Tags 考试提交
// @Produce json
// @Param id path int true "考试ID"
// @Param studentId query int true "学生ID"
// @Success 200 {object} util.Response
// @Router /exams/{id}/result [get]
func (c *SubmissionController) GetResult(ctx *gin.Context) {
	examID := util.MustParseUint(ctx.Param("id"))
	studentID := util.MustParseUint(ctx.Query("studentId"))
	if examID == 0 || studentID == 0 {
		util.BadRequest(ctx, "invalid exam or student id")
		return
	}

	result, err := c.Stats.GetStudentResult(studentID, examID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.Error(ctx, http.StatusNotFound, "not submitted yet")
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, result)
}
