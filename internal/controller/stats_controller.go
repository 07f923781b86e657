package controller

import (
	"strconv"

	"unicbt_backend/internal/service"
	"unicbt_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// StatsController 报表面板的只读出口
type StatsController struct {
	Service *service.StatsService
}

func NewStatsController(svc *service.StatsService) *StatsController {
	return &StatsController{Service: svc}
}

// @Summary 每题答题统计
// @Tags 统计报表
// @Produce json
// @Param id path int true "考试ID"
// @Success 200 {object} util.Response
// @Router /admin/exams/{id}/stats [get]
func (c *StatsController) ListQuestionStats(ctx *gin.Context) {
	examID := util.MustParseUint(ctx.Param("id"))

	stats, err := c.Service.ListQuestionStats(examID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, stats)
}

// @Summary 成绩列表
// @Tags 统计报表
// @Produce json
// @Param id path int true "考试ID"
// @Param page query int false "页码"
// @Param limit query int false "每页数量"
// @Success 200 {object} util.Response
// @Router /admin/exams/{id}/results [get]
func (c *StatsController) ListExamResults(ctx *gin.Context) {
	examID := util.MustParseUint(ctx.Param("id"))
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))

	results, total, err := c.Service.ListExamResults(examID, page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, util.PageResponse{List: results, Total: total, Page: page, Limit: limit})
}

// @Summary 考试汇总（人数/均分/最高最低）
// @Tags 统计报表
// @Produce json
// @Param id path int true "考试ID"
// @Success 200 {object} util.Response
// @Router /admin/exams/{id}/summary [get]
func (c *StatsController) GetExamSummary(ctx *gin.Context) {
	examID := util.MustParseUint(ctx.Param("id"))

	summary, err := c.Service.GetExamSummary(examID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, summary)
}

// @Summary 查看某学生的答卷
// @Tags 统计报表
// @Produce json
// @Param id path int true "考试ID"
// @Param studentId query int true "学生ID"
// @Success 200 {object} util.Response
// @Router /admin/exams/{id}/sheets [get]
func (c *StatsController) GetStudentSheet(ctx *gin.Context) {
	examID := util.MustParseUint(ctx.Param("id"))
	studentID := util.MustParseUint(ctx.Query("studentId"))
	if examID == 0 || studentID == 0 {
		util.BadRequest(ctx, "invalid exam or student id")
		return
	}

	entries, err := c.Service.GetStudentSheet(studentID, examID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, entries)
}
