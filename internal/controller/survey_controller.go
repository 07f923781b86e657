package controller

import (
	"errors"
	"strconv"

	"unicbt_backend/internal/service"
	"unicbt_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type SurveyController struct {
	Service *service.SurveyService
}

func NewSurveyController(svc *service.SurveyService) *SurveyController {
	return &SurveyController{Service: svc}
}

// @Summary 创建问卷
// @Tags 问卷
// @Accept json
// @Produce json
// @Param body body service.SurveyRequest true "问卷信息"
// @Success 201 {object} util.Response
// @Router /admin/surveys [post]
func (c *SurveyController) CreateSurvey(ctx *gin.Context) {
	var req service.SurveyRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	survey, err := c.Service.CreateSurvey(req)
	if err != nil {
		if errors.Is(err, util.ErrInvalidExamWindow) {
			util.BadRequest(ctx, err.Error())
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Created(ctx, survey)
}

// @Summary 问卷列表
// @Tags 问卷
// @Produce json
// @Param page query int false "页码"
// @Param limit query int false "每页数量"
// @Success 200 {object} util.Response
// @Router /admin/surveys [get]
func (c *SurveyController) ListSurveys(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))

	surveys, total, err := c.Service.ListSurveys(page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, util.PageResponse{List: surveys, Total: total, Page: page, Limit: limit})
}

// @Summary 新增问卷题目
// @Tags 问卷
// @Accept json
// @Produce json
// @Param id path string true "问卷ID"
// @Param body body service.SurveyQuestionRequest true "题目信息"
// @Success 201 {object} util.Response
// @Router /admin/surveys/{id}/questions [post]
func (c *SurveyController) AddQuestion(ctx *gin.Context) {
	var req service.SurveyQuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	q, err := c.Service.AddQuestion(ctx.Param("id"), req)
	if err != nil {
		if errors.Is(err, util.ErrSurveyNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Created(ctx, q)
}

// @Summary 发布问卷
// @Tags 问卷
// @Produce json
// @Param id path string true "问卷ID"
// @Success 200 {object} util.Response
// @Router /admin/surveys/{id}/publish [post]
func (c *SurveyController) PublishSurvey(ctx *gin.Context) {
	survey, err := c.Service.PublishSurvey(ctx.Param("id"))
	if err != nil {
		if errors.Is(err, util.ErrSurveyNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, survey)
}

// @Summary 问卷详情（含题目）
// @Tags 问卷
// @Produce json
// @Param id path string true "问卷ID"
// @Success 200 {object} util.Response
// @Router /surveys/{id} [get]
func (c *SurveyController) GetSurvey(ctx *gin.Context) {
	survey, qs, err := c.Service.GetSurvey(ctx.Param("id"))
	if err != nil {
		util.NotFound(ctx)
		return
	}

	util.Success(ctx, gin.H{"survey": survey, "questions": qs})
}

type surveyResponseRequest struct {
	StudentID uint              `json:"studentId" binding:"required"`
	Answers   map[string]string `json:"answers" binding:"required"`
}

// @Summary 提交问卷应答
// @Tags 问卷
// @Accept json
// @Produce json
// @Param id path string true "问卷ID"
// @Param body body surveyResponseRequest true "学生ID与应答"
// @Success 201 {object} util.Response
// @Failure 409 {object} util.Response "已提交过"
// @Router /surveys/{id}/responses [post]
func (c *SurveyController) SubmitResponse(ctx *gin.Context) {
	var req surveyResponseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	response, err := c.Service.SubmitResponse(req.StudentID, ctx.Param("id"), req.Answers)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrDuplicateResponse):
			util.Conflict(ctx, err.Error())
		case errors.Is(err, util.ErrSurveyNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrSurveyNotOpen), errors.Is(err, util.ErrEmptySubmission):
			util.BadRequest(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Created(ctx, response)
}
