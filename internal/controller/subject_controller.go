package controller

import (
	"errors"
	"pomodoro_backend/internal/model"
	"pomodoro_backend/internal/service"
	"pomodoro_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type SubjectController struct {
	SubjectService *service.SubjectService
}

func NewSubjectController(subjectService *service.SubjectService) *SubjectController {
	return &SubjectController{SubjectService: subjectService}
}

type subjectCreateRequest struct {
	ID                 string `json:"id"`
	CycleID            string `json:"cycle_id" binding:"required"`
	Name               string `json:"name" binding:"required"`
	WeeklyHours        int    `json:"weeklyHours" binding:"required,min=1"`
	Color              string `json:"color"`
	Priority           int    `json:"priority"`
	CurrentWeekMinutes int    `json:"currentWeekMinutes"`
	TotalMinutes       int    `json:"totalMinutes"`
	TotalSessions      int    `json:"totalSessions"`
}

type subjectUpdateRequest struct {
	Name               string `json:"name" binding:"required"`
	WeeklyHours        int    `json:"weeklyHours" binding:"required,min=1"`
	Color              string `json:"color"`
	Priority           int    `json:"priority"`
	CurrentWeekMinutes int    `json:"currentWeekMinutes"`
	TotalMinutes       int    `json:"totalMinutes"`
	TotalSessions      int    `json:"totalSessions"`
}

// @Summary 创建学科
// @Description 在周期下创建学科，ID 已存在时覆盖
// @Tags 学科
// @Accept json
// @Produce json
// @Param subject body subjectCreateRequest true "学科"
// @Success 201 {object} util.Response
// @Router /api/subjects [post]
func (c *SubjectController) Create(ctx *gin.Context) {
	var req subjectCreateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	subject := &model.Subject{
		ID:                 req.ID,
		CycleID:            req.CycleID,
		Name:               req.Name,
		WeeklyHours:        req.WeeklyHours,
		Color:              req.Color,
		Priority:           req.Priority,
		CurrentWeekMinutes: req.CurrentWeekMinutes,
		TotalMinutes:       req.TotalMinutes,
		TotalSessions:      req.TotalSessions,
	}
	if err := c.SubjectService.Create(subject); err != nil {
		if errors.Is(err, util.ErrCycleNotFound) {
			util.BadRequest(ctx, err.Error())
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Created(ctx, subject)
}

// @Summary 获取所有学科
// @Tags 学科
// @Produce json
// @Success 200 {object} util.Response
// @Router /api/subjects [get]
func (c *SubjectController) List(ctx *gin.Context) {
	subjects, err := c.SubjectService.List()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, subjects)
}

// @Summary 更新学科
// @Tags 学科
// @Accept json
// @Produce json
// @Param id path string true "学科ID"
// @Param subject body subjectUpdateRequest true "学科"
// @Success 200 {object} util.Response
// @Router /api/subjects/{id} [put]
func (c *SubjectController) Update(ctx *gin.Context) {
	var req subjectUpdateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	updated := &model.Subject{
		Name:               req.Name,
		WeeklyHours:        req.WeeklyHours,
		Color:              req.Color,
		Priority:           req.Priority,
		CurrentWeekMinutes: req.CurrentWeekMinutes,
		TotalMinutes:       req.TotalMinutes,
		TotalSessions:      req.TotalSessions,
	}
	if err := c.SubjectService.Update(ctx.Param("id"), updated); err != nil {
		if errors.Is(err, util.ErrSubjectNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"message": "Subject updated"})
}

// @Summary 删除学科
// @Description 删除学科及其会话
// @Tags 学科
// @Produce json
// @Param id path string true "学科ID"
// @Success 200 {object} util.Response
// @Router /api/subjects/{id} [delete]
func (c *SubjectController) Delete(ctx *gin.Context) {
	if err := c.SubjectService.Delete(ctx.Param("id")); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"message": "Subject deleted"})
}
