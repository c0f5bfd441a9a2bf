package controller

import (
	"errors"
	"pomodoro_backend/internal/model"
	"pomodoro_backend/internal/service"
	"pomodoro_backend/internal/util"
	"time"

	"github.com/gin-gonic/gin"
)

type CycleController struct {
	CycleService *service.CycleService
}

func NewCycleController(cycleService *service.CycleService) *CycleController {
	return &CycleController{CycleService: cycleService}
}

type cycleCreateRequest struct {
	ID            string    `json:"id"`
	Name          string    `json:"name" binding:"required"`
	StudyDays     []string  `json:"study_days" binding:"required"`
	CreatedAt     time.Time `json:"created_at"`
	WeekStartDate string    `json:"week_start_date"`
	IsActive      bool      `json:"is_active"`
}

type cycleUpdateRequest struct {
	Name          string   `json:"name" binding:"required"`
	StudyDays     []string `json:"study_days" binding:"required"`
	WeekStartDate string   `json:"week_start_date"`
}

// @Summary 创建学习周期
// @Description 创建新的学习周期，ID 已存在时覆盖
// @Tags 周期
// @Accept json
// @Produce json
// @Param cycle body cycleCreateRequest true "周期"
// @Success 201 {object} util.Response
// @Router /api/cycles [post]
func (c *CycleController) Create(ctx *gin.Context) {
	var req cycleCreateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	cycle := &model.Cycle{
		ID:            req.ID,
		Name:          req.Name,
		StudyDays:     req.StudyDays,
		CreatedAt:     req.CreatedAt,
		WeekStartDate: req.WeekStartDate,
		IsActive:      req.IsActive,
	}
	if err := c.CycleService.Create(cycle); err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Created(ctx, cycle)
}

// @Summary 获取所有周期
// @Tags 周期
// @Produce json
// @Success 200 {object} util.Response
// @Router /api/cycles [get]
func (c *CycleController) List(ctx *gin.Context) {
	cycles, err := c.CycleService.List()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, cycles)
}

// @Summary 获取当前激活的周期
// @Tags 周期
// @Produce json
// @Success 200 {object} util.Response
// @Router /api/cycles/active [get]
func (c *CycleController) GetActive(ctx *gin.Context) {
	cycle, err := c.CycleService.GetActive()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, cycle)
}

// @Summary 获取指定周期
// @Tags 周期
// @Produce json
// @Param id path string true "周期ID"
// @Success 200 {object} util.Response
// @Router /api/cycles/{id} [get]
func (c *CycleController) Get(ctx *gin.Context) {
	cycle, err := c.CycleService.Get(ctx.Param("id"))
	if err != nil {
		if errors.Is(err, util.ErrCycleNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, cycle)
}

// @Summary 激活周期
// @Description 激活指定周期，其余周期全部取消激活
// @Tags 周期
// @Produce json
// @Param id path string true "周期ID"
// @Success 200 {object} util.Response
// @Router /api/cycles/{id}/activate [put]
func (c *CycleController) Activate(ctx *gin.Context) {
	if err := c.CycleService.Activate(ctx.Param("id")); err != nil {
		if errors.Is(err, util.ErrCycleNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"message": "Cycle activated"})
}

// @Summary 更新周期
// @Tags 周期
// @Accept json
// @Produce json
// @Param id path string true "周期ID"
// @Param cycle body cycleUpdateRequest true "周期"
// @Success 200 {object} util.Response
// @Router /api/cycles/{id} [put]
func (c *CycleController) Update(ctx *gin.Context) {
	var req cycleUpdateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	err := c.CycleService.Update(ctx.Param("id"), req.Name, req.StudyDays, req.WeekStartDate)
	if err != nil {
		if errors.Is(err, util.ErrCycleNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"message": "Cycle updated"})
}

// @Summary 删除周期
// @Description 删除周期及其学科和会话
// @Tags 周期
// @Produce json
// @Param id path string true "周期ID"
// @Success 200 {object} util.Response
// @Router /api/cycles/{id} [delete]
func (c *CycleController) Delete(ctx *gin.Context) {
	if err := c.CycleService.Delete(ctx.Param("id")); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"message": "Cycle deleted"})
}

// @Summary 重置周期的本周分钟数
// @Description 周切换时将周期内所有学科的本周累计分钟数清零
// @Tags 周期
// @Produce json
// @Param id path string true "周期ID"
// @Success 200 {object} util.Response
// @Router /api/cycles/{id}/reset-week [put]
func (c *CycleController) ResetWeek(ctx *gin.Context) {
	if err := c.CycleService.ResetWeek(ctx.Param("id")); err != nil {
		if errors.Is(err, util.ErrCycleNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"message": "Week reset"})
}
