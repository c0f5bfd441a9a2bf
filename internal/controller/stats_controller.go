package controller

import (
	"pomodoro_backend/internal/model"
	"pomodoro_backend/internal/service"
	"pomodoro_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type StatsController struct {
	StatsService     *service.StatsService
	DailyStatService *service.DailyStatService
}

func NewStatsController(statsService *service.StatsService, dailyStatService *service.DailyStatService) *StatsController {
	return &StatsController{
		StatsService:     statsService,
		DailyStatService: dailyStatService,
	}
}

// @Summary 获取总览统计
// @Description 总学习分钟数、会话数、学科数和当前连续天数
// @Tags 统计
// @Produce json
// @Success 200 {object} util.Response
// @Router /api/stats/general [get]
func (c *StatsController) GetGeneral(ctx *gin.Context) {
	stats, err := c.StatsService.GetGeneralStats()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, stats)
}

// @Summary 获取演化曲线数据
// @Description 按日汇总的学习小时数，可按周期窗口和学科过滤
// @Tags 统计
// @Produce json
// @Param period query string false "窗口：week/month/year" default(week)
// @Param subject query string false "学科ID，all 表示全部" default(all)
// @Success 200 {object} util.Response
// @Router /api/stats/chart-data [get]
func (c *StatsController) GetChartData(ctx *gin.Context) {
	period := ctx.DefaultQuery("period", "week")
	subject := ctx.DefaultQuery("subject", "all")

	data, err := c.StatsService.GetChartData(period, subject)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, data)
}

// @Summary 获取活动热力图
// @Description 最近 30 天按星期和整点分桶的强度矩阵
// @Tags 统计
// @Produce json
// @Success 200 {object} util.Response
// @Router /api/stats/heatmap [get]
func (c *StatsController) GetHeatmap(ctx *gin.Context) {
	heatmap, err := c.StatsService.GetHeatmap()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, heatmap)
}

// @Summary 获取学习模式分析
// @Description 最佳时段、最佳星期、平均时长和完成率
// @Tags 统计
// @Produce json
// @Success 200 {object} util.Response
// @Router /api/stats/patterns [get]
func (c *StatsController) GetPatterns(ctx *gin.Context) {
	patterns, err := c.StatsService.GetStudyPatterns()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, patterns)
}

// @Summary 获取学科排行榜
// @Description 按本周累计分钟数降序，零会话学科也会出现
// @Tags 统计
// @Produce json
// @Success 200 {object} util.Response
// @Router /api/stats/ranking [get]
func (c *StatsController) GetRanking(ctx *gin.Context) {
	ranking, err := c.StatsService.GetSubjectRanking()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, ranking)
}

type dailyStatUpdateRequest struct {
	CompletedSessions int `json:"completedSessions"`
	TotalFocusTime    int `json:"totalFocusTime"`
	TotalBreakTime    int `json:"totalBreakTime"`
}

// @Summary 获取某日的计时统计
// @Description 不存在时创建全零记录
// @Tags 统计
// @Produce json
// @Param date path string true "日期 YYYY-MM-DD"
// @Success 200 {object} util.Response
// @Router /api/stats/{date} [get]
func (c *StatsController) GetByDate(ctx *gin.Context) {
	stat, err := c.DailyStatService.GetOrCreate(ctx.Param("date"))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, stat)
}

// @Summary 更新某日的计时统计
// @Tags 统计
// @Accept json
// @Produce json
// @Param date path string true "日期 YYYY-MM-DD"
// @Param stats body dailyStatUpdateRequest true "统计"
// @Success 200 {object} util.Response
// @Router /api/stats/{date} [put]
func (c *StatsController) UpdateByDate(ctx *gin.Context) {
	var req dailyStatUpdateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	stat := &model.DailyStat{
		CompletedSessions: req.CompletedSessions,
		TotalFocusTime:    req.TotalFocusTime,
		TotalBreakTime:    req.TotalBreakTime,
	}
	if err := c.DailyStatService.Update(ctx.Param("date"), stat); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"message": "Stats updated"})
}
