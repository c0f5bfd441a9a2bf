package controller

import (
	"fmt"
	"net/http"
	"pomodoro_backend/internal/service"
	"pomodoro_backend/internal/util"
	"time"

	"github.com/gin-gonic/gin"
)

type ExportController struct {
	ExportService *service.ExportService
}

func NewExportController(exportService *service.ExportService) *ExportController {
	return &ExportController{ExportService: exportService}
}

// @Summary 导出 CSV
// @Description 导出所有学习会话为 CSV 附件
// @Tags 导出
// @Produce text/csv
// @Success 200 {string} string
// @Router /api/export/csv [get]
func (c *ExportController) ExportCSV(ctx *gin.Context) {
	data, err := c.ExportService.ExportCSV()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	filename := fmt.Sprintf("pomodoro-stats-%s.csv", time.Now().Format("2006-01-02"))
	ctx.Header("Content-Disposition", "attachment; filename="+filename)
	ctx.Data(http.StatusOK, "text/csv", data)
}

// @Summary 导出 JSON
// @Description 导出周期、学科和会话的完整快照
// @Tags 导出
// @Produce json
// @Success 200 {object} util.Response
// @Router /api/export/json [get]
func (c *ExportController) ExportJSON(ctx *gin.Context) {
	bundle, err := c.ExportService.ExportJSON()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, bundle)
}
