package controller

import (
	"errors"
	"io"
	"net/http"
	"pomodoro_backend/internal/service"
	"pomodoro_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type BackupController struct {
	BackupService *service.BackupService
}

func NewBackupController(backupService *service.BackupService) *BackupController {
	return &BackupController{BackupService: backupService}
}

// @Summary 创建备份
// @Description 生成全库 JSON 快照，归档到存储后端并作为附件返回
// @Tags 备份
// @Produce application/octet-stream
// @Success 200 {string} string
// @Router /api/backup/create [post]
func (c *BackupController) Create(ctx *gin.Context) {
	filename, payload, err := c.BackupService.Create(ctx.Request.Context())
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	ctx.Header("Content-Disposition", "attachment; filename="+filename)
	ctx.Data(http.StatusOK, "application/octet-stream", payload)
}

// @Summary 恢复备份
// @Description 用上传的备份文件覆盖当前数据
// @Tags 备份
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "备份文件"
// @Success 200 {object} util.Response
// @Router /api/backup/restore [post]
func (c *BackupController) Restore(ctx *gin.Context) {
	payload, err := readBackupPayload(ctx)
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.BackupService.Restore(payload); err != nil {
		if errors.Is(err, util.ErrInvalidBackupFile) {
			util.BadRequest(ctx, err.Error())
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"message": "Backup restored successfully"})
}

// readBackupPayload 支持 multipart 上传和原始请求体两种方式
func readBackupPayload(ctx *gin.Context) ([]byte, error) {
	if file, err := ctx.FormFile("file"); err == nil {
		src, err := file.Open()
		if err != nil {
			return nil, err
		}
		defer src.Close()
		return io.ReadAll(src)
	}
	return io.ReadAll(ctx.Request.Body)
}
