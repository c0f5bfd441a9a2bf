package controller

import (
	"errors"
	"pomodoro_backend/internal/model"
	"pomodoro_backend/internal/service"
	"pomodoro_backend/internal/util"
	"time"

	"github.com/gin-gonic/gin"
)

type SessionController struct {
	SessionService *service.SessionService
}

func NewSessionController(sessionService *service.SessionService) *SessionController {
	return &SessionController{SessionService: sessionService}
}

type sessionCreateRequest struct {
	SubjectID   string    `json:"subject_id" binding:"required"`
	Minutes     int       `json:"minutes" binding:"required,min=1"`
	StartedAt   time.Time `json:"started_at" binding:"required"`
	CompletedAt time.Time `json:"completed_at" binding:"required"`
}

// @Summary 记录学习会话
// @Description 记录一次完成的学习会话
// @Tags 会话
// @Accept json
// @Produce json
// @Param session body sessionCreateRequest true "会话"
// @Success 201 {object} util.Response
// @Router /api/sessions [post]
func (c *SessionController) Create(ctx *gin.Context) {
	var req sessionCreateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	session := &model.StudySession{
		SubjectID:   req.SubjectID,
		Minutes:     req.Minutes,
		StartedAt:   req.StartedAt,
		CompletedAt: req.CompletedAt,
	}
	if err := c.SessionService.Create(session); err != nil {
		switch {
		case errors.Is(err, util.ErrInvalidSession):
			util.BadRequest(ctx, err.Error())
		case errors.Is(err, util.ErrSubjectNotFound):
			util.BadRequest(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Created(ctx, session)
}

// @Summary 获取所有学习会话
// @Tags 会话
// @Produce json
// @Success 200 {object} util.Response
// @Router /api/sessions [get]
func (c *SessionController) List(ctx *gin.Context) {
	sessions, err := c.SessionService.List()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, sessions)
}
