package service

import (
	"errors"
	"pomodoro_backend/internal/model"
	"pomodoro_backend/internal/repository"
	"pomodoro_backend/internal/util"
	"pomodoro_backend/pkg/monitoring"

	"gorm.io/gorm"
)

type SessionService struct {
	SessionRepo *repository.SessionRepository
	SubjectRepo *repository.SubjectRepository
	Stats       *StatsService
}

func NewSessionService(sessionRepo *repository.SessionRepository, subjectRepo *repository.SubjectRepository, stats *StatsService) *SessionService {
	return &SessionService{
		SessionRepo: sessionRepo,
		SubjectRepo: subjectRepo,
		Stats:       stats,
	}
}

// Create 记录一次学习会话。只做插入，学科上的累计字段由调用方维护。
func (s *SessionService) Create(session *model.StudySession) error {
	if session.Minutes <= 0 || session.CompletedAt.Before(session.StartedAt) {
		return util.ErrInvalidSession
	}

	// 会话必须指向已存在的学科
	if _, err := s.SubjectRepo.FindByID(session.SubjectID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrSubjectNotFound
		}
		return err
	}

	if err := s.SessionRepo.Create(session); err != nil {
		return err
	}

	monitoring.SessionCounter.Inc()
	s.Stats.InvalidateCache()
	return nil
}

func (s *SessionService) List() ([]model.StudySession, error) {
	return s.SessionRepo.FindAll()
}
