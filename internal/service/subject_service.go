package service

import (
	"errors"
	"pomodoro_backend/internal/model"
	"pomodoro_backend/internal/repository"
	"pomodoro_backend/internal/util"

	"gorm.io/gorm"
)

type SubjectService struct {
	SubjectRepo *repository.SubjectRepository
	CycleRepo   *repository.CycleRepository
	Stats       *StatsService
}

func NewSubjectService(subjectRepo *repository.SubjectRepository, cycleRepo *repository.CycleRepository, stats *StatsService) *SubjectService {
	return &SubjectService{
		SubjectRepo: subjectRepo,
		CycleRepo:   cycleRepo,
		Stats:       stats,
	}
}

func (s *SubjectService) Create(subject *model.Subject) error {
	if _, err := s.CycleRepo.FindByID(subject.CycleID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrCycleNotFound
		}
		return err
	}
	if err := s.SubjectRepo.CreateOrReplace(subject); err != nil {
		return err
	}
	s.Stats.InvalidateCache()
	return nil
}

func (s *SubjectService) List() ([]*model.Subject, error) {
	return s.SubjectRepo.FindAll()
}

func (s *SubjectService) Update(id string, updated *model.Subject) error {
	subject, err := s.SubjectRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrSubjectNotFound
		}
		return err
	}

	subject.Name = updated.Name
	subject.WeeklyHours = updated.WeeklyHours
	subject.Color = updated.Color
	subject.Priority = updated.Priority
	subject.CurrentWeekMinutes = updated.CurrentWeekMinutes
	subject.TotalMinutes = updated.TotalMinutes
	subject.TotalSessions = updated.TotalSessions

	if err := s.SubjectRepo.CreateOrReplace(subject); err != nil {
		return err
	}
	s.Stats.InvalidateCache()
	return nil
}

func (s *SubjectService) Delete(id string) error {
	if err := s.SubjectRepo.Delete(id); err != nil {
		return err
	}
	s.Stats.InvalidateCache()
	return nil
}
