package service

import (
	"errors"
	"fmt"
	"pomodoro_backend/internal/model"
	"pomodoro_backend/internal/repository"
	"pomodoro_backend/internal/util"

	"gorm.io/gorm"
)

type CycleService struct {
	CycleRepo   *repository.CycleRepository
	SubjectRepo *repository.SubjectRepository
	Stats       *StatsService
}

func NewCycleService(cycleRepo *repository.CycleRepository, subjectRepo *repository.SubjectRepository, stats *StatsService) *CycleService {
	return &CycleService{
		CycleRepo:   cycleRepo,
		SubjectRepo: subjectRepo,
		Stats:       stats,
	}
}

func (s *CycleService) Create(cycle *model.Cycle) error {
	return s.CycleRepo.CreateOrReplace(cycle)
}

func (s *CycleService) List() ([]*model.Cycle, error) {
	return s.CycleRepo.FindAll()
}

func (s *CycleService) Get(id string) (*model.Cycle, error) {
	cycle, err := s.CycleRepo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrCycleNotFound
	}
	return cycle, err
}

// GetActive 没有激活周期时返回 (nil, nil)
func (s *CycleService) GetActive() (*model.Cycle, error) {
	cycle, err := s.CycleRepo.FindActive()
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return cycle, err
}

// Activate 激活指定周期并取消其余周期，保证最多一个激活
func (s *CycleService) Activate(id string) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	return s.CycleRepo.SetActive(id)
}

func (s *CycleService) Update(id string, name string, studyDays []string, weekStartDate string) error {
	cycle, err := s.Get(id)
	if err != nil {
		return err
	}
	cycle.Name = name
	cycle.StudyDays = studyDays
	if weekStartDate != "" {
		cycle.WeekStartDate = weekStartDate
	}
	return s.CycleRepo.Save(cycle)
}

func (s *CycleService) Delete(id string) error {
	if err := s.CycleRepo.Delete(id); err != nil {
		return fmt.Errorf("delete cycle: %w", err)
	}
	s.Stats.InvalidateCache()
	return nil
}

// ResetWeek 周切换：清零周期内所有学科的本周累计分钟数
func (s *CycleService) ResetWeek(cycleID string) error {
	if _, err := s.Get(cycleID); err != nil {
		return err
	}
	if err := s.SubjectRepo.ResetWeekMinutes(cycleID); err != nil {
		return fmt.Errorf("reset week minutes: %w", err)
	}
	s.Stats.InvalidateCache()
	return nil
}
