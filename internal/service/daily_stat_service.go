package service

import (
	"pomodoro_backend/internal/model"
	"pomodoro_backend/internal/repository"
)

// DailyStatService 计时器的按日计数（番茄钟完成数、专注/休息时长），
// 与派生统计无关，单纯的读改写
type DailyStatService struct {
	DailyStatRepo *repository.DailyStatRepository
}

func NewDailyStatService(dailyStatRepo *repository.DailyStatRepository) *DailyStatService {
	return &DailyStatService{DailyStatRepo: dailyStatRepo}
}

func (s *DailyStatService) GetOrCreate(date string) (*model.DailyStat, error) {
	return s.DailyStatRepo.GetOrCreate(date)
}

func (s *DailyStatService) Update(date string, stat *model.DailyStat) error {
	if _, err := s.DailyStatRepo.GetOrCreate(date); err != nil {
		return err
	}
	return s.DailyStatRepo.Update(date, stat)
}
