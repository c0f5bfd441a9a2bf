package repository

import (
	"errors"
	"pomodoro_backend/internal/model"

	"gorm.io/gorm"
)

type DailyStatRepository struct {
	DB *gorm.DB
}

func NewDailyStatRepository(db *gorm.DB) *DailyStatRepository {
	return &DailyStatRepository{DB: db}
}

// GetOrCreate 返回指定日期的统计记录，不存在时创建全零记录
func (r *DailyStatRepository) GetOrCreate(date string) (*model.DailyStat, error) {
	var stat model.DailyStat
	err := r.DB.Where("date = ?", date).First(&stat).Error
	if err == nil {
		return &stat, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	stat = model.DailyStat{Date: date}
	if err := r.DB.Create(&stat).Error; err != nil {
		return nil, err
	}
	return &stat, nil
}

func (r *DailyStatRepository) Update(date string, stat *model.DailyStat) error {
	return r.DB.Model(&model.DailyStat{}).Where("date = ?", date).Updates(map[string]interface{}{
		"completed_sessions": stat.CompletedSessions,
		"total_focus_time":   stat.TotalFocusTime,
		"total_break_time":   stat.TotalBreakTime,
	}).Error
}

func (r *DailyStatRepository) FindAll() ([]model.DailyStat, error) {
	var stats []model.DailyStat
	err := r.DB.Order("date ASC").Find(&stats).Error
	return stats, err
}
