package model

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Subject 学科，归属于一个周期
// CurrentWeekMinutes 为本周累计分钟数，由调用方在记录会话后维护，
// 周切换时通过 reset-week 清零
type Subject struct {
	ID                 string `gorm:"primaryKey;type:varchar(36)" json:"id"`
	CycleID            string `gorm:"index;type:varchar(36);not null" json:"cycleId"`
	Name               string `gorm:"not null" json:"name"`
	WeeklyHours        int    `gorm:"not null" json:"weeklyHours"`
	Color              string `gorm:"type:varchar(16)" json:"color"`
	Priority           int    `gorm:"not null" json:"priority"`
	CurrentWeekMinutes int    `gorm:"default:0" json:"currentWeekMinutes"`
	TotalMinutes       int    `gorm:"default:0" json:"totalMinutes"`
	TotalSessions      int    `gorm:"default:0" json:"totalSessions"`
}

func (Subject) TableName() string {
	return "subjects"
}

func (s *Subject) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	return
}
