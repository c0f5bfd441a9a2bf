package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Cycle 学习周期：一组带周目标的学科
type Cycle struct {
	ID            string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Name          string    `gorm:"not null" json:"name"`
	StudyDays     []string  `gorm:"type:json;serializer:json" json:"studyDays"`
	CreatedAt     time.Time `json:"createdAt"`
	WeekStartDate string    `gorm:"type:varchar(32)" json:"weekStartDate"`
	IsActive      bool      `gorm:"default:false;index" json:"isActive"`
	Subjects      []Subject `gorm:"foreignKey:CycleID;constraint:OnDelete:CASCADE" json:"subjects"`
}

func (Cycle) TableName() string {
	return "cycles"
}

func (c *Cycle) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return
}
