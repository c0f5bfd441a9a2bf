package model

import "time"

// StudySession 一次完成的学习会话，只增不改
type StudySession struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	SubjectID   string    `gorm:"index;type:varchar(36);not null" json:"subjectId"`
	Minutes     int       `gorm:"not null" json:"minutes"`
	StartedAt   time.Time `gorm:"not null;index" json:"startedAt"`
	CompletedAt time.Time `gorm:"not null" json:"completedAt"`
}

func (StudySession) TableName() string {
	return "study_sessions"
}
