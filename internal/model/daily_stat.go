package model

// DailyStat 按日期维护的计时器计数（番茄钟完成数、专注/休息总时长）
type DailyStat struct {
	ID                uint   `gorm:"primaryKey;autoIncrement" json:"-"`
	Date              string `gorm:"type:varchar(10);uniqueIndex;not null" json:"date"`
	CompletedSessions int    `gorm:"default:0" json:"completedSessions"`
	TotalFocusTime    int    `gorm:"default:0" json:"totalFocusTime"`
	TotalBreakTime    int    `gorm:"default:0" json:"totalBreakTime"`
}

func (DailyStat) TableName() string {
	return "stats"
}
