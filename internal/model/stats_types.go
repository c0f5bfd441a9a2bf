package model

// 统计接口的派生数据结构，只在内存中计算，从不落库

// GeneralStats 总览统计
type GeneralStats struct {
	TotalMinutes  int `json:"totalMinutes"`
	TotalSessions int `json:"totalSessions"`
	TotalSubjects int `json:"totalSubjects"`
	CurrentStreak int `json:"currentStreak"`
}

// ChartDataset 单条曲线
type ChartDataset struct {
	Label string    `json:"label"`
	Data  []float64 `json:"data"`
}

// ChartSeries 按日期排序的折线图数据
type ChartSeries struct {
	Labels   []string       `json:"labels"`
	Datasets []ChartDataset `json:"datasets"`
}

// ChartData 演化曲线；Subjects 为按学科拆分的预留位，暂不实现
type ChartData struct {
	Evolution ChartSeries  `json:"evolution"`
	Subjects  *ChartSeries `json:"subjects"`
}

// Heatmap 7x17 强度矩阵：行为星期（周一=0），列为 6 点到 22 点的整点桶
type Heatmap [7][17]int

// StudyPatterns 学习模式分析
type StudyPatterns struct {
	BestTime        string `json:"bestTime"`
	BestTimeMinutes int    `json:"bestTimeMinutes"`
	BestDay         string `json:"bestDay"`
	BestDayMinutes  int    `json:"bestDayMinutes"`
	AvgDuration     int    `json:"avgDuration"`
	CompletionRate  int    `json:"completionRate"`
}

// RankingEntry 学科排行榜条目，按本周累计分钟数降序
type RankingEntry struct {
	SubjectID      string `json:"id"`
	Name           string `json:"name"`
	WeeklyHours    int    `json:"weeklyHours"`
	CurrentMinutes int    `json:"currentMinutes"`
	Sessions       int64  `json:"sessions"`
}
