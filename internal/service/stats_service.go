package service

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"pomodoro_backend/internal/model"
	"pomodoro_backend/pkg/logger"
	"pomodoro_backend/pkg/monitoring"
	"sort"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// SessionReader 统计层对会话存储的只读视图
type SessionReader interface {
	FindAll() ([]model.StudySession, error)
	FindSince(since time.Time) ([]model.StudySession, error)
	FindSinceForSubject(since time.Time, subjectID string) ([]model.StudySession, error)
	CountBySubject() (map[string]int64, error)
}

// SubjectReader 排行榜对学科存储的只读视图
type SubjectReader interface {
	FindAll() ([]*model.Subject, error)
}

// StatsService 统计聚合层：六个只读运算，全部不修改存储。
// Redis 为可选的读穿缓存，为 nil 时每次直接计算。
type StatsService struct {
	Sessions SessionReader
	Subjects SubjectReader
	Redis    *redis.Client
	CacheTTL time.Duration
}

func NewStatsService(sessions SessionReader, subjects SubjectReader, rdb *redis.Client, cacheTTL time.Duration) *StatsService {
	return &StatsService{
		Sessions: sessions,
		Subjects: subjects,
		Redis:    rdb,
		CacheTTL: cacheTTL,
	}
}

const (
	heatmapFirstHour = 6
	heatmapLastHour  = 22

	// 完成率的参考会话时长（分钟）
	referenceDuration = 25

	statsCachePrefix = "stats:"
)

// 周一起始的星期名表
var weekdayNames = [7]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// GetGeneralStats 全量汇总：总分钟数、会话数、出现过会话的学科数、当前连续天数
func (s *StatsService) GetGeneralStats() (*model.GeneralStats, error) {
	var cached model.GeneralStats
	if s.fromCache("general", &cached) {
		return &cached, nil
	}

	sessions, err := s.Sessions.FindAll()
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}

	now := time.Now()
	stats := &model.GeneralStats{TotalSessions: len(sessions)}
	seen := make(map[string]struct{})
	for _, sess := range sessions {
		stats.TotalMinutes += sess.Minutes
		seen[sess.SubjectID] = struct{}{}
	}
	stats.TotalSubjects = len(seen)
	stats.CurrentStreak = currentStreak(sessions, now)

	s.toCache("general", stats)
	return stats, nil
}

// currentStreak 以 now 所在日为起点往回数连续有会话的天数。
// 今天没有会话时直接为 0，不从最近活跃日往回数。
func currentStreak(sessions []model.StudySession, now time.Time) int {
	seen := make(map[time.Time]struct{})
	var days []time.Time
	for _, sess := range sessions {
		d := dayOf(sess.StartedAt.Local())
		if _, ok := seen[d]; !ok {
			seen[d] = struct{}{}
			days = append(days, d)
		}
	}
	sort.Slice(days, func(i, j int) bool { return days[i].After(days[j]) })

	today := dayOf(now.Local())
	streak := 0
	for i, d := range days {
		if !d.Equal(today.AddDate(0, 0, -i)) {
			break
		}
		streak++
	}
	return streak
}

func dayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// periodDays week=7 month=30，其余值一律回退到 365
func periodDays(period string) int {
	switch period {
	case "week":
		return 7
	case "month":
		return 30
	default:
		return 365
	}
}

// GetChartData 演化曲线：窗口内按日汇总分钟数并换算成小时。
// 没有会话的日期不出现在序列里（稀疏序列，不补零）。
func (s *StatsService) GetChartData(period, subjectID string) (*model.ChartData, error) {
	cacheKey := "chart:" + period + ":" + subjectID
	var cached model.ChartData
	if s.fromCache(cacheKey, &cached) {
		return &cached, nil
	}

	now := time.Now()
	since := now.AddDate(0, 0, -periodDays(period))

	var sessions []model.StudySession
	var err error
	if subjectID == "" || subjectID == "all" {
		sessions, err = s.Sessions.FindSince(since)
	} else {
		sessions, err = s.Sessions.FindSinceForSubject(since, subjectID)
	}
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}

	totals := make(map[time.Time]int)
	for _, sess := range sessions {
		totals[dayOf(sess.StartedAt.Local())] += sess.Minutes
	}

	days := make([]time.Time, 0, len(totals))
	for d := range totals {
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	labels := make([]string, 0, len(days))
	hours := make([]float64, 0, len(days))
	for _, d := range days {
		labels = append(labels, d.Format("02/01"))
		hours = append(hours, float64(totals[d])/60.0)
	}

	data := &model.ChartData{
		Evolution: model.ChartSeries{
			Labels:   labels,
			Datasets: []model.ChartDataset{{Label: "Study Hours", Data: hours}},
		},
		// Subjects 为按学科拆分的预留位
	}

	s.toCache(cacheKey, data)
	return data, nil
}

// GetHeatmap 最近 30 天的活动热力图。每个会话按开始整点归入一个桶，
// 强度为 floor(minutes/15)；6 点前或 22 点后开始的会话直接丢弃，不并入边界桶。
func (s *StatsService) GetHeatmap() (*model.Heatmap, error) {
	var cached model.Heatmap
	if s.fromCache("heatmap", &cached) {
		return &cached, nil
	}

	now := time.Now()
	sessions, err := s.Sessions.FindSince(now.AddDate(0, 0, -30))
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}

	var heatmap model.Heatmap
	for _, sess := range sessions {
		start := sess.StartedAt.Local()
		hour := start.Hour()
		if hour < heatmapFirstHour || hour > heatmapLastHour {
			continue
		}
		heatmap[mondayIndex(start.Weekday())][hour-heatmapFirstHour] += sess.Minutes / 15
	}

	s.toCache("heatmap", &heatmap)
	return &heatmap, nil
}

// mondayIndex 把 time.Weekday（周日=0）映射为周一起始下标
func mondayIndex(wd time.Weekday) int {
	return (int(wd) + 6) % 7
}

// GetStudyPatterns 学习模式分析：最佳时段、最佳星期、平均时长和完成率。
// 空存储返回固定默认记录。平手时取较小的小时下标/较早的星期。
func (s *StatsService) GetStudyPatterns() (*model.StudyPatterns, error) {
	var cached model.StudyPatterns
	if s.fromCache("patterns", &cached) {
		return &cached, nil
	}

	sessions, err := s.Sessions.FindAll()
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}

	if len(sessions) == 0 {
		return &model.StudyPatterns{
			BestTime:    "14:00 - 16:00",
			BestDay:     "Monday",
			AvgDuration: referenceDuration,
		}, nil
	}

	var hourMinutes [24]int
	var dayMinutes [7]int
	totalMinutes := 0
	for _, sess := range sessions {
		start := sess.StartedAt.Local()
		hourMinutes[start.Hour()] += sess.Minutes
		dayMinutes[mondayIndex(start.Weekday())] += sess.Minutes
		totalMinutes += sess.Minutes
	}

	bestHour := 0
	for h := 1; h < 24; h++ {
		if hourMinutes[h] > hourMinutes[bestHour] {
			bestHour = h
		}
	}
	bestDay := 0
	for d := 1; d < 7; d++ {
		if dayMinutes[d] > dayMinutes[bestDay] {
			bestDay = d
		}
	}

	avgDuration := referenceDuration
	if len(sessions) > 0 {
		avgDuration = totalMinutes / len(sessions)
	}
	completionRate := int(math.Round(float64(avgDuration) / referenceDuration * 100))
	if completionRate > 100 {
		completionRate = 100
	}

	patterns := &model.StudyPatterns{
		// 展示用的固定两小时窗口，聚合本身仍按单个整点；小时不补零
		BestTime:        fmt.Sprintf("%d:00 - %d:00", bestHour, bestHour+2),
		BestTimeMinutes: hourMinutes[bestHour],
		BestDay:         weekdayNames[bestDay],
		BestDayMinutes:  dayMinutes[bestDay],
		AvgDuration:     avgDuration,
		CompletionRate:  completionRate,
	}

	s.toCache("patterns", patterns)
	return patterns, nil
}

// GetSubjectRanking 学科排行榜：周目标和本周累计直接读学科表，
// 会话数走分组统计，零会话学科补 0。按本周累计降序，平手保持存储顺序。
func (s *StatsService) GetSubjectRanking() ([]model.RankingEntry, error) {
	var cached []model.RankingEntry
	if s.fromCache("ranking", &cached) {
		return cached, nil
	}

	subjects, err := s.Subjects.FindAll()
	if err != nil {
		return nil, fmt.Errorf("query subjects: %w", err)
	}
	counts, err := s.Sessions.CountBySubject()
	if err != nil {
		return nil, fmt.Errorf("count sessions: %w", err)
	}

	ranking := make([]model.RankingEntry, 0, len(subjects))
	for _, subject := range subjects {
		ranking = append(ranking, model.RankingEntry{
			SubjectID:      subject.ID,
			Name:           subject.Name,
			WeeklyHours:    subject.WeeklyHours,
			CurrentMinutes: subject.CurrentWeekMinutes,
			Sessions:       counts[subject.ID],
		})
	}
	sort.SliceStable(ranking, func(i, j int) bool {
		return ranking[i].CurrentMinutes > ranking[j].CurrentMinutes
	})

	s.toCache("ranking", ranking)
	return ranking, nil
}

// InvalidateCache 会话或学科写入后清掉所有统计缓存。
// 扫描失败只告警，残留条目会在 TTL 到期后自行消失。
func (s *StatsService) InvalidateCache() {
	if s.Redis == nil {
		return
	}
	ctx := context.Background()
	iter := s.Redis.Scan(ctx, 0, statsCachePrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		s.Redis.Del(ctx, iter.Val())
	}
	if err := iter.Err(); err != nil {
		logger.Log.Warn("stats cache invalidation scan failed", zap.Error(err))
	}
}

// fromCache 命中时反序列化到 out。缓存异常按未命中处理，绝不掩盖存储错误。
func (s *StatsService) fromCache(key string, out interface{}) bool {
	if s.Redis == nil {
		return false
	}
	val, err := s.Redis.Get(context.Background(), statsCachePrefix+key).Result()
	if err != nil {
		return false
	}
	if err := json.Unmarshal([]byte(val), out); err != nil {
		return false
	}
	monitoring.StatsCacheHits.WithLabelValues(key).Inc()
	return true
}

func (s *StatsService) toCache(key string, val interface{}) {
	if s.Redis == nil {
		return
	}
	payload, err := json.Marshal(val)
	if err != nil {
		return
	}
	s.Redis.Set(context.Background(), statsCachePrefix+key, payload, s.CacheTTL)
}
