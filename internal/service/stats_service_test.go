package service

import (
	"pomodoro_backend/internal/model"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSessionReader struct {
	sessions []model.StudySession
	err      error
}

func (f *fakeSessionReader) FindAll() ([]model.StudySession, error) {
	return f.sessions, f.err
}

func (f *fakeSessionReader) FindSince(since time.Time) ([]model.StudySession, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []model.StudySession
	for _, s := range f.sessions {
		if !s.StartedAt.Before(since) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeSessionReader) FindSinceForSubject(since time.Time, subjectID string) ([]model.StudySession, error) {
	sessions, err := f.FindSince(since)
	if err != nil {
		return nil, err
	}
	var out []model.StudySession
	for _, s := range sessions {
		if s.SubjectID == subjectID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeSessionReader) CountBySubject() (map[string]int64, error) {
	if f.err != nil {
		return nil, f.err
	}
	counts := make(map[string]int64)
	for _, s := range f.sessions {
		counts[s.SubjectID]++
	}
	return counts, nil
}

type fakeSubjectReader struct {
	subjects []*model.Subject
}

func (f *fakeSubjectReader) FindAll() ([]*model.Subject, error) {
	return f.subjects, nil
}

func newTestStats(sessions []model.StudySession, subjects []*model.Subject) *StatsService {
	return NewStatsService(&fakeSessionReader{sessions: sessions}, &fakeSubjectReader{subjects: subjects}, nil, 0)
}

func session(subjectID string, startedAt time.Time, minutes int) model.StudySession {
	return model.StudySession{
		SubjectID:   subjectID,
		Minutes:     minutes,
		StartedAt:   startedAt,
		CompletedAt: startedAt.Add(time.Duration(minutes) * time.Minute),
	}
}

// recentWeekday 返回最近一个指定星期的指定整点（本地时区）
func recentWeekday(wd time.Weekday, hour int) time.Time {
	now := time.Now()
	d := now.AddDate(0, 0, -int((now.Weekday()-wd+7)%7))
	return time.Date(d.Year(), d.Month(), d.Day(), hour, 0, 0, 0, time.Local)
}

func TestCurrentStreakConsecutiveDays(t *testing.T) {
	now := time.Date(2026, 3, 10, 15, 0, 0, 0, time.Local)
	sessions := []model.StudySession{
		session("s1", now.Add(-2*time.Hour), 25),
		session("s1", now.AddDate(0, 0, -1), 25),
		session("s2", now.AddDate(0, 0, -2), 25),
		// 四天前有活动但三天前断档，不计入
		session("s1", now.AddDate(0, 0, -4), 25),
	}

	assert.Equal(t, 3, currentStreak(sessions, now))
}

func TestCurrentStreakTodayInactive(t *testing.T) {
	now := time.Date(2026, 3, 10, 15, 0, 0, 0, time.Local)
	sessions := []model.StudySession{
		session("s1", now.AddDate(0, 0, -1), 25),
		session("s1", now.AddDate(0, 0, -2), 25),
	}

	// 昨天和前天都有活动，但今天没有，连续天数归零
	assert.Equal(t, 0, currentStreak(sessions, now))
}

func TestCurrentStreakEmpty(t *testing.T) {
	now := time.Date(2026, 3, 10, 15, 0, 0, 0, time.Local)
	assert.Equal(t, 0, currentStreak(nil, now))
}

func TestCurrentStreakMultipleSessionsSameDay(t *testing.T) {
	now := time.Date(2026, 3, 10, 22, 0, 0, 0, time.Local)
	sessions := []model.StudySession{
		session("s1", now.Add(-10*time.Hour), 25),
		session("s2", now.Add(-4*time.Hour), 50),
		session("s1", now.AddDate(0, 0, -1), 25),
	}

	assert.Equal(t, 2, currentStreak(sessions, now))
}

func TestGetGeneralStats(t *testing.T) {
	now := time.Now()
	svc := newTestStats([]model.StudySession{
		session("math", now, 50),
		session("math", now.AddDate(0, 0, -1), 25),
		session("physics", now.AddDate(0, 0, -1), 30),
	}, nil)

	stats, err := svc.GetGeneralStats()
	require.NoError(t, err)

	assert.Equal(t, 105, stats.TotalMinutes)
	assert.Equal(t, 3, stats.TotalSessions)
	assert.Equal(t, 2, stats.TotalSubjects)
	assert.Equal(t, 2, stats.CurrentStreak)
}

func TestGetGeneralStatsStorageError(t *testing.T) {
	svc := NewStatsService(&fakeSessionReader{err: assert.AnError}, &fakeSubjectReader{}, nil, 0)

	_, err := svc.GetGeneralStats()
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
}

func TestGetChartDataSparseSeries(t *testing.T) {
	now := time.Now()
	dayBefore := now.AddDate(0, 0, -3)
	yesterday := now.AddDate(0, 0, -1)
	svc := newTestStats([]model.StudySession{
		// 同一天两个会话合并成一个点
		session("math", dayBefore, 60),
		session("math", dayBefore.Add(2*time.Hour), 30),
		session("physics", yesterday, 30),
	}, nil)

	data, err := svc.GetChartData("week", "all")
	require.NoError(t, err)

	require.Len(t, data.Evolution.Datasets, 1)
	assert.Equal(t, "Study Hours", data.Evolution.Datasets[0].Label)
	assert.Equal(t, []string{dayBefore.Format("02/01"), yesterday.Format("02/01")}, data.Evolution.Labels)
	assert.Equal(t, []float64{1.5, 0.5}, data.Evolution.Datasets[0].Data)
	assert.Nil(t, data.Subjects)
}

func TestGetChartDataSubjectFilter(t *testing.T) {
	now := time.Now()
	svc := newTestStats([]model.StudySession{
		session("math", now.AddDate(0, 0, -1), 60),
		session("physics", now.AddDate(0, 0, -1), 30),
	}, nil)

	data, err := svc.GetChartData("week", "math")
	require.NoError(t, err)

	require.Len(t, data.Evolution.Labels, 1)
	assert.Equal(t, []float64{1.0}, data.Evolution.Datasets[0].Data)
}

func TestGetChartDataPeriodWindow(t *testing.T) {
	now := time.Now()
	svc := newTestStats([]model.StudySession{
		session("math", now.AddDate(0, 0, -20), 60),
		session("math", now.AddDate(0, 0, -1), 30),
	}, nil)

	// week 窗口只剩一天，month 窗口两天都在
	weekData, err := svc.GetChartData("week", "all")
	require.NoError(t, err)
	assert.Len(t, weekData.Evolution.Labels, 1)

	monthData, err := svc.GetChartData("month", "all")
	require.NoError(t, err)
	assert.Len(t, monthData.Evolution.Labels, 2)
}

func TestGetHeatmapBuckets(t *testing.T) {
	monday6 := recentWeekday(time.Monday, 6)
	sunday22 := recentWeekday(time.Sunday, 22)
	svc := newTestStats([]model.StudySession{
		session("math", monday6, 15),
		session("math", monday6.Add(10*time.Minute), 29),
		session("physics", sunday22, 45),
	}, nil)

	heatmap, err := svc.GetHeatmap()
	require.NoError(t, err)

	// 周一 06 点：15/15 + 29/15 = 1 + 1
	assert.Equal(t, 2, heatmap[0][0])
	// 周日 22 点是最后一列
	assert.Equal(t, 3, heatmap[6][16])
}

func TestGetHeatmapDropsOutsideHours(t *testing.T) {
	svc := newTestStats([]model.StudySession{
		session("math", recentWeekday(time.Tuesday, 5), 60),
		session("math", recentWeekday(time.Tuesday, 23), 60),
	}, nil)

	heatmap, err := svc.GetHeatmap()
	require.NoError(t, err)

	for row := 0; row < 7; row++ {
		for col := 0; col < 17; col++ {
			assert.Zero(t, heatmap[row][col])
		}
	}
}

func TestGetStudyPatternsEmptyDefault(t *testing.T) {
	svc := newTestStats(nil, nil)

	patterns, err := svc.GetStudyPatterns()
	require.NoError(t, err)

	assert.Equal(t, "14:00 - 16:00", patterns.BestTime)
	assert.Equal(t, "Monday", patterns.BestDay)
	assert.Equal(t, 25, patterns.AvgDuration)
	assert.Zero(t, patterns.BestTimeMinutes)
	assert.Zero(t, patterns.BestDayMinutes)
	assert.Zero(t, patterns.CompletionRate)
}

func TestGetStudyPatterns(t *testing.T) {
	// 2026-03-02 是周一
	monday := time.Date(2026, 3, 2, 9, 0, 0, 0, time.Local)
	tuesday := time.Date(2026, 3, 3, 14, 0, 0, 0, time.Local)
	svc := newTestStats([]model.StudySession{
		session("math", monday, 10),
		session("math", tuesday, 30),
		session("physics", tuesday.Add(30*time.Minute), 50),
	}, nil)

	patterns, err := svc.GetStudyPatterns()
	require.NoError(t, err)

	assert.Equal(t, "14:00 - 16:00", patterns.BestTime)
	assert.Equal(t, 80, patterns.BestTimeMinutes)
	assert.Equal(t, "Tuesday", patterns.BestDay)
	assert.Equal(t, 80, patterns.BestDayMinutes)
	// (10+30+50)/3 = 30，完成率 30/25 超过 100% 封顶
	assert.Equal(t, 30, patterns.AvgDuration)
	assert.Equal(t, 100, patterns.CompletionRate)
}

func TestGetStudyPatternsHourTieBreak(t *testing.T) {
	monday := time.Date(2026, 3, 2, 0, 0, 0, 0, time.Local)
	svc := newTestStats([]model.StudySession{
		session("math", monday.Add(14*time.Hour), 30),
		session("math", monday.Add(9*time.Hour), 30),
	}, nil)

	patterns, err := svc.GetStudyPatterns()
	require.NoError(t, err)

	// 分钟数相同取较早的小时；单位数小时不补零
	assert.Equal(t, "9:00 - 11:00", patterns.BestTime)
}

func TestGetStudyPatternsTruncatedAverage(t *testing.T) {
	monday := time.Date(2026, 3, 2, 10, 0, 0, 0, time.Local)
	svc := newTestStats([]model.StudySession{
		session("math", monday, 10),
		session("math", monday.Add(time.Hour), 15),
	}, nil)

	patterns, err := svc.GetStudyPatterns()
	require.NoError(t, err)

	// 12.5 向下取整
	assert.Equal(t, 12, patterns.AvgDuration)
	assert.Equal(t, 48, patterns.CompletionRate)
}

func TestGetSubjectRanking(t *testing.T) {
	now := time.Now()
	subjects := []*model.Subject{
		{ID: "math", Name: "Math", WeeklyHours: 5, CurrentWeekMinutes: 120},
		{ID: "physics", Name: "Physics", WeeklyHours: 3, CurrentWeekMinutes: 200},
		{ID: "history", Name: "History", WeeklyHours: 2, CurrentWeekMinutes: 0},
	}
	svc := newTestStats([]model.StudySession{
		session("math", now.Add(-time.Hour), 60),
		session("math", now.Add(-2*time.Hour), 60),
		session("physics", now.Add(-3*time.Hour), 200),
	}, subjects)

	ranking, err := svc.GetSubjectRanking()
	require.NoError(t, err)
	require.Len(t, ranking, 3)

	assert.Equal(t, "physics", ranking[0].SubjectID)
	assert.Equal(t, int64(1), ranking[0].Sessions)
	assert.Equal(t, "math", ranking[1].SubjectID)
	assert.Equal(t, int64(2), ranking[1].Sessions)
	// 零会话学科保留，计数补 0
	assert.Equal(t, "history", ranking[2].SubjectID)
	assert.Zero(t, ranking[2].Sessions)
}

func TestGetSubjectRankingStableTies(t *testing.T) {
	subjects := []*model.Subject{
		{ID: "a", Name: "A", CurrentWeekMinutes: 60},
		{ID: "b", Name: "B", CurrentWeekMinutes: 60},
	}
	svc := newTestStats(nil, subjects)

	ranking, err := svc.GetSubjectRanking()
	require.NoError(t, err)
	require.Len(t, ranking, 2)

	// 平手保持存储顺序
	assert.Equal(t, "a", ranking[0].SubjectID)
	assert.Equal(t, "b", ranking[1].SubjectID)
}

// 缓存失效时 SCAN 失败只降级告警，不 panic 也不阻塞写路径
func TestInvalidateCacheSurvivesScanFailure(t *testing.T) {
	rdb := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { rdb.Close() })

	svc := NewStatsService(&fakeSessionReader{}, &fakeSubjectReader{}, rdb, time.Minute)

	assert.NotPanics(t, func() { svc.InvalidateCache() })
}

func TestStatsOperationsAreReadOnly(t *testing.T) {
	now := time.Now()
	sessions := []model.StudySession{
		session("math", now.Add(-time.Hour), 50),
		session("physics", now.AddDate(0, 0, -1), 30),
	}
	svc := newTestStats(sessions, []*model.Subject{{ID: "math", Name: "Math"}})

	first, err := svc.GetGeneralStats()
	require.NoError(t, err)

	_, err = svc.GetChartData("week", "all")
	require.NoError(t, err)
	_, err = svc.GetHeatmap()
	require.NoError(t, err)
	_, err = svc.GetStudyPatterns()
	require.NoError(t, err)
	_, err = svc.GetSubjectRanking()
	require.NoError(t, err)

	second, err := svc.GetGeneralStats()
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
