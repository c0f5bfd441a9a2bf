package repository

import (
	"pomodoro_backend/internal/model"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedSession(t *testing.T, repo *SessionRepository, subjectID string, startedAt time.Time, minutes int) {
	t.Helper()
	require.NoError(t, repo.Create(&model.StudySession{
		SubjectID:   subjectID,
		Minutes:     minutes,
		StartedAt:   startedAt,
		CompletedAt: startedAt.Add(time.Duration(minutes) * time.Minute),
	}))
}

func TestSessionFindAllOrdered(t *testing.T) {
	repo := NewSessionRepository(newTestDB(t))

	base := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	seedSession(t, repo, "s1", base.Add(2*time.Hour), 25)
	seedSession(t, repo, "s1", base, 50)

	sessions, err := repo.FindAll()
	require.NoError(t, err)
	require.Len(t, sessions, 2)
	assert.Equal(t, 50, sessions[0].Minutes)
	assert.Equal(t, 25, sessions[1].Minutes)
}

func TestSessionFindSince(t *testing.T) {
	repo := NewSessionRepository(newTestDB(t))

	base := time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)
	seedSession(t, repo, "s1", base.AddDate(0, 0, -10), 25)
	seedSession(t, repo, "s1", base.AddDate(0, 0, -2), 30)
	seedSession(t, repo, "s2", base, 45)

	sessions, err := repo.FindSince(base.AddDate(0, 0, -7))
	require.NoError(t, err)
	require.Len(t, sessions, 2)

	filtered, err := repo.FindSinceForSubject(base.AddDate(0, 0, -7), "s2")
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, 45, filtered[0].Minutes)
}

func TestSessionCountBySubject(t *testing.T) {
	repo := NewSessionRepository(newTestDB(t))

	base := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	seedSession(t, repo, "s1", base, 25)
	seedSession(t, repo, "s1", base.Add(time.Hour), 25)
	seedSession(t, repo, "s2", base, 25)

	counts, err := repo.CountBySubject()
	require.NoError(t, err)
	assert.Equal(t, map[string]int64{"s1": 2, "s2": 1}, counts)
}

func TestSessionFindAllWithSubject(t *testing.T) {
	db := newTestDB(t)
	subjectRepo := NewSubjectRepository(db)
	sessionRepo := NewSessionRepository(db)

	require.NoError(t, subjectRepo.CreateOrReplace(&model.Subject{ID: "s1", CycleID: "c1", Name: "Math"}))
	base := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	seedSession(t, sessionRepo, "s1", base, 25)
	// 学科已删除的会话保留空名
	seedSession(t, sessionRepo, "gone", base.Add(time.Hour), 30)

	rows, err := sessionRepo.FindAllWithSubject()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Math", rows[0].SubjectName)
	assert.Empty(t, rows[1].SubjectName)
}
