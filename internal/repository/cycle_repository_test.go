package repository

import (
	"pomodoro_backend/internal/model"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCycleCreateOrReplace(t *testing.T) {
	repo := NewCycleRepository(newTestDB(t))

	cycle := &model.Cycle{
		ID:            "c1",
		Name:          "Spring Semester",
		StudyDays:     []string{"monday", "wednesday"},
		WeekStartDate: "2026-03-02",
	}
	require.NoError(t, repo.CreateOrReplace(cycle))

	// 相同 ID 再次写入是整体覆盖而不是新增
	cycle.Name = "Spring Semester v2"
	cycle.StudyDays = []string{"tuesday"}
	require.NoError(t, repo.CreateOrReplace(cycle))

	cycles, err := repo.FindAll()
	require.NoError(t, err)
	require.Len(t, cycles, 1)
	assert.Equal(t, "Spring Semester v2", cycles[0].Name)
	assert.Equal(t, []string{"tuesday"}, cycles[0].StudyDays)
}

func TestCycleGeneratesIDWhenMissing(t *testing.T) {
	repo := NewCycleRepository(newTestDB(t))

	cycle := &model.Cycle{Name: "No ID"}
	require.NoError(t, repo.CreateOrReplace(cycle))
	assert.NotEmpty(t, cycle.ID)
}

func TestCycleFindByIDPreloadsSubjects(t *testing.T) {
	db := newTestDB(t)
	cycleRepo := NewCycleRepository(db)
	subjectRepo := NewSubjectRepository(db)

	require.NoError(t, cycleRepo.CreateOrReplace(&model.Cycle{ID: "c1", Name: "Cycle"}))
	require.NoError(t, subjectRepo.CreateOrReplace(&model.Subject{ID: "s1", CycleID: "c1", Name: "Math"}))

	cycle, err := cycleRepo.FindByID("c1")
	require.NoError(t, err)
	require.Len(t, cycle.Subjects, 1)
	assert.Equal(t, "Math", cycle.Subjects[0].Name)
}

func TestCycleSetActiveDeactivatesOthers(t *testing.T) {
	repo := NewCycleRepository(newTestDB(t))

	require.NoError(t, repo.CreateOrReplace(&model.Cycle{ID: "c1", Name: "One", IsActive: true}))
	require.NoError(t, repo.CreateOrReplace(&model.Cycle{ID: "c2", Name: "Two"}))

	require.NoError(t, repo.SetActive("c2"))

	active, err := repo.FindActive()
	require.NoError(t, err)
	assert.Equal(t, "c2", active.ID)

	c1, err := repo.FindByID("c1")
	require.NoError(t, err)
	assert.False(t, c1.IsActive)
}

func TestCycleDeleteCascades(t *testing.T) {
	db := newTestDB(t)
	cycleRepo := NewCycleRepository(db)
	subjectRepo := NewSubjectRepository(db)
	sessionRepo := NewSessionRepository(db)

	require.NoError(t, cycleRepo.CreateOrReplace(&model.Cycle{ID: "c1", Name: "Cycle"}))
	require.NoError(t, cycleRepo.CreateOrReplace(&model.Cycle{ID: "c2", Name: "Other"}))
	require.NoError(t, subjectRepo.CreateOrReplace(&model.Subject{ID: "s1", CycleID: "c1", Name: "Math"}))
	require.NoError(t, subjectRepo.CreateOrReplace(&model.Subject{ID: "s2", CycleID: "c2", Name: "Physics"}))

	now := time.Now()
	require.NoError(t, sessionRepo.Create(&model.StudySession{SubjectID: "s1", Minutes: 25, StartedAt: now, CompletedAt: now}))
	require.NoError(t, sessionRepo.Create(&model.StudySession{SubjectID: "s2", Minutes: 25, StartedAt: now, CompletedAt: now}))

	require.NoError(t, cycleRepo.Delete("c1"))

	subjects, err := subjectRepo.FindAll()
	require.NoError(t, err)
	require.Len(t, subjects, 1)
	assert.Equal(t, "s2", subjects[0].ID)

	sessions, err := sessionRepo.FindAll()
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, "s2", sessions[0].SubjectID)
}
