package controller

import (
	"net/http"
	"net/http/httptest"
	"pomodoro_backend/internal/model"
	"pomodoro_backend/internal/repository"
	"pomodoro_backend/internal/service"
	"pomodoro_backend/pkg/database"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newCycleRouter(t *testing.T) (*gin.Engine, *service.CycleService) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	// 内存库按连接隔离，必须固定单连接
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))

	cycleRepo := repository.NewCycleRepository(db)
	subjectRepo := repository.NewSubjectRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	stats := service.NewStatsService(sessionRepo, subjectRepo, nil, 0)
	cycleService := service.NewCycleService(cycleRepo, subjectRepo, stats)
	c := NewCycleController(cycleService)

	router := gin.New()
	cycles := router.Group("/api/cycles")
	{
		cycles.PUT("/:id/activate", c.Activate)
		cycles.PUT("/:id/reset-week", c.ResetWeek)
	}
	return router, cycleService
}

// 激活和周重置与原接口一致走 PUT
func TestCycleActivateAndResetWeekUsePut(t *testing.T) {
	router, cycleService := newCycleRouter(t)

	require.NoError(t, cycleService.Create(&model.Cycle{ID: "c1", Name: "Spring"}))
	require.NoError(t, cycleService.SubjectRepo.CreateOrReplace(&model.Subject{ID: "s1", CycleID: "c1", Name: "Math", CurrentWeekMinutes: 60}))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPut, "/api/cycles/c1/activate", nil))
	require.Equal(t, http.StatusOK, w.Code)

	active, err := cycleService.GetActive()
	require.NoError(t, err)
	require.NotNil(t, active)
	assert.Equal(t, "c1", active.ID)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPut, "/api/cycles/c1/reset-week", nil))
	require.Equal(t, http.StatusOK, w.Code)

	subject, err := cycleService.SubjectRepo.FindByID("s1")
	require.NoError(t, err)
	assert.Zero(t, subject.CurrentWeekMinutes)

	// POST 不再匹配这两条路由
	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/cycles/c1/activate", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}
