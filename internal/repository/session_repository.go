package repository

import (
	"pomodoro_backend/internal/model"
	"time"

	"gorm.io/gorm"
)

type SessionRepository struct {
	DB *gorm.DB
}

func NewSessionRepository(db *gorm.DB) *SessionRepository {
	return &SessionRepository{DB: db}
}

func (r *SessionRepository) Create(session *model.StudySession) error {
	return r.DB.Create(session).Error
}

func (r *SessionRepository) FindAll() ([]model.StudySession, error) {
	var sessions []model.StudySession
	err := r.DB.Order("started_at ASC").Find(&sessions).Error
	return sessions, err
}

// FindSince 返回开始时间不早于 since 的会话
func (r *SessionRepository) FindSince(since time.Time) ([]model.StudySession, error) {
	var sessions []model.StudySession
	err := r.DB.Where("started_at >= ?", since).Order("started_at ASC").Find(&sessions).Error
	return sessions, err
}

func (r *SessionRepository) FindSinceForSubject(since time.Time, subjectID string) ([]model.StudySession, error) {
	var sessions []model.StudySession
	err := r.DB.Where("started_at >= ? AND subject_id = ?", since, subjectID).
		Order("started_at ASC").Find(&sessions).Error
	return sessions, err
}

// CountBySubject 按学科分组的会话数；没有会话的学科不出现在结果里
func (r *SessionRepository) CountBySubject() (map[string]int64, error) {
	type row struct {
		SubjectID string
		Total     int64
	}
	var rows []row
	err := r.DB.Model(&model.StudySession{}).
		Select("subject_id, COUNT(*) AS total").
		Group("subject_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.SubjectID] = row.Total
	}
	return counts, nil
}

// SessionWithSubject 会话和所属学科名，用于导出
type SessionWithSubject struct {
	model.StudySession
	SubjectName string `json:"subjectName"`
}

func (r *SessionRepository) FindAllWithSubject() ([]SessionWithSubject, error) {
	var rows []SessionWithSubject
	err := r.DB.Table("study_sessions").
		Select("study_sessions.*, subjects.name AS subject_name").
		Joins("LEFT JOIN subjects ON subjects.id = study_sessions.subject_id").
		Order("study_sessions.started_at ASC").
		Scan(&rows).Error
	return rows, err
}
