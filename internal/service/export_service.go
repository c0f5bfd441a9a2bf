package service

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"pomodoro_backend/internal/model"
	"pomodoro_backend/internal/repository"
	"strconv"
	"time"
)

type ExportService struct {
	CycleRepo   *repository.CycleRepository
	SubjectRepo *repository.SubjectRepository
	SessionRepo *repository.SessionRepository
}

func NewExportService(cycleRepo *repository.CycleRepository, subjectRepo *repository.SubjectRepository, sessionRepo *repository.SessionRepository) *ExportService {
	return &ExportService{
		CycleRepo:   cycleRepo,
		SubjectRepo: subjectRepo,
		SessionRepo: sessionRepo,
	}
}

// ExportCSV 导出所有会话为 CSV，带学科名
func (s *ExportService) ExportCSV() ([]byte, error) {
	rows, err := s.SessionRepo.FindAllWithSubject()
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}

	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write([]string{"Date", "Subject", "Minutes", "Start", "End"}); err != nil {
		return nil, err
	}
	for _, row := range rows {
		record := []string{
			row.StartedAt.Local().Format("2006-01-02"),
			row.SubjectName,
			strconv.Itoa(row.Minutes),
			row.StartedAt.Local().Format("15:04"),
			row.CompletedAt.Local().Format("15:04"),
		}
		if err := writer.Write(record); err != nil {
			return nil, err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ExportJSON 导出周期、学科和会话的完整快照
func (s *ExportService) ExportJSON() (*model.ExportBundle, error) {
	cycles, err := s.CycleRepo.FindAll()
	if err != nil {
		return nil, fmt.Errorf("query cycles: %w", err)
	}
	subjects, err := s.SubjectRepo.FindAll()
	if err != nil {
		return nil, fmt.Errorf("query subjects: %w", err)
	}
	sessions, err := s.SessionRepo.FindAll()
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}

	return &model.ExportBundle{
		Cycles:     cycles,
		Subjects:   subjects,
		Sessions:   sessions,
		ExportedAt: time.Now(),
	}, nil
}
