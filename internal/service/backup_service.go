package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"pomodoro_backend/internal/model"
	"pomodoro_backend/internal/util"
	"pomodoro_backend/pkg/logger"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// BackupService 全库 JSON 快照的创建与恢复。
// 快照同时归档到存储后端（本地目录或 MinIO）。
type BackupService struct {
	DB      *gorm.DB
	Storage *StorageService
	Stats   *StatsService
}

func NewBackupService(db *gorm.DB, storage *StorageService, stats *StatsService) *BackupService {
	return &BackupService{
		DB:      db,
		Storage: storage,
		Stats:   stats,
	}
}

// Create 生成备份。归档失败只告警，不影响下载
func (s *BackupService) Create(ctx context.Context) (string, []byte, error) {
	dump := model.BackupDump{
		Version:   model.BackupDumpVersion,
		CreatedAt: time.Now(),
	}

	if err := s.DB.Find(&dump.Cycles).Error; err != nil {
		return "", nil, fmt.Errorf("dump cycles: %w", err)
	}
	if err := s.DB.Find(&dump.Subjects).Error; err != nil {
		return "", nil, fmt.Errorf("dump subjects: %w", err)
	}
	if err := s.DB.Find(&dump.Sessions).Error; err != nil {
		return "", nil, fmt.Errorf("dump sessions: %w", err)
	}
	if err := s.DB.Find(&dump.Stats).Error; err != nil {
		return "", nil, fmt.Errorf("dump stats: %w", err)
	}

	payload, err := json.MarshalIndent(dump, "", "  ")
	if err != nil {
		return "", nil, err
	}

	filename := "pomodoro-backup-" + dump.CreatedAt.Format("20060102-150405") + ".json"
	archive := "backups/" + filename
	if _, err := s.Storage.Upload(ctx, archive, bytes.NewReader(payload), int64(len(payload)), "application/json"); err != nil {
		logger.Log.Warn("backup archive upload failed", zap.String("file", archive), zap.Error(err))
	}

	return filename, payload, nil
}

// Restore 用备份覆盖当前数据，单事务内先清空再写入
func (s *BackupService) Restore(payload []byte) error {
	var dump model.BackupDump
	if err := json.Unmarshal(payload, &dump); err != nil {
		return util.ErrInvalidBackupFile
	}
	if dump.Version != model.BackupDumpVersion {
		return util.ErrInvalidBackupFile
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		for _, target := range []interface{}{
			&model.StudySession{}, &model.Subject{}, &model.Cycle{}, &model.DailyStat{},
		} {
			if err := tx.Where("1 = 1").Delete(target).Error; err != nil {
				return err
			}
		}

		if len(dump.Cycles) > 0 {
			if err := tx.Omit("Subjects").Create(&dump.Cycles).Error; err != nil {
				return err
			}
		}
		if len(dump.Subjects) > 0 {
			if err := tx.Create(&dump.Subjects).Error; err != nil {
				return err
			}
		}
		if len(dump.Sessions) > 0 {
			if err := tx.Create(&dump.Sessions).Error; err != nil {
				return err
			}
		}
		if len(dump.Stats) > 0 {
			if err := tx.Create(&dump.Stats).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("restore backup: %w", err)
	}

	s.Stats.InvalidateCache()
	logger.Log.Info("backup restored",
		zap.Int("cycles", len(dump.Cycles)),
		zap.Int("subjects", len(dump.Subjects)),
		zap.Int("sessions", len(dump.Sessions)),
	)
	return nil
}
