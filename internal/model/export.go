package model

import "time"

// ExportBundle /api/export/json 的完整数据导出
type ExportBundle struct {
	Cycles     []*Cycle       `json:"cycles"`
	Subjects   []*Subject     `json:"subjects"`
	Sessions   []StudySession `json:"sessions"`
	ExportedAt time.Time      `json:"exportedAt"`
}

// BackupDump 备份文件格式：四张表的全量快照
type BackupDump struct {
	Version   int            `json:"version"`
	CreatedAt time.Time      `json:"createdAt"`
	Cycles    []*Cycle       `json:"cycles"`
	Subjects  []*Subject     `json:"subjects"`
	Sessions  []StudySession `json:"sessions"`
	Stats     []DailyStat    `json:"stats"`
}

// BackupDumpVersion 当前备份格式版本
const BackupDumpVersion = 1
