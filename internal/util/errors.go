package util

import "errors"

var (
	ErrCycleNotFound     = errors.New("cycle not found")
	ErrSubjectNotFound   = errors.New("subject not found")
	ErrInvalidSession    = errors.New("invalid session: minutes must be positive and completedAt must not precede startedAt")
	ErrInvalidBackupFile = errors.New("invalid backup file")
)
