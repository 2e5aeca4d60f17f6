package sync_aurige

import "errors"

// Ошибки use case синхронизации с Aurige
var (
	ErrEmptyBatch   = errors.New("empty batch")
	ErrInvalidBatch = errors.New("invalid batch")
)
