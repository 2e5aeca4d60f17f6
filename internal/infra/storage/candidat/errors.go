package candidat

import "errors"

var (
	// ErrCandidatNotFound возвращается, когда кандидат не найден
	ErrCandidatNotFound = errors.New("candidat.repository: candidat not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("candidat.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("candidat.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("candidat.repository: failed to scan row")
)
