package sync_aurige

import (
	"encoding/json"
	"fmt"
	"io"
)

// CandidatAurige запись кандидата из выгрузки Aurige.
// Все поля в выгрузке строковые, включая даты и счетчики
type CandidatAurige struct {
	CodeNeph                string `json:"codeNeph"`
	NomNaissance            string `json:"nomNaissance"`
	Email                   string `json:"email"`
	DateReussiteETG         string `json:"dateReussiteETG"`
	NbEchecsPratiques       string `json:"nbEchecsPratiques"`
	DateDernierNonReussite  string `json:"dateDernierNonReussite"`
	ObjetDernierNonReussite string `json:"objetDernierNonReussite"`
	ReussitePratique        string `json:"reussitePratique"`
	CandidatExistant        string `json:"candidatExistant"`
}

// Статусы обработки записи выгрузки
const (
	StatusRejected  = "rejected"  // кандидат не подтвержден Aurige
	StatusNotFound  = "not_found" // кандидат не найден в базе
	StatusPassed    = "passed"    // практический экзамен сдан
	StatusPenalized = "penalized" // назначен штрафной период за провал
	StatusValidated = "validated" // кандидат подтвержден, без штрафа
	StatusError     = "error"     // обработка записи завершилась ошибкой
)

// RecordResult результат обработки одной записи выгрузки
type RecordResult struct {
	CodeNeph     string `json:"codeNeph"`
	NomNaissance string `json:"nomNaissance"`
	Status       string `json:"status"`
	Details      string `json:"details,omitempty"`
}

// Report итог обработки выгрузки
type Report struct {
	Total     int            `json:"total"`
	Rejected  int            `json:"rejected"`
	NotFound  int            `json:"notFound"`
	Passed    int            `json:"passed"`
	Penalized int            `json:"penalized"`
	Validated int            `json:"validated"`
	Errors    int            `json:"errors"`
	Records   []RecordResult `json:"records"`
}

// ParseBatch читает выгрузку Aurige (JSON массив записей)
func ParseBatch(r io.Reader) ([]CandidatAurige, error) {
	var records []CandidatAurige
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBatch, err)
	}
	if len(records) == 0 {
		return nil, ErrEmptyBatch
	}
	return records, nil
}
