package eligibility

import "errors"

var (
	// ErrMissingDatePassage возвращается, когда не передана дата экзамена
	ErrMissingDatePassage = errors.New("eligibility: date de passage is missing")

	// ErrMissingCandidat возвращается, когда не передан кандидат
	ErrMissingCandidat = errors.New("eligibility: candidat is missing")
)
