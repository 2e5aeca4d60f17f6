package domain

import "time"

// Candidat кандидат на экзамен
type Candidat struct {
	ID           int64
	CodeNeph     string
	NomNaissance string
	Prenom       string
	Email        string
	Departement  string

	// CanBookAfter самая ранняя дата, с которой кандидату разрешено
	// бронировать место. nil - ограничений нет. Значение только
	// увеличивается: новый штраф не может сократить действующий
	CanBookAfter *time.Time

	// DateReussiteETG дата сдачи теоретического экзамена (код)
	DateReussiteETG *time.Time

	// NbEchecsPratiques количество проваленных практических экзаменов
	NbEchecsPratiques int

	// IsValidated кандидат прошел проверку Aurige
	IsValidated bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasActiveCooldown проверяет, действует ли для кандидата штрафной период
func (c *Candidat) HasActiveCooldown(now time.Time) bool {
	return c.CanBookAfter != nil && now.Before(*c.CanBookAfter)
}
