package domain

import "time"

// Centre экзаменационный центр
// Название уникально только внутри департамента: поиск по одному имени
// может быть неоднозначным
type Centre struct {
	ID          int64
	Nom         string
	Departement string
	Adresse     string
	Active      bool

	CreatedAt time.Time
	UpdatedAt time.Time
}
