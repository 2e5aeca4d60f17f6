package get_available_dates

import "time"

// Request запрос дат по идентификатору центра.
// Begin и End - необязательные границы диапазона в формате RFC 3339.
// Некорректное значение Begin заменяется минимальной разрешенной датой,
// некорректное значение End делает диапазон неограниченным сверху
type Request struct {
	CentreID int64
	Begin    string
	End      string
}

// NameRequest запрос дат по названию центра.
// Departement необязателен: без него поиск идет только по названию
type NameRequest struct {
	Nom         string
	Departement string
	Begin       string
	End         string
}

// DateRequest запрос мест центра на конкретную дату
type DateRequest struct {
	CentreID int64
	Date     time.Time
}

// Response список доступных дат
type Response struct {
	// Dates отсортированные уникальные даты в формате RFC 3339
	Dates []string
}
