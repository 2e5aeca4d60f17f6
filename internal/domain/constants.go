package domain

// Значения бизнес-констант по умолчанию (в днях)
const (
	DefaultDelayToBook      = 7
	DefaultTimeoutToRetry   = 45
	DefaultDaysForbidCancel = 7
)

// Форматы дат
const (
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Статусы кандидата в выгрузке Aurige
const (
	AurigeOK      = "OK"
	AurigeNOK     = "NOK"
	AurigeNOKNom  = "NOK Nom"
	AurigeEchec   = "echec"
	AurigeAbsence = "absent"
)

// Сообщения кандидату при отмене бронирования
const (
	// CancelResaWithMailSent отмена выполнена, письмо отправлено
	CancelResaWithMailSent = "Votre annulation a bien été prise en compte."

	// CancelResaWithNoMailSent отмена выполнена, но письмо отправить не удалось
	CancelResaWithNoMailSent = "Votre annulation a bien été prise en compte. " +
		"Cependant, le courriel de confirmation n'a pas pu être envoyé."
)
