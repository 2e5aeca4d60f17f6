package mailer

import "errors"

var (
	// ErrConnection возвращается при ошибке подключения к брокеру
	ErrConnection = errors.New("mailer: failed to connect to broker")

	// ErrPublish возвращается при ошибке публикации сообщения
	// Ошибка некритична: вызывающая сторона логирует её и продолжает работу
	ErrPublish = errors.New("mailer: failed to publish message")
)
