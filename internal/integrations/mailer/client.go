// Package mailer клиент почтовой очереди (RabbitMQ)
// Публикация уведомлений может завершиться ошибкой - для вызывающей
// стороны это мягкий отказ: состояние брони уже изменено и не откатывается
package mailer

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/candilib/DTE-BookingService/internal/domain"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент для публикации уведомлений в почтовую очередь
type Client struct {
	conn     *amqp.Connection
	ch       *amqp.Channel
	exchange string
	log      Logger
}

// NewClient подключается к брокеру и объявляет durable topic exchange
func NewClient(url, exchange string, log Logger) (*Client, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("%w: dial %s: %v", ErrConnection, url, err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("%w: open channel: %v", ErrConnection, err)
	}

	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("%w: declare exchange %s: %v", ErrConnection, exchange, err)
	}

	return &Client{conn: conn, ch: ch, exchange: exchange, log: log}, nil
}

// SendCancelBooking публикует уведомление об отмене бронирования кандидата
func (c *Client) SendCancelBooking(ctx context.Context, candidat *domain.Candidat) error {
	msg := CancelBookingMessage{
		MessageID:    uuid.NewString(),
		Type:         TypeCancelBooking,
		CandidatID:   candidat.ID,
		Email:        candidat.Email,
		NomNaissance: candidat.NomNaissance,
		OccurredAt:   time.Now().UTC(),
	}

	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("%w: marshal message: %v", ErrPublish, err)
	}

	err = c.ch.PublishWithContext(ctx,
		c.exchange,
		TypeCancelBooking,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			MessageId:    msg.MessageID,
			Timestamp:    msg.OccurredAt,
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("%w: candidat id=%d: %v", ErrPublish, candidat.ID, err)
	}

	c.log.Info("mailer: cancel booking notice published, candidat id=%d, message_id=%s",
		candidat.ID, msg.MessageID)
	return nil
}

// Close закрывает канал и соединение с брокером
func (c *Client) Close() error {
	if c.ch != nil {
		_ = c.ch.Close()
	}
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}
