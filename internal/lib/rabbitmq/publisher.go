// Package rabbitmq реализует публикацию событий модерации и регистрации
// в RabbitMQ. События публикуются по принципу fire-and-forget: сбой
// брокера логируется вызывающей стороной и не влияет на ответ клиенту.
package rabbitmq

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/streadway/amqp"
)

// Типы событий, публикуемых сервисом.
const (
	EventAccountRegistered = "account.registered"
	EventUserBanned        = "user.banned"
	EventUserUnbanned      = "user.unbanned"
	EventCardIssued        = "card.issued"
)

// Event — событие, отправляемое в очередь модерации.
type Event struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	UserID     int64     `json:"user_id,omitempty"`
	ActorID    int64     `json:"actor_id,omitempty"`
	Detail     string    `json:"detail,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// NewEvent создает событие с уникальным идентификатором и текущим временем.
func NewEvent(eventType string, userID, actorID int64, detail string) Event {
	return Event{
		ID:         uuid.New().String(),
		Type:       eventType,
		UserID:     userID,
		ActorID:    actorID,
		Detail:     detail,
		OccurredAt: time.Now().UTC(),
	}
}

// Publisher публикует события в выделенную очередь.
type Publisher struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	queue   string
}

// NewPublisher подключается к брокеру и объявляет устойчивую очередь.
func NewPublisher(url, queue string) (*Publisher, error) {
	const op = "rabbitmq.NewPublisher"

	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &Publisher{conn: conn, channel: ch, queue: queue}, nil
}

// Publish сериализует событие в JSON и отправляет его в очередь.
func (p *Publisher) Publish(event Event) error {
	const op = "rabbitmq.Publish"

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	err = p.channel.Publish(
		"",
		p.queue,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
		},
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Close закрывает канал и соединение с брокером.
func (p *Publisher) Close() error {
	if err := p.channel.Close(); err != nil {
		return err
	}
	return p.conn.Close()
}
