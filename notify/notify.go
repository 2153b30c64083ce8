// Package notify publishes paid orders to the kitchen queue on RabbitMQ.
package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"food-order/models"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// OrderMessage is the payload sent to the queue when an order is paid.
type OrderMessage struct {
	Ref           string             `json:"ref"`
	UserID        int64              `json:"user_id"`
	PaymentMethod string             `json:"payment_method"`
	ReferralCode  string             `json:"referral_code,omitempty"`
	Items         []models.OrderLine `json:"items"`
	ItemsCount    int                `json:"items_count"`
	ItemsTotal    int64              `json:"items_total"`
	PaidAt        time.Time          `json:"paid_at"`
}

func NewOrderMessage(userID int64, r models.Receipt, paidAt time.Time) OrderMessage {
	return OrderMessage{
		Ref:           r.Ref,
		UserID:        userID,
		PaymentMethod: r.PaymentMethod,
		ReferralCode:  r.ReferralCode,
		Items:         r.Lines,
		ItemsCount:    r.ItemsCount,
		ItemsTotal:    r.ItemsTotal,
		PaidAt:        paidAt.UTC(),
	}
}

// AMQPPublisher sends order messages to a durable queue.
type AMQPPublisher struct {
	conn  *amqp.Connection
	ch    *amqp.Channel
	queue string
	log   *zap.Logger
}

// Dial connects to the broker and declares the order queue.
func Dial(url, queue string, log *zap.Logger) (*AMQPPublisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("connect to RabbitMQ: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open RabbitMQ channel: %w", err)
	}
	q, err := ch.QueueDeclare(
		queue,
		true,  // durable
		false, // autoDelete
		false, // exclusive
		false, // noWait
		nil,
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("declare %s queue: %w", queue, err)
	}
	return &AMQPPublisher{conn: conn, ch: ch, queue: q.Name, log: log}, nil
}

func (p *AMQPPublisher) PublishOrderPaid(ctx context.Context, userID int64, r models.Receipt) error {
	msg := NewOrderMessage(userID, r, time.Now())
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal order message: %w", err)
	}
	err = p.ch.PublishWithContext(ctx,
		"",
		p.queue,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			MessageId:    r.Ref,
			Timestamp:    msg.PaidAt,
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("publish order %s: %w", r.Ref, err)
	}
	p.log.Debug("order published", zap.String("ref", r.Ref), zap.String("queue", p.queue))
	return nil
}

func (p *AMQPPublisher) Close() error {
	if err := p.ch.Close(); err != nil {
		p.conn.Close()
		return err
	}
	return p.conn.Close()
}

// LogPublisher only logs paid orders; used when no broker is configured.
type LogPublisher struct {
	Log *zap.Logger
}

func (p LogPublisher) PublishOrderPaid(_ context.Context, userID int64, r models.Receipt) error {
	p.Log.Info("order paid (no broker configured)",
		zap.String("ref", r.Ref),
		zap.Int64("user_id", userID),
		zap.Int("items_count", r.ItemsCount),
		zap.Int64("items_total", r.ItemsTotal),
	)
	return nil
}
