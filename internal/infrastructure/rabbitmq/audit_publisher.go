// Package rabbitmq publica los registros de auditoría en una cola durable.
package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/jhoicas/Alojamientos-api/internal/domain/entity"
	"github.com/jhoicas/Alojamientos-api/internal/domain/repository"
)

var _ repository.AuditRepository = (*AuditPublisher)(nil)

// AuditEvent cuerpo JSON de cada mensaje.
type AuditEvent struct {
	Table     string          `json:"table"`
	RecordID  string          `json:"record_id"`
	Operation string          `json:"operation"`
	Before    json.RawMessage `json:"before,omitempty"`
	After     json.RawMessage `json:"after,omitempty"`
	ActorID   string          `json:"actor_id"`
	At        time.Time       `json:"at"`
}

// AuditPublisher implementa repository.AuditRepository publicando en RabbitMQ.
// Mantiene una conexión; si se cae, la reabre en el siguiente Record.
type AuditPublisher struct {
	url   string
	queue string

	mu   sync.Mutex
	conn *amqp.Connection
	ch   *amqp.Channel
}

// NewAuditPublisher conecta y declara la cola (durable).
func NewAuditPublisher(url, queue string) (*AuditPublisher, error) {
	p := &AuditPublisher{url: url, queue: queue}
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.connect(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *AuditPublisher) connect() error {
	conn, err := amqp.Dial(p.url)
	if err != nil {
		return fmt.Errorf("rabbitmq: dial: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return fmt.Errorf("rabbitmq: channel: %w", err)
	}
	if _, err := ch.QueueDeclare(
		p.queue, // name
		true,    // durable
		false,   // autoDelete
		false,   // exclusive
		false,   // noWait
		nil,     // args
	); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return fmt.Errorf("rabbitmq: queue declare: %w", err)
	}
	p.conn, p.ch = conn, ch
	return nil
}

// Record publica el registro como mensaje persistente.
func (p *AuditPublisher) Record(ctx context.Context, e entity.AuditEntry) error {
	body, err := json.Marshal(AuditEvent{
		Table:     e.Table,
		RecordID:  e.RecordID,
		Operation: e.Operation,
		Before:    e.Before,
		After:     e.After,
		ActorID:   e.ActorID,
		At:        e.At,
	})
	if err != nil {
		return fmt.Errorf("rabbitmq: marshal: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.conn == nil || p.conn.IsClosed() || p.ch == nil || p.ch.IsClosed() {
		p.closeLocked()
		if err := p.connect(); err != nil {
			return err
		}
	}
	err = p.ch.PublishWithContext(ctx,
		"",      // default exchange
		p.queue, // routing key = queue name
		false,   // mandatory
		false,   // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    e.At,
			Type:         e.Table + "." + e.Operation,
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("rabbitmq: publish: %w", err)
	}
	return nil
}

// Close cierra canal y conexión.
func (p *AuditPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closeLocked()
	return nil
}

func (p *AuditPublisher) closeLocked() {
	if p.ch != nil {
		_ = p.ch.Close()
		p.ch = nil
	}
	if p.conn != nil {
		_ = p.conn.Close()
		p.conn = nil
	}
}
