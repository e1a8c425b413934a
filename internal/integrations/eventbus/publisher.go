package eventbus

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/m04kA/SMC-InspectionBooking/internal/domain"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Channel часть *amqp.Channel, нужная издателю
type Channel interface {
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// Publisher публикует события о бронированиях в RabbitMQ
type Publisher struct {
	mu         sync.Mutex
	conn       *amqp.Connection
	channel    Channel
	exchange   string
	routingKey string
	log        Logger
}

// Dial подключается к брокеру и объявляет topic-exchange
func Dial(url, exchange, routingKey string, log Logger) (*Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("%w: dial: %v", ErrConnect, err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("%w: open channel: %v", ErrConnect, err)
	}

	p, err := NewPublisher(ch, exchange, routingKey, log)
	if err != nil {
		conn.Close()
		return nil, err
	}
	p.conn = conn

	return p, nil
}

// NewPublisher создает издателя поверх открытого канала
func NewPublisher(ch Channel, exchange, routingKey string, log Logger) (*Publisher, error) {
	if err := ch.ExchangeDeclare(exchange, amqp.ExchangeTopic, true, false, false, false, nil); err != nil {
		return nil, fmt.Errorf("%w: declare exchange %s: %v", ErrConnect, exchange, err)
	}

	if routingKey == "" {
		routingKey = EventBookingConfirmed
	}

	return &Publisher{
		channel:    ch,
		exchange:   exchange,
		routingKey: routingKey,
		log:        log,
	}, nil
}

// NotifyBookingConfirmed публикует событие booking.confirmed
func (p *Publisher) NotifyBookingConfirmed(ctx context.Context, b *domain.Booking) error {
	event := BookingConfirmed{
		Event:         EventBookingConfirmed,
		BookingID:     b.ID,
		Date:          b.BookingDate.Format(domain.DateFormat),
		Time:          b.StartTime.String(),
		CustomerName:  b.CustomerName,
		CustomerEmail: b.CustomerEmail,
		CustomerPhone: b.CustomerPhone,
		Registration:  b.VehicleRegistration,
		VehicleType:   string(b.VehicleType),
		Price:         b.Price,
	}
	if b.ConfirmedAt != nil {
		event.ConfirmedAt = *b.ConfirmedAt
	}

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("%w: encode event: %v", ErrPublish, err)
	}

	// amqp.Channel не потокобезопасен для публикации
	p.mu.Lock()
	defer p.mu.Unlock()

	err = p.channel.PublishWithContext(ctx, p.exchange, p.routingKey, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now(),
		Type:         EventBookingConfirmed,
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("%w: booking_id=%d: %v", ErrPublish, b.ID, err)
	}

	p.log.Info("eventbus: published %s for booking_id=%d", EventBookingConfirmed, b.ID)
	return nil
}

// Close закрывает канал и соединение
func (p *Publisher) Close() {
	if err := p.channel.Close(); err != nil {
		p.log.Warn("eventbus: failed to close channel: %v", err)
	}
	if p.conn != nil {
		if err := p.conn.Close(); err != nil {
			p.log.Warn("eventbus: failed to close connection: %v", err)
		}
	}
}
