package events

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/Arshadkhan96/Market-Max/internal/domain"
	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
)

type orderCreatedEvent struct {
	EventID   string    `json:"event_id"`
	OrderID   string    `json:"order_id"`
	UserID    string    `json:"user_id"`
	Total     float64   `json:"total"`
	Status    string    `json:"status"`
	ItemCount int       `json:"item_count"`
	CreatedAt time.Time `json:"created_at"`
}

// Producer publishes order lifecycle events to Kafka. Publishing is
// fire-and-forget through a buffered inbox; a full inbox drops the event
// rather than blocking the request path.
type Producer struct {
	w       *kafka.Writer
	inbox   chan kafka.Message
	closeCh chan struct{}

	mu     sync.Mutex
	closed bool
}

func NewProducer(brokers []string, topic string, buf int) *Producer {
	return &Producer{
		w: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireAll,
			Async:        true,
		},
		inbox:   make(chan kafka.Message, buf),
		closeCh: make(chan struct{}),
	}
}

func (p *Producer) Start(ctx context.Context) {
	go func() {
		for {
			select {
			case <-ctx.Done():
				// Mark closed before closing the inbox so concurrent
				// publishers drop instead of sending on a closed channel.
				p.mu.Lock()
				p.closed = true
				close(p.inbox)
				p.mu.Unlock()
				for m := range p.inbox {
					p.write(m)
				}
				_ = p.w.Close()
				close(p.closeCh)
				return
			case m, ok := <-p.inbox:
				if !ok {
					_ = p.w.Close()
					return
				}
				p.write(m)
			}
		}
	}()
}

// Done is closed once the drain loop has flushed and closed the writer.
func (p *Producer) Done() <-chan struct{} {
	return p.closeCh
}

func (p *Producer) OrderCreated(order *domain.Order) {
	payload, err := json.Marshal(orderCreatedEvent{
		EventID:   uuid.NewString(),
		OrderID:   order.ID,
		UserID:    order.UserID,
		Total:     order.TotalPrice,
		Status:    order.Status.String(),
		ItemCount: len(order.OrderItems),
		CreatedAt: time.Now(),
	})
	if err != nil {
		slog.Warn("marshal order event failed", "order_id", order.ID, "error", err)
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		slog.Warn("producer shutting down, dropping event", "order_id", order.ID)
		return
	}

	select {
	case p.inbox <- kafka.Message{Key: []byte(order.ID), Value: payload, Time: time.Now()}:
	default:
		slog.Warn("order event inbox full, dropping event", "order_id", order.ID)
	}
}

func (p *Producer) write(m kafka.Message) {
	if err := p.w.WriteMessages(context.Background(), m); err != nil {
		slog.Warn("kafka write failed", "key", string(m.Key), "error", err)
	}
}
