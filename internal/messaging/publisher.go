package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"food_ordering/internal/logger"
	"food_ordering/internal/models"

	"github.com/rabbitmq/amqp091-go"
	"github.com/shopspring/decimal"
)

type OrderPlacedEvent struct {
	OrderID     uint             `json:"order_id"`
	CustomerID  uint             `json:"customer_id"`
	Status      string           `json:"status"`
	TotalAmount decimal.Decimal  `json:"total_amount"`
	Items       []OrderEventItem `json:"items"`
	PlacedAt    time.Time        `json:"placed_at"`
}

type OrderEventItem struct {
	MenuItemID uint            `json:"menu_item_id"`
	Quantity   int             `json:"quantity"`
	Price      decimal.Decimal `json:"price"`
}

func NewOrderPlacedEvent(order *models.Order) OrderPlacedEvent {
	event := OrderPlacedEvent{
		OrderID:     order.ID,
		CustomerID:  order.CustomerID,
		Status:      order.Status,
		TotalAmount: order.TotalAmount,
		Items:       make([]OrderEventItem, 0, len(order.Items)),
		PlacedAt:    order.CreatedAt,
	}
	for _, item := range order.Items {
		event.Items = append(event.Items, OrderEventItem{
			MenuItemID: item.MenuItemID,
			Quantity:   item.Quantity,
			Price:      item.Price,
		})
	}
	return event
}

// Publisher sends order events to the orders topic exchange.
type Publisher struct {
	conn   *Connection
	logger *logger.Logger
}

func NewPublisher(conn *Connection, log *logger.Logger) *Publisher {
	return &Publisher{conn: conn, logger: log}
}

func (p *Publisher) PublishOrderPlaced(ctx context.Context, order *models.Order) error {
	return p.publish(ctx, OrdersExchange, OrderPlacedRoutingKey, NewOrderPlacedEvent(order))
}

func (p *Publisher) publish(ctx context.Context, exchange, routingKey string, message interface{}) error {
	ch, err := p.conn.Channel()
	if err != nil {
		return err
	}

	body, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	err = ch.PublishWithContext(ctx, exchange, routingKey, false, false, amqp091.Publishing{
		ContentType:  "application/json",
		Body:         body,
		DeliveryMode: amqp091.Persistent,
		Timestamp:    time.Now(),
	})
	if err != nil {
		return fmt.Errorf("failed to publish message: %w", err)
	}

	p.logger.Debug("message_published", logger.RequestID(ctx), "published message to "+exchange,
		slog.String("routing_key", routingKey),
		slog.Int("message_size", len(body)),
	)
	return nil
}

func (p *Publisher) Close() error {
	return p.conn.Close()
}
