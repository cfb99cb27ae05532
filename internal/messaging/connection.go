package messaging

import (
	"fmt"
	"sync"

	"github.com/rabbitmq/amqp091-go"
)

const (
	OrdersExchange        = "orders"
	OrderPlacedRoutingKey = "order.placed"
)

// Connection owns one AMQP connection and channel and redials on demand.
type Connection struct {
	url string

	mu      sync.Mutex
	conn    *amqp091.Connection
	channel *amqp091.Channel
}

func Dial(url string) (*Connection, error) {
	c := &Connection{url: url}
	if err := c.connect(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Connection) connect() error {
	conn, err := amqp091.Dial(c.url)
	if err != nil {
		return fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := openChannel(conn)
	if err != nil {
		conn.Close()
		return err
	}

	c.conn = conn
	c.channel = ch
	return nil
}

func openChannel(conn *amqp091.Connection) (*amqp091.Channel, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}
	if err := ch.ExchangeDeclare(OrdersExchange, "topic", true, false, false, false, nil); err != nil {
		ch.Close()
		return nil, fmt.Errorf("failed to declare exchange %s: %w", OrdersExchange, err)
	}
	return ch, nil
}

// Channel returns a live channel. A dead channel on a live connection is
// reopened in place; a dead connection is closed and dialed again.
func (c *Connection) Channel() (*amqp091.Channel, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn != nil && !c.conn.IsClosed() {
		if c.channel != nil && !c.channel.IsClosed() {
			return c.channel, nil
		}
		ch, err := openChannel(c.conn)
		if err == nil {
			c.channel = ch
			return ch, nil
		}
	}

	c.closeStale()
	if err := c.connect(); err != nil {
		return nil, err
	}
	return c.channel, nil
}

func (c *Connection) closeStale() {
	if c.channel != nil {
		c.channel.Close()
		c.channel = nil
	}
	if c.conn != nil {
		c.conn.Close()
		c.conn = nil
	}
}

func (c *Connection) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.channel != nil {
		c.channel.Close()
	}
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}
