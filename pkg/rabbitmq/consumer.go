/**
 * @description
 * This package provides a generic RabbitMQ consumer used to subscribe to the
 * core-banking account event stream. It manages the AMQP connection, declares
 * the topic exchange and a durable queue bound to one or more routing keys,
 * and feeds each delivery to a callback.
 *
 * Key features:
 * - Manages the AMQP connection and channel.
 * - Declares a topic exchange, a durable queue, and binds them under every
 *   routing key the subscription covers.
 * - Implements message acknowledgment logic (ack/nack) based on the callback's result.
 *
 * @dependencies
 * - log: For logging consumer status and errors.
 * - github.com/rabbitmq/amqp091-go: The official Go client for RabbitMQ.
 */
package rabbitmq

import (
	"fmt"
	"log"
	"net/url"
	"strings"

	"github.com/rabbitmq/amqp091-go"
)

// Consumer handles the connection and consumption of messages from RabbitMQ.
type Consumer struct {
	conn    *amqp091.Connection
	channel *amqp091.Channel
}

func sanitizeAMQPURL(raw string) (string, error) {
	clean := strings.TrimSpace(raw)
	clean = strings.Trim(clean, "\"'")
	if !strings.HasSuffix(clean, "/") {
		clean += "/"
	}
	parsed, err := url.Parse(clean)
	if err != nil {
		return "", err
	}
	if parsed.Scheme != "amqp" && parsed.Scheme != "amqps" {
		return "", fmt.Errorf("invalid AMQP scheme: %s", parsed.Scheme)
	}
	return clean, nil
}

// NewConsumer creates a new RabbitMQ consumer.
func NewConsumer(amqpURL string) (*Consumer, error) {
	cleanURL, err := sanitizeAMQPURL(amqpURL)
	if err != nil {
		return nil, err
	}

	conn, err := amqp091.Dial(cleanURL)
	if err != nil {
		return nil, err
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, err
	}

	return &Consumer{
		conn:    conn,
		channel: channel,
	}, nil
}

// MessageHandler is a function type that processes a single RabbitMQ message.
// It should return true to acknowledge (ack) the message, or false to reject (nack) and requeue it.
type MessageHandler func(body []byte) bool

// Consume starts listening for messages on a specified queue, bound to the
// exchange under every given routing key. It blocks for the life of the
// subscription.
func (c *Consumer) Consume(exchange, queueName string, routingKeys []string, handler MessageHandler) error {
	if len(routingKeys) == 0 {
		return fmt.Errorf("no routing keys provided")
	}

	err := c.channel.ExchangeDeclare(
		exchange, // name
		"topic",  // type
		true,     // durable
		false,    // auto-deleted
		false,    // internal
		false,    // no-wait
		nil,      // arguments
	)
	if err != nil {
		return err
	}

	q, err := c.channel.QueueDeclare(
		queueName, // name
		true,      // durable
		false,     // delete when unused
		false,     // exclusive
		false,     // no-wait
		nil,       // arguments
	)
	if err != nil {
		return err
	}

	for _, routingKey := range routingKeys {
		if err := c.channel.QueueBind(
			q.Name,     // queue name
			routingKey, // routing key
			exchange,   // exchange
			false,
			nil,
		); err != nil {
			return err
		}
	}

	msgs, err := c.channel.Consume(
		q.Name, // queue
		"",     // consumer
		false,  // auto-ack (we want manual acknowledgment)
		false,  // exclusive
		false,  // no-local
		false,  // no-wait
		nil,    // args
	)
	if err != nil {
		return err
	}

	for d := range msgs {
		log.Printf("Received a message with routing key: %s", d.RoutingKey)
		if handler(d.Body) {
			d.Ack(false)
		} else {
			d.Nack(false, true)
		}
	}
	return nil
}

// Close gracefully closes the channel and connection.
func (c *Consumer) Close() {
	if c.channel != nil {
		c.channel.Close()
	}
	if c.conn != nil {
		c.conn.Close()
	}
}
