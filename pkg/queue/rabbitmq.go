package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"videotube/pkg/config"
	"videotube/pkg/logger"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	EngagementExchange  = "engagement"
	EngagementQueueName = "engagement_events"
)

type EventType string

const (
	EventVideoLike   EventType = "video_like"
	EventCommentLike EventType = "comment_like"
	EventTweetLike   EventType = "tweet_like"
	EventSubscribe   EventType = "subscribe"
)

var eventPriority = map[EventType]uint8{
	EventSubscribe:   5,
	EventVideoLike:   3,
	EventCommentLike: 2,
	EventTweetLike:   2,
}

// EngagementEvent is emitted when a relationship row is created.
type EngagementEvent struct {
	Type       EventType `json:"type"`
	ActorID    string    `json:"actorId"`
	OwnerID    string    `json:"ownerId"`
	TargetID   string    `json:"targetId"`
	OccurredAt time.Time `json:"occurredAt"`
}

type Publisher interface {
	PublishEngagementEvent(ctx context.Context, event EngagementEvent) error
}

type Client struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	logger  *logger.Logger
}

func NewRabbitMQClient(cfg *config.Config, log *logger.Logger) (*Client, error) {
	url := fmt.Sprintf("amqp://%s:%s@%s:%s/",
		cfg.RabbitMQUser,
		cfg.RabbitMQPassword,
		cfg.RabbitMQHost,
		cfg.RabbitMQPort,
	)

	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	if err := declareTopology(channel); err != nil {
		channel.Close()
		conn.Close()
		return nil, err
	}

	log.Info("Connected to RabbitMQ at %s:%s", cfg.RabbitMQHost, cfg.RabbitMQPort)

	return &Client{
		conn:    conn,
		channel: channel,
		logger:  log,
	}, nil
}

func declareTopology(channel *amqp.Channel) error {
	err := channel.ExchangeDeclare(
		EngagementExchange, // name
		"direct",           // type
		true,               // durable
		false,              // auto-deleted
		false,              // internal
		false,              // no-wait
		nil,                // arguments
	)
	if err != nil {
		return fmt.Errorf("failed to declare exchange: %w", err)
	}

	_, err = channel.QueueDeclare(
		EngagementQueueName, // name
		true,                // durable
		false,               // delete when unused
		false,               // exclusive
		false,               // no-wait
		amqp.Table{
			"x-max-priority": 10,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to declare queue: %w", err)
	}

	for eventType := range eventPriority {
		if err := channel.QueueBind(EngagementQueueName, string(eventType), EngagementExchange, false, nil); err != nil {
			return fmt.Errorf("failed to bind queue for %s: %w", eventType, err)
		}
	}
	return nil
}

func (c *Client) Close() error {
	if c.channel != nil {
		c.channel.Close()
	}
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}

// PublishEngagementEvent routes the event by its type.
func (c *Client) PublishEngagementEvent(ctx context.Context, event EngagementEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	routingKey := string(event.Type)
	err = c.channel.PublishWithContext(ctx,
		EngagementExchange, // exchange
		routingKey,         // routing key
		false,              // mandatory
		false,              // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			Priority:     PriorityOf(event.Type),
			DeliveryMode: amqp.Persistent,
			Timestamp:    event.OccurredAt,
		},
	)
	if err != nil {
		c.logger.Error("[RABBITMQ] Failed to publish to exchange=%s, routing_key=%s: %v", EngagementExchange, routingKey, err)
		return fmt.Errorf("failed to publish message: %w", err)
	}

	c.logger.Info("[RABBITMQ] Published engagement event to exchange=%s, routing_key=%s: %s", EngagementExchange, routingKey, string(body))
	return nil
}

func PriorityOf(t EventType) uint8 {
	if p, ok := eventPriority[t]; ok {
		return p
	}
	return 1
}
