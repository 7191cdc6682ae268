package analytics

import (
	"context"
	"encoding/json"

	"github.com/ThreeDotsLabs/watermill/message"
	"go.uber.org/zap"
)

// Consumer consumes telemetry events and persists them to the store.
type Consumer struct {
	subscriber message.Subscriber
	store      Store
	logger     *zap.Logger
	cancel     context.CancelFunc
	done       chan struct{}
}

// NewConsumer creates a new analytics consumer.
func NewConsumer(subscriber message.Subscriber, store Store, logger *zap.Logger) *Consumer {
	return &Consumer{
		subscriber: subscriber,
		store:      store,
		logger:     logger,
		done:       make(chan struct{}),
	}
}

// Start begins consuming messages from both topics.
func (c *Consumer) Start(ctx context.Context) error {
	ctx, c.cancel = context.WithCancel(ctx)

	createdMsgs, err := c.subscriber.Subscribe(ctx, TopicLinkCreated)
	if err != nil {
		return err
	}

	visitedMsgs, err := c.subscriber.Subscribe(ctx, TopicLinkVisited)
	if err != nil {
		return err
	}

	go c.consumeLoop(ctx, createdMsgs, visitedMsgs)

	return nil
}

func (c *Consumer) consumeLoop(ctx context.Context, createdMsgs, visitedMsgs <-chan *message.Message) {
	defer close(c.done)

	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-createdMsgs:
			if !ok {
				return
			}

			c.handleLinkCreated(ctx, msg)
		case msg, ok := <-visitedMsgs:
			if !ok {
				return
			}

			c.handleLinkVisited(ctx, msg)
		}
	}
}

func (c *Consumer) handleLinkCreated(ctx context.Context, msg *message.Message) {
	var event LinkCreatedEvent
	if err := json.Unmarshal(msg.Payload, &event); err != nil {
		c.logger.Error("failed to unmarshal link created event",
			zap.Error(err),
		)
		msg.Nack()

		return
	}

	if err := c.store.SaveLinkCreated(ctx, &event); err != nil {
		c.logger.Error("failed to save link created event",
			zap.String("code", event.Code),
			zap.Error(err),
		)
		msg.Nack()

		return
	}

	msg.Ack()

	c.logger.Debug("processed link created event",
		zap.String("code", event.Code),
	)
}

func (c *Consumer) handleLinkVisited(ctx context.Context, msg *message.Message) {
	var event LinkVisitedEvent
	if err := json.Unmarshal(msg.Payload, &event); err != nil {
		c.logger.Error("failed to unmarshal link visited event",
			zap.Error(err),
		)
		msg.Nack()

		return
	}

	if err := c.store.SaveLinkVisited(ctx, &event); err != nil {
		c.logger.Error("failed to save link visited event",
			zap.String("code", event.Code),
			zap.Error(err),
		)
		msg.Nack()

		return
	}

	msg.Ack()

	c.logger.Debug("processed link visited event",
		zap.String("code", event.Code),
	)
}

// Shutdown stops the consumer and waits for in-flight messages to complete.
func (c *Consumer) Shutdown() error {
	if c.cancel != nil {
		c.cancel()
	}

	<-c.done

	return c.subscriber.Close()
}
