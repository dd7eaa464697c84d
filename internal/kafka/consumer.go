package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"rc-building-model/internal/config"
	"rc-building-model/internal/logging"
	"rc-building-model/internal/metrics"
	"rc-building-model/internal/model"
	"rc-building-model/internal/survey"

	"github.com/Shopify/sarama"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// BatchProcessor handles one decoded survey batch.
type BatchProcessor func(ctx context.Context, batchID string, b model.Buildings) error

// Message is the wire shape of a survey batch: one message per batch.
type Message struct {
	BatchID   string          `json:"batch_id,omitempty"`
	Buildings []survey.Record `json:"buildings"`
}

// DecodeBatch parses a message value into a columnar batch, deriving missing volumes.
// Messages without a batch_id get a random one.
func DecodeBatch(value []byte) (string, model.Buildings, error) {
	var msg Message
	if err := json.Unmarshal(value, &msg); err != nil {
		return "", model.Buildings{}, fmt.Errorf("decode survey batch: %w", err)
	}
	if msg.BatchID == "" {
		msg.BatchID = uuid.NewString()
	}
	rows, err := survey.Resolve(msg.Buildings)
	if err != nil {
		return msg.BatchID, model.Buildings{}, err
	}
	return msg.BatchID, model.Columns(rows), nil
}

// Consumer reads survey batches from a Kafka topic.
type Consumer struct {
	id        string
	config    config.KafkaConfig
	consumer  sarama.ConsumerGroup
	processor BatchProcessor
	log       *zap.Logger
}

// NewConsumer creates a new Kafka consumer group member.
func NewConsumer(id string, cfg config.KafkaConfig, processor BatchProcessor, log *zap.Logger) (*Consumer, error) {
	saramaConfig := sarama.NewConfig()
	saramaConfig.Consumer.Return.Errors = true
	saramaConfig.Consumer.Offsets.Initial = sarama.OffsetOldest
	saramaConfig.Consumer.Group.Rebalance.Strategy = sarama.BalanceStrategyRoundRobin

	// survey batches are large and infrequent
	saramaConfig.Consumer.Fetch.Default = 4 * 1024 * 1024
	saramaConfig.Consumer.MaxWaitTime = 500 * time.Millisecond

	client, err := sarama.NewConsumerGroup(cfg.Brokers, cfg.GroupID, saramaConfig)
	if err != nil {
		return nil, err
	}

	return &Consumer{
		id:        id,
		config:    cfg,
		consumer:  client,
		processor: processor,
		log:       logging.OrNop(log).With(zap.String("consumer", id)),
	}, nil
}

// Consume joins the group and processes batches until ctx is cancelled.
func (c *Consumer) Consume(ctx context.Context) error {
	go func() {
		for err := range c.consumer.Errors() {
			c.log.Warn("consumer group error", zap.Error(err))
		}
	}()

	handler := &consumerGroupHandler{consumer: c, ctx: ctx}
	for {
		if err := c.consumer.Consume(ctx, []string{c.config.Topic}, handler); err != nil {
			if errors.Is(err, sarama.ErrClosedConsumerGroup) || errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		}
		if ctx.Err() != nil {
			return nil
		}
	}
}

// handle decodes and processes one message. Bad input is logged and skipped so a poison
// message never blocks the partition.
func (c *Consumer) handle(ctx context.Context, msg *sarama.ConsumerMessage) {
	batchID, b, err := DecodeBatch(msg.Value)
	if err == nil {
		err = c.processor(ctx, batchID, b)
	}
	metrics.RecordMessage(err)
	if err != nil {
		c.log.Error("survey batch failed",
			zap.String("batch_id", batchID),
			zap.Int32("partition", msg.Partition),
			zap.Int64("offset", msg.Offset),
			zap.Error(err),
		)
		return
	}
	c.log.Info("survey batch processed",
		zap.String("batch_id", batchID),
		zap.Int("rows", b.Len()),
	)
}

func (c *Consumer) Close() error {
	return c.consumer.Close()
}

// consumerGroupHandler implements sarama.ConsumerGroupHandler
type consumerGroupHandler struct {
	consumer *Consumer
	ctx      context.Context
}

func (h *consumerGroupHandler) Setup(_ sarama.ConsumerGroupSession) error   { return nil }
func (h *consumerGroupHandler) Cleanup(_ sarama.ConsumerGroupSession) error { return nil }

func (h *consumerGroupHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for message := range claim.Messages() {
		if h.ctx.Err() != nil {
			return h.ctx.Err()
		}
		h.consumer.handle(h.ctx, message)
		session.MarkMessage(message, "")
	}
	return nil
}
