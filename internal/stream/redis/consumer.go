package redis

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/povarna/generative-ai-agents/guardrail-agent/internal/models"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// Pipeline runs one guardrailed LLM query.
type Pipeline interface {
	Run(ctx context.Context, req models.QueryRequest) models.PipelineResult
}

type Consumer struct {
	client       *redis.Client
	stream       string
	resultStream string
	resultMaxLen int64
	groupID      string
	consumerName string
	block        time.Duration
	retryDelay   time.Duration
	pipeline     Pipeline
	logger       *zerolog.Logger
}

func NewConsumer(client *redis.Client, cfg *RedisStreamConfig, pipeline Pipeline, logger *zerolog.Logger) *Consumer {
	return &Consumer{
		client:       client,
		stream:       cfg.Stream,
		resultStream: cfg.ResultStream,
		resultMaxLen: cfg.ResultMaxLen,
		groupID:      cfg.Group,
		consumerName: cfg.ConsumerName,
		block:        2 * time.Second,
		retryDelay:   time.Second,
		pipeline:     pipeline,
		logger:       logger,
	}
}

func (c *Consumer) Setup(ctx context.Context) error {
	err := c.client.XGroupCreateMkStream(ctx, c.stream, c.groupID, "0").Err()
	if err != nil && !strings.HasPrefix(err.Error(), "BUSYGROUP") {
		return err
	}
	return nil
}

func (c *Consumer) Start(ctx context.Context) error {
	c.logger.Info().
		Str("stream", c.stream).
		Str("results", c.resultStream).
		Str("group", c.groupID).
		Str("consumer", c.consumerName).
		Msg("Consumer started")

	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		msgs, err := c.client.XReadGroup(ctx, &redis.XReadGroupArgs{
			Group:    c.groupID,
			Consumer: c.consumerName,
			Streams:  []string{c.stream, ">"},
			Count:    1,
			Block:    c.block,
		}).Result()

		if err != nil {
			if errors.Is(err, redis.Nil) {
				// timeout, no message -> loop again
				continue
			}

			if ctx.Err() != nil {
				return ctx.Err() // context cancelled during block
			}

			if errors.Is(err, redis.ErrClosed) {
				return err
			}

			c.logger.Error().Err(err).Msg("Failed to read from stream")
			select {
			case <-time.After(c.retryDelay):
			case <-ctx.Done():
				return ctx.Err()
			}
			continue
		}

		for _, stream := range msgs {
			for _, msg := range stream.Messages {
				c.process(ctx, msg)
			}
		}
	}
}

func (c *Consumer) Stop() error {
	return c.client.Close()
}

func (c *Consumer) process(ctx context.Context, msg redis.XMessage) {
	c.logger.Info().Str("id", msg.ID).Msg("Message received")

	payload, ok := msg.Values[PayloadField].(string)
	if !ok {
		c.logger.Error().Str("id", msg.ID).Msg("Missing payload field")
		c.ack(ctx, msg.ID)
		return
	}

	var queryRequest models.QueryRequest
	if err := json.Unmarshal([]byte(payload), &queryRequest); err != nil {
		c.logger.Error().Err(err).Str("id", msg.ID).Msg("Failed to decode message")
		c.ack(ctx, msg.ID) // bad message, ACK to skip it
		return
	}

	result := c.pipeline.Run(ctx, queryRequest)

	if err := c.publish(ctx, msg.ID, result); err != nil {
		// Leave the message pending so it can be claimed and retried.
		c.logger.Error().Err(err).Str("id", msg.ID).Msg("Failed to publish result")
		return
	}

	c.logger.Info().
		Str("id", msg.ID).
		Str("requestID", result.RequestID).
		Str("state", string(result.State)).
		Msg("Query complete")

	c.ack(ctx, msg.ID)
}

func (c *Consumer) publish(ctx context.Context, sourceID string, result models.PipelineResult) error {
	data, err := json.Marshal(result)
	if err != nil {
		return err
	}

	args := &redis.XAddArgs{
		Stream: c.resultStream,
		Values: map[string]any{
			"source_id":  sourceID,
			"request_id": result.RequestID,
			"state":      string(result.State),
			PayloadField: string(data),
		},
	}
	if c.resultMaxLen > 0 {
		args.MaxLen = c.resultMaxLen
		args.Approx = true
	}

	return c.client.XAdd(ctx, args).Err()
}

func (c *Consumer) ack(ctx context.Context, msgID string) {
	if err := c.client.XAck(ctx, c.stream, c.groupID, msgID).Err(); err != nil {
		c.logger.Error().Err(err).Str("id", msgID).Msg("Failed to ACK message")
	}
}
