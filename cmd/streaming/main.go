package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/povarna/generative-ai-agents/guardrail-agent/internal/setup"
	"github.com/povarna/generative-ai-agents/guardrail-agent/internal/setup/logger"
	"github.com/povarna/generative-ai-agents/guardrail-agent/internal/stream"
	"github.com/povarna/generative-ai-agents/guardrail-agent/internal/stream/redis"
	"github.com/rs/zerolog/log"
)

func main() {
	// Load env
	if err := godotenv.Load(); err != nil {
		log.Warn().Msg("No .env file found")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfg, err := setup.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	// JSON logs for the worker; it usually runs under a log collector.
	workerLogger := logger.New("guardrail-worker", cfg.LogLevel)

	deps, err := setup.Wire(ctx, cfg, &workerLogger)
	if err != nil {
		workerLogger.Fatal().Err(err).Msg("Failed to wire dependencies")
	}

	redisCfg := redis.NewRedisStreamConfig(
		cfg.RedisAddr,
		cfg.RedisPassword,
		os.Getenv("QUERY_STREAM"),
		os.Getenv("QUERY_GROUP"),
		os.Getenv("HOSTNAME"),
	)
	if resultStream := os.Getenv("RESULT_STREAM"); resultStream != "" {
		redisCfg.ResultStream = resultStream
	}
	redisCfg.ResultMaxLen = 10000

	streamCfg := &stream.StreamConfig{
		Provider:    os.Getenv("STREAM_PROVIDER"),
		RedisConfig: redisCfg,
	}

	consumer, err := stream.NewStreamConsumer(ctx, streamCfg, deps.Executor, &workerLogger)
	if err != nil {
		workerLogger.Fatal().Err(err).Msg("Failed to create stream consumer")
	}

	// Setup consumer
	if err := consumer.Setup(ctx); err != nil {
		workerLogger.Fatal().Err(err).Msg("Failed to setup consumer")
	}

	// Run until a signal arrives or the consumer fails
	if err := stream.Run(ctx, consumer, &workerLogger); err != nil {
		workerLogger.Error().Err(err).Msg("Consumer stopped with error")
		os.Exit(1)
	}

	workerLogger.Info().Msg("Guardrail worker stopped")
}
