package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/povarna/generative-ai-agents/guardrail-agent/internal/models"
	red "github.com/povarna/generative-ai-agents/guardrail-agent/internal/redis"
	"github.com/povarna/generative-ai-agents/guardrail-agent/internal/stream/redis"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	data := flag.String("d", "", "Inline JSON QueryRequest")
	query := flag.String("q", "", "Query text (shortcut for -d '{\"query\":...}')")
	stream := flag.String("stream", redis.DefaultQueryStream, "Stream name")
	flag.Parse()

	if *data == "" && *query == "" {
		fmt.Fprintln(os.Stderr, "Usage: producer -d '<json>' | -q '<question>'")
		flag.PrintDefaults()
		os.Exit(1)
	}

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	if err := run(*data, *query, *stream); err != nil {
		log.Error().Err(err).Msg("producer failed")
		os.Exit(1)
	}
}

func run(data, query, stream string) error {
	_ = godotenv.Load()

	var req models.QueryRequest
	if data != "" {
		if err := json.Unmarshal([]byte(data), &req); err != nil {
			return err
		}
	} else {
		req.Query = query
	}
	req = req.Normalize()

	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}

	ctx := context.Background()
	client, err := red.ConnectRedis(ctx, addr, os.Getenv("REDIS_PASSWORD"), 3)
	if err != nil {
		return err
	}
	defer client.Close()

	id, err := redis.NewProducer(client, stream).Publish(ctx, req)
	if err != nil {
		return err
	}

	log.Info().Str("stream", stream).Str("id", id).Str("requestID", req.RequestID).Msg("Published successfully!")
	return nil
}
