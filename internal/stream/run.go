package stream

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
)

// Run starts the consumer and blocks until ctx is cancelled or Start fails.
// The consumer is always stopped. A cancellation is a clean shutdown and
// returns nil; any other Start error is returned.
func Run(ctx context.Context, consumer StreamConsumer, logger *zerolog.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- consumer.Start(ctx)
	}()

	var startErr error
	select {
	case <-ctx.Done():
		logger.Info().Msg("Shutting down...")
		startErr = <-errCh
	case startErr = <-errCh:
	}

	if err := consumer.Stop(); err != nil {
		logger.Warn().Err(err).Msg("Failed to close consumer")
	}

	if startErr != nil && !errors.Is(startErr, context.Canceled) {
		return startErr
	}
	return nil
}
