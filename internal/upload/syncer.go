package upload

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// Sink persists page batches.
type Sink interface {
	Name() string
	Write(ctx context.Context, batch Batch) error
	Close(ctx context.Context) error
}

// Options configures a Syncer.
type Options struct {
	// Retries is the number of attempts after the first failure.
	Retries int
	// Backoff is multiplied by the attempt number between attempts.
	Backoff time.Duration
	Logger  *slog.Logger
	// Sleep waits between attempts. Defaults to a context-aware timer.
	Sleep func(ctx context.Context, d time.Duration) error
}

// Syncer writes batches to a sink with bounded retries.
type Syncer struct {
	sink    Sink
	retries int
	backoff time.Duration
	logger  *slog.Logger
	sleep   func(ctx context.Context, d time.Duration) error
}

// NewSyncer wraps a sink.
func NewSyncer(sink Sink, opts Options) *Syncer {
	if sink == nil {
		panic("upload: sink is nil")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	sleep := opts.Sleep
	if sleep == nil {
		sleep = sleepContext
	}
	retries := opts.Retries
	if retries < 0 {
		retries = 0
	}
	return &Syncer{
		sink:    sink,
		retries: retries,
		backoff: opts.Backoff,
		logger:  logger.With("sink", sink.Name()),
		sleep:   sleep,
	}
}

// Sink returns the wrapped sink.
func (s *Syncer) Sink() Sink { return s.sink }

// Push writes every batch and returns one result per batch in order.
// A cancelled context stops further attempts.
func (s *Syncer) Push(ctx context.Context, batches []Batch) []Result {
	results := make([]Result, 0, len(batches))
	for _, batch := range batches {
		results = append(results, Result{
			Fragment: batch.Fragment,
			Revision: batch.Revision,
			Err:      s.write(ctx, batch),
		})
	}
	return results
}

func (s *Syncer) write(ctx context.Context, batch Batch) error {
	var err error
	for attempt := 0; attempt <= s.retries; attempt++ {
		if attempt > 0 {
			if sleepErr := s.sleep(ctx, time.Duration(attempt)*s.backoff); sleepErr != nil {
				return fmt.Errorf("upload page %d: %w", batch.Fragment+1, sleepErr)
			}
		}
		err = s.sink.Write(ctx, batch)
		if err == nil {
			s.logger.Debug("page uploaded", "session", batch.SessionID, "fragment", batch.Fragment, "revision", batch.Revision)
			return nil
		}
		s.logger.Warn("page upload failed", "session", batch.SessionID, "fragment", batch.Fragment, "attempt", attempt+1, "error", err)
		if ctx.Err() != nil {
			break
		}
	}
	return fmt.Errorf("upload page %d: %w", batch.Fragment+1, err)
}

// Close closes the sink.
func (s *Syncer) Close(ctx context.Context) error {
	return s.sink.Close(ctx)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
