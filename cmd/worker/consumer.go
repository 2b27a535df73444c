package main

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/khoahotran/hireboard/adapters/event"
	"github.com/khoahotran/hireboard/pkg/apperror"
	"github.com/khoahotran/hireboard/pkg/logger"
)

type processFunc func(ctx context.Context, payload event.CompanyEventPayload) error

type commitFunc func(ctx context.Context, msgs ...kafka.Message) error

// retryPolicy doubles the wait between attempts up to max.
type retryPolicy struct {
	initial time.Duration
	max     time.Duration
}

var defaultRetry = retryPolicy{initial: 500 * time.Millisecond, max: 30 * time.Second}

func (p retryPolicy) next(d time.Duration) time.Duration {
	d *= 2
	if d > p.max {
		return p.max
	}
	return d
}

// Store failures are transient. Everything else fails the same way on every
// attempt.
func isRetryable(err error) bool {
	return errors.Is(err, apperror.ErrPersist)
}

// handleMessage processes one message and commits it. A retryable failure is
// retried in place, since committing a later offset would skip this one. A
// non-nil return means ctx ended and msg was left uncommitted.
func handleMessage(ctx context.Context, msg kafka.Message, process processFunc, commit commitFunc, policy retryPolicy, log logger.Logger) error {
	l := log.With(zap.String("topic", msg.Topic), zap.String("key", string(msg.Key)), zap.Int64("offset", msg.Offset))

	var payload event.CompanyEventPayload
	if err := json.Unmarshal(msg.Value, &payload); err != nil {
		l.Error("Failed to unmarshal event, skipping", err)
		commitMessage(commit, msg, l)
		return nil
	}
	l = l.With(zap.String("company_id", payload.CompanyID.String()))

	delay := policy.initial
	for attempt := 1; ; attempt++ {
		err := process(ctx, payload)
		if err == nil {
			break
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if !isRetryable(err) {
			l.Error("Dropping company event after non-retryable failure", err, zap.Int("attempt", attempt))
			break
		}

		l.Warn("Company event failed, retrying", zap.Error(err), zap.Int("attempt", attempt), zap.Duration("backoff", delay))
		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
		delay = policy.next(delay)
	}

	commitMessage(commit, msg, l)
	return nil
}

func commitMessage(commit commitFunc, msg kafka.Message, log logger.Logger) {
	if err := commit(context.Background(), msg); err != nil {
		log.Error("Failed to commit message", err)
	}
}
