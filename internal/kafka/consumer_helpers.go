package kafka

import (
	"context"
	"errors"
	"time"

	"github.com/Gunvolt24/pcquote/internal/usecase"
	"github.com/Gunvolt24/pcquote/pkg/metrics"
	"github.com/segmentio/kafka-go"
)

// outcome - итог одной попытки обработки.
type outcome int

const (
	outcomeApplied outcome = iota // применено, коммитим
	outcomeSkipped                // невалидное, коммитим без повтора
	outcomeRetry                  // временная ошибка, повторяем то же сообщение
)

// fetch - FetchMessage с экспоненциальным backoff на ошибках брокера/сети.
// Ошибку возвращает только при отмене ctx.
func (c *Consumer) fetch(ctx context.Context) (kafka.Message, error) {
	backoff := c.retryInitial
	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err == nil {
			return msg, nil
		}
		if ctx.Err() != nil {
			return kafka.Message{}, ctx.Err()
		}
		sleep := c.withJitterEqual(backoff)
		c.log.Warnf(ctx, "fetch failed: %v (will retry in %s)", err, sleep)
		if !c.sleepWithBackoff(ctx, sleep) {
			return kafka.Message{}, ctx.Err()
		}
		backoff = c.nextBackoff(backoff)
	}
}

// process - повторяет обработку сообщения, пока она не завершится итогом
// applied/skipped. Ошибка - только отмена ctx (оффсет тогда не коммитится).
func (c *Consumer) process(ctx context.Context, topic string, msg *kafka.Message) error {
	backoff := c.retryInitial
	for attempt := 1; ; attempt++ {
		if c.attempt(ctx, topic, msg, attempt) != outcomeRetry {
			return nil
		}

		metrics.KafkaMessagesRetried.WithLabelValues(topic).Inc()
		if !c.sleepWithBackoff(ctx, c.withJitterEqual(backoff)) {
			c.log.Warnf(ctx, "stopped while retrying offset=%d key=%s attempts=%d (not committed)",
				msg.Offset, string(msg.Key), attempt)
			return ctx.Err()
		}
		backoff = c.nextBackoff(backoff)
	}
}

// attempt - одна попытка с таймаутом processTimeout.
func (c *Consumer) attempt(ctx context.Context, topic string, msg *kafka.Message, n int) outcome {
	ctxTimeout, cancel := context.WithTimeout(ctx, c.processTimeout)
	err := c.service.ApplyQuoteEvent(ctxTimeout, msg.Value)
	cancel()

	switch {
	case err == nil:
		metrics.KafkaMessagesProcessed.WithLabelValues(topic).Inc()
		if n > 1 {
			c.log.Infof(ctx, "quote event applied offset=%d key=%s after %d attempts", msg.Offset, string(msg.Key), n)
		}
		return outcomeApplied
	case errors.Is(err, usecase.ErrInvalidEvent):
		metrics.KafkaMessagesFailed.WithLabelValues(topic).Inc()
		c.log.Warnf(ctx, "invalid quote event offset=%d key=%s: %v (skipped)", msg.Offset, string(msg.Key), err)
		return outcomeSkipped
	default:
		metrics.KafkaMessagesFailed.WithLabelValues(topic).Inc()
		c.log.Warnf(ctx, "apply failed offset=%d key=%s attempt=%d: %v (retrying)", msg.Offset, string(msg.Key), n, err)
		return outcomeRetry
	}
}

// commitSafely - коммит оффсета; ошибка только логируется.
func (c *Consumer) commitSafely(ctx context.Context, msg *kafka.Message) {
	if commitErr := c.reader.CommitMessages(ctx, *msg); commitErr != nil {
		c.log.Warnf(ctx, "commit failed offset=%d: %v", msg.Offset, commitErr)
	}
}

// sleepWithBackoff ждет d или останавливается по контексту.
func (c *Consumer) sleepWithBackoff(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

func (c *Consumer) nextBackoff(current time.Duration) time.Duration {
	current *= 2
	if current > c.retryMax {
		return c.retryMax
	}
	return current
}

// withJitterEqual - половина задержки фиксирована, вторая половина случайная.
func (c *Consumer) withJitterEqual(d time.Duration) time.Duration {
	if d <= 0 {
		return 0
	}
	half := d / 2
	jitter := time.Duration(c.jitterRand.Int63n(int64(d-half) + 1))
	return half + jitter
}

func durationOr(d, def time.Duration) time.Duration {
	if d <= 0 {
		return def
	}
	return d
}
