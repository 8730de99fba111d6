package kafka

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/Gunvolt24/pcquote/internal/ports"
	"github.com/Gunvolt24/pcquote/pkg/metrics"
	"github.com/segmentio/kafka-go"
)

// Проверка, что Consumer удовлетворяет интерфейсу верхнего уровня (порт приложения).
var _ ports.MessageConsumer = (*Consumer)(nil)

// reader - минимальный контракт над источником (kafka.Reader),
// чтобы легко подменять его моками в тестах.
type reader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Config() kafka.ReaderConfig
	Close() error
}

// eventHandler - применение события об изменении сметы/товара к кэшу.
// usecase.ErrInvalidEvent - событие не разобрать; прочие ошибки временные.
type eventHandler interface {
	ApplyQuoteEvent(ctx context.Context, raw []byte) error
}

// Consumer - обёртка над kafka.Reader и обработчиком событий смет.
type Consumer struct {
	reader         reader
	service        eventHandler
	log            ports.Logger
	processTimeout time.Duration
	retryInitial   time.Duration
	retryMax       time.Duration
	jitterRand     *rand.Rand
	closeOnce      sync.Once
}

// NewConsumer - конструктор. ReaderConfig() настроен на ручной коммит оффсетов.
func NewConsumer(cfg *ConsumerConfig, service eventHandler, log ports.Logger) *Consumer {
	return newConsumer(kafka.NewReader(cfg.ReaderConfig()), cfg, service, log)
}

// newConsumer - сборка поверх готового reader; незаданные таймауты берутся по умолчанию.
func newConsumer(r reader, cfg *ConsumerConfig, service eventHandler, log ports.Logger) *Consumer {
	return &Consumer{
		reader:         r,
		service:        service,
		log:            log,
		processTimeout: durationOr(cfg.ProcessTimeout, 5*time.Second),
		retryInitial:   durationOr(cfg.RetryInitial, time.Second),
		retryMax:       durationOr(cfg.RetryMax, 30*time.Second),
		jitterRand:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Run - основной цикл. Каждое сообщение доводится до результата, затем коммитится оффсет:
//   - событие применено -> CommitMessages;
//   - невалидное событие -> лог и CommitMessages (повтор бессмыслен);
//   - временная ошибка -> повтор того же сообщения с backoff, следующее не читаем.
//
// kafka.Reader не отдаёт некоммиченное сообщение повторно в той же сессии,
// поэтому повтор идёт на месте. Если ctx отменён посреди повторов, оффсет не коммитится
// и сообщение придёт снова после рестарта/ребаланса.
func (c *Consumer) Run(ctx context.Context) error {
	rc := c.reader.Config()
	c.log.Infof(ctx, "kafka consumer started topic=%s group_id=%s brokers=%v", rc.Topic, rc.GroupID, rc.Brokers)

	for {
		msg, err := c.fetch(ctx)
		if err != nil {
			return err
		}
		metrics.KafkaMessagesConsumed.WithLabelValues(rc.Topic).Inc()

		if err := c.process(ctx, rc.Topic, &msg); err != nil {
			return err
		}
		c.commitSafely(ctx, &msg)
	}
}

// Close - закрывает reader. Вызывается при остановке приложения.
func (c *Consumer) Close() (retErr error) {
	c.closeOnce.Do(func() {
		retErr = c.reader.Close()
	})
	return retErr
}
