package usecase

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/Gunvolt24/pcquote/internal/domain"
	"github.com/Gunvolt24/pcquote/internal/ports"
	"github.com/Gunvolt24/pcquote/pkg/ctxmeta"
	"github.com/Gunvolt24/pcquote/pkg/metrics"
	"github.com/Gunvolt24/pcquote/pkg/telemetry"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var (
	// ErrQuoteNotFound - смета с таким ID отсутствует.
	ErrQuoteNotFound = errors.New("quote not found")
	// ErrInvalidEvent - событие из Kafka не разобрано; повтор не поможет.
	ErrInvalidEvent = errors.New("invalid quote event")
)

// EventDeleted - смета удалена; перечитывать её в кэш не нужно.
const EventDeleted = "deleted"

// QuoteEvent - событие об изменении сметы или товара во внешней системе.
// Нужен хотя бы один из ID.
type QuoteEvent struct {
	QuoteID   int64  `json:"quoteId,omitempty"`
	ProductID int64  `json:"productId,omitempty"`
	Event     string `json:"event"`
}

// CompatibilityService - загрузка смет и проверка совместимости (без знаний о транспорте).
type CompatibilityService struct {
	repo    ports.QuoteRepository
	cache   ports.QuoteCache
	log     ports.Logger
	checker ports.CompatibilityChecker
}

// NewCompatibilityService - DI-конструктор.
func NewCompatibilityService(
	repo ports.QuoteRepository,
	cache ports.QuoteCache,
	log ports.Logger,
	checker ports.CompatibilityChecker,
) *CompatibilityService {
	return &CompatibilityService{
		repo:    repo,
		cache:   cache,
		log:     log,
		checker: checker,
	}
}

// CheckQuote - загрузить смету и проверить совместимость её позиций.
func (s *CompatibilityService) CheckQuote(ctx context.Context, quoteID int64) (*domain.Report, error) {
	ctx, span := telemetry.Tracer().Start(ctx, "CompatibilityService.CheckQuote")
	defer span.End()
	span.SetAttributes(attribute.Int64("quote.id", quoteID))

	ctx = ctxmeta.WithQuoteID(ctx, quoteID)
	start := time.Now()

	quote, err := s.loadQuote(ctx, quoteID)
	if err != nil {
		if !errors.Is(err, ErrQuoteNotFound) {
			span.RecordError(err)
			span.SetStatus(codes.Error, "load quote")
		}
		return nil, err
	}

	report := s.checker.Check(quote.Items)
	report.QuoteID = quote.ID
	span.SetAttributes(
		attribute.Int("quote.items", len(quote.Items)),
		attribute.Bool("compat.compatible", report.Compatible),
		attribute.Int("compat.issues", len(report.Issues)),
		attribute.Int("compat.warnings", len(report.Warnings)),
	)

	metrics.CompatCheckDuration.Observe(time.Since(start).Seconds())
	metrics.ObserveReport(report.Compatible, problemLabels(report)...)

	s.log.Infof(ctx, "compatibility checked quote=%d items=%d compatible=%t issues=%d warnings=%d",
		quoteID, len(quote.Items), report.Compatible, len(report.Issues), len(report.Warnings))
	return &report, nil
}

// GetQuote - смета по ID тем же путём загрузки, что и при проверке.
func (s *CompatibilityService) GetQuote(ctx context.Context, quoteID int64) (*domain.Quote, error) {
	return s.loadQuote(ctxmeta.WithQuoteID(ctx, quoteID), quoteID)
}

// loadQuote - сначала кэш, при промахе БД с записью в кэш.
func (s *CompatibilityService) loadQuote(ctx context.Context, quoteID int64) (*domain.Quote, error) {
	if quote, found := s.cache.Get(ctx, quoteID); found {
		return quote, nil
	}

	start := time.Now()
	quote, err := s.repo.GetByID(ctx, quoteID)
	if err != nil {
		s.log.Errorf(ctx, "repo.GetByID failed quote=%d err=%v", quoteID, err)
		return nil, fmt.Errorf("load quote %d: %w", quoteID, err)
	}
	if quote == nil {
		return nil, ErrQuoteNotFound
	}

	if setErr := s.cache.Set(ctx, quote); setErr != nil {
		s.log.Warnf(ctx, "cache.Set failed quote=%d err=%v", quoteID, setErr)
	}
	s.log.Infof(ctx, "db fetch quote=%d items=%d took=%s", quoteID, len(quote.Items), time.Since(start))
	return quote, nil
}

// ApplyQuoteEvent - обработать событие из Kafka (raw JSON).
//
// quoteId: запись сметы удаляется из кэша; если смета была в кэше и событие не "deleted",
// она сразу перечитывается из БД.
// productId: из кэша удаляются все сметы с этим товаром (список берётся из БД).
//
// Ошибка разбора -> ErrInvalidEvent (повтор бессмыслен). Ошибка БД возвращается как есть,
// событие нужно обработать повторно.
func (s *CompatibilityService) ApplyQuoteEvent(ctx context.Context, raw []byte) error {
	ev, err := decodeQuoteEvent(raw)
	if err != nil {
		s.log.Warnf(ctx, "invalid quote event: %v", err)
		return err
	}

	if ev.ProductID > 0 {
		if err := s.invalidateProduct(ctx, ev); err != nil {
			return err
		}
	}
	if ev.QuoteID > 0 {
		return s.refreshQuote(ctxmeta.WithQuoteID(ctx, ev.QuoteID), ev)
	}
	return nil
}

func decodeQuoteEvent(raw []byte) (QuoteEvent, error) {
	var ev QuoteEvent
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&ev); err != nil {
		return ev, fmt.Errorf("%w: %v", ErrInvalidEvent, err)
	}
	if err := dec.Decode(new(struct{})); err != io.EOF {
		return ev, fmt.Errorf("%w: trailing data", ErrInvalidEvent)
	}
	switch {
	case ev.QuoteID < 0 || ev.ProductID < 0:
		return ev, fmt.Errorf("%w: ids must be positive (quoteId=%d productId=%d)", ErrInvalidEvent, ev.QuoteID, ev.ProductID)
	case ev.QuoteID == 0 && ev.ProductID == 0:
		return ev, fmt.Errorf("%w: quoteId or productId is required", ErrInvalidEvent)
	}
	return ev, nil
}

// refreshQuote - сброс записи и перечитывание, если смета была горячей.
func (s *CompatibilityService) refreshQuote(ctx context.Context, ev QuoteEvent) error {
	cached := s.cache.Delete(ctx, ev.QuoteID)
	if !cached || ev.Event == EventDeleted {
		s.log.Infof(ctx, "quote cache invalidated quote=%d event=%s", ev.QuoteID, ev.Event)
		return nil
	}

	// Запись уже удалена: повтор после ошибки перечитывать не станет,
	// смета загрузится при следующей проверке.
	quote, err := s.repo.GetByID(ctx, ev.QuoteID)
	if err != nil {
		s.log.Errorf(ctx, "reload quote failed quote=%d err=%v", ev.QuoteID, err)
		return fmt.Errorf("reload quote %d: %w", ev.QuoteID, err)
	}
	if quote == nil {
		s.log.Infof(ctx, "quote gone on reload quote=%d event=%s", ev.QuoteID, ev.Event)
		return nil
	}
	if setErr := s.cache.Set(ctx, quote); setErr != nil {
		s.log.Warnf(ctx, "cache.Set failed quote=%d err=%v", ev.QuoteID, setErr)
	}
	s.log.Infof(ctx, "quote cache refreshed quote=%d event=%s", ev.QuoteID, ev.Event)
	return nil
}

// invalidateProduct - сброс всех смет, где встречается товар.
func (s *CompatibilityService) invalidateProduct(ctx context.Context, ev QuoteEvent) error {
	ids, err := s.repo.QuoteIDsByProduct(ctx, ev.ProductID)
	if err != nil {
		s.log.Errorf(ctx, "repo.QuoteIDsByProduct failed product=%d err=%v", ev.ProductID, err)
		return fmt.Errorf("quotes by product %d: %w", ev.ProductID, err)
	}

	dropped := 0
	for _, id := range ids {
		if s.cache.Delete(ctx, id) {
			dropped++
		}
	}
	s.log.Infof(ctx, "product change invalidated quotes product=%d quotes=%d cached=%d event=%s",
		ev.ProductID, len(ids), dropped, ev.Event)
	return nil
}

// WarmUpCache - прогрев кэша последними N сметами из БД.
// Если n <= 0, прогрев не выполняется (но это не ошибка).
func (s *CompatibilityService) WarmUpCache(ctx context.Context, n int) error {
	if n <= 0 {
		s.log.Warnf(ctx, "cache warm-up skipped: n <= 0 (n=%d)", n)
		return nil
	}

	start := time.Now()
	list, err := s.repo.LastN(ctx, n)
	if err != nil {
		s.log.Errorf(ctx, "repo.LastN failed n=%d err=%v", n, err)
		return err
	}
	if warmUpErr := s.cache.WarmUp(ctx, list); warmUpErr != nil {
		s.log.Warnf(ctx, "cache.WarmUp failed err=%v", warmUpErr)
	}
	s.log.Infof(ctx, "cache warmed with %d quotes in %s", len(list), time.Since(start))
	return nil
}

func problemLabels(r domain.Report) []metrics.ProblemLabel {
	out := make([]metrics.ProblemLabel, 0, len(r.Issues)+len(r.Warnings))
	for _, p := range r.Issues {
		out = append(out, metrics.ProblemLabel{Type: p.Type, Severity: p.Severity})
	}
	for _, p := range r.Warnings {
		out = append(out, metrics.ProblemLabel{Type: p.Type, Severity: p.Severity})
	}
	return out
}
