package rest

import (
	"context"
	"errors"
	"net/http"
	"path/filepath"
	"time"

	"github.com/Gunvolt24/pcquote/internal/ports"
	"github.com/Gunvolt24/pcquote/internal/usecase"
	"github.com/Gunvolt24/pcquote/pkg/httpx"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

// Handler - HTTP-обработчики поверх сервиса чтения смет.
type Handler struct {
	service ports.QuoteReadService
	log     ports.Logger
	timeout time.Duration
}

// NewHandler - timeout ограничивает время обработки запроса сервисом (0 - без ограничения).
func NewHandler(service ports.QuoteReadService, log ports.Logger, timeout time.Duration) *Handler {
	return &Handler{service: service, log: log, timeout: timeout}
}

// NewRouter - собирает gin.Engine. Если otelServiceName пустой, трассировка HTTP не подключается.
func NewRouter(h *Handler, staticDir, otelServiceName string) *gin.Engine {
	r := gin.New()
	r.HandleMethodNotAllowed = true

	r.Use(gin.Recovery())
	r.Use(httpx.RequestIDMiddleware())
	if otelServiceName != "" {
		r.Use(otelgin.Middleware(otelServiceName))
	}
	r.Use(httpx.RequestLogger(h.log))

	r.NoRoute(func(c *gin.Context) {
		httpx.WriteError(c, http.StatusNotFound, httpx.CodeNotFound, "route not found")
	})
	r.NoMethod(func(c *gin.Context) {
		c.Header("Allow", http.MethodGet)
		httpx.WriteError(c, http.StatusMethodNotAllowed, httpx.CodeMethodNotAllowed, "method not allowed")
	})

	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.GET("/compatibility/check", h.checkCompatibility)
	api := r.Group("/api")
	{
		api.GET("/compatibility/check", h.checkCompatibility)
		api.GET("/quotes/:id", h.getQuote)
	}

	if staticDir != "" {
		r.Static("/static", staticDir)
		r.StaticFile("/", filepath.Join(staticDir, "index.html"))
	}

	return r
}

func (h *Handler) checkCompatibility(c *gin.Context) {
	quoteID, ok := h.parseQuoteID(c, c.Query("quoteId"))
	if !ok {
		return
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	report, err := h.service.CheckQuote(ctx, quoteID)
	if err != nil {
		h.writeServiceError(c, "CheckQuote", quoteID, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

func (h *Handler) getQuote(c *gin.Context) {
	quoteID, ok := h.parseQuoteID(c, c.Param("id"))
	if !ok {
		return
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	quote, err := h.service.GetQuote(ctx, quoteID)
	if err != nil {
		h.writeServiceError(c, "GetQuote", quoteID, err)
		return
	}
	c.JSON(http.StatusOK, newQuoteView(quote))
}

func (h *Handler) parseQuoteID(c *gin.Context, raw string) (int64, bool) {
	quoteID, err := httpx.ParseQuoteID(raw)
	switch {
	case err == nil:
		return quoteID, true
	case errors.Is(err, httpx.ErrQuoteIDRequired):
		httpx.WriteError(c, http.StatusBadRequest, httpx.CodeQuoteIDRequired, err.Error())
	default:
		httpx.WriteError(c, http.StatusBadRequest, httpx.CodeInvalidQuoteID, err.Error())
	}
	return 0, false
}

func (h *Handler) requestContext(c *gin.Context) (context.Context, context.CancelFunc) {
	if h.timeout <= 0 {
		return c.Request.Context(), func() {}
	}
	return context.WithTimeout(c.Request.Context(), h.timeout)
}

// writeServiceError - ошибка сервиса -> код ответа. Детали внутренних ошибок наружу не отдаются.
func (h *Handler) writeServiceError(c *gin.Context, op string, quoteID int64, err error) {
	ctx := c.Request.Context()
	switch {
	case errors.Is(err, usecase.ErrQuoteNotFound):
		httpx.WriteError(c, http.StatusNotFound, httpx.CodeQuoteNotFound, "quote not found")
	case errors.Is(err, context.DeadlineExceeded):
		h.log.Warnf(ctx, "%s timed out quote=%d err=%v", op, quoteID, err)
		httpx.WriteError(c, http.StatusGatewayTimeout, httpx.CodeTimeout, "request timed out")
	default:
		h.log.Errorf(ctx, "%s failed quote=%d err=%v", op, quoteID, err)
		httpx.WriteError(c, http.StatusInternalServerError, httpx.CodeInternal, "internal server error")
	}
}
