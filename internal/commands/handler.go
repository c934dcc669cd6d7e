package commands

import (
	"context"
	"time"

	command "github.com/goliatone/go-command"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/saltaireguide/directory/internal/logging"
	"github.com/saltaireguide/directory/pkg/interfaces"
)

// DefaultTimeout bounds a single command execution. Imports walk the whole
// listings directory, so the budget is generous.
const DefaultTimeout = 2 * time.Minute

// Outcome labels used for the execution counter.
const (
	OutcomeSuccess      = "success"
	OutcomeInvalid      = "invalid"
	OutcomeFailed       = "failed"
	OutcomeContextError = "context_error"
)

// HandlerOption configures a Handler instance.
type HandlerOption[T command.Message] func(*Handler[T])

// Handler wraps a command function with validation, a timeout, logging and
// error categorisation. It satisfies go-command's Commander interface.
type Handler[T command.Message] struct {
	exec     command.CommandFunc[T]
	logger   interfaces.Logger
	timeout  time.Duration
	counter  *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

func NewHandler[T command.Message](fn command.CommandFunc[T], opts ...HandlerOption[T]) *Handler[T] {
	if fn == nil {
		panic("commands: handler function cannot be nil")
	}
	h := &Handler[T]{
		exec:    fn,
		logger:  logging.NoOp(),
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Execute validates msg, then runs the wrapped function under the handler
// timeout.
func (h *Handler[T]) Execute(ctx context.Context, msg T) error {
	messageType := command.GetMessageType(msg)
	logger := logging.WithFields(h.logger, map[string]any{"command": messageType})

	if err := command.ValidateMessage(msg); err != nil {
		logger.Warn("command.validation_failed", "error", err)
		h.observe(messageType, OutcomeInvalid, 0)
		return wrapValidationError(err)
	}

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := h.withTimeout(ctx)
	defer cancel()

	if err := ctx.Err(); err != nil {
		h.observe(messageType, OutcomeContextError, 0)
		return wrapContextError(err)
	}

	started := time.Now()
	logger.Debug("command.start")
	err := h.exec(ctx, msg)
	elapsed := time.Since(started)

	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			logger.Error("command.context_error", "error", err, "duration_ms", elapsed.Milliseconds())
			h.observe(messageType, OutcomeContextError, elapsed)
			return wrapContextError(ctxErr)
		}
		logger.Error("command.failed", "error", err, "duration_ms", elapsed.Milliseconds())
		h.observe(messageType, OutcomeFailed, elapsed)
		return wrapExecuteError(err)
	}

	logger.Info("command.done", "duration_ms", elapsed.Milliseconds())
	h.observe(messageType, OutcomeSuccess, elapsed)
	return nil
}

// WithTimeout overrides DefaultTimeout. Zero or negative disables the timeout.
func WithTimeout[T command.Message](timeout time.Duration) HandlerOption[T] {
	return func(h *Handler[T]) {
		if timeout <= 0 {
			h.timeout = 0
			return
		}
		h.timeout = timeout
	}
}

// WithLogger injects the logger used during execution.
func WithLogger[T command.Message](logger interfaces.Logger) HandlerOption[T] {
	return func(h *Handler[T]) {
		if logger == nil {
			h.logger = logging.NoOp()
			return
		}
		h.logger = logger
	}
}

// WithMetrics records executions on counter (labels: command, outcome) and
// durations on duration (label: command). Either may be nil.
func WithMetrics[T command.Message](counter *prometheus.CounterVec, duration *prometheus.HistogramVec) HandlerOption[T] {
	return func(h *Handler[T]) {
		h.counter = counter
		h.duration = duration
	}
}

func (h *Handler[T]) observe(messageType, outcome string, elapsed time.Duration) {
	if h.counter != nil {
		h.counter.WithLabelValues(messageType, outcome).Inc()
	}
	if h.duration != nil && elapsed > 0 {
		h.duration.WithLabelValues(messageType).Observe(elapsed.Seconds())
	}
}

func (h *Handler[T]) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if h.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, h.timeout)
}
