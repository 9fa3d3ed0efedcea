package skill

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	apperrors "discogs-explorer/internal/common/errors"
	"discogs-explorer/internal/common/logger"
	"discogs-explorer/internal/common/metrics"
	"discogs-explorer/internal/common/observability"
	"discogs-explorer/internal/models"
)

const noHandler = "none"

// Dispatch outcomes.
const (
	OutcomeHandled   = "handled"
	OutcomeException = "exception"
	OutcomeFailed    = "failed"
)

var ErrEmptyRegistry = errors.New("dispatcher has no request handlers")
var ErrNoExceptionHandler = errors.New("dispatcher has no exception handler")

type RequestHandler interface {
	CanHandle(in *Input) bool
	Handle(ctx context.Context, in *Input) (*models.Response, error)
}

type ExceptionHandler interface {
	CanHandle(in *Input, err error) bool
	Handle(ctx context.Context, in *Input, err error) (*models.Response, error)
}

// Named lets a handler report a stable name for logs and metrics.
type Named interface {
	Name() string
}

// HandlerFunc adapts a predicate and a function into a RequestHandler.
type HandlerFunc struct {
	HandlerName string
	Match       Predicate
	Fn          func(ctx context.Context, in *Input) (*models.Response, error)
}

func (h HandlerFunc) CanHandle(in *Input) bool { return h.Match != nil && h.Match(in) }

func (h HandlerFunc) Handle(ctx context.Context, in *Input) (*models.Response, error) {
	return h.Fn(ctx, in)
}

func (h HandlerFunc) Name() string { return h.HandlerName }

// DispatchRecorder receives one event per dispatched request.
type DispatchRecorder interface {
	RecordDispatch(ctx context.Context, handler, outcome string, duration time.Duration)
}

type Option func(*Dispatcher)

func WithTracer(t trace.Tracer) Option {
	return func(d *Dispatcher) { d.tracer = t }
}

func WithRecorder(r DispatchRecorder) Option {
	return func(d *Dispatcher) { d.recorder = r }
}

// Dispatcher routes a request to the first request handler that accepts it.
// Errors and panics from handlers, and requests nobody accepts, go to the
// first matching exception handler. Registration happens at startup; after
// that the dispatcher is read-only and safe for concurrent use.
type Dispatcher struct {
	requestHandlers   []RequestHandler
	exceptionHandlers []ExceptionHandler
	logger            logger.Logger
	tracer            trace.Tracer
	recorder          DispatchRecorder
}

func NewDispatcher(log logger.Logger, opts ...Option) *Dispatcher {
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	d := &Dispatcher{
		logger: log,
		tracer: otel.Tracer("discogs-explorer/skill"),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// AddRequestHandlers appends handlers. Order matters: the first handler whose
// CanHandle returns true wins.
func (d *Dispatcher) AddRequestHandlers(handlers ...RequestHandler) *Dispatcher {
	d.requestHandlers = append(d.requestHandlers, handlers...)
	return d
}

func (d *Dispatcher) AddExceptionHandlers(handlers ...ExceptionHandler) *Dispatcher {
	d.exceptionHandlers = append(d.exceptionHandlers, handlers...)
	return d
}

// Validate checks the registry at startup.
func (d *Dispatcher) Validate() error {
	if len(d.requestHandlers) == 0 {
		return ErrEmptyRegistry
	}
	if len(d.exceptionHandlers) == 0 {
		return ErrNoExceptionHandler
	}
	return nil
}

// HandlerNames lists the registered request handlers in evaluation order.
func (d *Dispatcher) HandlerNames() []string {
	names := make([]string, len(d.requestHandlers))
	for i, h := range d.requestHandlers {
		names[i] = handlerName(h)
	}
	return names
}

// Dispatch produces the response for one request. It returns an error only
// when the failure escaped every exception handler.
func (d *Dispatcher) Dispatch(ctx context.Context, env *models.RequestEnvelope) (*models.Response, error) {
	if env == nil {
		return nil, apperrors.NewInvalidRequestError("request envelope is nil")
	}

	requestID := env.Request.RequestID
	if requestID == "" {
		requestID = uuid.New().String()
	}

	ctx, span := d.tracer.Start(ctx, "skill.dispatch",
		trace.WithSpanKind(trace.SpanKindServer),
		trace.WithAttributes(
			attribute.String("skill.request_id", requestID),
			attribute.String("skill.request_type", env.RequestType()),
			attribute.String("skill.intent", env.IntentName()),
		),
	)
	defer span.End()

	fields := map[string]interface{}{
		"requestId":   requestID,
		"requestType": env.RequestType(),
	}
	if intent := env.IntentName(); intent != "" {
		fields["intent"] = intent
	}
	if traceID := observability.TraceID(ctx); traceID != "" {
		fields["traceId"] = traceID
	}
	in := &Input{
		Envelope:  env,
		Logger:    d.logger.With(fields),
		RequestID: requestID,
	}

	metrics.SkillRequestsActive.Inc()
	defer metrics.SkillRequestsActive.Dec()
	start := time.Now()

	name, resp, err := d.handle(ctx, in)
	outcome := OutcomeHandled
	if err != nil {
		in.Logger.Warn("request handler failed", map[string]interface{}{
			"handler": name,
			"error":   err.Error(),
		})
		span.RecordError(err)
		resp, err = d.handleException(ctx, in, err)
		outcome = OutcomeException
		if err != nil {
			outcome = OutcomeFailed
			span.SetStatus(codes.Error, err.Error())
		}
	}

	duration := time.Since(start)
	span.SetAttributes(attribute.String("skill.handler", name), attribute.String("skill.outcome", outcome))
	metrics.SkillRequestsTotal.WithLabelValues(env.RequestType(), name, outcome).Inc()
	metrics.SkillRequestDuration.WithLabelValues(name).Observe(duration.Seconds())
	if d.recorder != nil {
		d.recorder.RecordDispatch(ctx, name, outcome, duration)
	}

	if err != nil {
		in.Logger.Error("request escaped every exception handler", map[string]interface{}{
			"handler": name,
			"error":   err.Error(),
		})
		return nil, err
	}

	in.Logger.Info("request dispatched", map[string]interface{}{
		"handler":    name,
		"outcome":    outcome,
		"durationMs": duration.Milliseconds(),
	})
	return resp, nil
}

func (d *Dispatcher) handle(ctx context.Context, in *Input) (name string, resp *models.Response, err error) {
	name = noHandler
	defer func() {
		if r := recover(); r != nil {
			resp = nil
			err = apperrors.NewHandlerPanicError(name, r)
		}
	}()

	for _, h := range d.requestHandlers {
		if !h.CanHandle(in) {
			continue
		}
		name = handlerName(h)
		resp, err = h.Handle(ctx, in)
		if err == nil && resp == nil {
			resp = &models.Response{}
		}
		return name, resp, err
	}

	return name, nil, apperrors.NewNoMatchingHandlerError(in.RequestType(), in.IntentName())
}

func (d *Dispatcher) handleException(ctx context.Context, in *Input, cause error) (resp *models.Response, err error) {
	defer func() {
		if r := recover(); r != nil {
			resp = nil
			err = fmt.Errorf("exception handler panicked: %v: %w", r, cause)
		}
	}()

	for _, h := range d.exceptionHandlers {
		if !h.CanHandle(in, cause) {
			continue
		}
		resp, err = h.Handle(ctx, in, cause)
		if err == nil && resp == nil {
			resp = &models.Response{}
		}
		return resp, err
	}
	return nil, cause
}

func handlerName(h interface{}) string {
	if n, ok := h.(Named); ok && n.Name() != "" {
		return n.Name()
	}
	return fmt.Sprintf("%T", h)
}
