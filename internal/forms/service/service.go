package service

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks Store,EventPublisher

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"aquads/internal/forms/models"
	"aquads/internal/platform/metrics"
	dErrors "aquads/pkg/domain-errors"
	"aquads/pkg/platform/sentinel"
	"aquads/pkg/requestcontext"
)

// Store persists and reads back form submissions.
type Store interface {
	InsertPackageSelection(ctx context.Context, row *models.PackageSelection) (int64, error)
	InsertStrategyRecommendation(ctx context.Context, row *models.StrategyRecommendation) (int64, error)
	InsertContactForm(ctx context.Context, row *models.ContactForm) (int64, error)
	ListPackageSelections(ctx context.Context) ([]models.PackageSelection, error)
	ListStrategyRecommendations(ctx context.Context) ([]models.StrategyRecommendation, error)
	ListContactForms(ctx context.Context) ([]models.ContactForm, error)
	Count(ctx context.Context, kind models.FormKind) (int64, error)
}

// EventPublisher announces stored submissions. Publishing is best-effort: a
// failure is logged and never fails the submission.
type EventPublisher interface {
	Publish(ctx context.Context, event models.SubmissionEvent) error
}

const tracerName = "aquads/forms"

// Service validates form submissions, persists them with exactly one store
// call each, and serves the admin read-backs.
type Service struct {
	store     Store
	publisher EventPublisher
	logger    *slog.Logger
	metrics   *metrics.Metrics
	tracer    trace.Tracer
	now       func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the service logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithMetrics enables submission and store error counters.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithEventPublisher enables submission events.
func WithEventPublisher(p EventPublisher) Option {
	return func(s *Service) {
		s.publisher = p
	}
}

// WithClock overrides the event timestamp source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// New constructs the form service.
func New(store Store, opts ...Option) (*Service, error) {
	if store == nil {
		return nil, errors.New("form store is required")
	}
	s := &Service{
		store:  store,
		logger: slog.Default(),
		tracer: otel.Tracer(tracerName),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// SubmitPackageSelection validates and stores a package selection.
func (s *Service) SubmitPackageSelection(ctx context.Context, req *models.PackageSelectionRequest) (int64, error) {
	if req == nil {
		return 0, errMissingBody
	}
	return s.submit(ctx, models.KindPackageSelection, req, func(ctx context.Context) (int64, error) {
		return s.store.InsertPackageSelection(ctx, req.ToModel())
	})
}

// SubmitStrategyRecommendation validates and stores a strategy recommendation.
func (s *Service) SubmitStrategyRecommendation(ctx context.Context, req *models.StrategyRecommendationRequest) (int64, error) {
	if req == nil {
		return 0, errMissingBody
	}
	return s.submit(ctx, models.KindStrategyRecommendation, req, func(ctx context.Context) (int64, error) {
		return s.store.InsertStrategyRecommendation(ctx, req.ToModel())
	})
}

// SubmitContactForm validates and stores a contact form.
func (s *Service) SubmitContactForm(ctx context.Context, req *models.ContactFormRequest) (int64, error) {
	if req == nil {
		return 0, errMissingBody
	}
	return s.submit(ctx, models.KindContactForm, req, func(ctx context.Context) (int64, error) {
		return s.store.InsertContactForm(ctx, req.ToModel())
	})
}

type validator interface {
	Validate() error
}

var errMissingBody = dErrors.New(dErrors.CodeValidation, "request body is required")

func (s *Service) submit(ctx context.Context, kind models.FormKind, req validator, insert func(context.Context) (int64, error)) (int64, error) {
	ctx, span := s.tracer.Start(ctx, "forms.submit", trace.WithAttributes(attribute.String("form.kind", string(kind))))
	defer span.End()

	if err := req.Validate(); err != nil {
		span.SetStatus(codes.Error, "validation failed")
		if s.metrics != nil {
			s.metrics.IncrementValidationFailures(string(kind))
		}
		return 0, err
	}

	id, err := insert(ctx)
	if err != nil {
		recordSpanError(span, err)
		s.storeFailure(ctx, "insert_"+string(kind), err)
		return 0, storageError(err, fmt.Sprintf("failed to save %s", humanKind(kind)))
	}
	span.SetAttributes(attribute.Int64("form.id", id))

	if s.metrics != nil {
		s.metrics.IncrementSubmissions(string(kind))
	}
	client := requestcontext.Client(ctx)
	s.logger.InfoContext(ctx, "form submission stored",
		"form", kind,
		"id", id,
		"request_id", requestcontext.RequestID(ctx),
		"browser", client.Browser,
		"os", client.OS,
	)
	s.publish(ctx, models.SubmissionEvent{
		Kind:       kind,
		ID:         id,
		RequestID:  requestcontext.RequestID(ctx),
		OccurredAt: s.now().UTC(),
	})
	return id, nil
}

func (s *Service) publish(ctx context.Context, event models.SubmissionEvent) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		if s.metrics != nil {
			s.metrics.IncrementEventPublishFailures()
		}
		s.logger.WarnContext(ctx, "failed to publish submission event",
			"form", event.Kind,
			"id", event.ID,
			"request_id", event.RequestID,
			"error", err,
		)
	}
}

// ListPackageSelections returns every package selection, newest first.
func (s *Service) ListPackageSelections(ctx context.Context) ([]models.PackageSelection, error) {
	return list(ctx, s, models.KindPackageSelection, s.store.ListPackageSelections)
}

// ListStrategyRecommendations returns every recommendation, newest first.
func (s *Service) ListStrategyRecommendations(ctx context.Context) ([]models.StrategyRecommendation, error) {
	return list(ctx, s, models.KindStrategyRecommendation, s.store.ListStrategyRecommendations)
}

// ListContactForms returns every contact form, newest first.
func (s *Service) ListContactForms(ctx context.Context) ([]models.ContactForm, error) {
	return list(ctx, s, models.KindContactForm, s.store.ListContactForms)
}

func list[T any](ctx context.Context, s *Service, kind models.FormKind, fetch func(context.Context) ([]T, error)) ([]T, error) {
	ctx, span := s.tracer.Start(ctx, "forms.list", trace.WithAttributes(attribute.String("form.kind", string(kind))))
	defer span.End()

	rows, err := fetch(ctx)
	if err != nil {
		recordSpanError(span, err)
		s.storeFailure(ctx, "list_"+string(kind), err)
		return nil, storageError(err, fmt.Sprintf("failed to list %s", humanKind(kind)))
	}
	if rows == nil {
		rows = []T{}
	}
	span.SetAttributes(attribute.Int("form.rows", len(rows)))
	return rows, nil
}

// GetStats counts the three tables concurrently. The counts are independent
// reads, not a snapshot. A failed count stays zero; the joined failures are
// returned next to the partial stats for logging and must not fail the call.
func (s *Service) GetStats(ctx context.Context) (models.Stats, error) {
	ctx, span := s.tracer.Start(ctx, "forms.stats")
	defer span.End()

	counts := make([]int64, len(models.Kinds))
	failures := make([]error, len(models.Kinds))

	var g errgroup.Group
	for i, kind := range models.Kinds {
		i, kind := i, kind
		g.Go(func() error {
			n, err := s.store.Count(ctx, kind)
			if err != nil {
				failures[i] = fmt.Errorf("count %s: %w", kind, err)
				return nil
			}
			counts[i] = n
			return nil
		})
	}
	_ = g.Wait()

	var stats models.Stats
	for i, kind := range models.Kinds {
		if failures[i] != nil {
			if s.metrics != nil {
				s.metrics.IncrementStatsSubqueryFailures(string(kind))
			}
			continue
		}
		stats.Set(kind, counts[i])
	}

	partial := errors.Join(failures...)
	if partial != nil {
		recordSpanError(span, partial)
		s.storeFailure(ctx, "stats", partial)
	}
	return stats, partial
}

func (s *Service) storeFailure(ctx context.Context, operation string, err error) {
	if s.metrics != nil {
		s.metrics.IncrementStoreErrors(operation)
	}
	s.logger.ErrorContext(ctx, "store operation failed",
		"operation", operation,
		"request_id", requestcontext.RequestID(ctx),
		"error", err,
	)
}

// storageError keeps the cause for logs; clients only see a 500.
func storageError(err error, message string) error {
	if errors.Is(err, sentinel.ErrUnavailable) {
		message = "database unavailable: " + message
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, message)
}

func recordSpanError(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}

func humanKind(kind models.FormKind) string {
	switch kind {
	case models.KindPackageSelection:
		return "package selection"
	case models.KindStrategyRecommendation:
		return "strategy recommendation"
	default:
		return "contact form"
	}
}
