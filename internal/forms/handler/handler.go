package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"aquads/internal/forms/models"
	"aquads/pkg/platform/httputil"
	"aquads/pkg/requestcontext"
)

// Service defines the form intake operations the handler exposes.
type Service interface {
	SubmitPackageSelection(ctx context.Context, req *models.PackageSelectionRequest) (int64, error)
	SubmitStrategyRecommendation(ctx context.Context, req *models.StrategyRecommendationRequest) (int64, error)
	SubmitContactForm(ctx context.Context, req *models.ContactFormRequest) (int64, error)
	ListPackageSelections(ctx context.Context) ([]models.PackageSelection, error)
	ListStrategyRecommendations(ctx context.Context) ([]models.StrategyRecommendation, error)
	ListContactForms(ctx context.Context) ([]models.ContactForm, error)
	GetStats(ctx context.Context) (models.Stats, error)
}

const defaultMaxBodyBytes = 1 << 20

// Handler serves the public submission endpoints and the admin reads.
type Handler struct {
	logger       *slog.Logger
	forms        Service
	maxBodyBytes int64
	submitLimit  func(http.Handler) http.Handler
}

type Option func(*Handler)

// WithMaxBodyBytes caps the size of submission bodies.
func WithMaxBodyBytes(n int64) Option {
	return func(h *Handler) {
		if n > 0 {
			h.maxBodyBytes = n
		}
	}
}

// WithSubmitMiddleware wraps the three submission routes, e.g. with a rate limiter.
func WithSubmitMiddleware(mw func(http.Handler) http.Handler) Option {
	return func(h *Handler) {
		h.submitLimit = mw
	}
}

// New creates a new forms Handler.
func New(forms Service, logger *slog.Logger, opts ...Option) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	h := &Handler{
		logger:       logger,
		forms:        forms,
		maxBodyBytes: defaultMaxBodyBytes,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Register registers the form routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Route("/api", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			if h.submitLimit != nil {
				r.Use(h.submitLimit)
			}
			r.Post("/select-package", h.handleSelectPackage)
			r.Post("/save-recommendation", h.handleSaveRecommendation)
			r.Post("/contact", h.handleContact)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Get("/packages", h.handleListPackages)
			r.Get("/recommendations", h.handleListRecommendations)
			r.Get("/contacts", h.handleListContacts)
			r.Get("/stats", h.handleStats)
		})
	})
}

func (h *Handler) handleSelectPackage(w http.ResponseWriter, r *http.Request) {
	var req models.PackageSelectionRequest
	if !h.decode(w, r, &req) {
		return
	}
	id, err := h.forms.SubmitPackageSelection(r.Context(), &req)
	h.writeSubmitted(w, id, err, "Your package selection has been saved!")
}

func (h *Handler) handleSaveRecommendation(w http.ResponseWriter, r *http.Request) {
	var req models.StrategyRecommendationRequest
	if !h.decode(w, r, &req) {
		return
	}
	id, err := h.forms.SubmitStrategyRecommendation(r.Context(), &req)
	h.writeSubmitted(w, id, err, "Your strategy recommendation has been saved!")
}

func (h *Handler) handleContact(w http.ResponseWriter, r *http.Request) {
	var req models.ContactFormRequest
	if !h.decode(w, r, &req) {
		return
	}
	id, err := h.forms.SubmitContactForm(r.Context(), &req)
	h.writeSubmitted(w, id, err, "Your message has been sent successfully!")
}

func (h *Handler) writeSubmitted(w http.ResponseWriter, id int64, err error, message string) {
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteSuccess(w, httputil.Envelope{Message: message, ID: &id})
}

func (h *Handler) handleListPackages(w http.ResponseWriter, r *http.Request) {
	rows, err := h.forms.ListPackageSelections(r.Context())
	writeList(w, rows, err)
}

func (h *Handler) handleListRecommendations(w http.ResponseWriter, r *http.Request) {
	rows, err := h.forms.ListStrategyRecommendations(r.Context())
	writeList(w, rows, err)
}

func (h *Handler) handleListContacts(w http.ResponseWriter, r *http.Request) {
	rows, err := h.forms.ListContactForms(r.Context())
	writeList(w, rows, err)
}

func writeList[T any](w http.ResponseWriter, rows []T, err error) {
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if rows == nil {
		rows = []T{}
	}
	httputil.WriteSuccess(w, httputil.Envelope{Data: rows})
}

// handleStats always answers 200; failed counts are already zero.
func (h *Handler) handleStats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	stats, err := h.forms.GetStats(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "stats returned partial counts",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
	}
	httputil.WriteSuccess(w, httputil.Envelope{Stats: stats})
}
