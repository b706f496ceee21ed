package store

import (
	"context"
	"fmt"

	"aquads/internal/forms/models"
	"aquads/pkg/platform/sentinel"
)

// Unavailable stands in for a store that failed to open at startup. The server
// keeps running and every operation fails with sentinel.ErrUnavailable.
type Unavailable struct {
	cause error
}

// NewUnavailable records why the real store could not be opened.
func NewUnavailable(cause error) *Unavailable {
	return &Unavailable{cause: cause}
}

func (u *Unavailable) err() error {
	return fmt.Errorf("%w: %v", sentinel.ErrUnavailable, u.cause)
}

func (u *Unavailable) InsertPackageSelection(context.Context, *models.PackageSelection) (int64, error) {
	return 0, u.err()
}

func (u *Unavailable) InsertStrategyRecommendation(context.Context, *models.StrategyRecommendation) (int64, error) {
	return 0, u.err()
}

func (u *Unavailable) InsertContactForm(context.Context, *models.ContactForm) (int64, error) {
	return 0, u.err()
}

func (u *Unavailable) ListPackageSelections(context.Context) ([]models.PackageSelection, error) {
	return nil, u.err()
}

func (u *Unavailable) ListStrategyRecommendations(context.Context) ([]models.StrategyRecommendation, error) {
	return nil, u.err()
}

func (u *Unavailable) ListContactForms(context.Context) ([]models.ContactForm, error) {
	return nil, u.err()
}

func (u *Unavailable) Count(context.Context, models.FormKind) (int64, error) {
	return 0, u.err()
}

func (u *Unavailable) Ping(context.Context) error {
	return u.err()
}
