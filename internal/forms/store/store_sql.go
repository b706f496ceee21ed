// Package store persists form submissions in the relational database.
package store

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"aquads/internal/forms/models"
)

// tables maps each form to its table. Count interpolates from this map only.
var tables = map[models.FormKind]string{
	models.KindPackageSelection:       "package_selections",
	models.KindStrategyRecommendation: "strategy_recommendations",
	models.KindContactForm:            "contact_forms",
}

const (
	insertPackageSelection = `
		INSERT INTO package_selections (package_name, customer_name, email, phone, company, message)
		VALUES (?, ?, ?, ?, ?, ?)
		RETURNING id`
	insertStrategyRecommendation = `
		INSERT INTO strategy_recommendations
		(sector, audience, budget, recommended_package, score, roi, duration, customer_name, email, phone)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id`
	insertContactForm = `
		INSERT INTO contact_forms (name, email, phone, company, message)
		VALUES (?, ?, ?, ?, ?)
		RETURNING id`

	selectPackageSelections = `
		SELECT id, package_name, customer_name, email, phone, company, message, created_at
		FROM package_selections
		ORDER BY created_at DESC, id DESC`
	selectStrategyRecommendations = `
		SELECT id, sector, audience, budget, recommended_package, score, roi, duration,
		       customer_name, email, phone, created_at
		FROM strategy_recommendations
		ORDER BY created_at DESC, id DESC`
	selectContactForms = `
		SELECT id, name, email, phone, company, message, created_at
		FROM contact_forms
		ORDER BY created_at DESC, id DESC`
)

// SQLStore persists submissions through a shared sqlx handle. The handle is
// owned by the caller; SQLStore never closes it.
type SQLStore struct {
	db *sqlx.DB
}

// NewSQL constructs a store over an open database handle.
func NewSQL(db *sqlx.DB) *SQLStore {
	return &SQLStore{db: db}
}

// InsertPackageSelection appends one row and returns the store-assigned id.
func (s *SQLStore) InsertPackageSelection(ctx context.Context, row *models.PackageSelection) (int64, error) {
	id, err := s.insert(ctx, insertPackageSelection,
		row.PackageName, row.CustomerName, row.Email, row.Phone, row.Company, row.Message)
	if err != nil {
		return 0, fmt.Errorf("insert package selection: %w", err)
	}
	return id, nil
}

// InsertStrategyRecommendation appends one row and returns the store-assigned id.
func (s *SQLStore) InsertStrategyRecommendation(ctx context.Context, row *models.StrategyRecommendation) (int64, error) {
	id, err := s.insert(ctx, insertStrategyRecommendation,
		row.Sector, row.Audience, row.Budget, row.RecommendedPackage, row.Score,
		row.ROI, row.Duration, row.CustomerName, row.Email, row.Phone)
	if err != nil {
		return 0, fmt.Errorf("insert strategy recommendation: %w", err)
	}
	return id, nil
}

// InsertContactForm appends one row and returns the store-assigned id.
func (s *SQLStore) InsertContactForm(ctx context.Context, row *models.ContactForm) (int64, error) {
	id, err := s.insert(ctx, insertContactForm,
		row.Name, row.Email, row.Phone, row.Company, row.Message)
	if err != nil {
		return 0, fmt.Errorf("insert contact form: %w", err)
	}
	return id, nil
}

func (s *SQLStore) insert(ctx context.Context, query string, args ...any) (int64, error) {
	var id int64
	if err := s.db.QueryRowxContext(ctx, s.db.Rebind(query), args...).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

// ListPackageSelections returns every package selection, newest first.
func (s *SQLStore) ListPackageSelections(ctx context.Context) ([]models.PackageSelection, error) {
	rows := []models.PackageSelection{}
	if err := s.db.SelectContext(ctx, &rows, selectPackageSelections); err != nil {
		return nil, fmt.Errorf("list package selections: %w", err)
	}
	return rows, nil
}

// ListStrategyRecommendations returns every recommendation, newest first.
func (s *SQLStore) ListStrategyRecommendations(ctx context.Context) ([]models.StrategyRecommendation, error) {
	rows := []models.StrategyRecommendation{}
	if err := s.db.SelectContext(ctx, &rows, selectStrategyRecommendations); err != nil {
		return nil, fmt.Errorf("list strategy recommendations: %w", err)
	}
	return rows, nil
}

// ListContactForms returns every contact form, newest first.
func (s *SQLStore) ListContactForms(ctx context.Context) ([]models.ContactForm, error) {
	rows := []models.ContactForm{}
	if err := s.db.SelectContext(ctx, &rows, selectContactForms); err != nil {
		return nil, fmt.Errorf("list contact forms: %w", err)
	}
	return rows, nil
}

// Count returns the number of rows stored for kind.
func (s *SQLStore) Count(ctx context.Context, kind models.FormKind) (int64, error) {
	table, ok := tables[kind]
	if !ok {
		return 0, fmt.Errorf("unknown form kind %q", kind)
	}
	var count int64
	if err := s.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM "+table); err != nil {
		return 0, fmt.Errorf("count %s: %w", table, err)
	}
	return count, nil
}

// Ping reports whether the database answers.
func (s *SQLStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}
