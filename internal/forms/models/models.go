package models

import (
	"database/sql/driver"
	"fmt"
	"time"
)

// FormKind names one of the three intake forms. It doubles as the metrics
// label and the event type suffix.
type FormKind string

const (
	KindPackageSelection       FormKind = "package_selection"
	KindStrategyRecommendation FormKind = "strategy_recommendation"
	KindContactForm            FormKind = "contact_form"
)

// Kinds lists every form kind in dashboard order.
var Kinds = []FormKind{KindPackageSelection, KindStrategyRecommendation, KindContactForm}

// PackageSelection is a visitor choosing one of the advertised packages.
type PackageSelection struct {
	ID           int64     `db:"id" json:"id"`
	PackageName  string    `db:"package_name" json:"package_name"`
	CustomerName *string   `db:"customer_name" json:"customer_name"`
	Email        *string   `db:"email" json:"email"`
	Phone        *string   `db:"phone" json:"phone"`
	Company      *string   `db:"company" json:"company"`
	Message      *string   `db:"message" json:"message"`
	CreatedAt    Timestamp `db:"created_at" json:"created_at"`
}

// StrategyRecommendation is the result of the strategy wizard together with the
// inputs that produced it.
type StrategyRecommendation struct {
	ID                 int64     `db:"id" json:"id"`
	Sector             string    `db:"sector" json:"sector"`
	Audience           string    `db:"audience" json:"audience"`
	Budget             string    `db:"budget" json:"budget"`
	RecommendedPackage *string   `db:"recommended_package" json:"recommended_package"`
	Score              *int64    `db:"score" json:"score"`
	ROI                *string   `db:"roi" json:"roi"`
	Duration           *string   `db:"duration" json:"duration"`
	CustomerName       *string   `db:"customer_name" json:"customer_name"`
	Email              *string   `db:"email" json:"email"`
	Phone              *string   `db:"phone" json:"phone"`
	CreatedAt          Timestamp `db:"created_at" json:"created_at"`
}

// ContactForm is a message sent through the contact page.
type ContactForm struct {
	ID        int64     `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Email     string    `db:"email" json:"email"`
	Phone     *string   `db:"phone" json:"phone"`
	Company   *string   `db:"company" json:"company"`
	Message   string    `db:"message" json:"message"`
	CreatedAt Timestamp `db:"created_at" json:"created_at"`
}

// Stats holds the dashboard counters.
type Stats struct {
	TotalPackages        int64 `json:"totalPackages"`
	TotalRecommendations int64 `json:"totalRecommendations"`
	TotalContacts        int64 `json:"totalContacts"`
}

// Set stores count under the counter belonging to kind.
func (s *Stats) Set(kind FormKind, count int64) {
	switch kind {
	case KindPackageSelection:
		s.TotalPackages = count
	case KindStrategyRecommendation:
		s.TotalRecommendations = count
	case KindContactForm:
		s.TotalContacts = count
	}
}

// SubmissionEvent announces a stored submission to downstream consumers.
type SubmissionEvent struct {
	Kind       FormKind  `json:"kind"`
	ID         int64     `json:"id"`
	RequestID  string    `json:"request_id,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// timestampLayouts covers what SQLite hands back for DATETIME text columns.
var timestampLayouts = []string{
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02T15:04:05.999999999",
	time.RFC3339Nano,
}

// Timestamp is a store-assigned creation time. It scans both native time values
// (Postgres, and SQLite drivers that parse DATETIME) and SQLite text.
type Timestamp struct {
	time.Time
}

// Scan implements sql.Scanner.
func (t *Timestamp) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		t.Time = time.Time{}
		return nil
	case time.Time:
		t.Time = v.UTC()
		return nil
	case int64:
		t.Time = time.Unix(v, 0).UTC()
		return nil
	case []byte:
		return t.parse(string(v))
	case string:
		return t.parse(v)
	default:
		return fmt.Errorf("unsupported timestamp type %T", src)
	}
}

// Value implements driver.Valuer.
func (t Timestamp) Value() (driver.Value, error) {
	return t.Time, nil
}

func (t *Timestamp) parse(value string) error {
	for _, layout := range timestampLayouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			t.Time = parsed.UTC()
			return nil
		}
	}
	return fmt.Errorf("unparseable timestamp %q", value)
}
