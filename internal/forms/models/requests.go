package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	dErrors "aquads/pkg/domain-errors"
)

// PackageSelectionRequest is the body of POST /api/select-package.
type PackageSelectionRequest struct {
	PackageName  Text `json:"package_name"`
	CustomerName Text `json:"customer_name"`
	Email        Text `json:"email"`
	Phone        Text `json:"phone"`
	Company      Text `json:"company"`
	Message      Text `json:"message"`
}

// Validate requires a package name.
func (r *PackageSelectionRequest) Validate() error {
	if isBlank(r.PackageName) {
		return dErrors.New(dErrors.CodeValidation, "package name is required")
	}
	return nil
}

// ToModel builds the row to insert. Blank optional fields become NULL.
func (r *PackageSelectionRequest) ToModel() *PackageSelection {
	return &PackageSelection{
		PackageName:  trimmed(r.PackageName),
		CustomerName: optional(r.CustomerName),
		Email:        optional(r.Email),
		Phone:        optional(r.Phone),
		Company:      optional(r.Company),
		Message:      optional(r.Message),
	}
}

// StrategyRecommendationRequest is the body of POST /api/save-recommendation.
type StrategyRecommendationRequest struct {
	Sector             Text  `json:"sector"`
	Audience           Text  `json:"audience"`
	Budget             Text  `json:"budget"`
	RecommendedPackage Text  `json:"recommended_package"`
	Score              Score `json:"score"`
	ROI                Text  `json:"roi"`
	Duration           Text  `json:"duration"`
	CustomerName       Text  `json:"customer_name"`
	Email              Text  `json:"email"`
	Phone              Text  `json:"phone"`
}

// Validate requires sector, audience and budget.
func (r *StrategyRecommendationRequest) Validate() error {
	if isBlank(r.Sector) || isBlank(r.Audience) || isBlank(r.Budget) {
		return dErrors.New(dErrors.CodeValidation, "sector, audience and budget are required")
	}
	return nil
}

// ToModel builds the row to insert. Blank optional fields become NULL.
func (r *StrategyRecommendationRequest) ToModel() *StrategyRecommendation {
	return &StrategyRecommendation{
		Sector:             trimmed(r.Sector),
		Audience:           trimmed(r.Audience),
		Budget:             trimmed(r.Budget),
		RecommendedPackage: optional(r.RecommendedPackage),
		Score:              r.Score.Ptr(),
		ROI:                optional(r.ROI),
		Duration:           optional(r.Duration),
		CustomerName:       optional(r.CustomerName),
		Email:              optional(r.Email),
		Phone:              optional(r.Phone),
	}
}

// ContactFormRequest is the body of POST /api/contact.
type ContactFormRequest struct {
	Name    Text `json:"name"`
	Email   Text `json:"email"`
	Phone   Text `json:"phone"`
	Company Text `json:"company"`
	Message Text `json:"message"`
}

// Validate requires name, email and message.
func (r *ContactFormRequest) Validate() error {
	if isBlank(r.Name) || isBlank(r.Email) || isBlank(r.Message) {
		return dErrors.New(dErrors.CodeValidation, "name, email and message are required")
	}
	return nil
}

// ToModel builds the row to insert. Blank optional fields become NULL.
func (r *ContactFormRequest) ToModel() *ContactForm {
	return &ContactForm{
		Name:    trimmed(r.Name),
		Email:   trimmed(r.Email),
		Phone:   optional(r.Phone),
		Company: optional(r.Company),
		Message: trimmed(r.Message),
	}
}

// Text is a free-text form field. Phone numbers and budgets sometimes arrive
// as bare JSON numbers; those keep their literal digits.
type Text string

// UnmarshalJSON implements json.Unmarshaler.
func (t *Text) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*t = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var raw string
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
		*t = Text(raw)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("expected text, got %s", data)
	}
	*t = Text(n.String())
	return nil
}

// Score is the wizard's integer score. The frontend sends it either as a JSON
// number or as a numeric string; null and "" leave it unset.
type Score struct {
	Value int64
	Valid bool
}

// ParseScore parses a form value into a Score.
func ParseScore(raw string) (Score, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Score{}, nil
	}
	if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return checkScore(float64(n), raw)
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return Score{}, fmt.Errorf("score must be a number, got %q", raw)
	}
	return checkScore(math.Round(f), raw)
}

// Scores are stored in a 32-bit INTEGER column on Postgres.
func checkScore(v float64, raw string) (Score, error) {
	if v < math.MinInt32 || v > math.MaxInt32 {
		return Score{}, fmt.Errorf("score out of range: %s", raw)
	}
	return Score{Value: int64(v), Valid: true}, nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (s *Score) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*s = Score{}
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var raw string
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
		parsed, err := ParseScore(raw)
		if err != nil {
			return err
		}
		*s = parsed
		return nil
	}
	parsed, err := ParseScore(string(data))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// MarshalJSON implements json.Marshaler.
func (s Score) MarshalJSON() ([]byte, error) {
	if !s.Valid {
		return []byte("null"), nil
	}
	return []byte(strconv.FormatInt(s.Value, 10)), nil
}

// Ptr returns the score as a nullable column value.
func (s Score) Ptr() *int64 {
	if !s.Valid {
		return nil
	}
	v := s.Value
	return &v
}

func trimmed(t Text) string {
	return strings.TrimSpace(string(t))
}

func isBlank(t Text) bool {
	return trimmed(t) == ""
}

func optional(t Text) *string {
	s := trimmed(t)
	if s == "" {
		return nil
	}
	return &s
}
