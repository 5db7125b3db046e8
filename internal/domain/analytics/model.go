package analytics

import (
	"time"

	"github.com/google/uuid"
)

// Risk levels, ordered.
const (
	RiskLow      = "low"
	RiskModerate = "moderate"
	RiskHigh     = "high"
	RiskCritical = "critical"
)

// PredictiveAnalytic maps to the predictive_analytics table.
type PredictiveAnalytic struct {
	ID                  uuid.UUID `db:"id" json:"id"`
	PatientID           string    `db:"patient_id" json:"patient_id"`
	PredictionType      string    `db:"prediction_type" json:"prediction_type"`
	RiskScore           float64   `db:"risk_score" json:"risk_score"`
	RiskLevel           string    `db:"risk_level" json:"risk_level"`
	ContributingFactors []string  `db:"contributing_factors" json:"contributing_factors"`
	Recommendations     []string  `db:"recommendations" json:"recommendations"`
	PredictionDate      time.Time `db:"prediction_date" json:"prediction_date"`
	ModelVersion        *string   `db:"model_version" json:"model_version,omitempty"`
	ConfidenceScore     *float64  `db:"confidence_score" json:"confidence_score,omitempty"`
	CreatedAt           time.Time `db:"created_at" json:"created_at"`
	UpdatedAt           time.Time `db:"updated_at" json:"updated_at"`
}

var validPredictionTypes = map[string]bool{
	"readmission_risk":    true,
	"disease_progression": true,
	"icu_transfer":        true,
	"sepsis_warning":      true,
	"mortality_risk":      true,
}

var validRiskLevels = map[string]bool{
	RiskLow: true, RiskModerate: true, RiskHigh: true, RiskCritical: true,
}

// riskLevelForScore derives a level from a 0-100 score. Used when the model
// output carries a score but no level.
func riskLevelForScore(score float64) string {
	switch {
	case score >= 85:
		return RiskCritical
	case score >= 60:
		return RiskHigh
	case score >= 30:
		return RiskModerate
	default:
		return RiskLow
	}
}
