package alert

import (
	"time"

	"github.com/google/uuid"
)

// Alert statuses.
const (
	StatusActive       = "active"
	StatusAcknowledged = "acknowledged"
	StatusResolved     = "resolved"
)

// MedicalAlert maps to the medical_alerts table.
type MedicalAlert struct {
	ID             uuid.UUID  `db:"id" json:"id"`
	PatientID      string     `db:"patient_id" json:"patient_id"`
	AlertType      string     `db:"alert_type" json:"alert_type"`
	Severity       string     `db:"severity" json:"severity"`
	Title          string     `db:"title" json:"title"`
	Message        string     `db:"message" json:"message"`
	VitalType      *string    `db:"vital_type" json:"vital_type,omitempty"`
	Value          *string    `db:"value" json:"value,omitempty"`
	NormalRange    *string    `db:"normal_range" json:"normal_range,omitempty"`
	Status         string     `db:"status" json:"status"`
	AcknowledgedBy *string    `db:"acknowledged_by" json:"acknowledged_by,omitempty"`
	AcknowledgedAt *time.Time `db:"acknowledged_at" json:"acknowledged_at,omitempty"`
	CreatedAt      time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time  `db:"updated_at" json:"updated_at"`
}

var validAlertTypes = map[string]bool{
	"abnormal_vitals":     true,
	"lab_result":          true,
	"medication_conflict": true,
	"emergency_admission": true,
	"critical_value":      true,
}

var validSeverities = map[string]bool{
	"low": true, "medium": true, "high": true, "critical": true,
}
