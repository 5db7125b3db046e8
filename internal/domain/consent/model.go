package consent

import (
	"time"

	"github.com/google/uuid"
)

// Consent statuses.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
	StatusExpired  = "expired"
	StatusRevoked  = "revoked"
)

// ConsentRecord maps to the consent_records table.
type ConsentRecord struct {
	ID             uuid.UUID  `db:"id" json:"id"`
	PatientID      string     `db:"patient_id" json:"patient_id"`
	RequesterName  string     `db:"requester_name" json:"requester_name"`
	RequesterEmail *string    `db:"requester_email" json:"requester_email,omitempty"`
	DataTypes      []string   `db:"data_types" json:"data_types"`
	Purpose        string     `db:"purpose" json:"purpose"`
	ConsentStatus  string     `db:"consent_status" json:"consent_status"`
	ValidFrom      *time.Time `db:"valid_from" json:"valid_from,omitempty"`
	ValidUntil     *time.Time `db:"valid_until" json:"valid_until,omitempty"`
	Conditions     *string    `db:"conditions" json:"conditions,omitempty"`
	ApprovedBy     *string    `db:"approved_by" json:"approved_by,omitempty"`
	ApprovedAt     *time.Time `db:"approved_at" json:"approved_at,omitempty"`
	CreatedAt      time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time  `db:"updated_at" json:"updated_at"`
}

var validDataTypes = map[string]bool{
	"medical_history": true,
	"lab_results":     true,
	"prescriptions":   true,
	"imaging":         true,
	"vitals":          true,
	"allergies":       true,
	"all_records":     true,
}
