package abdm

import (
	"time"

	"github.com/google/uuid"
)

// Link statuses.
const (
	LinkNotLinked = "not_linked"
	LinkPending   = "pending"
	LinkLinked    = "linked"
	LinkFailed    = "failed"
)

// Verification statuses.
const (
	VerifyUnverified = "unverified"
	VerifyPending    = "pending"
	VerifyVerified   = "verified"
)

// ConsentRequest is one ABDM consent request attached to a record.
type ConsentRequest struct {
	RequestID string    `json:"request_id"`
	HIPName   string    `json:"hip_name"`
	Status    string    `json:"status"`
	Date      time.Time `json:"date"`
}

// ABDMRecord maps to the abdm_records table. It tracks a patient's linkage
// with the national ABDM health registry.
type ABDMRecord struct {
	ID                 uuid.UUID        `db:"id" json:"id"`
	PatientID          string           `db:"patient_id" json:"patient_id"`
	ABDMHealthID       *string          `db:"abdm_health_id" json:"abdm_health_id,omitempty"`
	PHRAddress         *string          `db:"phr_address" json:"phr_address,omitempty"`
	ABHANumber         *string          `db:"abha_number" json:"abha_number,omitempty"`
	LinkStatus         string           `db:"link_status" json:"link_status"`
	ConsentRequests    []ConsentRequest `db:"consent_requests" json:"consent_requests"`
	LinkedFacilities   []string         `db:"linked_facilities" json:"linked_facilities"`
	LastSync           *time.Time       `db:"last_sync" json:"last_sync,omitempty"`
	VerificationStatus string           `db:"verification_status" json:"verification_status"`
	CreatedAt          time.Time        `db:"created_at" json:"created_at"`
	UpdatedAt          time.Time        `db:"updated_at" json:"updated_at"`
}
