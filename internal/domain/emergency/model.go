package emergency

import (
	"time"

	"github.com/google/uuid"
)

// EmergencyHealthData maps to the emergency_health_data table. It is a
// frozen snapshot of the patient's critical fields at generation time, not a
// live view; regenerating produces a new row.
type EmergencyHealthData struct {
	ID                 uuid.UUID  `db:"id" json:"id"`
	PatientID          string     `db:"patient_id" json:"patient_id"`
	QRCodeURL          *string    `db:"qr_code_url" json:"qr_code_url,omitempty"`
	QRCodeData         string     `db:"qr_code_data" json:"qr_code_data"`
	BloodGroup         *string    `db:"blood_group" json:"blood_group,omitempty"`
	Allergies          []string   `db:"allergies" json:"allergies"`
	CurrentMedications []string   `db:"current_medications" json:"current_medications"`
	ChronicConditions  []string   `db:"chronic_conditions" json:"chronic_conditions"`
	PastSurgeries      []string   `db:"past_surgeries" json:"past_surgeries"`
	EmergencyContact   *string    `db:"emergency_contact" json:"emergency_contact,omitempty"`
	GeneratedAt        time.Time  `db:"generated_at" json:"generated_at"`
	AccessCount        int        `db:"access_count" json:"access_count"`
	LastAccessed       *time.Time `db:"last_accessed" json:"last_accessed,omitempty"`
	CreatedAt          time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt          time.Time  `db:"updated_at" json:"updated_at"`
}

// QRPayload is the JSON structure encoded into the QR code. First
// responders scan it without hitting the API, so it carries everything
// needed to act.
type QRPayload struct {
	Name             string   `json:"name"`
	DOB              string   `json:"dob"`
	BloodGroup       string   `json:"blood_group,omitempty"`
	Allergies        []string `json:"allergies"`
	Medications      []string `json:"medications"`
	Conditions       []string `json:"conditions"`
	Surgeries        []string `json:"surgeries"`
	EmergencyContact string   `json:"emergency_contact,omitempty"`
	PatientID        string   `json:"patient_id"`
}
