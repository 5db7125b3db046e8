package patient

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Medication is one entry of a patient's current medication list. The list
// is order-sensitive and is concatenated, not deduplicated, on merge.
type Medication struct {
	Name      string `json:"name"`
	Dosage    string `json:"dosage,omitempty"`
	Frequency string `json:"frequency,omitempty"`
}

// Patient maps to the patients table.
type Patient struct {
	ID                 uuid.UUID    `db:"id" json:"id"`
	PatientID          string       `db:"patient_id" json:"patient_id"`
	FullName           string       `db:"full_name" json:"full_name"`
	DateOfBirth        time.Time    `db:"date_of_birth" json:"date_of_birth"`
	Gender             *string      `db:"gender" json:"gender,omitempty"`
	BloodGroup         *string      `db:"blood_group" json:"blood_group,omitempty"`
	Phone              *string      `db:"phone" json:"phone,omitempty"`
	Email              *string      `db:"email" json:"email,omitempty"`
	Address            *string      `db:"address" json:"address,omitempty"`
	EmergencyContact   *string      `db:"emergency_contact" json:"emergency_contact,omitempty"`
	Allergies          []string     `db:"allergies" json:"allergies"`
	ChronicConditions  []string     `db:"chronic_conditions" json:"chronic_conditions"`
	CurrentMedications []Medication `db:"current_medications" json:"current_medications"`
	PastSurgeries      []string     `db:"past_surgeries" json:"past_surgeries"`
	ABDMID             *string      `db:"abdm_id" json:"abdm_id,omitempty"`
	UnifiedPatientID   *string      `db:"unified_patient_id" json:"unified_patient_id,omitempty"`
	CreatedAt          time.Time    `db:"created_at" json:"created_at"`
	UpdatedAt          time.Time    `db:"updated_at" json:"updated_at"`
}

var validGenders = map[string]bool{"male": true, "female": true, "other": true}

var validBloodGroups = map[string]bool{
	"A+": true, "A-": true, "B+": true, "B-": true,
	"AB+": true, "AB-": true, "O+": true, "O-": true,
}

// NewPatientID generates a human-facing business identifier.
func NewPatientID() string {
	return fmt.Sprintf("PAT%d%s", time.Now().UnixMilli(), randToken(4))
}

func randToken(n int) string {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return ""
	}
	return hex.EncodeToString(b)
}

// dobKey normalizes a date of birth for calendar-date comparison.
func (p *Patient) dobKey() string {
	return p.DateOfBirth.UTC().Format("2006-01-02")
}

// phoneVal returns the phone number or "" when absent.
func (p *Patient) phoneVal() string {
	if p.Phone == nil {
		return ""
	}
	return *p.Phone
}
