package telemed

import (
	"time"

	"github.com/google/uuid"
)

// Session statuses.
const (
	StatusScheduled  = "scheduled"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
	StatusCancelled  = "cancelled"
)

// Prescription is one line item issued during a session.
type Prescription struct {
	Medication string `json:"medication"`
	Dosage     string `json:"dosage,omitempty"`
	Duration   string `json:"duration,omitempty"`
}

// TelemedSession maps to the telemed_sessions table.
type TelemedSession struct {
	ID               uuid.UUID      `db:"id" json:"id"`
	PatientID        string         `db:"patient_id" json:"patient_id"`
	DoctorName       string         `db:"doctor_name" json:"doctor_name"`
	DoctorEmail      *string        `db:"doctor_email" json:"doctor_email,omitempty"`
	SessionStatus    string         `db:"session_status" json:"session_status"`
	ScheduledTime    time.Time      `db:"scheduled_time" json:"scheduled_time"`
	DurationMinutes  *int           `db:"duration_minutes" json:"duration_minutes,omitempty"`
	ChiefComplaint   *string        `db:"chief_complaint" json:"chief_complaint,omitempty"`
	Diagnosis        *string        `db:"diagnosis" json:"diagnosis,omitempty"`
	Prescriptions    []Prescription `db:"prescriptions" json:"prescriptions"`
	Notes            *string        `db:"notes" json:"notes,omitempty"`
	FollowUpRequired bool           `db:"follow_up_required" json:"follow_up_required"`
	FollowUpDate     *time.Time     `db:"follow_up_date" json:"follow_up_date,omitempty"`
	MeetingLink      *string        `db:"meeting_link" json:"meeting_link,omitempty"`
	CreatedAt        time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time      `db:"updated_at" json:"updated_at"`
}
