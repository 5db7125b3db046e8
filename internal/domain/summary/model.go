package summary

import (
	"time"

	"github.com/google/uuid"
)

// ClinicalSummary maps to the clinical_summaries table.
type ClinicalSummary struct {
	ID                 uuid.UUID  `db:"id" json:"id"`
	PatientID          string     `db:"patient_id" json:"patient_id"`
	SummaryText        string     `db:"summary_text" json:"summary_text"`
	Diagnoses          []string   `db:"diagnoses" json:"diagnoses"`
	LabResultsSummary  *string    `db:"lab_results_summary" json:"lab_results_summary,omitempty"`
	MedicationsSummary *string    `db:"medications_summary" json:"medications_summary,omitempty"`
	RiskScore          *float64   `db:"risk_score" json:"risk_score,omitempty"`
	RiskFactors        []string   `db:"risk_factors" json:"risk_factors"`
	GeneratedDate      time.Time  `db:"generated_date" json:"generated_date"`
	LastVisitDate      *time.Time `db:"last_visit_date" json:"last_visit_date,omitempty"`
	CreatedAt          time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt          time.Time  `db:"updated_at" json:"updated_at"`
}
