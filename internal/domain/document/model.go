package document

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Extraction statuses.
const (
	StatusPending    = "pending"
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
)

// MedicalDocument maps to the medical_documents table. ExtractedData is
// stored as jsonb and holds the document-type-specific extraction output.
type MedicalDocument struct {
	ID               uuid.UUID       `db:"id" json:"id"`
	PatientID        string          `db:"patient_id" json:"patient_id"`
	DocumentType     string          `db:"document_type" json:"document_type"`
	FileURL          string          `db:"file_url" json:"file_url"`
	ExtractedData    json.RawMessage `db:"extracted_data" json:"extracted_data,omitempty"`
	ExtractionStatus string          `db:"extraction_status" json:"extraction_status"`
	RawText          *string         `db:"raw_text" json:"raw_text,omitempty"`
	ConfidenceScore  *float64        `db:"confidence_score" json:"confidence_score,omitempty"`
	ProcessedDate    *time.Time      `db:"processed_date" json:"processed_date,omitempty"`
	CreatedAt        time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time       `db:"updated_at" json:"updated_at"`
}

var validDocumentTypes = map[string]bool{
	"prescription":      true,
	"lab_report":        true,
	"clinical_note":     true,
	"discharge_summary": true,
	"imaging_report":    true,
}
