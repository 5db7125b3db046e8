package interaction

import (
	"time"

	"github.com/google/uuid"
)

// Interaction statuses.
const (
	StatusActive           = "active"
	StatusReviewed         = "reviewed"
	StatusOverrideApproved = "override_approved"
	StatusResolved         = "resolved"
)

// DrugInteraction maps to the drug_interactions table.
type DrugInteraction struct {
	ID              uuid.UUID `db:"id" json:"id"`
	PatientID       string    `db:"patient_id" json:"patient_id"`
	DrugName        string    `db:"drug_name" json:"drug_name"`
	InteractionType string    `db:"interaction_type" json:"interaction_type"`
	Severity        string    `db:"severity" json:"severity"`
	InteractingWith *string   `db:"interacting_with" json:"interacting_with,omitempty"`
	Description     *string   `db:"description" json:"description,omitempty"`
	ClinicalEffects *string   `db:"clinical_effects" json:"clinical_effects,omitempty"`
	Recommendations *string   `db:"recommendations" json:"recommendations,omitempty"`
	Status          string    `db:"status" json:"status"`
	ReviewedBy      *string   `db:"reviewed_by" json:"reviewed_by,omitempty"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time `db:"updated_at" json:"updated_at"`
}

var validInteractionTypes = map[string]bool{
	"drug_drug":         true,
	"drug_allergy":      true,
	"drug_condition":    true,
	"duplicate_therapy": true,
}

var validSeverities = map[string]bool{
	"minor": true, "moderate": true, "major": true, "contraindicated": true,
}

var validStatuses = map[string]bool{
	StatusActive: true, StatusReviewed: true,
	StatusOverrideApproved: true, StatusResolved: true,
}
