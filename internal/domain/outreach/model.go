package outreach

import (
	"time"

	"github.com/google/uuid"
)

// Demo request statuses.
const (
	DemoPending   = "pending"
	DemoContacted = "contacted"
	DemoScheduled = "demo_scheduled"
	DemoCompleted = "completed"
)

// DemoRequest maps to the demo_requests table.
type DemoRequest struct {
	ID                 uuid.UUID `db:"id" json:"id"`
	FullName           string    `db:"full_name" json:"full_name"`
	Email              string    `db:"email" json:"email"`
	Phone              *string   `db:"phone" json:"phone,omitempty"`
	Organization       string    `db:"organization" json:"organization"`
	Role               *string   `db:"role" json:"role,omitempty"`
	InterestedFeatures []string  `db:"interested_features" json:"interested_features"`
	Message            *string   `db:"message" json:"message,omitempty"`
	Status             string    `db:"status" json:"status"`
	CreatedAt          time.Time `db:"created_at" json:"created_at"`
	UpdatedAt          time.Time `db:"updated_at" json:"updated_at"`
}

// FeatureInterest maps to the feature_interests table.
type FeatureInterest struct {
	ID            uuid.UUID `db:"id" json:"id"`
	FeatureName   string    `db:"feature_name" json:"feature_name"`
	UserEmail     string    `db:"user_email" json:"user_email"`
	InterestLevel string    `db:"interest_level" json:"interest_level"`
	Notes         *string   `db:"notes" json:"notes,omitempty"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time `db:"updated_at" json:"updated_at"`
}

var validDemoRoles = map[string]bool{
	"doctor": true, "admin": true, "it_manager": true, "cio": true, "other": true,
}

var validDemoStatuses = map[string]bool{
	DemoPending: true, DemoContacted: true, DemoScheduled: true, DemoCompleted: true,
}

var validInterestLevels = map[string]bool{
	"curious": true, "interested": true, "very_interested": true, "need_urgently": true,
}
