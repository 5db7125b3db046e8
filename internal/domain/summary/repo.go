package summary

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrNotFound is returned when a clinical summary does not exist.
var ErrNotFound = errors.New("clinical summary not found")

type SummaryRepository interface {
	Create(ctx context.Context, s *ClinicalSummary) error
	GetByID(ctx context.Context, id uuid.UUID) (*ClinicalSummary, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, patientID string, limit, offset int) ([]*ClinicalSummary, int, error)
}
