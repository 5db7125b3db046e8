package alert

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrNotFound is returned when an alert does not exist.
var ErrNotFound = errors.New("alert not found")

type AlertRepository interface {
	Create(ctx context.Context, a *MedicalAlert) error
	GetByID(ctx context.Context, id uuid.UUID) (*MedicalAlert, error)
	Update(ctx context.Context, a *MedicalAlert) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filter ListFilter, limit, offset int) ([]*MedicalAlert, int, error)
}

// ListFilter narrows a listing; zero values mean no filtering.
type ListFilter struct {
	PatientID string
	Status    string
	Severity  string
}
