package emergency

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrNotFound is returned when an emergency data record does not exist.
var ErrNotFound = errors.New("emergency health data not found")

type EmergencyRepository interface {
	Create(ctx context.Context, e *EmergencyHealthData) error
	GetByID(ctx context.Context, id uuid.UUID) (*EmergencyHealthData, error)
	Update(ctx context.Context, e *EmergencyHealthData) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, patientID string, limit, offset int) ([]*EmergencyHealthData, int, error)
}
