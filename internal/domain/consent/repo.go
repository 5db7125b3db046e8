package consent

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrNotFound is returned when a consent record does not exist.
var ErrNotFound = errors.New("consent record not found")

type ConsentRepository interface {
	Create(ctx context.Context, cr *ConsentRecord) error
	GetByID(ctx context.Context, id uuid.UUID) (*ConsentRecord, error)
	Update(ctx context.Context, cr *ConsentRecord) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, patientID, status string, limit, offset int) ([]*ConsentRecord, int, error)
}
