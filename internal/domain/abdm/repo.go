package abdm

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrNotFound is returned when an ABDM record does not exist.
var ErrNotFound = errors.New("abdm record not found")

type ABDMRepository interface {
	Create(ctx context.Context, rec *ABDMRecord) error
	GetByID(ctx context.Context, id uuid.UUID) (*ABDMRecord, error)
	Update(ctx context.Context, rec *ABDMRecord) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, patientID string, limit, offset int) ([]*ABDMRecord, int, error)
}
