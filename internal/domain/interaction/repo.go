package interaction

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrNotFound is returned when a drug interaction record does not exist.
var ErrNotFound = errors.New("drug interaction not found")

type InteractionRepository interface {
	Create(ctx context.Context, di *DrugInteraction) error
	GetByID(ctx context.Context, id uuid.UUID) (*DrugInteraction, error)
	Update(ctx context.Context, di *DrugInteraction) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, patientID, status string, limit, offset int) ([]*DrugInteraction, int, error)
}
