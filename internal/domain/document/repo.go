package document

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrNotFound is returned when a medical document does not exist.
var ErrNotFound = errors.New("medical document not found")

type DocumentRepository interface {
	Create(ctx context.Context, d *MedicalDocument) error
	GetByID(ctx context.Context, id uuid.UUID) (*MedicalDocument, error)
	Update(ctx context.Context, d *MedicalDocument) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, patientID string, limit, offset int) ([]*MedicalDocument, int, error)
}
