package telemed

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrNotFound is returned when a telemedicine session does not exist.
var ErrNotFound = errors.New("telemed session not found")

type SessionRepository interface {
	Create(ctx context.Context, ts *TelemedSession) error
	GetByID(ctx context.Context, id uuid.UUID) (*TelemedSession, error)
	Update(ctx context.Context, ts *TelemedSession) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, patientID, status string, limit, offset int) ([]*TelemedSession, int, error)
}
