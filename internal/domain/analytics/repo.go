package analytics

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrNotFound is returned when a prediction does not exist.
var ErrNotFound = errors.New("prediction not found")

type AnalyticsRepository interface {
	Create(ctx context.Context, pa *PredictiveAnalytic) error
	GetByID(ctx context.Context, id uuid.UUID) (*PredictiveAnalytic, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, patientID, predictionType string, limit, offset int) ([]*PredictiveAnalytic, int, error)
}
