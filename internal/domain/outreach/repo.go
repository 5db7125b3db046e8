package outreach

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("record not found")

type DemoRequestRepository interface {
	Create(ctx context.Context, dr *DemoRequest) error
	GetByID(ctx context.Context, id uuid.UUID) (*DemoRequest, error)
	Update(ctx context.Context, dr *DemoRequest) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, status string, limit, offset int) ([]*DemoRequest, int, error)
}

type FeatureInterestRepository interface {
	Create(ctx context.Context, fi *FeatureInterest) error
	GetByID(ctx context.Context, id uuid.UUID) (*FeatureInterest, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, featureName string, limit, offset int) ([]*FeatureInterest, int, error)
}
