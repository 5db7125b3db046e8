package outreach

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

type Service struct {
	demos     DemoRequestRepository
	interests FeatureInterestRepository
}

func NewService(demos DemoRequestRepository, interests FeatureInterestRepository) *Service {
	return &Service{demos: demos, interests: interests}
}

func (s *Service) CreateDemoRequest(ctx context.Context, dr *DemoRequest) error {
	if dr.FullName == "" {
		return fmt.Errorf("full_name is required")
	}
	if dr.Email == "" {
		return fmt.Errorf("email is required")
	}
	if dr.Organization == "" {
		return fmt.Errorf("organization is required")
	}
	if dr.Role != nil && !validDemoRoles[*dr.Role] {
		return fmt.Errorf("invalid role %q", *dr.Role)
	}
	if dr.Status == "" {
		dr.Status = DemoPending
	} else if !validDemoStatuses[dr.Status] {
		return fmt.Errorf("invalid status %q", dr.Status)
	}
	return s.demos.Create(ctx, dr)
}

func (s *Service) GetDemoRequest(ctx context.Context, id uuid.UUID) (*DemoRequest, error) {
	return s.demos.GetByID(ctx, id)
}

func (s *Service) ListDemoRequests(ctx context.Context, status string, limit, offset int) ([]*DemoRequest, int, error) {
	return s.demos.List(ctx, status, limit, offset)
}

// UpdateDemoStatus moves a demo request through the follow-up pipeline.
func (s *Service) UpdateDemoStatus(ctx context.Context, id uuid.UUID, status string) (*DemoRequest, error) {
	if !validDemoStatuses[status] {
		return nil, fmt.Errorf("invalid status %q", status)
	}
	dr, err := s.demos.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	dr.Status = status
	if err := s.demos.Update(ctx, dr); err != nil {
		return nil, err
	}
	return dr, nil
}

func (s *Service) DeleteDemoRequest(ctx context.Context, id uuid.UUID) error {
	return s.demos.Delete(ctx, id)
}

func (s *Service) CreateFeatureInterest(ctx context.Context, fi *FeatureInterest) error {
	if fi.FeatureName == "" {
		return fmt.Errorf("feature_name is required")
	}
	if fi.UserEmail == "" {
		return fmt.Errorf("user_email is required")
	}
	if fi.InterestLevel == "" {
		fi.InterestLevel = "interested"
	} else if !validInterestLevels[fi.InterestLevel] {
		return fmt.Errorf("invalid interest_level %q", fi.InterestLevel)
	}
	return s.interests.Create(ctx, fi)
}

func (s *Service) ListFeatureInterests(ctx context.Context, featureName string, limit, offset int) ([]*FeatureInterest, int, error) {
	return s.interests.List(ctx, featureName, limit, offset)
}

func (s *Service) DeleteFeatureInterest(ctx context.Context, id uuid.UUID) error {
	return s.interests.Delete(ctx, id)
}
