package consent

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type Service struct {
	repo ConsentRepository
}

func NewService(repo ConsentRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) CreateRequest(ctx context.Context, cr *ConsentRecord) error {
	if cr.PatientID == "" {
		return fmt.Errorf("patient_id is required")
	}
	if cr.RequesterName == "" {
		return fmt.Errorf("requester_name is required")
	}
	if cr.Purpose == "" {
		return fmt.Errorf("purpose is required")
	}
	for _, dt := range cr.DataTypes {
		if !validDataTypes[dt] {
			return fmt.Errorf("invalid data type %q", dt)
		}
	}
	cr.ConsentStatus = StatusPending
	return s.repo.Create(ctx, cr)
}

// GetRecord returns a consent record, lazily expiring it when its validity
// window has passed.
func (s *Service) GetRecord(ctx context.Context, id uuid.UUID) (*ConsentRecord, error) {
	cr, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if cr.ConsentStatus == StatusApproved && cr.ValidUntil != nil && cr.ValidUntil.Before(time.Now()) {
		cr.ConsentStatus = StatusExpired
		if err := s.repo.Update(ctx, cr); err != nil {
			return nil, err
		}
	}
	return cr, nil
}

func (s *Service) ListRecords(ctx context.Context, patientID, status string, limit, offset int) ([]*ConsentRecord, int, error) {
	return s.repo.List(ctx, patientID, status, limit, offset)
}

func (s *Service) DeleteRecord(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

// Approve grants a pending request, recording the approver and optionally a
// validity window.
func (s *Service) Approve(ctx context.Context, id uuid.UUID, by string, validFrom, validUntil *time.Time) (*ConsentRecord, error) {
	cr, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if cr.ConsentStatus != StatusPending {
		return nil, fmt.Errorf("consent is %s, only pending requests can be approved", cr.ConsentStatus)
	}
	if validFrom != nil && validUntil != nil && validUntil.Before(*validFrom) {
		return nil, fmt.Errorf("valid_until precedes valid_from")
	}

	now := time.Now().UTC()
	cr.ConsentStatus = StatusApproved
	cr.ApprovedBy = &by
	cr.ApprovedAt = &now
	if validFrom != nil {
		cr.ValidFrom = validFrom
	} else {
		cr.ValidFrom = &now
	}
	cr.ValidUntil = validUntil

	if err := s.repo.Update(ctx, cr); err != nil {
		return nil, err
	}
	return cr, nil
}

// Reject denies a pending request.
func (s *Service) Reject(ctx context.Context, id uuid.UUID) (*ConsentRecord, error) {
	cr, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if cr.ConsentStatus != StatusPending {
		return nil, fmt.Errorf("consent is %s, only pending requests can be rejected", cr.ConsentStatus)
	}

	cr.ConsentStatus = StatusRejected
	if err := s.repo.Update(ctx, cr); err != nil {
		return nil, err
	}
	return cr, nil
}

// Revoke withdraws a previously approved consent.
func (s *Service) Revoke(ctx context.Context, id uuid.UUID) (*ConsentRecord, error) {
	cr, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if cr.ConsentStatus != StatusApproved {
		return nil, fmt.Errorf("consent is %s, only approved consents can be revoked", cr.ConsentStatus)
	}

	cr.ConsentStatus = StatusRevoked
	if err := s.repo.Update(ctx, cr); err != nil {
		return nil, err
	}
	return cr, nil
}
