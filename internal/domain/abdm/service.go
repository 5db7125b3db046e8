package abdm

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type Service struct {
	repo ABDMRepository
}

func NewService(repo ABDMRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) CreateRecord(ctx context.Context, rec *ABDMRecord) error {
	if rec.PatientID == "" {
		return fmt.Errorf("patient_id is required")
	}
	if rec.LinkStatus == "" {
		rec.LinkStatus = LinkNotLinked
	}
	if rec.VerificationStatus == "" {
		rec.VerificationStatus = VerifyUnverified
	}
	return s.repo.Create(ctx, rec)
}

func (s *Service) GetRecord(ctx context.Context, id uuid.UUID) (*ABDMRecord, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListRecords(ctx context.Context, patientID string, limit, offset int) ([]*ABDMRecord, int, error) {
	return s.repo.List(ctx, patientID, limit, offset)
}

func (s *Service) DeleteRecord(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

// LinkInput carries the registry identifiers confirmed during linkage.
type LinkInput struct {
	ABDMHealthID string `json:"abdm_health_id"`
	PHRAddress   string `json:"phr_address"`
	ABHANumber   string `json:"abha_number"`
}

// RequestLink moves an unlinked or failed record to pending.
func (s *Service) RequestLink(ctx context.Context, id uuid.UUID) (*ABDMRecord, error) {
	rec, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if rec.LinkStatus != LinkNotLinked && rec.LinkStatus != LinkFailed {
		return nil, fmt.Errorf("record is %s, linking can only start from not_linked or failed", rec.LinkStatus)
	}

	rec.LinkStatus = LinkPending
	if err := s.repo.Update(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// ConfirmLink completes a pending linkage: stores the registry identifiers,
// marks the record linked and verified, and stamps the sync time.
func (s *Service) ConfirmLink(ctx context.Context, id uuid.UUID, in LinkInput) (*ABDMRecord, error) {
	if in.ABDMHealthID == "" {
		return nil, fmt.Errorf("abdm_health_id is required")
	}

	rec, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if rec.LinkStatus != LinkPending {
		return nil, fmt.Errorf("record is %s, only pending records can be confirmed", rec.LinkStatus)
	}

	now := time.Now().UTC()
	rec.ABDMHealthID = &in.ABDMHealthID
	if in.PHRAddress != "" {
		rec.PHRAddress = &in.PHRAddress
	}
	if in.ABHANumber != "" {
		rec.ABHANumber = &in.ABHANumber
	}
	rec.LinkStatus = LinkLinked
	rec.VerificationStatus = VerifyVerified
	rec.LastSync = &now

	if err := s.repo.Update(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// FailLink marks a pending linkage as failed. It can be retried via
// RequestLink.
func (s *Service) FailLink(ctx context.Context, id uuid.UUID) (*ABDMRecord, error) {
	rec, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if rec.LinkStatus != LinkPending {
		return nil, fmt.Errorf("record is %s, only pending records can fail", rec.LinkStatus)
	}

	rec.LinkStatus = LinkFailed
	if err := s.repo.Update(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}
