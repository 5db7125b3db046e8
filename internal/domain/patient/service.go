package patient

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// PartialMergeError reports a merge whose computation succeeded but where
// one or more per-record updates failed. Records listed in Failed still
// carry their pre-merge state; retrying the merge with the same selection
// is safe because the merged payload is deterministic for a given order.
type PartialMergeError struct {
	UnifiedID string
	Updated   int
	Failed    []uuid.UUID
}

func (e *PartialMergeError) Error() string {
	ids := make([]string, len(e.Failed))
	for i, id := range e.Failed {
		ids[i] = id.String()
	}
	return fmt.Sprintf("merge %s partially applied: %d updated, failed records: %s",
		e.UnifiedID, e.Updated, strings.Join(ids, ", "))
}

// MergeOutcome is the result of a completed merge operation.
type MergeOutcome struct {
	UnifiedID string   `json:"unified_id"`
	Merged    *Patient `json:"merged"`
	Updated   int      `json:"updated"`
}

type Service struct {
	repo  PatientRepository
	genID UnifiedIDGenerator
}

func NewService(repo PatientRepository) *Service {
	return &Service{repo: repo, genID: NewUnifiedID}
}

// SetUnifiedIDGenerator swaps the unified ID generator, e.g. for a
// collision-resistant one.
func (s *Service) SetUnifiedIDGenerator(g UnifiedIDGenerator) { s.genID = g }

func (s *Service) CreatePatient(ctx context.Context, p *Patient) error {
	if p.FullName == "" {
		return fmt.Errorf("full_name is required")
	}
	if p.DateOfBirth.IsZero() {
		return fmt.Errorf("date_of_birth is required")
	}
	if p.Gender != nil && !validGenders[*p.Gender] {
		return fmt.Errorf("invalid gender %q", *p.Gender)
	}
	if p.BloodGroup != nil && !validBloodGroups[*p.BloodGroup] {
		return fmt.Errorf("invalid blood_group %q", *p.BloodGroup)
	}
	return s.repo.Create(ctx, p)
}

func (s *Service) GetPatient(ctx context.Context, id uuid.UUID) (*Patient, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) GetPatientByBusinessID(ctx context.Context, patientID string) (*Patient, error) {
	return s.repo.GetByPatientID(ctx, patientID)
}

func (s *Service) UpdatePatient(ctx context.Context, p *Patient) error {
	if p.FullName == "" {
		return fmt.Errorf("full_name is required")
	}
	if p.Gender != nil && !validGenders[*p.Gender] {
		return fmt.Errorf("invalid gender %q", *p.Gender)
	}
	if p.BloodGroup != nil && !validBloodGroups[*p.BloodGroup] {
		return fmt.Errorf("invalid blood_group %q", *p.BloodGroup)
	}
	return s.repo.Update(ctx, p)
}

func (s *Service) DeletePatient(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) ListPatients(ctx context.Context, limit, offset int) ([]*Patient, int, error) {
	return s.repo.List(ctx, limit, offset)
}

// DetectDuplicates loads the full patient snapshot and returns the
// duplicate groups found in it.
func (s *Service) DetectDuplicates(ctx context.Context) ([]DuplicateGroup, error) {
	patients, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return FindDuplicates(patients), nil
}

// MergeRecords merges the selected records under a new unified identifier
// and writes the identical merged payload back to every one of them. There
// is no multi-record transaction: when some updates fail the group is left
// partially merged and a PartialMergeError reports which records were not
// updated.
func (s *Service) MergeRecords(ctx context.Context, ids []uuid.UUID) (*MergeOutcome, error) {
	if len(ids) < 2 {
		return nil, ErrMergeTooFew
	}

	records := make([]*Patient, 0, len(ids))
	for _, id := range ids {
		p, err := s.repo.GetByID(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("load record %s: %w", id, err)
		}
		records = append(records, p)
	}

	result, err := MergePatients(records, s.genID)
	if err != nil {
		return nil, err
	}

	var failed []uuid.UUID
	updated := 0
	for _, rec := range records {
		applyMerge(rec, result.Merged)
		if err := s.repo.Update(ctx, rec); err != nil {
			failed = append(failed, rec.ID)
			continue
		}
		updated++
	}

	outcome := &MergeOutcome{UnifiedID: result.UnifiedID, Merged: result.Merged, Updated: updated}
	if len(failed) > 0 {
		return outcome, &PartialMergeError{UnifiedID: result.UnifiedID, Updated: updated, Failed: failed}
	}
	return outcome, nil
}
