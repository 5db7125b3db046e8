package emergency

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Jashwanth-0624/SwastyaConnect/internal/domain/patient"
)

// PatientLookup is the slice of the patient repository this service needs.
type PatientLookup interface {
	GetByID(ctx context.Context, id uuid.UUID) (*patient.Patient, error)
}

type Service struct {
	repo     EmergencyRepository
	patients PatientLookup
}

func NewService(repo EmergencyRepository, patients PatientLookup) *Service {
	return &Service{repo: repo, patients: patients}
}

func (s *Service) GetData(ctx context.Context, id uuid.UUID) (*EmergencyHealthData, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListData(ctx context.Context, patientID string, limit, offset int) ([]*EmergencyHealthData, int, error) {
	return s.repo.List(ctx, patientID, limit, offset)
}

func (s *Service) DeleteData(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

// GenerateForPatient snapshots the patient's critical fields and encodes
// them as the QR payload. Each call creates a new snapshot row.
func (s *Service) GenerateForPatient(ctx context.Context, patientRowID uuid.UUID) (*EmergencyHealthData, error) {
	p, err := s.patients.GetByID(ctx, patientRowID)
	if err != nil {
		return nil, fmt.Errorf("load patient: %w", err)
	}

	meds := make([]string, len(p.CurrentMedications))
	for i, m := range p.CurrentMedications {
		meds[i] = m.Name
	}

	payload := QRPayload{
		Name:        p.FullName,
		DOB:         p.DateOfBirth.UTC().Format("2006-01-02"),
		Allergies:   orEmpty(p.Allergies),
		Medications: orEmpty(meds),
		Conditions:  orEmpty(p.ChronicConditions),
		Surgeries:   orEmpty(p.PastSurgeries),
		PatientID:   p.PatientID,
	}
	if p.BloodGroup != nil {
		payload.BloodGroup = *p.BloodGroup
	}
	if p.EmergencyContact != nil {
		payload.EmergencyContact = *p.EmergencyContact
	}

	encoded, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode qr payload: %w", err)
	}

	e := &EmergencyHealthData{
		PatientID:          p.PatientID,
		QRCodeData:         string(encoded),
		BloodGroup:         p.BloodGroup,
		Allergies:          payload.Allergies,
		CurrentMedications: payload.Medications,
		ChronicConditions:  payload.Conditions,
		PastSurgeries:      payload.Surgeries,
		EmergencyContact:   p.EmergencyContact,
		GeneratedAt:        time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

// RecordAccess increments the access counter and stamps the access time.
// Called when a first responder scan resolves the record.
func (s *Service) RecordAccess(ctx context.Context, id uuid.UUID) (*EmergencyHealthData, error) {
	e, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	e.AccessCount++
	e.LastAccessed = &now
	if err := s.repo.Update(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func orEmpty(items []string) []string {
	if items == nil {
		return []string{}
	}
	return items
}
