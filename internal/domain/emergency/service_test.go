package emergency

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/Jashwanth-0624/SwastyaConnect/internal/domain/patient"
)

type mockRepo struct {
	records map[uuid.UUID]*EmergencyHealthData
}

func newMockRepo() *mockRepo {
	return &mockRepo{records: make(map[uuid.UUID]*EmergencyHealthData)}
}

func (m *mockRepo) Create(ctx context.Context, e *EmergencyHealthData) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	cp := *e
	m.records[e.ID] = &cp
	return nil
}

func (m *mockRepo) GetByID(ctx context.Context, id uuid.UUID) (*EmergencyHealthData, error) {
	e, ok := m.records[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *e
	return &cp, nil
}

func (m *mockRepo) Update(ctx context.Context, e *EmergencyHealthData) error {
	if _, ok := m.records[e.ID]; !ok {
		return ErrNotFound
	}
	cp := *e
	m.records[e.ID] = &cp
	return nil
}

func (m *mockRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := m.records[id]; !ok {
		return ErrNotFound
	}
	delete(m.records, id)
	return nil
}

func (m *mockRepo) List(ctx context.Context, patientID string, limit, offset int) ([]*EmergencyHealthData, int, error) {
	var out []*EmergencyHealthData
	for _, e := range m.records {
		cp := *e
		out = append(out, &cp)
	}
	return out, len(out), nil
}

type stubPatients struct {
	p *patient.Patient
}

func (s *stubPatients) GetByID(ctx context.Context, id uuid.UUID) (*patient.Patient, error) {
	if s.p == nil || s.p.ID != id {
		return nil, patient.ErrNotFound
	}
	return s.p, nil
}

func snapshotPatient() *patient.Patient {
	dob, _ := time.Parse("2006-01-02", "1975-11-30")
	bg := "B+"
	contact := "+91-9876543210"
	return &patient.Patient{
		ID:                uuid.New(),
		PatientID:         "PAT77",
		FullName:          "Sunita Patil",
		DateOfBirth:       dob,
		BloodGroup:        &bg,
		EmergencyContact:  &contact,
		Allergies:         []string{"sulfa drugs"},
		ChronicConditions: []string{"hypertension"},
		CurrentMedications: []patient.Medication{
			{Name: "amlodipine", Dosage: "5mg"},
		},
	}
}

func TestGenerateForPatient_QRPayload(t *testing.T) {
	p := snapshotPatient()
	repo := newMockRepo()
	svc := NewService(repo, &stubPatients{p: p})

	e, err := svc.GenerateForPatient(context.Background(), p.ID)
	if err != nil {
		t.Fatalf("GenerateForPatient: %v", err)
	}
	if e.PatientID != "PAT77" || e.AccessCount != 0 {
		t.Errorf("unexpected record: %+v", e)
	}
	if e.BloodGroup == nil || *e.BloodGroup != "B+" {
		t.Errorf("blood_group = %v", e.BloodGroup)
	}
	if len(e.CurrentMedications) != 1 || e.CurrentMedications[0] != "amlodipine" {
		t.Errorf("medications should be flattened to names, got %v", e.CurrentMedications)
	}

	var payload QRPayload
	if err := json.Unmarshal([]byte(e.QRCodeData), &payload); err != nil {
		t.Fatalf("qr_code_data is not valid JSON: %v", err)
	}
	if payload.Name != "Sunita Patil" || payload.DOB != "1975-11-30" || payload.PatientID != "PAT77" {
		t.Errorf("unexpected payload: %+v", payload)
	}
	if payload.BloodGroup != "B+" || payload.EmergencyContact != "+91-9876543210" {
		t.Errorf("payload missing contact fields: %+v", payload)
	}
	if payload.Allergies == nil || payload.Medications == nil {
		t.Error("payload lists must be arrays, not null")
	}
}

func TestGenerateForPatient_NewSnapshotPerCall(t *testing.T) {
	p := snapshotPatient()
	repo := newMockRepo()
	svc := NewService(repo, &stubPatients{p: p})
	ctx := context.Background()

	if _, err := svc.GenerateForPatient(ctx, p.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.GenerateForPatient(ctx, p.ID); err != nil {
		t.Fatal(err)
	}
	if len(repo.records) != 2 {
		t.Errorf("each generate call must create a new snapshot, got %d rows", len(repo.records))
	}
}

func TestRecordAccess(t *testing.T) {
	p := snapshotPatient()
	repo := newMockRepo()
	svc := NewService(repo, &stubPatients{p: p})
	ctx := context.Background()

	e, err := svc.GenerateForPatient(ctx, p.ID)
	if err != nil {
		t.Fatal(err)
	}

	for i := 1; i <= 3; i++ {
		got, err := svc.RecordAccess(ctx, e.ID)
		if err != nil {
			t.Fatalf("RecordAccess: %v", err)
		}
		if got.AccessCount != i {
			t.Errorf("access_count = %d, want %d", got.AccessCount, i)
		}
		if got.LastAccessed == nil {
			t.Error("last_accessed not stamped")
		}
	}
}
