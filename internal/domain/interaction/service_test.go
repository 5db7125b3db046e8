package interaction

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/Jashwanth-0624/SwastyaConnect/internal/domain/patient"
	"github.com/Jashwanth-0624/SwastyaConnect/internal/platform/ai"
)

type mockRepo struct {
	interactions map[uuid.UUID]*DrugInteraction
}

func newMockRepo() *mockRepo {
	return &mockRepo{interactions: make(map[uuid.UUID]*DrugInteraction)}
}

func (m *mockRepo) Create(ctx context.Context, di *DrugInteraction) error {
	if di.ID == uuid.Nil {
		di.ID = uuid.New()
	}
	cp := *di
	m.interactions[di.ID] = &cp
	return nil
}

func (m *mockRepo) GetByID(ctx context.Context, id uuid.UUID) (*DrugInteraction, error) {
	di, ok := m.interactions[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *di
	return &cp, nil
}

func (m *mockRepo) Update(ctx context.Context, di *DrugInteraction) error {
	if _, ok := m.interactions[di.ID]; !ok {
		return ErrNotFound
	}
	cp := *di
	m.interactions[di.ID] = &cp
	return nil
}

func (m *mockRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := m.interactions[id]; !ok {
		return ErrNotFound
	}
	delete(m.interactions, id)
	return nil
}

func (m *mockRepo) List(ctx context.Context, patientID, status string, limit, offset int) ([]*DrugInteraction, int, error) {
	var out []*DrugInteraction
	for _, di := range m.interactions {
		cp := *di
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

type stubInvoker struct {
	result map[string]interface{}
	err    error
}

func (s *stubInvoker) Invoke(ctx context.Context, prompt string, schema ai.Schema) (map[string]interface{}, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

func warfarinPatient() *patient.Patient {
	return &patient.Patient{
		ID:        uuid.New(),
		PatientID: "PAT42",
		FullName:  "Ravi Kumar",
		Allergies: []string{"aspirin"},
		CurrentMedications: []patient.Medication{
			{Name: "warfarin", Dosage: "5mg"},
		},
	}
}

func TestCheckDrug_CreatesRecordPerFinding(t *testing.T) {
	p := warfarinPatient()
	model := &stubInvoker{result: map[string]interface{}{
		"interactions": []interface{}{
			map[string]interface{}{
				"interaction_type": "drug_drug",
				"severity":         "major",
				"interacting_with": "warfarin",
				"clinical_effects": "increased bleeding risk",
				"recommendations":  "monitor INR closely",
			},
			map[string]interface{}{
				"interaction_type": "drug_allergy",
				"severity":         "contraindicated",
				"interacting_with": "aspirin",
			},
		},
	}}
	repo := newMockRepo()
	svc := NewService(repo, &stubPatients{p: p}, model)

	findings, err := svc.CheckDrug(context.Background(), p.ID, "ibuprofen")
	if err != nil {
		t.Fatalf("CheckDrug: %v", err)
	}
	if len(findings) != 2 {
		t.Fatalf("expected 2 findings, got %d", len(findings))
	}
	if len(repo.interactions) != 2 {
		t.Errorf("expected 2 persisted records, got %d", len(repo.interactions))
	}
	first := findings[0]
	if first.DrugName != "ibuprofen" || first.PatientID != "PAT42" || first.Status != StatusActive {
		t.Errorf("unexpected finding: %+v", first)
	}
	if first.InteractingWith == nil || *first.InteractingWith != "warfarin" {
		t.Errorf("interacting_with = %v", first.InteractingWith)
	}
}

func TestCheckDrug_NoFindings(t *testing.T) {
	p := warfarinPatient()
	model := &stubInvoker{result: map[string]interface{}{"interactions": []interface{}{}}}
	repo := newMockRepo()
	svc := NewService(repo, &stubPatients{p: p}, model)

	findings, err := svc.CheckDrug(context.Background(), p.ID, "paracetamol")
	if err != nil {
		t.Fatalf("CheckDrug: %v", err)
	}
	if len(findings) != 0 || len(repo.interactions) != 0 {
		t.Errorf("no records may be created when the model finds nothing")
	}
}

func TestCheckDrug_NormalizesUnknownLabels(t *testing.T) {
	p := warfarinPatient()
	model := &stubInvoker{result: map[string]interface{}{
		"interactions": []interface{}{
			map[string]interface{}{
				"interaction_type": "pharmacokinetic",
				"severity":         "severe",
			},
		},
	}}
	svc := NewService(newMockRepo(), &stubPatients{p: p}, model)

	findings, err := svc.CheckDrug(context.Background(), p.ID, "rifampin")
	if err != nil {
		t.Fatalf("CheckDrug: %v", err)
	}
	if findings[0].InteractionType != "drug_drug" || findings[0].Severity != "moderate" {
		t.Errorf("unknown labels should be normalized, got %+v", findings[0])
	}
}

func TestCheckDrug_ModelUnavailable(t *testing.T) {
	p := warfarinPatient()
	svc := NewService(newMockRepo(), &stubPatients{p: p}, &stubInvoker{err: ai.ErrServiceUnavailable})

	if _, err := svc.CheckDrug(context.Background(), p.ID, "ibuprofen"); !errors.Is(err, ai.ErrServiceUnavailable) {
		t.Errorf("expected ErrServiceUnavailable, got %v", err)
	}
}

func TestReview_Transitions(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo, nil, nil)
	ctx := context.Background()

	di := &DrugInteraction{
		PatientID:       "PAT42",
		DrugName:        "ibuprofen",
		InteractionType: "drug_drug",
		Severity:        "major",
	}
	if err := svc.CreateInteraction(ctx, di); err != nil {
		t.Fatalf("CreateInteraction: %v", err)
	}

	got, err := svc.Review(ctx, di.ID, StatusOverrideApproved, "dr.mehta")
	if err != nil {
		t.Fatalf("Review: %v", err)
	}
	if got.Status != StatusOverrideApproved || got.ReviewedBy == nil || *got.ReviewedBy != "dr.mehta" {
		t.Errorf("unexpected interaction after review: %+v", got)
	}

	if _, err := svc.Review(ctx, di.ID, StatusActive, "dr.mehta"); err == nil {
		t.Error("transitioning back to active must fail")
	}
	if _, err := svc.Review(ctx, di.ID, "archived", "dr.mehta"); err == nil {
		t.Error("unknown status must fail")
	}

	if _, err := svc.Review(ctx, di.ID, StatusResolved, ""); err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if _, err := svc.Review(ctx, di.ID, StatusReviewed, "dr.mehta"); err == nil {
		t.Error("resolved interactions must not transition further")
	}
}
