package analytics

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/Jashwanth-0624/SwastyaConnect/internal/domain/patient"
	"github.com/Jashwanth-0624/SwastyaConnect/internal/platform/ai"
)

type mockRepo struct {
	predictions map[uuid.UUID]*PredictiveAnalytic
}

func newMockRepo() *mockRepo {
	return &mockRepo{predictions: make(map[uuid.UUID]*PredictiveAnalytic)}
}

func (m *mockRepo) Create(ctx context.Context, pa *PredictiveAnalytic) error {
	if pa.ID == uuid.Nil {
		pa.ID = uuid.New()
	}
	cp := *pa
	m.predictions[pa.ID] = &cp
	return nil
}

func (m *mockRepo) GetByID(ctx context.Context, id uuid.UUID) (*PredictiveAnalytic, error) {
	pa, ok := m.predictions[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *pa
	return &cp, nil
}

func (m *mockRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := m.predictions[id]; !ok {
		return ErrNotFound
	}
	delete(m.predictions, id)
	return nil
}

func (m *mockRepo) List(ctx context.Context, patientID, predictionType string, limit, offset int) ([]*PredictiveAnalytic, int, error) {
	var out []*PredictiveAnalytic
	for _, pa := range m.predictions {
		if patientID != "" && pa.PatientID != patientID {
			continue
		}
		if predictionType != "" && pa.PredictionType != predictionType {
			continue
		}
		cp := *pa
		out = append(out, &cp)
	}
	return out, len(out), nil
}

type stubPatients struct {
	patients map[uuid.UUID]*patient.Patient
}

func (s *stubPatients) GetByID(ctx context.Context, id uuid.UUID) (*patient.Patient, error) {
	p, ok := s.patients[id]
	if !ok {
		return nil, patient.ErrNotFound
	}
	return p, nil
}

type stubInvoker struct {
	lastPrompt string
	lastSchema ai.Schema
	result     map[string]interface{}
	err        error
}

func (s *stubInvoker) Invoke(ctx context.Context, prompt string, schema ai.Schema) (map[string]interface{}, error) {
	s.lastPrompt = prompt
	s.lastSchema = schema
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

func TestRiskLevelForScore(t *testing.T) {
	cases := []struct {
		score float64
		want  string
	}{
		{0, RiskLow},
		{29.9, RiskLow},
		{30, RiskModerate},
		{59.9, RiskModerate},
		{60, RiskHigh},
		{84.9, RiskHigh},
		{85, RiskCritical},
		{100, RiskCritical},
	}
	for _, tc := range cases {
		if got := riskLevelForScore(tc.score); got != tc.want {
			t.Errorf("riskLevelForScore(%v) = %q, want %q", tc.score, got, tc.want)
		}
	}
}

func TestCreatePredictionValidation(t *testing.T) {
	svc := NewService(newMockRepo(), nil, nil)
	ctx := context.Background()

	if err := svc.CreatePrediction(ctx, &PredictiveAnalytic{PredictionType: "readmission_risk"}); err == nil {
		t.Error("expected error for missing patient_id")
	}
	if err := svc.CreatePrediction(ctx, &PredictiveAnalytic{PatientID: "PT-1", PredictionType: "horoscope"}); err == nil {
		t.Error("expected error for invalid prediction_type")
	}
	if err := svc.CreatePrediction(ctx, &PredictiveAnalytic{PatientID: "PT-1", PredictionType: "sepsis_warning", RiskScore: 140}); err == nil {
		t.Error("expected error for out-of-range risk_score")
	}
	if err := svc.CreatePrediction(ctx, &PredictiveAnalytic{PatientID: "PT-1", PredictionType: "sepsis_warning", RiskScore: 50, RiskLevel: "extreme"}); err == nil {
		t.Error("expected error for invalid risk_level")
	}
}

func TestCreatePredictionDerivesRiskLevel(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo, nil, nil)

	pa := &PredictiveAnalytic{
		PatientID:      "PT-1",
		PredictionType: "readmission_risk",
		RiskScore:      72,
	}
	if err := svc.CreatePrediction(context.Background(), pa); err != nil {
		t.Fatalf("CreatePrediction: %v", err)
	}
	if pa.RiskLevel != RiskHigh {
		t.Errorf("derived risk_level = %q, want %q", pa.RiskLevel, RiskHigh)
	}
	if pa.PredictionDate.IsZero() {
		t.Error("prediction_date not defaulted")
	}
}

func TestCreatePredictionKeepsExplicitRiskLevel(t *testing.T) {
	svc := NewService(newMockRepo(), nil, nil)

	pa := &PredictiveAnalytic{
		PatientID:      "PT-1",
		PredictionType: "mortality_risk",
		RiskScore:      10,
		RiskLevel:      RiskHigh,
	}
	if err := svc.CreatePrediction(context.Background(), pa); err != nil {
		t.Fatalf("CreatePrediction: %v", err)
	}
	if pa.RiskLevel != RiskHigh {
		t.Errorf("risk_level = %q, want explicit %q kept", pa.RiskLevel, RiskHigh)
	}
}

func generatePatient() *patient.Patient {
	return &patient.Patient{
		ID:                uuid.New(),
		PatientID:         "PT-GEN",
		FullName:          "Asha Verma",
		DateOfBirth:       time.Date(1958, 3, 14, 0, 0, 0, 0, time.UTC),
		ChronicConditions: []string{"diabetes", "hypertension"},
		CurrentMedications: []patient.Medication{
			{Name: "Metformin", Dosage: "500mg", Frequency: "2x daily"},
		},
		Allergies: []string{"penicillin"},
	}
}

func TestGenerateForPatient(t *testing.T) {
	repo := newMockRepo()
	p := generatePatient()
	patients := &stubPatients{patients: map[uuid.UUID]*patient.Patient{p.ID: p}}
	invoker := &stubInvoker{result: map[string]interface{}{
		"risk_score":           float64(78),
		"risk_level":           "high",
		"contributing_factors": []interface{}{"diabetes", "age over 65"},
		"recommendations":      []interface{}{"schedule follow-up within 7 days"},
		"confidence_score":     float64(91),
	}}
	svc := NewService(repo, patients, invoker)

	pa, err := svc.GenerateForPatient(context.Background(), p.ID, "readmission_risk")
	if err != nil {
		t.Fatalf("GenerateForPatient: %v", err)
	}

	for _, want := range []string{"readmission_risk", "Asha Verma", "diabetes, hypertension", "Metformin", "penicillin"} {
		if !strings.Contains(invoker.lastPrompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
	if len(invoker.lastSchema.Required) != 1 || invoker.lastSchema.Required[0] != "risk_score" {
		t.Errorf("schema required = %v", invoker.lastSchema.Required)
	}

	if pa.PatientID != "PT-GEN" {
		t.Errorf("patient_id = %q", pa.PatientID)
	}
	if pa.RiskScore != 78 || pa.RiskLevel != RiskHigh {
		t.Errorf("risk = %v/%q", pa.RiskScore, pa.RiskLevel)
	}
	if len(pa.ContributingFactors) != 2 || len(pa.Recommendations) != 1 {
		t.Errorf("factors/recommendations = %v / %v", pa.ContributingFactors, pa.Recommendations)
	}
	if pa.ModelVersion == nil || *pa.ModelVersion != modelVersion {
		t.Errorf("model_version = %v", pa.ModelVersion)
	}
	if pa.ConfidenceScore == nil || *pa.ConfidenceScore != 91 {
		t.Errorf("confidence_score = %v", pa.ConfidenceScore)
	}
	if _, err := repo.GetByID(context.Background(), pa.ID); err != nil {
		t.Errorf("prediction not persisted: %v", err)
	}
}

func TestGenerateNormalizesUnknownRiskLevel(t *testing.T) {
	p := generatePatient()
	patients := &stubPatients{patients: map[uuid.UUID]*patient.Patient{p.ID: p}}
	invoker := &stubInvoker{result: map[string]interface{}{
		"risk_score": float64(92),
		"risk_level": "severe",
	}}
	svc := NewService(newMockRepo(), patients, invoker)

	pa, err := svc.GenerateForPatient(context.Background(), p.ID, "sepsis_warning")
	if err != nil {
		t.Fatalf("GenerateForPatient: %v", err)
	}
	if pa.RiskLevel != RiskCritical {
		t.Errorf("risk_level = %q, want %q derived from score", pa.RiskLevel, RiskCritical)
	}
}

func TestGenerateRejectsInvalidType(t *testing.T) {
	svc := NewService(newMockRepo(), &stubPatients{}, &stubInvoker{})
	if _, err := svc.GenerateForPatient(context.Background(), uuid.New(), "palm_reading"); err == nil {
		t.Error("expected error for invalid prediction_type")
	}
}

func TestGenerateModelUnavailable(t *testing.T) {
	repo := newMockRepo()
	p := generatePatient()
	patients := &stubPatients{patients: map[uuid.UUID]*patient.Patient{p.ID: p}}
	invoker := &stubInvoker{err: ai.ErrServiceUnavailable}
	svc := NewService(repo, patients, invoker)

	_, err := svc.GenerateForPatient(context.Background(), p.ID, "icu_transfer")
	if !errors.Is(err, ai.ErrServiceUnavailable) {
		t.Fatalf("err = %v, want ErrServiceUnavailable", err)
	}
	if len(repo.predictions) != 0 {
		t.Error("nothing should be persisted on model failure")
	}
}
