package analytics

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Jashwanth-0624/SwastyaConnect/internal/domain/patient"
	"github.com/Jashwanth-0624/SwastyaConnect/internal/platform/ai"
)

// PatientLookup is the slice of the patient repository this service needs.
type PatientLookup interface {
	GetByID(ctx context.Context, id uuid.UUID) (*patient.Patient, error)
}

// modelVersion tags every generated prediction with the model release that
// produced it.
const modelVersion = "v2.3.1"

type Service struct {
	repo     AnalyticsRepository
	patients PatientLookup
	model    ai.Invoker
}

func NewService(repo AnalyticsRepository, patients PatientLookup, model ai.Invoker) *Service {
	return &Service{repo: repo, patients: patients, model: model}
}

func (s *Service) CreatePrediction(ctx context.Context, pa *PredictiveAnalytic) error {
	if pa.PatientID == "" {
		return fmt.Errorf("patient_id is required")
	}
	if !validPredictionTypes[pa.PredictionType] {
		return fmt.Errorf("invalid prediction_type %q", pa.PredictionType)
	}
	if pa.RiskScore < 0 || pa.RiskScore > 100 {
		return fmt.Errorf("risk_score must be between 0 and 100")
	}
	if pa.RiskLevel == "" {
		pa.RiskLevel = riskLevelForScore(pa.RiskScore)
	} else if !validRiskLevels[pa.RiskLevel] {
		return fmt.Errorf("invalid risk_level %q", pa.RiskLevel)
	}
	if pa.PredictionDate.IsZero() {
		pa.PredictionDate = time.Now().UTC()
	}
	return s.repo.Create(ctx, pa)
}

func (s *Service) GetPrediction(ctx context.Context, id uuid.UUID) (*PredictiveAnalytic, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListPredictions(ctx context.Context, patientID, predictionType string, limit, offset int) ([]*PredictiveAnalytic, int, error) {
	return s.repo.List(ctx, patientID, predictionType, limit, offset)
}

func (s *Service) DeletePrediction(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

var predictionSchema = ai.Schema{
	Type: "object",
	Properties: map[string]interface{}{
		"risk_score":           map[string]interface{}{"type": "number"},
		"risk_level":           map[string]interface{}{"type": "string", "enum": []string{RiskLow, RiskModerate, RiskHigh, RiskCritical}},
		"contributing_factors": map[string]interface{}{"type": "array", "items": map[string]interface{}{"type": "string"}},
		"recommendations":      map[string]interface{}{"type": "array", "items": map[string]interface{}{"type": "string"}},
		"confidence_score":     map[string]interface{}{"type": "number"},
	},
	Required: []string{"risk_score"},
}

// GenerateForPatient asks the model service for a risk prediction of the
// given type and stores the result. A model label outside the known risk
// levels is replaced by the level derived from the score.
func (s *Service) GenerateForPatient(ctx context.Context, patientRowID uuid.UUID, predictionType string) (*PredictiveAnalytic, error) {
	if !validPredictionTypes[predictionType] {
		return nil, fmt.Errorf("invalid prediction_type %q", predictionType)
	}
	p, err := s.patients.GetByID(ctx, patientRowID)
	if err != nil {
		return nil, fmt.Errorf("load patient: %w", err)
	}

	result, err := s.model.Invoke(ctx, buildPredictionPrompt(p, predictionType), predictionSchema)
	if err != nil {
		return nil, err
	}

	score, _ := result["risk_score"].(float64)
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	level, _ := result["risk_level"].(string)
	if !validRiskLevels[level] {
		level = riskLevelForScore(score)
	}

	pa := &PredictiveAnalytic{
		PatientID:           p.PatientID,
		PredictionType:      predictionType,
		RiskScore:           score,
		RiskLevel:           level,
		ContributingFactors: stringSliceProp(result, "contributing_factors"),
		Recommendations:     stringSliceProp(result, "recommendations"),
		PredictionDate:      time.Now().UTC(),
	}
	mv := modelVersion
	pa.ModelVersion = &mv
	if v, ok := result["confidence_score"].(float64); ok {
		pa.ConfidenceScore = &v
	}

	if err := s.repo.Create(ctx, pa); err != nil {
		return nil, err
	}
	return pa, nil
}

func buildPredictionPrompt(p *patient.Patient, predictionType string) string {
	meds := make([]string, len(p.CurrentMedications))
	for i, m := range p.CurrentMedications {
		meds[i] = m.Name
	}
	age := time.Now().Year() - p.DateOfBirth.Year()

	return fmt.Sprintf(`As a medical AI, predict the %s for this patient:

Name: %s
Age: %d
Chronic Conditions: %s
Current Medications: %s
Allergies: %s

Provide a risk score (0-100), risk level, contributing factors, and recommendations.`,
		predictionType, p.FullName, age,
		orNone(p.ChronicConditions), orNone(meds), orNone(p.Allergies))
}

func orNone(items []string) string {
	if len(items) == 0 {
		return "None"
	}
	return strings.Join(items, ", ")
}

func stringSliceProp(m map[string]interface{}, key string) []string {
	raw, ok := m[key].([]interface{})
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
