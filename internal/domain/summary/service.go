package summary

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

type Service struct {
	repo     SummaryRepository
	patients PatientLookup
	model    ai.Invoker
}

func NewService(repo SummaryRepository, patients PatientLookup, model ai.Invoker) *Service {
	return &Service{repo: repo, patients: patients, model: model}
}

func (s *Service) CreateSummary(ctx context.Context, cs *ClinicalSummary) error {
	if cs.PatientID == "" {
		return fmt.Errorf("patient_id is required")
	}
	if cs.SummaryText == "" {
		return fmt.Errorf("summary_text is required")
	}
	if cs.GeneratedDate.IsZero() {
		cs.GeneratedDate = time.Now().UTC()
	}
	return s.repo.Create(ctx, cs)
}

func (s *Service) GetSummary(ctx context.Context, id uuid.UUID) (*ClinicalSummary, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListSummaries(ctx context.Context, patientID string, limit, offset int) ([]*ClinicalSummary, int, error) {
	return s.repo.List(ctx, patientID, limit, offset)
}

func (s *Service) DeleteSummary(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

var summarySchema = ai.Schema{
	Type: "object",
	Properties: map[string]interface{}{
		"summary_text":        map[string]interface{}{"type": "string"},
		"diagnoses":           map[string]interface{}{"type": "array", "items": map[string]interface{}{"type": "string"}},
		"lab_results_summary": map[string]interface{}{"type": "string"},
		"medications_summary": map[string]interface{}{"type": "string"},
		"risk_score":          map[string]interface{}{"type": "number"},
		"risk_factors":        map[string]interface{}{"type": "array", "items": map[string]interface{}{"type": "string"}},
	},
	Required: []string{"summary_text"},
}

// GenerateForPatient builds a clinical summary for the patient with the
// model service and stores it. The model call carries the caller's context;
// a transport or schema failure aborts without a partial write.
func (s *Service) GenerateForPatient(ctx context.Context, patientRowID uuid.UUID) (*ClinicalSummary, error) {
	p, err := s.patients.GetByID(ctx, patientRowID)
	if err != nil {
		return nil, fmt.Errorf("load patient: %w", err)
	}

	result, err := s.model.Invoke(ctx, buildSummaryPrompt(p), summarySchema)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	cs := &ClinicalSummary{
		PatientID:     p.PatientID,
		SummaryText:   stringProp(result, "summary_text"),
		Diagnoses:     stringSliceProp(result, "diagnoses"),
		RiskFactors:   stringSliceProp(result, "risk_factors"),
		GeneratedDate: now,
		LastVisitDate: &now,
	}
	if v := stringProp(result, "lab_results_summary"); v != "" {
		cs.LabResultsSummary = &v
	}
	if v := stringProp(result, "medications_summary"); v != "" {
		cs.MedicationsSummary = &v
	}
	if v, ok := result["risk_score"].(float64); ok {
		cs.RiskScore = &v
	}

	if err := s.repo.Create(ctx, cs); err != nil {
		return nil, err
	}
	return cs, nil
}

func buildSummaryPrompt(p *patient.Patient) string {
	meds := make([]string, len(p.CurrentMedications))
	for i, m := range p.CurrentMedications {
		meds[i] = m.Name
	}
	age := time.Now().Year() - p.DateOfBirth.Year()

	return fmt.Sprintf(`Generate a comprehensive clinical summary for this patient:

Name: %s
Age: %d
Allergies: %s
Chronic Conditions: %s
Current Medications: %s
Past Surgeries: %s

Provide:
1. Brief clinical overview
2. Current diagnoses
3. Medication summary
4. Risk assessment score (0-100)
5. Key risk factors`,
		p.FullName, age,
		orNone(p.Allergies), orNone(p.ChronicConditions),
		orNone(meds), orNone(p.PastSurgeries))
}

func orNone(items []string) string {
	if len(items) == 0 {
		return "None"
	}
	return strings.Join(items, ", ")
}

func stringProp(m map[string]interface{}, key string) string {
	v, _ := m[key].(string)
	return v
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
