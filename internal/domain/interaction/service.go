package interaction

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/Jashwanth-0624/SwastyaConnect/internal/domain/patient"
	"github.com/Jashwanth-0624/SwastyaConnect/internal/platform/ai"
)

// PatientLookup is the slice of the patient repository this service needs.
type PatientLookup interface {
	GetByID(ctx context.Context, id uuid.UUID) (*patient.Patient, error)
}

type Service struct {
	repo     InteractionRepository
	patients PatientLookup
	model    ai.Invoker
}

func NewService(repo InteractionRepository, patients PatientLookup, model ai.Invoker) *Service {
	return &Service{repo: repo, patients: patients, model: model}
}

func (s *Service) CreateInteraction(ctx context.Context, di *DrugInteraction) error {
	if di.PatientID == "" || di.DrugName == "" {
		return fmt.Errorf("patient_id and drug_name are required")
	}
	if !validInteractionTypes[di.InteractionType] {
		return fmt.Errorf("invalid interaction_type %q", di.InteractionType)
	}
	if !validSeverities[di.Severity] {
		return fmt.Errorf("invalid severity %q", di.Severity)
	}
	if di.Status == "" {
		di.Status = StatusActive
	}
	return s.repo.Create(ctx, di)
}

func (s *Service) GetInteraction(ctx context.Context, id uuid.UUID) (*DrugInteraction, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListInteractions(ctx context.Context, patientID, status string, limit, offset int) ([]*DrugInteraction, int, error) {
	return s.repo.List(ctx, patientID, status, limit, offset)
}

func (s *Service) DeleteInteraction(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

// Review moves an interaction through its workflow. Allowed targets are
// reviewed, override_approved and resolved; an interaction cannot go back
// to active.
func (s *Service) Review(ctx context.Context, id uuid.UUID, status, reviewedBy string) (*DrugInteraction, error) {
	if !validStatuses[status] || status == StatusActive {
		return nil, fmt.Errorf("invalid target status %q", status)
	}

	di, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if di.Status == StatusResolved {
		return nil, fmt.Errorf("interaction is already resolved")
	}

	di.Status = status
	if reviewedBy != "" {
		di.ReviewedBy = &reviewedBy
	}
	if err := s.repo.Update(ctx, di); err != nil {
		return nil, err
	}
	return di, nil
}

var checkSchema = ai.Schema{
	Type: "object",
	Properties: map[string]interface{}{
		"interactions": map[string]interface{}{
			"type": "array",
			"items": map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"interaction_type": map[string]interface{}{"type": "string"},
					"severity":         map[string]interface{}{"type": "string"},
					"interacting_with": map[string]interface{}{"type": "string"},
					"description":      map[string]interface{}{"type": "string"},
					"clinical_effects": map[string]interface{}{"type": "string"},
					"recommendations":  map[string]interface{}{"type": "string"},
				},
			},
		},
	},
	Required: []string{"interactions"},
}

// CheckDrug runs the model against the patient's allergies, medications and
// conditions and stores one active interaction record per finding. An empty
// findings list is a success with no records created.
func (s *Service) CheckDrug(ctx context.Context, patientRowID uuid.UUID, drugName string) ([]*DrugInteraction, error) {
	if drugName == "" {
		return nil, fmt.Errorf("drug_name is required")
	}

	p, err := s.patients.GetByID(ctx, patientRowID)
	if err != nil {
		return nil, fmt.Errorf("load patient: %w", err)
	}

	result, err := s.model.Invoke(ctx, buildCheckPrompt(p, drugName), checkSchema)
	if err != nil {
		return nil, err
	}

	raw, _ := result["interactions"].([]interface{})
	var created []*DrugInteraction
	for _, item := range raw {
		finding, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		di := &DrugInteraction{
			PatientID:       p.PatientID,
			DrugName:        drugName,
			InteractionType: strProp(finding, "interaction_type"),
			Severity:        strProp(finding, "severity"),
			Status:          StatusActive,
		}
		di.InteractingWith = optProp(finding, "interacting_with")
		di.Description = optProp(finding, "description")
		di.ClinicalEffects = optProp(finding, "clinical_effects")
		di.Recommendations = optProp(finding, "recommendations")

		// Findings outside the known vocabularies are kept but normalized,
		// not dropped; a surprising label is still a safety signal.
		if !validInteractionTypes[di.InteractionType] {
			di.InteractionType = "drug_drug"
		}
		if !validSeverities[di.Severity] {
			di.Severity = "moderate"
		}

		if err := s.repo.Create(ctx, di); err != nil {
			return created, err
		}
		created = append(created, di)
	}
	return created, nil
}

func buildCheckPrompt(p *patient.Patient, drugName string) string {
	meds := make([]string, len(p.CurrentMedications))
	for i, m := range p.CurrentMedications {
		meds[i] = m.Name
	}

	return fmt.Sprintf(`As a clinical pharmacist, check for drug interactions for %s in this patient:

Allergies: %s
Current Medications: %s
Chronic Conditions: %s

Identify:
1. Drug-drug interactions with current medications
2. Drug-allergy interactions
3. Drug-condition contraindications
4. Duplicate therapy warnings

Return ONLY interactions found. If no interactions, return empty array.`,
		drugName, orNone(p.Allergies), orNone(meds), orNone(p.ChronicConditions))
}

func orNone(items []string) string {
	if len(items) == 0 {
		return "None"
	}
	return strings.Join(items, ", ")
}

func strProp(m map[string]interface{}, key string) string {
	v, _ := m[key].(string)
	return v
}

func optProp(m map[string]interface{}, key string) *string {
	v, _ := m[key].(string)
	if v == "" {
		return nil
	}
	return &v
}
