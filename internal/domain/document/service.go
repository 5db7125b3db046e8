package document

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Jashwanth-0624/SwastyaConnect/internal/platform/ai"
)

// defaultConfidence is assigned to completed extractions; the model service
// does not report per-document confidence.
const defaultConfidence = 85.0

type Service struct {
	repo  DocumentRepository
	model ai.Invoker
}

func NewService(repo DocumentRepository, model ai.Invoker) *Service {
	return &Service{repo: repo, model: model}
}

func (s *Service) CreateDocument(ctx context.Context, d *MedicalDocument) error {
	if d.PatientID == "" {
		return fmt.Errorf("patient_id is required")
	}
	if d.FileURL == "" {
		return fmt.Errorf("file_url is required")
	}
	if !validDocumentTypes[d.DocumentType] {
		return fmt.Errorf("invalid document_type %q", d.DocumentType)
	}
	d.ExtractionStatus = StatusPending
	return s.repo.Create(ctx, d)
}

func (s *Service) GetDocument(ctx context.Context, id uuid.UUID) (*MedicalDocument, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListDocuments(ctx context.Context, patientID string, limit, offset int) ([]*MedicalDocument, int, error) {
	return s.repo.List(ctx, patientID, limit, offset)
}

func (s *Service) DeleteDocument(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

// schemaForType returns the extraction contract for a document type.
// Unlisted types fall back to the clinical note schema.
func schemaForType(documentType string) ai.Schema {
	switch documentType {
	case "prescription":
		return ai.Schema{
			Type: "object",
			Properties: map[string]interface{}{
				"medications": map[string]interface{}{
					"type": "array",
					"items": map[string]interface{}{
						"type": "object",
						"properties": map[string]interface{}{
							"name":      map[string]interface{}{"type": "string"},
							"dosage":    map[string]interface{}{"type": "string"},
							"frequency": map[string]interface{}{"type": "string"},
							"duration":  map[string]interface{}{"type": "string"},
						},
					},
				},
				"doctor_name": map[string]interface{}{"type": "string"},
				"date":        map[string]interface{}{"type": "string"},
			},
		}
	case "lab_report":
		return ai.Schema{
			Type: "object",
			Properties: map[string]interface{}{
				"test_name": map[string]interface{}{"type": "string"},
				"results": map[string]interface{}{
					"type": "array",
					"items": map[string]interface{}{
						"type": "object",
						"properties": map[string]interface{}{
							"parameter":    map[string]interface{}{"type": "string"},
							"value":        map[string]interface{}{"type": "string"},
							"normal_range": map[string]interface{}{"type": "string"},
							"status":       map[string]interface{}{"type": "string"},
						},
					},
				},
				"date": map[string]interface{}{"type": "string"},
			},
		}
	default:
		return ai.Schema{
			Type: "object",
			Properties: map[string]interface{}{
				"chief_complaint": map[string]interface{}{"type": "string"},
				"diagnosis":       map[string]interface{}{"type": "string"},
				"treatment_plan":  map[string]interface{}{"type": "string"},
				"notes":           map[string]interface{}{"type": "string"},
			},
		}
	}
}

// Extract runs structured extraction on a pending document. The document
// moves pending -> processing -> completed, or -> failed when the model call
// does not produce a usable result. The processing state is persisted before
// the model call so a concurrent extract on the same document is rejected.
func (s *Service) Extract(ctx context.Context, id uuid.UUID) (*MedicalDocument, error) {
	d, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if d.ExtractionStatus == StatusProcessing {
		return nil, fmt.Errorf("extraction already in progress")
	}
	if d.ExtractionStatus == StatusCompleted {
		return nil, fmt.Errorf("document already extracted")
	}

	d.ExtractionStatus = StatusProcessing
	if err := s.repo.Update(ctx, d); err != nil {
		return nil, err
	}

	prompt := fmt.Sprintf(
		"Extract structured data from the %s document at %s. Return fields per the response schema.",
		d.DocumentType, d.FileURL)
	result, err := s.model.Invoke(ctx, prompt, schemaForType(d.DocumentType))
	if err != nil {
		d.ExtractionStatus = StatusFailed
		if uerr := s.repo.Update(ctx, d); uerr != nil {
			return nil, fmt.Errorf("mark failed: %v (extraction error: %w)", uerr, err)
		}
		return d, err
	}

	payload, err := json.Marshal(result)
	if err != nil {
		d.ExtractionStatus = StatusFailed
		_ = s.repo.Update(ctx, d)
		return d, fmt.Errorf("encode extraction output: %w", err)
	}

	now := time.Now().UTC()
	confidence := defaultConfidence
	d.ExtractedData = payload
	d.ExtractionStatus = StatusCompleted
	d.ConfidenceScore = &confidence
	d.ProcessedDate = &now
	if err := s.repo.Update(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}
