package alert

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Jashwanth-0624/SwastyaConnect/internal/platform/ws"
)

type Service struct {
	repo AlertRepository
	pub  ws.Publisher
}

func NewService(repo AlertRepository, pub ws.Publisher) *Service {
	return &Service{repo: repo, pub: pub}
}

// CreateAlert validates and stores a new alert, then broadcasts it to
// subscribed dashboard clients. Broadcast failure does not fail the create.
func (s *Service) CreateAlert(ctx context.Context, a *MedicalAlert) error {
	if a.PatientID == "" {
		return fmt.Errorf("patient_id is required")
	}
	if a.Title == "" || a.Message == "" {
		return fmt.Errorf("title and message are required")
	}
	if !validAlertTypes[a.AlertType] {
		return fmt.Errorf("invalid alert_type %q", a.AlertType)
	}
	if a.Severity == "" {
		a.Severity = "medium"
	}
	if !validSeverities[a.Severity] {
		return fmt.Errorf("invalid severity %q", a.Severity)
	}
	a.Status = StatusActive

	if err := s.repo.Create(ctx, a); err != nil {
		return err
	}

	if s.pub != nil {
		payload, _ := json.Marshal(a)
		_ = s.pub.Publish(ctx, ws.Event{
			Type:       "alert.created",
			Topic:      "alerts",
			ResourceID: a.ID.String(),
			Timestamp:  time.Now().UTC(),
			Data:       payload,
		})
		if a.Severity == "critical" {
			_ = s.pub.Publish(ctx, ws.Event{
				Type:       "alert.created",
				Topic:      "alerts.critical",
				ResourceID: a.ID.String(),
				Timestamp:  time.Now().UTC(),
				Data:       payload,
			})
		}
	}
	return nil
}

func (s *Service) GetAlert(ctx context.Context, id uuid.UUID) (*MedicalAlert, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListAlerts(ctx context.Context, filter ListFilter, limit, offset int) ([]*MedicalAlert, int, error) {
	return s.repo.List(ctx, filter, limit, offset)
}

func (s *Service) DeleteAlert(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

// Acknowledge moves an active alert to acknowledged, recording who and when.
func (s *Service) Acknowledge(ctx context.Context, id uuid.UUID, by string) (*MedicalAlert, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if a.Status != StatusActive {
		return nil, fmt.Errorf("alert is %s, only active alerts can be acknowledged", a.Status)
	}

	now := time.Now().UTC()
	a.Status = StatusAcknowledged
	a.AcknowledgedBy = &by
	a.AcknowledgedAt = &now
	if err := s.repo.Update(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// Resolve closes an alert. Both active and acknowledged alerts can be
// resolved.
func (s *Service) Resolve(ctx context.Context, id uuid.UUID) (*MedicalAlert, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if a.Status == StatusResolved {
		return nil, fmt.Errorf("alert is already resolved")
	}

	a.Status = StatusResolved
	if err := s.repo.Update(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}
