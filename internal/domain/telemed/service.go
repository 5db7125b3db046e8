package telemed

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type Service struct {
	repo SessionRepository
}

func NewService(repo SessionRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) ScheduleSession(ctx context.Context, ts *TelemedSession) error {
	if ts.PatientID == "" {
		return fmt.Errorf("patient_id is required")
	}
	if ts.DoctorName == "" {
		return fmt.Errorf("doctor_name is required")
	}
	if ts.ScheduledTime.IsZero() {
		return fmt.Errorf("scheduled_time is required")
	}
	ts.SessionStatus = StatusScheduled
	return s.repo.Create(ctx, ts)
}

func (s *Service) GetSession(ctx context.Context, id uuid.UUID) (*TelemedSession, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListSessions(ctx context.Context, patientID, status string, limit, offset int) ([]*TelemedSession, int, error) {
	return s.repo.List(ctx, patientID, status, limit, offset)
}

func (s *Service) DeleteSession(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

// Start moves a scheduled session to in_progress.
func (s *Service) Start(ctx context.Context, id uuid.UUID) (*TelemedSession, error) {
	return s.transition(ctx, id, StatusScheduled, StatusInProgress, nil)
}

// CompleteInput carries the consultation outcome recorded at completion.
type CompleteInput struct {
	DurationMinutes  *int           `json:"duration_minutes,omitempty"`
	Diagnosis        *string        `json:"diagnosis,omitempty"`
	Prescriptions    []Prescription `json:"prescriptions,omitempty"`
	Notes            *string        `json:"notes,omitempty"`
	FollowUpRequired bool           `json:"follow_up_required"`
	FollowUpDate     *time.Time     `json:"follow_up_date,omitempty"`
}

// Complete closes an in-progress session and records the outcome.
func (s *Service) Complete(ctx context.Context, id uuid.UUID, in CompleteInput) (*TelemedSession, error) {
	return s.transition(ctx, id, StatusInProgress, StatusCompleted, func(ts *TelemedSession) {
		if in.DurationMinutes != nil {
			ts.DurationMinutes = in.DurationMinutes
		}
		if in.Diagnosis != nil {
			ts.Diagnosis = in.Diagnosis
		}
		if in.Prescriptions != nil {
			ts.Prescriptions = in.Prescriptions
		}
		if in.Notes != nil {
			ts.Notes = in.Notes
		}
		ts.FollowUpRequired = in.FollowUpRequired
		ts.FollowUpDate = in.FollowUpDate
	})
}

// Cancel cancels a session that has not completed. Both scheduled and
// in-progress sessions can be cancelled.
func (s *Service) Cancel(ctx context.Context, id uuid.UUID) (*TelemedSession, error) {
	ts, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ts.SessionStatus == StatusCompleted || ts.SessionStatus == StatusCancelled {
		return nil, fmt.Errorf("session is %s and cannot be cancelled", ts.SessionStatus)
	}

	ts.SessionStatus = StatusCancelled
	if err := s.repo.Update(ctx, ts); err != nil {
		return nil, err
	}
	return ts, nil
}

func (s *Service) transition(ctx context.Context, id uuid.UUID, from, to string, apply func(*TelemedSession)) (*TelemedSession, error) {
	ts, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ts.SessionStatus != from {
		return nil, fmt.Errorf("session is %s, expected %s", ts.SessionStatus, from)
	}

	ts.SessionStatus = to
	if apply != nil {
		apply(ts)
	}
	if err := s.repo.Update(ctx, ts); err != nil {
		return nil, err
	}
	return ts, nil
}
