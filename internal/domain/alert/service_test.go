package alert

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/Jashwanth-0624/SwastyaConnect/internal/platform/ws"
)

type mockRepo struct {
	alerts map[uuid.UUID]*MedicalAlert
}

func newMockRepo() *mockRepo {
	return &mockRepo{alerts: make(map[uuid.UUID]*MedicalAlert)}
}

func (m *mockRepo) Create(ctx context.Context, a *MedicalAlert) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	a.CreatedAt = time.Now()
	cp := *a
	m.alerts[a.ID] = &cp
	return nil
}

func (m *mockRepo) GetByID(ctx context.Context, id uuid.UUID) (*MedicalAlert, error) {
	a, ok := m.alerts[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (m *mockRepo) Update(ctx context.Context, a *MedicalAlert) error {
	if _, ok := m.alerts[a.ID]; !ok {
		return ErrNotFound
	}
	cp := *a
	m.alerts[a.ID] = &cp
	return nil
}

func (m *mockRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := m.alerts[id]; !ok {
		return ErrNotFound
	}
	delete(m.alerts, id)
	return nil
}

func (m *mockRepo) List(ctx context.Context, filter ListFilter, limit, offset int) ([]*MedicalAlert, int, error) {
	var out []*MedicalAlert
	for _, a := range m.alerts {
		if filter.Status != "" && a.Status != filter.Status {
			continue
		}
		cp := *a
		out = append(out, &cp)
	}
	return out, len(out), nil
}

type capturePublisher struct {
	events []ws.Event
}

func (p *capturePublisher) Publish(ctx context.Context, event ws.Event) error {
	p.events = append(p.events, event)
	return nil
}

func newAlert() *MedicalAlert {
	return &MedicalAlert{
		PatientID: "PAT123",
		AlertType: "abnormal_vitals",
		Severity:  "high",
		Title:     "Elevated heart rate",
		Message:   "HR 142 bpm sustained for 10 minutes",
	}
}

func TestCreateAlert_BroadcastsEvent(t *testing.T) {
	pub := &capturePublisher{}
	svc := NewService(newMockRepo(), pub)

	a := newAlert()
	if err := svc.CreateAlert(context.Background(), a); err != nil {
		t.Fatalf("CreateAlert: %v", err)
	}
	if a.Status != StatusActive {
		t.Errorf("status = %q, want active", a.Status)
	}

	if len(pub.events) != 1 {
		t.Fatalf("expected one broadcast event, got %d", len(pub.events))
	}
	ev := pub.events[0]
	if ev.Type != "alert.created" || ev.Topic != "alerts" || ev.ResourceID != a.ID.String() {
		t.Errorf("unexpected event: %+v", ev)
	}
	var payload MedicalAlert
	if err := json.Unmarshal(ev.Data, &payload); err != nil {
		t.Fatalf("event payload: %v", err)
	}
	if payload.Title != a.Title {
		t.Errorf("payload title = %q", payload.Title)
	}
}

func TestCreateAlert_CriticalAlsoBroadcastsCriticalTopic(t *testing.T) {
	pub := &capturePublisher{}
	svc := NewService(newMockRepo(), pub)

	a := newAlert()
	a.Severity = "critical"
	if err := svc.CreateAlert(context.Background(), a); err != nil {
		t.Fatalf("CreateAlert: %v", err)
	}

	if len(pub.events) != 2 {
		t.Fatalf("expected two events for a critical alert, got %d", len(pub.events))
	}
	if pub.events[1].Topic != "alerts.critical" {
		t.Errorf("second event topic = %q", pub.events[1].Topic)
	}
}

func TestCreateAlert_Validation(t *testing.T) {
	svc := NewService(newMockRepo(), nil)
	ctx := context.Background()

	bad := newAlert()
	bad.AlertType = "something_else"
	if err := svc.CreateAlert(ctx, bad); err == nil {
		t.Error("expected error for invalid alert_type")
	}

	noTitle := newAlert()
	noTitle.Title = ""
	if err := svc.CreateAlert(ctx, noTitle); err == nil {
		t.Error("expected error for missing title")
	}

	defaulted := newAlert()
	defaulted.Severity = ""
	if err := svc.CreateAlert(ctx, defaulted); err != nil {
		t.Fatalf("CreateAlert: %v", err)
	}
	if defaulted.Severity != "medium" {
		t.Errorf("severity should default to medium, got %q", defaulted.Severity)
	}
}

func TestAcknowledge(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo, nil)
	ctx := context.Background()

	a := newAlert()
	if err := svc.CreateAlert(ctx, a); err != nil {
		t.Fatalf("CreateAlert: %v", err)
	}

	got, err := svc.Acknowledge(ctx, a.ID, "dr.rao")
	if err != nil {
		t.Fatalf("Acknowledge: %v", err)
	}
	if got.Status != StatusAcknowledged || got.AcknowledgedBy == nil || *got.AcknowledgedBy != "dr.rao" {
		t.Errorf("unexpected alert after acknowledge: %+v", got)
	}
	if got.AcknowledgedAt == nil {
		t.Error("acknowledged_at not stamped")
	}

	// Acknowledging twice is a conflict.
	if _, err := svc.Acknowledge(ctx, a.ID, "dr.rao"); err == nil {
		t.Error("expected error acknowledging a non-active alert")
	}
}

func TestResolve(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo, nil)
	ctx := context.Background()

	a := newAlert()
	if err := svc.CreateAlert(ctx, a); err != nil {
		t.Fatalf("CreateAlert: %v", err)
	}
	if _, err := svc.Acknowledge(ctx, a.ID, "dr.rao"); err != nil {
		t.Fatalf("Acknowledge: %v", err)
	}

	got, err := svc.Resolve(ctx, a.ID)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got.Status != StatusResolved {
		t.Errorf("status = %q, want resolved", got.Status)
	}

	if _, err := svc.Resolve(ctx, a.ID); err == nil {
		t.Error("expected error resolving twice")
	}

	if _, err := svc.Resolve(ctx, uuid.New()); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
