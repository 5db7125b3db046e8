package patient

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
)

type mockRepo struct {
	patients  map[uuid.UUID]*Patient
	order     []uuid.UUID
	failOn    map[uuid.UUID]error
	updateErr error
}

func newMockRepo() *mockRepo {
	return &mockRepo{patients: make(map[uuid.UUID]*Patient), failOn: make(map[uuid.UUID]error)}
}

func (m *mockRepo) add(p *Patient) *Patient {
	m.patients[p.ID] = p
	m.order = append(m.order, p.ID)
	return p
}

func (m *mockRepo) Create(ctx context.Context, p *Patient) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	p.CreatedAt = time.Now()
	p.UpdatedAt = p.CreatedAt
	m.add(p)
	return nil
}

func (m *mockRepo) GetByID(ctx context.Context, id uuid.UUID) (*Patient, error) {
	p, ok := m.patients[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (m *mockRepo) GetByPatientID(ctx context.Context, patientID string) (*Patient, error) {
	for _, p := range m.patients {
		if p.PatientID == patientID {
			cp := *p
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (m *mockRepo) Update(ctx context.Context, p *Patient) error {
	if err, ok := m.failOn[p.ID]; ok {
		return err
	}
	if m.updateErr != nil {
		return m.updateErr
	}
	if _, ok := m.patients[p.ID]; !ok {
		return ErrNotFound
	}
	cp := *p
	cp.UpdatedAt = time.Now()
	m.patients[p.ID] = &cp
	return nil
}

func (m *mockRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := m.patients[id]; !ok {
		return ErrNotFound
	}
	delete(m.patients, id)
	return nil
}

func (m *mockRepo) List(ctx context.Context, limit, offset int) ([]*Patient, int, error) {
	all, _ := m.ListAll(ctx)
	total := len(all)
	if offset > total {
		offset = total
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return all[offset:end], total, nil
}

func (m *mockRepo) ListAll(ctx context.Context) ([]*Patient, error) {
	out := make([]*Patient, 0, len(m.order))
	for _, id := range m.order {
		if p, ok := m.patients[id]; ok {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func TestServiceCreatePatient_Validation(t *testing.T) {
	svc := NewService(newMockRepo())
	ctx := context.Background()

	if err := svc.CreatePatient(ctx, &Patient{DateOfBirth: date("1990-01-01")}); err == nil {
		t.Error("expected error for missing full_name")
	}
	if err := svc.CreatePatient(ctx, &Patient{FullName: "Jane Doe"}); err == nil {
		t.Error("expected error for missing date_of_birth")
	}

	bad := testPatient("Jane Doe", "1990-01-01", "")
	bad.Gender = strPtr("unknown")
	if err := svc.CreatePatient(ctx, bad); err == nil {
		t.Error("expected error for invalid gender")
	}

	good := testPatient("Jane Doe", "1990-01-01", "")
	good.Gender = strPtr("female")
	good.BloodGroup = strPtr("AB-")
	if err := svc.CreatePatient(ctx, good); err != nil {
		t.Errorf("valid patient rejected: %v", err)
	}
}

func TestServiceDetectDuplicates(t *testing.T) {
	repo := newMockRepo()
	repo.add(testPatient("Jane Doe", "1990-01-01", "111"))
	repo.add(testPatient("Jane Doe", "1990-01-01", "222"))
	repo.add(testPatient("John Smith", "2000-05-05", "333"))

	svc := NewService(repo)
	groups, err := svc.DetectDuplicates(context.Background())
	if err != nil {
		t.Fatalf("DetectDuplicates: %v", err)
	}
	if len(groups) != 1 || len(groups[0].Records) != 2 {
		t.Fatalf("expected one group of two, got %+v", groups)
	}
}

func TestServiceMergeRecords(t *testing.T) {
	repo := newMockRepo()
	a := repo.add(testPatient("Jane Doe", "1990-01-01", ""))
	b := repo.add(testPatient("Jane Doe", "1990-01-01", "555"))
	b.Allergies = []string{"latex"}

	svc := NewService(repo)
	svc.SetUnifiedIDGenerator(func() string { return "UPI-test" })

	out, err := svc.MergeRecords(context.Background(), []uuid.UUID{a.ID, b.ID})
	if err != nil {
		t.Fatalf("MergeRecords: %v", err)
	}
	if out.UnifiedID != "UPI-test" || out.Updated != 2 {
		t.Errorf("outcome = %+v, want UPI-test with 2 updates", out)
	}

	for _, id := range []uuid.UUID{a.ID, b.ID} {
		got, err := repo.GetByID(context.Background(), id)
		if err != nil {
			t.Fatalf("reload %s: %v", id, err)
		}
		if got.UnifiedPatientID == nil || *got.UnifiedPatientID != "UPI-test" {
			t.Errorf("record %s missing unified id", id)
		}
		if got.Phone == nil || *got.Phone != "555" {
			t.Errorf("record %s phone = %v, want merged value", id, got.Phone)
		}
		if len(got.Allergies) != 1 || got.Allergies[0] != "latex" {
			t.Errorf("record %s allergies = %v", id, got.Allergies)
		}
	}
}

func TestServiceMergeRecords_TooFew(t *testing.T) {
	svc := NewService(newMockRepo())
	if _, err := svc.MergeRecords(context.Background(), []uuid.UUID{uuid.New()}); !errors.Is(err, ErrMergeTooFew) {
		t.Errorf("expected ErrMergeTooFew, got %v", err)
	}
}

func TestServiceMergeRecords_UnknownRecord(t *testing.T) {
	repo := newMockRepo()
	a := repo.add(testPatient("Jane Doe", "1990-01-01", "111"))

	svc := NewService(repo)
	_, err := svc.MergeRecords(context.Background(), []uuid.UUID{a.ID, uuid.New()})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected wrapped ErrNotFound, got %v", err)
	}

	// No record may be modified when the load phase fails.
	got, _ := repo.GetByID(context.Background(), a.ID)
	if got.UnifiedPatientID != nil {
		t.Error("records must stay untouched when a selected id does not exist")
	}
}

func TestServiceMergeRecords_PartialFailure(t *testing.T) {
	repo := newMockRepo()
	a := repo.add(testPatient("Jane Doe", "1990-01-01", "111"))
	b := repo.add(testPatient("Jane Doe", "1990-01-01", "222"))
	c := repo.add(testPatient("Jane Doe", "1990-01-01", "333"))
	repo.failOn[b.ID] = fmt.Errorf("connection reset")

	svc := NewService(repo)
	out, err := svc.MergeRecords(context.Background(), []uuid.UUID{a.ID, b.ID, c.ID})

	var pme *PartialMergeError
	if !errors.As(err, &pme) {
		t.Fatalf("expected PartialMergeError, got %v", err)
	}
	if pme.Updated != 2 || len(pme.Failed) != 1 || pme.Failed[0] != b.ID {
		t.Errorf("partial error = %+v", pme)
	}
	if out == nil || out.Updated != 2 {
		t.Errorf("outcome should still report the applied updates, got %+v", out)
	}

	// The failed record keeps its pre-merge state.
	got, _ := repo.GetByID(context.Background(), b.ID)
	if got.UnifiedPatientID != nil {
		t.Error("failed record must keep its pre-merge state")
	}
	applied, _ := repo.GetByID(context.Background(), a.ID)
	if applied.UnifiedPatientID == nil {
		t.Error("successful records must carry the unified id")
	}
}
