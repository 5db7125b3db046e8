package patient

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type patientRepoPG struct{ pool *pgxpool.Pool }

func NewPatientRepoPG(pool *pgxpool.Pool) PatientRepository {
	return &patientRepoPG{pool: pool}
}

const patCols = `id, patient_id, full_name, date_of_birth, gender, blood_group,
	phone, email, address, emergency_contact, allergies, chronic_conditions,
	current_medications, past_surgeries, abdm_id, unified_patient_id,
	created_at, updated_at`

func (r *patientRepoPG) scanRow(row pgx.Row) (*Patient, error) {
	var p Patient
	err := row.Scan(&p.ID, &p.PatientID, &p.FullName, &p.DateOfBirth, &p.Gender,
		&p.BloodGroup, &p.Phone, &p.Email, &p.Address, &p.EmergencyContact,
		&p.Allergies, &p.ChronicConditions, &p.CurrentMedications,
		&p.PastSurgeries, &p.ABDMID, &p.UnifiedPatientID,
		&p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return &p, err
}

func (r *patientRepoPG) Create(ctx context.Context, p *Patient) error {
	p.ID = uuid.New()
	if p.PatientID == "" {
		p.PatientID = NewPatientID()
	}
	_, err := r.pool.Exec(ctx, `
		INSERT INTO patients (id, patient_id, full_name, date_of_birth, gender,
			blood_group, phone, email, address, emergency_contact, allergies,
			chronic_conditions, current_medications, past_surgeries, abdm_id,
			unified_patient_id)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16)`,
		p.ID, p.PatientID, p.FullName, p.DateOfBirth, p.Gender, p.BloodGroup,
		p.Phone, p.Email, p.Address, p.EmergencyContact, p.Allergies,
		p.ChronicConditions, p.CurrentMedications, p.PastSurgeries, p.ABDMID,
		p.UnifiedPatientID)
	return err
}

func (r *patientRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Patient, error) {
	return r.scanRow(r.pool.QueryRow(ctx, `SELECT `+patCols+` FROM patients WHERE id = $1`, id))
}

func (r *patientRepoPG) GetByPatientID(ctx context.Context, patientID string) (*Patient, error) {
	return r.scanRow(r.pool.QueryRow(ctx, `SELECT `+patCols+` FROM patients WHERE patient_id = $1`, patientID))
}

func (r *patientRepoPG) Update(ctx context.Context, p *Patient) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE patients SET full_name=$2, date_of_birth=$3, gender=$4,
			blood_group=$5, phone=$6, email=$7, address=$8,
			emergency_contact=$9, allergies=$10, chronic_conditions=$11,
			current_medications=$12, past_surgeries=$13, abdm_id=$14,
			unified_patient_id=$15, updated_at=NOW()
		WHERE id = $1`,
		p.ID, p.FullName, p.DateOfBirth, p.Gender, p.BloodGroup, p.Phone,
		p.Email, p.Address, p.EmergencyContact, p.Allergies,
		p.ChronicConditions, p.CurrentMedications, p.PastSurgeries, p.ABDMID,
		p.UnifiedPatientID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *patientRepoPG) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM patients WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *patientRepoPG) List(ctx context.Context, limit, offset int) ([]*Patient, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM patients`).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.pool.Query(ctx, `SELECT `+patCols+` FROM patients ORDER BY created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Patient
	for rows.Next() {
		p, err := r.scanRow(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, p)
	}
	return items, total, rows.Err()
}

func (r *patientRepoPG) ListAll(ctx context.Context) ([]*Patient, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+patCols+` FROM patients ORDER BY created_at ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*Patient
	for rows.Next() {
		p, err := r.scanRow(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, p)
	}
	return items, rows.Err()
}
