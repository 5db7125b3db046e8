package emergency

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type emergencyRepoPG struct{ pool *pgxpool.Pool }

func NewEmergencyRepoPG(pool *pgxpool.Pool) EmergencyRepository {
	return &emergencyRepoPG{pool: pool}
}

const emergencyCols = `id, patient_id, qr_code_url, qr_code_data,
	blood_group, allergies, current_medications, chronic_conditions,
	past_surgeries, emergency_contact, generated_at, access_count,
	last_accessed, created_at, updated_at`

func (r *emergencyRepoPG) scanRow(row pgx.Row) (*EmergencyHealthData, error) {
	var e EmergencyHealthData
	err := row.Scan(&e.ID, &e.PatientID, &e.QRCodeURL, &e.QRCodeData,
		&e.BloodGroup, &e.Allergies, &e.CurrentMedications,
		&e.ChronicConditions, &e.PastSurgeries, &e.EmergencyContact,
		&e.GeneratedAt, &e.AccessCount, &e.LastAccessed,
		&e.CreatedAt, &e.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return &e, err
}

func (r *emergencyRepoPG) Create(ctx context.Context, e *EmergencyHealthData) error {
	e.ID = uuid.New()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO emergency_health_data (id, patient_id, qr_code_url,
			qr_code_data, blood_group, allergies, current_medications,
			chronic_conditions, past_surgeries, emergency_contact,
			generated_at, access_count)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)`,
		e.ID, e.PatientID, e.QRCodeURL, e.QRCodeData, e.BloodGroup,
		e.Allergies, e.CurrentMedications, e.ChronicConditions,
		e.PastSurgeries, e.EmergencyContact, e.GeneratedAt, e.AccessCount)
	return err
}

func (r *emergencyRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*EmergencyHealthData, error) {
	return r.scanRow(r.pool.QueryRow(ctx, `SELECT `+emergencyCols+` FROM emergency_health_data WHERE id = $1`, id))
}

func (r *emergencyRepoPG) Update(ctx context.Context, e *EmergencyHealthData) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE emergency_health_data SET qr_code_url=$2, access_count=$3,
			last_accessed=$4, updated_at=NOW()
		WHERE id = $1`,
		e.ID, e.QRCodeURL, e.AccessCount, e.LastAccessed)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *emergencyRepoPG) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM emergency_health_data WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *emergencyRepoPG) List(ctx context.Context, patientID string, limit, offset int) ([]*EmergencyHealthData, int, error) {
	where := ""
	var args []interface{}
	if patientID != "" {
		args = append(args, patientID)
		where = " WHERE patient_id = $1"
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM emergency_health_data`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, limit, offset)
	query := fmt.Sprintf(`SELECT %s FROM emergency_health_data%s ORDER BY generated_at DESC LIMIT $%d OFFSET $%d`,
		emergencyCols, where, len(args)-1, len(args))
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var items []*EmergencyHealthData
	for rows.Next() {
		e, err := r.scanRow(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, e)
	}
	return items, total, rows.Err()
}
