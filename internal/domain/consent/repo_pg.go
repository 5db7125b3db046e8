package consent

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type consentRepoPG struct{ pool *pgxpool.Pool }

func NewConsentRepoPG(pool *pgxpool.Pool) ConsentRepository {
	return &consentRepoPG{pool: pool}
}

const consentCols = `id, patient_id, requester_name, requester_email,
	data_types, purpose, consent_status, valid_from, valid_until,
	conditions, approved_by, approved_at, created_at, updated_at`

func (r *consentRepoPG) scanRow(row pgx.Row) (*ConsentRecord, error) {
	var cr ConsentRecord
	err := row.Scan(&cr.ID, &cr.PatientID, &cr.RequesterName,
		&cr.RequesterEmail, &cr.DataTypes, &cr.Purpose, &cr.ConsentStatus,
		&cr.ValidFrom, &cr.ValidUntil, &cr.Conditions, &cr.ApprovedBy,
		&cr.ApprovedAt, &cr.CreatedAt, &cr.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return &cr, err
}

func (r *consentRepoPG) Create(ctx context.Context, cr *ConsentRecord) error {
	cr.ID = uuid.New()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO consent_records (id, patient_id, requester_name,
			requester_email, data_types, purpose, consent_status, valid_from,
			valid_until, conditions)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`,
		cr.ID, cr.PatientID, cr.RequesterName, cr.RequesterEmail,
		cr.DataTypes, cr.Purpose, cr.ConsentStatus, cr.ValidFrom,
		cr.ValidUntil, cr.Conditions)
	return err
}

func (r *consentRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*ConsentRecord, error) {
	return r.scanRow(r.pool.QueryRow(ctx, `SELECT `+consentCols+` FROM consent_records WHERE id = $1`, id))
}

func (r *consentRepoPG) Update(ctx context.Context, cr *ConsentRecord) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE consent_records SET consent_status=$2, valid_from=$3,
			valid_until=$4, conditions=$5, approved_by=$6, approved_at=$7,
			updated_at=NOW()
		WHERE id = $1`,
		cr.ID, cr.ConsentStatus, cr.ValidFrom, cr.ValidUntil, cr.Conditions,
		cr.ApprovedBy, cr.ApprovedAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *consentRepoPG) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM consent_records WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *consentRepoPG) List(ctx context.Context, patientID, status string, limit, offset int) ([]*ConsentRecord, int, error) {
	where := ""
	var args []interface{}
	if patientID != "" {
		args = append(args, patientID)
		where = fmt.Sprintf(" WHERE patient_id = $%d", len(args))
	}
	if status != "" {
		args = append(args, status)
		if where == "" {
			where = fmt.Sprintf(" WHERE consent_status = $%d", len(args))
		} else {
			where += fmt.Sprintf(" AND consent_status = $%d", len(args))
		}
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM consent_records`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, limit, offset)
	query := fmt.Sprintf(`SELECT %s FROM consent_records%s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		consentCols, where, len(args)-1, len(args))
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var items []*ConsentRecord
	for rows.Next() {
		cr, err := r.scanRow(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, cr)
	}
	return items, total, rows.Err()
}
