package alert

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type alertRepoPG struct{ pool *pgxpool.Pool }

func NewAlertRepoPG(pool *pgxpool.Pool) AlertRepository {
	return &alertRepoPG{pool: pool}
}

const alertCols = `id, patient_id, alert_type, severity, title, message,
	vital_type, value, normal_range, status, acknowledged_by, acknowledged_at,
	created_at, updated_at`

func (r *alertRepoPG) scanRow(row pgx.Row) (*MedicalAlert, error) {
	var a MedicalAlert
	err := row.Scan(&a.ID, &a.PatientID, &a.AlertType, &a.Severity, &a.Title,
		&a.Message, &a.VitalType, &a.Value, &a.NormalRange, &a.Status,
		&a.AcknowledgedBy, &a.AcknowledgedAt, &a.CreatedAt, &a.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return &a, err
}

func (r *alertRepoPG) Create(ctx context.Context, a *MedicalAlert) error {
	a.ID = uuid.New()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO medical_alerts (id, patient_id, alert_type, severity,
			title, message, vital_type, value, normal_range, status)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`,
		a.ID, a.PatientID, a.AlertType, a.Severity, a.Title, a.Message,
		a.VitalType, a.Value, a.NormalRange, a.Status)
	return err
}

func (r *alertRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*MedicalAlert, error) {
	return r.scanRow(r.pool.QueryRow(ctx, `SELECT `+alertCols+` FROM medical_alerts WHERE id = $1`, id))
}

func (r *alertRepoPG) Update(ctx context.Context, a *MedicalAlert) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE medical_alerts SET alert_type=$2, severity=$3, title=$4,
			message=$5, vital_type=$6, value=$7, normal_range=$8, status=$9,
			acknowledged_by=$10, acknowledged_at=$11, updated_at=NOW()
		WHERE id = $1`,
		a.ID, a.AlertType, a.Severity, a.Title, a.Message, a.VitalType,
		a.Value, a.NormalRange, a.Status, a.AcknowledgedBy, a.AcknowledgedAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *alertRepoPG) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM medical_alerts WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *alertRepoPG) List(ctx context.Context, filter ListFilter, limit, offset int) ([]*MedicalAlert, int, error) {
	where := ""
	var args []interface{}
	add := func(cond, val string) {
		if val == "" {
			return
		}
		args = append(args, val)
		if where == "" {
			where = " WHERE "
		} else {
			where += " AND "
		}
		where += fmt.Sprintf("%s = $%d", cond, len(args))
	}
	add("patient_id", filter.PatientID)
	add("status", filter.Status)
	add("severity", filter.Severity)

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM medical_alerts`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, limit, offset)
	query := fmt.Sprintf(`SELECT %s FROM medical_alerts%s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		alertCols, where, len(args)-1, len(args))
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var items []*MedicalAlert
	for rows.Next() {
		a, err := r.scanRow(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, a)
	}
	return items, total, rows.Err()
}
