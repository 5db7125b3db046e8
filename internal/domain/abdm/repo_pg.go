package abdm

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type abdmRepoPG struct{ pool *pgxpool.Pool }

func NewABDMRepoPG(pool *pgxpool.Pool) ABDMRepository {
	return &abdmRepoPG{pool: pool}
}

const abdmCols = `id, patient_id, abdm_health_id, phr_address, abha_number,
	link_status, consent_requests, linked_facilities, last_sync,
	verification_status, created_at, updated_at`

func (r *abdmRepoPG) scanRow(row pgx.Row) (*ABDMRecord, error) {
	var rec ABDMRecord
	err := row.Scan(&rec.ID, &rec.PatientID, &rec.ABDMHealthID,
		&rec.PHRAddress, &rec.ABHANumber, &rec.LinkStatus,
		&rec.ConsentRequests, &rec.LinkedFacilities, &rec.LastSync,
		&rec.VerificationStatus, &rec.CreatedAt, &rec.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return &rec, err
}

func (r *abdmRepoPG) Create(ctx context.Context, rec *ABDMRecord) error {
	rec.ID = uuid.New()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO abdm_records (id, patient_id, abdm_health_id,
			phr_address, abha_number, link_status, consent_requests,
			linked_facilities, last_sync, verification_status)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`,
		rec.ID, rec.PatientID, rec.ABDMHealthID, rec.PHRAddress,
		rec.ABHANumber, rec.LinkStatus, rec.ConsentRequests,
		rec.LinkedFacilities, rec.LastSync, rec.VerificationStatus)
	return err
}

func (r *abdmRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*ABDMRecord, error) {
	return r.scanRow(r.pool.QueryRow(ctx, `SELECT `+abdmCols+` FROM abdm_records WHERE id = $1`, id))
}

func (r *abdmRepoPG) Update(ctx context.Context, rec *ABDMRecord) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE abdm_records SET abdm_health_id=$2, phr_address=$3,
			abha_number=$4, link_status=$5, consent_requests=$6,
			linked_facilities=$7, last_sync=$8, verification_status=$9,
			updated_at=NOW()
		WHERE id = $1`,
		rec.ID, rec.ABDMHealthID, rec.PHRAddress, rec.ABHANumber,
		rec.LinkStatus, rec.ConsentRequests, rec.LinkedFacilities,
		rec.LastSync, rec.VerificationStatus)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *abdmRepoPG) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM abdm_records WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *abdmRepoPG) List(ctx context.Context, patientID string, limit, offset int) ([]*ABDMRecord, int, error) {
	where := ""
	var args []interface{}
	if patientID != "" {
		args = append(args, patientID)
		where = " WHERE patient_id = $1"
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM abdm_records`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, limit, offset)
	query := fmt.Sprintf(`SELECT %s FROM abdm_records%s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		abdmCols, where, len(args)-1, len(args))
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var items []*ABDMRecord
	for rows.Next() {
		rec, err := r.scanRow(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, rec)
	}
	return items, total, rows.Err()
}
