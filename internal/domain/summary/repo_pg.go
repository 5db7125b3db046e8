package summary

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type summaryRepoPG struct{ pool *pgxpool.Pool }

func NewSummaryRepoPG(pool *pgxpool.Pool) SummaryRepository {
	return &summaryRepoPG{pool: pool}
}

const summaryCols = `id, patient_id, summary_text, diagnoses,
	lab_results_summary, medications_summary, risk_score, risk_factors,
	generated_date, last_visit_date, created_at, updated_at`

func (r *summaryRepoPG) scanRow(row pgx.Row) (*ClinicalSummary, error) {
	var s ClinicalSummary
	err := row.Scan(&s.ID, &s.PatientID, &s.SummaryText, &s.Diagnoses,
		&s.LabResultsSummary, &s.MedicationsSummary, &s.RiskScore,
		&s.RiskFactors, &s.GeneratedDate, &s.LastVisitDate,
		&s.CreatedAt, &s.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return &s, err
}

func (r *summaryRepoPG) Create(ctx context.Context, s *ClinicalSummary) error {
	s.ID = uuid.New()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO clinical_summaries (id, patient_id, summary_text,
			diagnoses, lab_results_summary, medications_summary, risk_score,
			risk_factors, generated_date, last_visit_date)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`,
		s.ID, s.PatientID, s.SummaryText, s.Diagnoses, s.LabResultsSummary,
		s.MedicationsSummary, s.RiskScore, s.RiskFactors, s.GeneratedDate,
		s.LastVisitDate)
	return err
}

func (r *summaryRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*ClinicalSummary, error) {
	return r.scanRow(r.pool.QueryRow(ctx, `SELECT `+summaryCols+` FROM clinical_summaries WHERE id = $1`, id))
}

func (r *summaryRepoPG) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM clinical_summaries WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *summaryRepoPG) List(ctx context.Context, patientID string, limit, offset int) ([]*ClinicalSummary, int, error) {
	where := ""
	args := []interface{}{}
	if patientID != "" {
		where = ` WHERE patient_id = $1`
		args = append(args, patientID)
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM clinical_summaries`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, limit, offset)
	query := fmt.Sprintf(`SELECT %s FROM clinical_summaries%s ORDER BY generated_date DESC LIMIT $%d OFFSET $%d`,
		summaryCols, where, len(args)-1, len(args))
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var items []*ClinicalSummary
	for rows.Next() {
		s, err := r.scanRow(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, s)
	}
	return items, total, rows.Err()
}
