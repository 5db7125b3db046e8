package analytics

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type analyticsRepoPG struct{ pool *pgxpool.Pool }

func NewAnalyticsRepoPG(pool *pgxpool.Pool) AnalyticsRepository {
	return &analyticsRepoPG{pool: pool}
}

const analyticsCols = `id, patient_id, prediction_type, risk_score,
	risk_level, contributing_factors, recommendations, prediction_date,
	model_version, confidence_score, created_at, updated_at`

func (r *analyticsRepoPG) scanRow(row pgx.Row) (*PredictiveAnalytic, error) {
	var pa PredictiveAnalytic
	err := row.Scan(&pa.ID, &pa.PatientID, &pa.PredictionType, &pa.RiskScore,
		&pa.RiskLevel, &pa.ContributingFactors, &pa.Recommendations,
		&pa.PredictionDate, &pa.ModelVersion, &pa.ConfidenceScore,
		&pa.CreatedAt, &pa.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return &pa, err
}

func (r *analyticsRepoPG) Create(ctx context.Context, pa *PredictiveAnalytic) error {
	pa.ID = uuid.New()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO predictive_analytics (id, patient_id, prediction_type,
			risk_score, risk_level, contributing_factors, recommendations,
			prediction_date, model_version, confidence_score)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`,
		pa.ID, pa.PatientID, pa.PredictionType, pa.RiskScore, pa.RiskLevel,
		pa.ContributingFactors, pa.Recommendations, pa.PredictionDate,
		pa.ModelVersion, pa.ConfidenceScore)
	return err
}

func (r *analyticsRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*PredictiveAnalytic, error) {
	return r.scanRow(r.pool.QueryRow(ctx, `SELECT `+analyticsCols+` FROM predictive_analytics WHERE id = $1`, id))
}

func (r *analyticsRepoPG) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM predictive_analytics WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *analyticsRepoPG) List(ctx context.Context, patientID, predictionType string, limit, offset int) ([]*PredictiveAnalytic, int, error) {
	where := ""
	var args []interface{}
	if patientID != "" {
		args = append(args, patientID)
		where = fmt.Sprintf(" WHERE patient_id = $%d", len(args))
	}
	if predictionType != "" {
		args = append(args, predictionType)
		if where == "" {
			where = fmt.Sprintf(" WHERE prediction_type = $%d", len(args))
		} else {
			where += fmt.Sprintf(" AND prediction_type = $%d", len(args))
		}
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM predictive_analytics`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, limit, offset)
	query := fmt.Sprintf(`SELECT %s FROM predictive_analytics%s ORDER BY prediction_date DESC LIMIT $%d OFFSET $%d`,
		analyticsCols, where, len(args)-1, len(args))
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var items []*PredictiveAnalytic
	for rows.Next() {
		pa, err := r.scanRow(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, pa)
	}
	return items, total, rows.Err()
}
