package interaction

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type interactionRepoPG struct{ pool *pgxpool.Pool }

func NewInteractionRepoPG(pool *pgxpool.Pool) InteractionRepository {
	return &interactionRepoPG{pool: pool}
}

const interactionCols = `id, patient_id, drug_name, interaction_type,
	severity, interacting_with, description, clinical_effects,
	recommendations, status, reviewed_by, created_at, updated_at`

func (r *interactionRepoPG) scanRow(row pgx.Row) (*DrugInteraction, error) {
	var di DrugInteraction
	err := row.Scan(&di.ID, &di.PatientID, &di.DrugName, &di.InteractionType,
		&di.Severity, &di.InteractingWith, &di.Description,
		&di.ClinicalEffects, &di.Recommendations, &di.Status, &di.ReviewedBy,
		&di.CreatedAt, &di.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return &di, err
}

func (r *interactionRepoPG) Create(ctx context.Context, di *DrugInteraction) error {
	di.ID = uuid.New()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO drug_interactions (id, patient_id, drug_name,
			interaction_type, severity, interacting_with, description,
			clinical_effects, recommendations, status)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`,
		di.ID, di.PatientID, di.DrugName, di.InteractionType, di.Severity,
		di.InteractingWith, di.Description, di.ClinicalEffects,
		di.Recommendations, di.Status)
	return err
}

func (r *interactionRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*DrugInteraction, error) {
	return r.scanRow(r.pool.QueryRow(ctx, `SELECT `+interactionCols+` FROM drug_interactions WHERE id = $1`, id))
}

func (r *interactionRepoPG) Update(ctx context.Context, di *DrugInteraction) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE drug_interactions SET severity=$2, interacting_with=$3,
			description=$4, clinical_effects=$5, recommendations=$6,
			status=$7, reviewed_by=$8, updated_at=NOW()
		WHERE id = $1`,
		di.ID, di.Severity, di.InteractingWith, di.Description,
		di.ClinicalEffects, di.Recommendations, di.Status, di.ReviewedBy)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *interactionRepoPG) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM drug_interactions WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *interactionRepoPG) List(ctx context.Context, patientID, status string, limit, offset int) ([]*DrugInteraction, int, error) {
	where := ""
	var args []interface{}
	if patientID != "" {
		args = append(args, patientID)
		where = fmt.Sprintf(" WHERE patient_id = $%d", len(args))
	}
	if status != "" {
		args = append(args, status)
		if where == "" {
			where = fmt.Sprintf(" WHERE status = $%d", len(args))
		} else {
			where += fmt.Sprintf(" AND status = $%d", len(args))
		}
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM drug_interactions`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, limit, offset)
	query := fmt.Sprintf(`SELECT %s FROM drug_interactions%s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		interactionCols, where, len(args)-1, len(args))
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var items []*DrugInteraction
	for rows.Next() {
		di, err := r.scanRow(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, di)
	}
	return items, total, rows.Err()
}
