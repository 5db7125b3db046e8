package outreach

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type demoRequestRepoPG struct{ pool *pgxpool.Pool }

func NewDemoRequestRepoPG(pool *pgxpool.Pool) DemoRequestRepository {
	return &demoRequestRepoPG{pool: pool}
}

const demoCols = `id, full_name, email, phone, organization, role,
	interested_features, message, status, created_at, updated_at`

func (r *demoRequestRepoPG) scanRow(row pgx.Row) (*DemoRequest, error) {
	var dr DemoRequest
	err := row.Scan(&dr.ID, &dr.FullName, &dr.Email, &dr.Phone, &dr.Organization,
		&dr.Role, &dr.InterestedFeatures, &dr.Message, &dr.Status,
		&dr.CreatedAt, &dr.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return &dr, err
}

func (r *demoRequestRepoPG) Create(ctx context.Context, dr *DemoRequest) error {
	dr.ID = uuid.New()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO demo_requests (id, full_name, email, phone, organization,
			role, interested_features, message, status)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
		dr.ID, dr.FullName, dr.Email, dr.Phone, dr.Organization,
		dr.Role, dr.InterestedFeatures, dr.Message, dr.Status)
	return err
}

func (r *demoRequestRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*DemoRequest, error) {
	return r.scanRow(r.pool.QueryRow(ctx, `SELECT `+demoCols+` FROM demo_requests WHERE id = $1`, id))
}

func (r *demoRequestRepoPG) Update(ctx context.Context, dr *DemoRequest) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE demo_requests SET full_name = $2, email = $3, phone = $4,
			organization = $5, role = $6, interested_features = $7,
			message = $8, status = $9, updated_at = now()
		WHERE id = $1`,
		dr.ID, dr.FullName, dr.Email, dr.Phone, dr.Organization,
		dr.Role, dr.InterestedFeatures, dr.Message, dr.Status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *demoRequestRepoPG) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM demo_requests WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *demoRequestRepoPG) List(ctx context.Context, status string, limit, offset int) ([]*DemoRequest, int, error) {
	where := ""
	var args []interface{}
	if status != "" {
		args = append(args, status)
		where = fmt.Sprintf(" WHERE status = $%d", len(args))
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM demo_requests`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, limit, offset)
	query := fmt.Sprintf(`SELECT %s FROM demo_requests%s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		demoCols, where, len(args)-1, len(args))
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var items []*DemoRequest
	for rows.Next() {
		dr, err := r.scanRow(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, dr)
	}
	return items, total, rows.Err()
}

type featureInterestRepoPG struct{ pool *pgxpool.Pool }

func NewFeatureInterestRepoPG(pool *pgxpool.Pool) FeatureInterestRepository {
	return &featureInterestRepoPG{pool: pool}
}

const interestCols = `id, feature_name, user_email, interest_level, notes, created_at, updated_at`

func (r *featureInterestRepoPG) scanRow(row pgx.Row) (*FeatureInterest, error) {
	var fi FeatureInterest
	err := row.Scan(&fi.ID, &fi.FeatureName, &fi.UserEmail, &fi.InterestLevel,
		&fi.Notes, &fi.CreatedAt, &fi.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return &fi, err
}

func (r *featureInterestRepoPG) Create(ctx context.Context, fi *FeatureInterest) error {
	fi.ID = uuid.New()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO feature_interests (id, feature_name, user_email, interest_level, notes)
		VALUES ($1,$2,$3,$4,$5)`,
		fi.ID, fi.FeatureName, fi.UserEmail, fi.InterestLevel, fi.Notes)
	return err
}

func (r *featureInterestRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*FeatureInterest, error) {
	return r.scanRow(r.pool.QueryRow(ctx, `SELECT `+interestCols+` FROM feature_interests WHERE id = $1`, id))
}

func (r *featureInterestRepoPG) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM feature_interests WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *featureInterestRepoPG) List(ctx context.Context, featureName string, limit, offset int) ([]*FeatureInterest, int, error) {
	where := ""
	var args []interface{}
	if featureName != "" {
		args = append(args, featureName)
		where = fmt.Sprintf(" WHERE feature_name = $%d", len(args))
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM feature_interests`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, limit, offset)
	query := fmt.Sprintf(`SELECT %s FROM feature_interests%s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		interestCols, where, len(args)-1, len(args))
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var items []*FeatureInterest
	for rows.Next() {
		fi, err := r.scanRow(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, fi)
	}
	return items, total, rows.Err()
}
