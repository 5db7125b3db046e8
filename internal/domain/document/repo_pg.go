package document

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type documentRepoPG struct{ pool *pgxpool.Pool }

func NewDocumentRepoPG(pool *pgxpool.Pool) DocumentRepository {
	return &documentRepoPG{pool: pool}
}

const documentCols = `id, patient_id, document_type, file_url,
	extracted_data, extraction_status, raw_text, confidence_score,
	processed_date, created_at, updated_at`

func (r *documentRepoPG) scanRow(row pgx.Row) (*MedicalDocument, error) {
	var d MedicalDocument
	err := row.Scan(&d.ID, &d.PatientID, &d.DocumentType, &d.FileURL,
		&d.ExtractedData, &d.ExtractionStatus, &d.RawText,
		&d.ConfidenceScore, &d.ProcessedDate, &d.CreatedAt, &d.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return &d, err
}

func (r *documentRepoPG) Create(ctx context.Context, d *MedicalDocument) error {
	d.ID = uuid.New()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO medical_documents (id, patient_id, document_type,
			file_url, extracted_data, extraction_status, raw_text,
			confidence_score, processed_date)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
		d.ID, d.PatientID, d.DocumentType, d.FileURL, d.ExtractedData,
		d.ExtractionStatus, d.RawText, d.ConfidenceScore, d.ProcessedDate)
	return err
}

func (r *documentRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*MedicalDocument, error) {
	return r.scanRow(r.pool.QueryRow(ctx, `SELECT `+documentCols+` FROM medical_documents WHERE id = $1`, id))
}

func (r *documentRepoPG) Update(ctx context.Context, d *MedicalDocument) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE medical_documents SET extracted_data=$2, extraction_status=$3,
			raw_text=$4, confidence_score=$5, processed_date=$6,
			updated_at=NOW()
		WHERE id = $1`,
		d.ID, d.ExtractedData, d.ExtractionStatus, d.RawText,
		d.ConfidenceScore, d.ProcessedDate)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *documentRepoPG) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM medical_documents WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *documentRepoPG) List(ctx context.Context, patientID string, limit, offset int) ([]*MedicalDocument, int, error) {
	where := ""
	var args []interface{}
	if patientID != "" {
		args = append(args, patientID)
		where = " WHERE patient_id = $1"
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM medical_documents`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, limit, offset)
	query := fmt.Sprintf(`SELECT %s FROM medical_documents%s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		documentCols, where, len(args)-1, len(args))
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var items []*MedicalDocument
	for rows.Next() {
		d, err := r.scanRow(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, d)
	}
	return items, total, rows.Err()
}
