package telemed

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type sessionRepoPG struct{ pool *pgxpool.Pool }

func NewSessionRepoPG(pool *pgxpool.Pool) SessionRepository {
	return &sessionRepoPG{pool: pool}
}

const sessionCols = `id, patient_id, doctor_name, doctor_email,
	session_status, scheduled_time, duration_minutes, chief_complaint,
	diagnosis, prescriptions, notes, follow_up_required, follow_up_date,
	meeting_link, created_at, updated_at`

func (r *sessionRepoPG) scanRow(row pgx.Row) (*TelemedSession, error) {
	var ts TelemedSession
	err := row.Scan(&ts.ID, &ts.PatientID, &ts.DoctorName, &ts.DoctorEmail,
		&ts.SessionStatus, &ts.ScheduledTime, &ts.DurationMinutes,
		&ts.ChiefComplaint, &ts.Diagnosis, &ts.Prescriptions, &ts.Notes,
		&ts.FollowUpRequired, &ts.FollowUpDate, &ts.MeetingLink,
		&ts.CreatedAt, &ts.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return &ts, err
}

func (r *sessionRepoPG) Create(ctx context.Context, ts *TelemedSession) error {
	ts.ID = uuid.New()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO telemed_sessions (id, patient_id, doctor_name,
			doctor_email, session_status, scheduled_time, duration_minutes,
			chief_complaint, diagnosis, prescriptions, notes,
			follow_up_required, follow_up_date, meeting_link)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)`,
		ts.ID, ts.PatientID, ts.DoctorName, ts.DoctorEmail, ts.SessionStatus,
		ts.ScheduledTime, ts.DurationMinutes, ts.ChiefComplaint, ts.Diagnosis,
		ts.Prescriptions, ts.Notes, ts.FollowUpRequired, ts.FollowUpDate,
		ts.MeetingLink)
	return err
}

func (r *sessionRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*TelemedSession, error) {
	return r.scanRow(r.pool.QueryRow(ctx, `SELECT `+sessionCols+` FROM telemed_sessions WHERE id = $1`, id))
}

func (r *sessionRepoPG) Update(ctx context.Context, ts *TelemedSession) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE telemed_sessions SET doctor_name=$2, doctor_email=$3,
			session_status=$4, scheduled_time=$5, duration_minutes=$6,
			chief_complaint=$7, diagnosis=$8, prescriptions=$9, notes=$10,
			follow_up_required=$11, follow_up_date=$12, meeting_link=$13,
			updated_at=NOW()
		WHERE id = $1`,
		ts.ID, ts.DoctorName, ts.DoctorEmail, ts.SessionStatus,
		ts.ScheduledTime, ts.DurationMinutes, ts.ChiefComplaint,
		ts.Diagnosis, ts.Prescriptions, ts.Notes, ts.FollowUpRequired,
		ts.FollowUpDate, ts.MeetingLink)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *sessionRepoPG) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM telemed_sessions WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *sessionRepoPG) List(ctx context.Context, patientID, status string, limit, offset int) ([]*TelemedSession, int, error) {
	where := ""
	var args []interface{}
	if patientID != "" {
		args = append(args, patientID)
		where = fmt.Sprintf(" WHERE patient_id = $%d", len(args))
	}
	if status != "" {
		args = append(args, status)
		if where == "" {
			where = fmt.Sprintf(" WHERE session_status = $%d", len(args))
		} else {
			where += fmt.Sprintf(" AND session_status = $%d", len(args))
		}
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM telemed_sessions`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, limit, offset)
	query := fmt.Sprintf(`SELECT %s FROM telemed_sessions%s ORDER BY scheduled_time DESC LIMIT $%d OFFSET $%d`,
		sessionCols, where, len(args)-1, len(args))
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var items []*TelemedSession
	for rows.Next() {
		ts, err := r.scanRow(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, ts)
	}
	return items, total, rows.Err()
}
