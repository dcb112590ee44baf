package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"pet-care-insights/internal/domain/reminders"
)

type RemindersRepo struct {
	db *sql.DB
}

func NewRemindersRepo(db *sql.DB) *RemindersRepo {
	return &RemindersRepo{db: db}
}

const reminderColumns = `id, pet_id, title, date, type, status, notes, created_at, updated_at`

func (r *RemindersRepo) Create(ctx context.Context, rem reminders.Reminder) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO reminders (`+reminderColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
	`,
		rem.ID,
		rem.PetID,
		rem.Title,
		rem.Date,
		string(rem.Type),
		string(rem.Status),
		rem.Notes,
		rem.CreatedAt,
		rem.UpdatedAt,
	)
	return err
}

func (r *RemindersRepo) GetByID(ctx context.Context, id string) (reminders.Reminder, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return reminders.Reminder{}, reminders.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `SELECT `+reminderColumns+` FROM reminders WHERE id = $1`, id)
	rem, err := scanReminder(row)
	if errors.Is(err, sql.ErrNoRows) {
		return reminders.Reminder{}, reminders.ErrNotFound
	}
	return rem, err
}

// ListByPet: status vacío = todos.
func (r *RemindersRepo) ListByPet(ctx context.Context, petID string, status reminders.Status) ([]reminders.Reminder, error) {
	petID = strings.TrimSpace(petID)
	if petID == "" {
		return nil, nil
	}

	query := `SELECT ` + reminderColumns + ` FROM reminders WHERE pet_id = $1`
	args := []any{petID}
	if status != "" {
		query += ` AND status = $2`
		args = append(args, string(status))
	}
	query += ` ORDER BY date ASC, id ASC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]reminders.Reminder, 0)
	for rows.Next() {
		rem, err := scanReminder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rem)
	}
	return out, rows.Err()
}

func (r *RemindersRepo) SetStatus(ctx context.Context, id string, status reminders.Status, at time.Time) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE reminders SET status = $2, updated_at = $3 WHERE id = $1
	`, id, string(status), at)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return reminders.ErrNotFound
	}
	return nil
}

func scanReminder(s scanner) (reminders.Reminder, error) {
	var rem reminders.Reminder
	var typ, status string
	if err := s.Scan(
		&rem.ID,
		&rem.PetID,
		&rem.Title,
		&rem.Date,
		&typ,
		&status,
		&rem.Notes,
		&rem.CreatedAt,
		&rem.UpdatedAt,
	); err != nil {
		return reminders.Reminder{}, err
	}
	rem.Type = reminders.ReminderType(typ)
	rem.Status = reminders.Status(status)
	return rem, nil
}
