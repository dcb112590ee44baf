package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"pet-care-insights/internal/domain/events"
)

type EventsRepo struct {
	db *sql.DB
}

func NewEventsRepo(db *sql.DB) *EventsRepo {
	return &EventsRepo{db: db}
}

const eventColumns = `id, pet_id, title, date, type, status, notes, created_at, updated_at`

func (r *EventsRepo) Create(ctx context.Context, e events.CalendarEvent) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO calendar_events (`+eventColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
	`,
		e.ID,
		e.PetID,
		e.Title,
		e.Date,
		string(e.Type),
		string(e.Status),
		e.Notes,
		e.CreatedAt,
		e.UpdatedAt,
	)
	return err
}

func (r *EventsRepo) GetByID(ctx context.Context, id string) (events.CalendarEvent, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return events.CalendarEvent{}, events.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `SELECT `+eventColumns+` FROM calendar_events WHERE id = $1`, id)
	e, err := scanEvent(row)
	if errors.Is(err, sql.ErrNoRows) {
		return events.CalendarEvent{}, events.ErrNotFound
	}
	return e, err
}

func (r *EventsRepo) ListByPet(ctx context.Context, petID string, filter events.ListFilter) ([]events.CalendarEvent, error) {
	petID = strings.TrimSpace(petID)
	if petID == "" {
		return nil, nil
	}

	sb := strings.Builder{}
	sb.WriteString(`SELECT ` + eventColumns + ` FROM calendar_events WHERE pet_id = $1`)

	args := []any{petID}
	argN := 2

	if len(filter.Types) > 0 {
		placeholders := make([]string, 0, len(filter.Types))
		for _, t := range filter.Types {
			placeholders = append(placeholders, fmt.Sprintf("$%d", argN))
			args = append(args, string(t))
			argN++
		}
		sb.WriteString(" AND type IN (" + strings.Join(placeholders, ",") + ")")
	}
	if len(filter.Statuses) > 0 {
		placeholders := make([]string, 0, len(filter.Statuses))
		for _, s := range filter.Statuses {
			placeholders = append(placeholders, fmt.Sprintf("$%d", argN))
			args = append(args, string(s))
			argN++
		}
		sb.WriteString(" AND status IN (" + strings.Join(placeholders, ",") + ")")
	}

	if filter.From != nil {
		sb.WriteString(fmt.Sprintf(" AND date >= $%d", argN))
		args = append(args, *filter.From)
		argN++
	}
	if filter.To != nil {
		sb.WriteString(fmt.Sprintf(" AND date <= $%d", argN))
		args = append(args, *filter.To)
		argN++
	}

	// q: búsqueda simple en title + notes
	if q := strings.TrimSpace(filter.Query); q != "" {
		sb.WriteString(fmt.Sprintf(" AND (title ILIKE $%d OR notes ILIKE $%d)", argN, argN))
		args = append(args, "%"+q+"%")
		argN++
	}

	sb.WriteString(" ORDER BY date ASC, id ASC")
	if limit := filter.EffectiveLimit(); limit > 0 {
		sb.WriteString(fmt.Sprintf(" LIMIT $%d", argN))
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]events.CalendarEvent, 0)
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *EventsRepo) SetStatus(ctx context.Context, id string, status events.EventStatus, at time.Time) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE calendar_events SET status = $2, updated_at = $3 WHERE id = $1
	`, id, string(status), at)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return events.ErrNotFound
	}
	return nil
}

func scanEvent(s scanner) (events.CalendarEvent, error) {
	var e events.CalendarEvent
	var typ, status string
	if err := s.Scan(
		&e.ID,
		&e.PetID,
		&e.Title,
		&e.Date,
		&typ,
		&status,
		&e.Notes,
		&e.CreatedAt,
		&e.UpdatedAt,
	); err != nil {
		return events.CalendarEvent{}, err
	}
	e.Type = events.EventType(typ)
	e.Status = events.EventStatus(status)
	return e, nil
}
