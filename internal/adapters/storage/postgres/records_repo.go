package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"pet-care-insights/internal/domain/records"
)

// RecordsRepo guarda las cuatro variantes en una sola tabla: kind + ts para
// filtrar, payload JSONB con el mismo formato que la API.
type RecordsRepo struct {
	db *sql.DB
}

func NewRecordsRepo(db *sql.DB) *RecordsRepo {
	return &RecordsRepo{db: db}
}

func (r *RecordsRepo) Create(ctx context.Context, rec records.Record) error {
	payload, err := json.Marshal(records.ToPayload(rec))
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO health_records (id, pet_id, kind, ts, payload)
		VALUES ($1,$2,$3,$4,$5)
	`,
		rec.RecordID(),
		rec.PetRef(),
		string(rec.Kind()),
		rec.Timestamp(),
		payload,
	)
	return err
}

func (r *RecordsRepo) ListByPet(ctx context.Context, petID string, filter records.ListFilter) ([]records.Record, error) {
	petID = strings.TrimSpace(petID)
	if petID == "" {
		return nil, nil
	}

	sb := strings.Builder{}
	sb.WriteString(`SELECT pet_id, payload FROM health_records WHERE pet_id = $1`)
	args := []any{petID}
	argN := 2

	if len(filter.Kinds) > 0 {
		placeholders := make([]string, 0, len(filter.Kinds))
		for _, k := range filter.Kinds {
			placeholders = append(placeholders, fmt.Sprintf("$%d", argN))
			args = append(args, string(k))
			argN++
		}
		sb.WriteString(" AND kind IN (" + strings.Join(placeholders, ",") + ")")
	}
	if filter.From != nil {
		sb.WriteString(fmt.Sprintf(" AND ts >= $%d", argN))
		args = append(args, *filter.From)
		argN++
	}
	if filter.To != nil {
		sb.WriteString(fmt.Sprintf(" AND ts <= $%d", argN))
		args = append(args, *filter.To)
	}
	sb.WriteString(" ORDER BY ts ASC, id ASC")

	rows, err := r.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]records.Record, 0)
	for rows.Next() {
		var pid string
		var raw []byte
		if err := rows.Scan(&pid, &raw); err != nil {
			return nil, err
		}
		// el payload guarda RFC3339 con offset, la location no se usa
		rec, err := records.DecodePayload(raw, time.UTC)
		if err != nil {
			return nil, fmt.Errorf("postgres: decode record: %w", err)
		}
		out = append(out, records.WithPet(rec, pid))
	}
	return out, rows.Err()
}
