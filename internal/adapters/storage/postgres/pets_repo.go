package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"pet-care-insights/internal/domain/pets"
)

type PetsRepo struct {
	db *sql.DB
}

func NewPetsRepo(db *sql.DB) *PetsRepo {
	return &PetsRepo{db: db}
}

const petColumns = `
	id, owner_user_id,
	name, species, breed, sex,
	birth_date, photo_url, notes, vaccinations,
	created_at, updated_at`

// vaccinationRow es la forma JSONB de pets.EmbeddedVaccination.
type vaccinationRow struct {
	Name     string     `json:"name"`
	Date     time.Time  `json:"date"`
	NextDate *time.Time `json:"next_date,omitempty"`
	VetName  string     `json:"vet_name,omitempty"`
}

func (r *PetsRepo) Create(ctx context.Context, p pets.Pet) error {
	vacs, err := encodeVaccinations(p.Vaccinations)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO pets (`+petColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
	`,
		p.ID,
		p.OwnerUserID,
		p.Name,
		string(p.Species),
		p.Breed,
		string(p.Sex),
		toNullDate(p.BirthDate),
		p.PhotoURL,
		p.Notes,
		vacs,
		p.CreatedAt,
		p.UpdatedAt,
	)
	return err
}

func (r *PetsRepo) Update(ctx context.Context, p pets.Pet) error {
	vacs, err := encodeVaccinations(p.Vaccinations)
	if err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx, `
		UPDATE pets
		SET
			name = $2,
			species = $3,
			breed = $4,
			sex = $5,
			birth_date = $6,
			photo_url = $7,
			notes = $8,
			vaccinations = $9,
			updated_at = $10
		WHERE id = $1
	`,
		p.ID,
		p.Name,
		string(p.Species),
		p.Breed,
		string(p.Sex),
		toNullDate(p.BirthDate),
		p.PhotoURL,
		p.Notes,
		vacs,
		p.UpdatedAt,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return pets.ErrNotFound
	}
	return nil
}

func (r *PetsRepo) GetByID(ctx context.Context, id string) (pets.Pet, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return pets.Pet{}, pets.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `SELECT `+petColumns+` FROM pets WHERE id = $1`, id)

	p, err := scanPet(row)
	if errors.Is(err, sql.ErrNoRows) {
		return pets.Pet{}, pets.ErrNotFound
	}
	return p, err
}

func (r *PetsRepo) ListByOwner(ctx context.Context, ownerUserID string) ([]pets.Pet, error) {
	ownerUserID = strings.TrimSpace(ownerUserID)
	if ownerUserID == "" {
		return nil, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT `+petColumns+`
		FROM pets
		WHERE owner_user_id = $1
		ORDER BY created_at ASC, id ASC
	`, ownerUserID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]pets.Pet, 0)
	for rows.Next() {
		p, err := scanPet(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanPet(s scanner) (pets.Pet, error) {
	var p pets.Pet
	var bd sql.NullTime
	var vacs []byte
	if err := s.Scan(
		&p.ID,
		&p.OwnerUserID,
		&p.Name,
		&p.Species,
		&p.Breed,
		&p.Sex,
		&bd,
		&p.PhotoURL,
		&p.Notes,
		&vacs,
		&p.CreatedAt,
		&p.UpdatedAt,
	); err != nil {
		return pets.Pet{}, err
	}

	if bd.Valid {
		// birth_date es DATE; pgx lo mapea a medianoche UTC
		t := bd.Time
		p.BirthDate = &t
	}

	var rowsV []vaccinationRow
	if len(vacs) > 0 {
		if err := json.Unmarshal(vacs, &rowsV); err != nil {
			return pets.Pet{}, err
		}
	}
	p.Vaccinations = make([]pets.EmbeddedVaccination, 0, len(rowsV))
	for _, v := range rowsV {
		p.Vaccinations = append(p.Vaccinations, pets.EmbeddedVaccination{
			Name: v.Name, Date: v.Date, NextDate: v.NextDate, VetName: v.VetName,
		})
	}
	return p, nil
}

func encodeVaccinations(in []pets.EmbeddedVaccination) ([]byte, error) {
	out := make([]vaccinationRow, 0, len(in))
	for _, v := range in {
		out = append(out, vaccinationRow{Name: v.Name, Date: v.Date, NextDate: v.NextDate, VetName: v.VetName})
	}
	return json.Marshal(out)
}

// birth_date es DATE, lo pasamos como NullTime para simplificar
func toNullDate(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{Valid: false}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
