package boltstore

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
	"time"

	bolt "go.etcd.io/bbolt"

	"pet-care-insights/internal/domain/pets"
)

type petDoc struct {
	ID           string           `json:"id"`
	OwnerUserID  string           `json:"owner_user_id"`
	Name         string           `json:"name"`
	Species      pets.Species     `json:"species"`
	Breed        string           `json:"breed,omitempty"`
	Sex          pets.Sex         `json:"sex"`
	BirthDate    *time.Time       `json:"birth_date,omitempty"`
	PhotoURL     string           `json:"photo_url,omitempty"`
	Notes        string           `json:"notes,omitempty"`
	Vaccinations []vaccinationDoc `json:"vaccinations,omitempty"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
}

type vaccinationDoc struct {
	Name     string     `json:"name"`
	Date     time.Time  `json:"date"`
	NextDate *time.Time `json:"next_date,omitempty"`
	VetName  string     `json:"vet_name,omitempty"`
}

type petRepo struct {
	s *Store
}

func (s *Store) Pets() pets.Repository {
	return &petRepo{s: s}
}

func (r *petRepo) Create(ctx context.Context, p pets.Pet) error {
	return r.s.db.Update(func(tx *bolt.Tx) error {
		return put(tx, bucketPets, p.ID, toPetDoc(p))
	})
}

func (r *petRepo) Update(ctx context.Context, p pets.Pet) error {
	return r.s.db.Update(func(tx *bolt.Tx) error {
		if tx.Bucket(bucketPets).Get([]byte(p.ID)) == nil {
			return pets.ErrNotFound
		}
		return put(tx, bucketPets, p.ID, toPetDoc(p))
	})
}

func (r *petRepo) GetByID(ctx context.Context, id string) (pets.Pet, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return pets.Pet{}, pets.ErrNotFound
	}

	var doc petDoc
	var found bool
	err := r.s.db.View(func(tx *bolt.Tx) error {
		var err error
		found, err = get(tx, bucketPets, id, &doc)
		return err
	})
	if err != nil {
		return pets.Pet{}, err
	}
	if !found {
		return pets.Pet{}, pets.ErrNotFound
	}
	return doc.toPet(), nil
}

func (r *petRepo) ListByOwner(ctx context.Context, ownerUserID string) ([]pets.Pet, error) {
	ownerUserID = strings.TrimSpace(ownerUserID)
	out := make([]pets.Pet, 0)
	if ownerUserID == "" {
		return out, nil
	}

	err := r.s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketPets).ForEach(func(_, v []byte) error {
			var doc petDoc
			if err := json.Unmarshal(v, &doc); err != nil {
				return err
			}
			if doc.OwnerUserID == ownerUserID {
				out = append(out, doc.toPet())
			}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	// bbolt itera por clave; el contrato es orden de alta
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func toPetDoc(p pets.Pet) petDoc {
	doc := petDoc{
		ID:          p.ID,
		OwnerUserID: p.OwnerUserID,
		Name:        p.Name,
		Species:     p.Species,
		Breed:       p.Breed,
		Sex:         p.Sex,
		BirthDate:   p.BirthDate,
		PhotoURL:    p.PhotoURL,
		Notes:       p.Notes,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
	for _, v := range p.Vaccinations {
		doc.Vaccinations = append(doc.Vaccinations, vaccinationDoc{
			Name: v.Name, Date: v.Date, NextDate: v.NextDate, VetName: v.VetName,
		})
	}
	return doc
}

func (d petDoc) toPet() pets.Pet {
	p := pets.Pet{
		ID:           d.ID,
		OwnerUserID:  d.OwnerUserID,
		Name:         d.Name,
		Species:      d.Species,
		Breed:        d.Breed,
		Sex:          d.Sex,
		BirthDate:    d.BirthDate,
		PhotoURL:     d.PhotoURL,
		Notes:        d.Notes,
		Vaccinations: make([]pets.EmbeddedVaccination, 0, len(d.Vaccinations)),
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
	for _, v := range d.Vaccinations {
		p.Vaccinations = append(p.Vaccinations, pets.EmbeddedVaccination{
			Name: v.Name, Date: v.Date, NextDate: v.NextDate, VetName: v.VetName,
		})
	}
	return p
}
