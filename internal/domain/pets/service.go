package pets

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("pet not found")
	ErrForbidden    = errors.New("forbidden")
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{
		repo: repo,
		now:  now,
	}
}

type CreateInput struct {
	Name         string
	Species      Species
	Breed        string
	Sex          Sex
	BirthDate    *time.Time
	PhotoURL     string
	Notes        string
	Vaccinations []EmbeddedVaccination
}

func (s *Service) Create(ctx context.Context, ownerUserID string, in CreateInput) (Pet, error) {
	if strings.TrimSpace(ownerUserID) == "" {
		return Pet{}, ErrInvalidInput
	}
	if strings.TrimSpace(in.Name) == "" {
		return Pet{}, ErrInvalidInput
	}

	species := in.Species
	if species == "" {
		species = SpeciesOther
	}
	sex := in.Sex
	if sex == "" {
		sex = SexUnknown
	}

	vacs, err := normalizeVaccinations(in.Vaccinations)
	if err != nil {
		return Pet{}, err
	}

	now := s.now()
	p := Pet{
		ID:           uuid.NewString(),
		OwnerUserID:  ownerUserID,
		Name:         strings.TrimSpace(in.Name),
		Species:      species,
		Breed:        strings.TrimSpace(in.Breed),
		Sex:          sex,
		BirthDate:    in.BirthDate,
		PhotoURL:     strings.TrimSpace(in.PhotoURL),
		Notes:        strings.TrimSpace(in.Notes),
		Vaccinations: vacs,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return Pet{}, err
	}
	return p, nil
}

// UpdateProfileInput usa punteros para PATCH real: nil = no tocar.
type UpdateProfileInput struct {
	Name         *string
	Species      *Species
	Breed        *string
	Sex          *Sex
	PhotoURL     *string
	Notes        *string
	Vaccinations *[]EmbeddedVaccination
}

func (s *Service) UpdateProfile(ctx context.Context, petID, userID string, in UpdateProfileInput) (Pet, error) {
	p, err := s.OwnedBy(ctx, petID, userID)
	if err != nil {
		return Pet{}, err
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return Pet{}, ErrInvalidInput
		}
		p.Name = name
	}
	if in.Species != nil {
		p.Species = *in.Species
	}
	if in.Breed != nil {
		p.Breed = strings.TrimSpace(*in.Breed)
	}
	if in.Sex != nil {
		p.Sex = *in.Sex
	}
	if in.PhotoURL != nil {
		p.PhotoURL = strings.TrimSpace(*in.PhotoURL)
	}
	if in.Notes != nil {
		p.Notes = strings.TrimSpace(*in.Notes)
	}
	if in.Vaccinations != nil {
		vacs, err := normalizeVaccinations(*in.Vaccinations)
		if err != nil {
			return Pet{}, err
		}
		p.Vaccinations = vacs
	}

	p.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, p); err != nil {
		return Pet{}, err
	}
	return p, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Pet, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Pet{}, ErrInvalidInput
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListByOwner(ctx context.Context, ownerUserID string) ([]Pet, error) {
	ownerUserID = strings.TrimSpace(ownerUserID)
	if ownerUserID == "" {
		return nil, ErrInvalidInput
	}
	return s.repo.ListByOwner(ctx, ownerUserID)
}

func normalizeVaccinations(in []EmbeddedVaccination) ([]EmbeddedVaccination, error) {
	out := make([]EmbeddedVaccination, 0, len(in))
	for _, v := range in {
		v.Name = strings.TrimSpace(v.Name)
		v.VetName = strings.TrimSpace(v.VetName)
		if v.Name == "" || v.Date.IsZero() {
			return nil, ErrInvalidInput
		}
		out = append(out, v)
	}
	return out, nil
}
