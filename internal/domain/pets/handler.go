package pets

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"pet-care-insights/internal/middleware"
	"pet-care-insights/internal/platform/dates"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/pets", func(pr chi.Router) {
		pr.Post("/", createPetHandler(svc))
		pr.Get("/", listPetsHandler(svc))
		pr.Get("/{petID}", getPetHandler(svc))
		pr.Patch("/{petID}", updatePetHandler(svc))
	})
}

// vaccinationPayload es una vacuna embebida en el perfil.
type vaccinationPayload struct {
	Name     string `json:"name"`
	Date     string `json:"date"`                // RFC3339 o YYYY-MM-DD
	NextDate string `json:"next_date,omitempty"` // opcional
	VetName  string `json:"vet_name,omitempty"`
}

type createPetRequest struct {
	Name         string               `json:"name"`
	Species      Species              `json:"species" enums:"dog,cat,other"`
	Breed        string               `json:"breed"`
	Sex          Sex                  `json:"sex" enums:"male,female,unknown"`
	BirthDate    string               `json:"birth_date"` // YYYY-MM-DD opcional
	PhotoURL     string               `json:"photo_url"`
	Notes        string               `json:"notes"`
	Vaccinations []vaccinationPayload `json:"vaccinations"`
}

type updatePetRequest struct {
	Name         *string               `json:"name"`
	Species      *Species              `json:"species"`
	Breed        *string               `json:"breed"`
	Sex          *Sex                  `json:"sex"`
	PhotoURL     *string               `json:"photo_url"`
	Notes        *string               `json:"notes"`
	Vaccinations *[]vaccinationPayload `json:"vaccinations"`
}

type vaccinationResponse struct {
	Name     string     `json:"name"`
	Date     time.Time  `json:"date"`
	NextDate *time.Time `json:"next_date,omitempty"`
	VetName  string     `json:"vet_name,omitempty"`
}

// petResponse representa el perfil de una mascota devuelto por la API.
type petResponse struct {
	ID           string                `json:"id"`
	OwnerUserID  string                `json:"owner_user_id"`
	Name         string                `json:"name"`
	Species      Species               `json:"species"`
	Breed        string                `json:"breed"`
	Sex          Sex                   `json:"sex"`
	BirthDate    *time.Time            `json:"birth_date,omitempty"`
	PhotoURL     string                `json:"photo_url,omitempty"`
	Notes        string                `json:"notes"`
	Vaccinations []vaccinationResponse `json:"vaccinations"`
	CreatedAt    time.Time             `json:"created_at"`
	UpdatedAt    time.Time             `json:"updated_at"`
}

// createPetHandler godoc
// @Summary Crear mascota
// @Description Registra una mascota para el tutor autenticado.
// @Tags pets
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param payload body createPetRequest true "Perfil de la mascota"
// @Success 201 {object} petResponse
// @Failure 400 {string} string "invalid json / reglas de negocio"
// @Failure 401 {string} string "unauthorized"
// @Router /pets [post]
func createPetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req createPetRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		var bd *time.Time
		if strings.TrimSpace(req.BirthDate) != "" {
			t, err := time.Parse(dates.DateFormat, req.BirthDate)
			if err != nil {
				http.Error(w, "birth_date must be YYYY-MM-DD", http.StatusBadRequest)
				return
			}
			bd = &t
		}

		vacs, err := parseVaccinations(req.Vaccinations)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		p, err := svc.Create(r.Context(), claims.UserID, CreateInput{
			Name:         req.Name,
			Species:      req.Species,
			Breed:        req.Breed,
			Sex:          req.Sex,
			BirthDate:    bd,
			PhotoURL:     req.PhotoURL,
			Notes:        req.Notes,
			Vaccinations: vacs,
		})
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		writeJSON(w, http.StatusCreated, toPetResponse(p))
	}
}

// listPetsHandler godoc
// @Summary Listar mis mascotas
// @Tags pets
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Success 200 {array} petResponse
// @Failure 401 {string} string "unauthorized"
// @Router /pets [get]
func listPetsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		items, err := svc.ListByOwner(r.Context(), claims.UserID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]petResponse, 0, len(items))
		for _, p := range items {
			out = append(out, toPetResponse(p))
		}

		writeJSON(w, http.StatusOK, out)
	}
}

// getPetHandler godoc
// @Summary Perfil de mascota
// @Tags pets
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param petID path string true "ID de la mascota"
// @Success 200 {object} petResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "pet not found"
// @Router /pets/{petID} [get]
func getPetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		p, err := svc.OwnedBy(r.Context(), chi.URLParam(r, "petID"), claims.UserID)
		if err != nil {
			WriteAccessError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toPetResponse(p))
	}
}

// updatePetHandler godoc
// @Summary Actualizar perfil de mascota
// @Description PATCH parcial: los campos ausentes no se modifican.
// @Tags pets
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param petID path string true "ID de la mascota"
// @Param payload body updatePetRequest true "Campos a modificar"
// @Success 200 {object} petResponse
// @Failure 400 {string} string "invalid json / reglas de negocio"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "pet not found"
// @Router /pets/{petID} [patch]
func updatePetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()

		var req updatePetRequest
		if err := dec.Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		in := UpdateProfileInput{
			Name:     req.Name,
			Species:  req.Species,
			Breed:    req.Breed,
			Sex:      req.Sex,
			PhotoURL: req.PhotoURL,
			Notes:    req.Notes,
		}
		if req.Vaccinations != nil {
			vacs, err := parseVaccinations(*req.Vaccinations)
			if err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			in.Vaccinations = &vacs
		}

		updated, err := svc.UpdateProfile(r.Context(), chi.URLParam(r, "petID"), claims.UserID, in)
		if err != nil {
			if errors.Is(err, ErrInvalidInput) {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			WriteAccessError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toPetResponse(updated))
	}
}

// WriteAccessError traduce los errores de OwnedBy a status HTTP.
// Lo reutilizan los handlers de los demás módulos que cuelgan de /pets/{petID}.
func WriteAccessError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrForbidden):
		http.Error(w, "forbidden", http.StatusForbidden)
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrInvalidInput):
		http.Error(w, "pet not found", http.StatusNotFound)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func parseVaccinations(in []vaccinationPayload) ([]EmbeddedVaccination, error) {
	out := make([]EmbeddedVaccination, 0, len(in))
	for _, v := range in {
		applied, ok := dates.Parse(v.Date, time.UTC)
		if !ok {
			return nil, errors.New("vaccinations[].date must be RFC3339 or YYYY-MM-DD")
		}
		out = append(out, EmbeddedVaccination{
			Name:     v.Name,
			Date:     applied,
			NextDate: dates.ParseOptional(v.NextDate, time.UTC),
			VetName:  v.VetName,
		})
	}
	return out, nil
}

func toPetResponse(p Pet) petResponse {
	vacs := make([]vaccinationResponse, 0, len(p.Vaccinations))
	for _, v := range p.Vaccinations {
		vacs = append(vacs, vaccinationResponse{
			Name:     v.Name,
			Date:     v.Date,
			NextDate: v.NextDate,
			VetName:  v.VetName,
		})
	}
	return petResponse{
		ID:           p.ID,
		OwnerUserID:  p.OwnerUserID,
		Name:         p.Name,
		Species:      p.Species,
		Breed:        p.Breed,
		Sex:          p.Sex,
		BirthDate:    p.BirthDate,
		PhotoURL:     p.PhotoURL,
		Notes:        p.Notes,
		Vaccinations: vacs,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
