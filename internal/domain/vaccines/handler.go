package vaccines

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"pet-care-insights/internal/domain/pets"
	"pet-care-insights/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Get("/pets/{petID}/vaccinations/status", vaccinationStatusHandler(svc))
}

type vaccineResponse struct {
	ID       string     `json:"id,omitempty"`
	Name     string     `json:"name"`
	Date     time.Time  `json:"date"`
	NextDate *time.Time `json:"next_date,omitempty"`
	VetName  string     `json:"vet_name,omitempty"`
	Source   Source     `json:"source" enums:"record,profile"`
	Status   Status     `json:"status" enums:"applied,scheduled,due_month,due_soon,overdue"`
	Label    string     `json:"label"`
}

type vaccinationStatusResponse struct {
	Applied  []vaccineResponse `json:"applied"`
	Upcoming []vaccineResponse `json:"upcoming"`
}

// vaccinationStatusHandler godoc
// @Summary Estado de vacunas
// @Description Une el historial de vacunas y las vacunas del perfil y las separa en aplicadas y próximas.
// @Tags vaccinations
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param petID path string true "ID de la mascota"
// @Success 200 {object} vaccinationStatusResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "pet not found"
// @Router /pets/{petID}/vaccinations/status [get]
func vaccinationStatusHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		part, err := svc.ForPet(r.Context(), claims.UserID, chi.URLParam(r, "petID"))
		if err != nil {
			pets.WriteAccessError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, vaccinationStatusResponse{
			Applied:  toVaccineResponses(part.Applied),
			Upcoming: toVaccineResponses(part.Upcoming),
		})
	}
}

func toVaccineResponses(items []Evaluated) []vaccineResponse {
	out := make([]vaccineResponse, 0, len(items))
	for _, ev := range items {
		out = append(out, vaccineResponse{
			ID:       ev.ID,
			Name:     ev.Name,
			Date:     ev.Date,
			NextDate: ev.NextDate,
			VetName:  ev.VetName,
			Source:   ev.Source,
			Status:   ev.Status,
			Label:    ev.Status.Label(),
		})
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
