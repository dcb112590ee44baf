package reminders

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"pet-care-insights/internal/domain/pets"
	"pet-care-insights/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, petsSvc *pets.Service) {
	r.Route("/pets/{petID}/reminders", func(rr chi.Router) {
		rr.Post("/", createReminderHandler(svc, petsSvc))
		rr.Get("/", listRemindersHandler(svc, petsSvc))
		rr.Post("/{reminderID}/deactivate", deactivateReminderHandler(svc, petsSvc))
	})
}

type createReminderRequest struct {
	Title string       `json:"title"`
	Date  string       `json:"date"` // RFC3339
	Type  ReminderType `json:"type" enums:"medication,vaccine,visit,other"`
	Notes string       `json:"notes"`
}

type reminderResponse struct {
	ID        string       `json:"id"`
	PetID     string       `json:"pet_id"`
	Title     string       `json:"title"`
	Date      time.Time    `json:"date"`
	Type      ReminderType `json:"type"`
	Status    Status       `json:"status"`
	Notes     string       `json:"notes"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

// createReminderHandler godoc
// @Summary Crear recordatorio
// @Tags reminders
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param petID path string true "ID de la mascota"
// @Param payload body createReminderRequest true "Recordatorio; date en RFC3339"
// @Success 201 {object} reminderResponse
// @Failure 400 {string} string "invalid json / date inválido"
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "pet not found"
// @Router /pets/{petID}/reminders [post]
func createReminderHandler(svc *Service, petsSvc *pets.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		petID := chi.URLParam(r, "petID")
		if _, err := petsSvc.OwnedBy(r.Context(), petID, claims.UserID); err != nil {
			pets.WriteAccessError(w, err)
			return
		}

		var req createReminderRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		t, err := time.Parse(time.RFC3339, req.Date)
		if err != nil {
			http.Error(w, "date must be RFC3339", http.StatusBadRequest)
			return
		}

		rem, err := svc.Create(r.Context(), petID, CreateInput{
			Title: req.Title,
			Date:  t,
			Type:  req.Type,
			Notes: req.Notes,
		})
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		writeJSON(w, http.StatusCreated, toReminderResponse(rem))
	}
}

// listRemindersHandler godoc
// @Summary Listar recordatorios
// @Tags reminders
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param petID path string true "ID de la mascota"
// @Param status query string false "active | inactive (vacío = todos)"
// @Success 200 {array} reminderResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "pet not found"
// @Router /pets/{petID}/reminders [get]
func listRemindersHandler(svc *Service, petsSvc *pets.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		petID := chi.URLParam(r, "petID")
		if _, err := petsSvc.OwnedBy(r.Context(), petID, claims.UserID); err != nil {
			pets.WriteAccessError(w, err)
			return
		}

		status := Status(strings.TrimSpace(r.URL.Query().Get("status")))
		items, err := svc.ListByPet(r.Context(), petID, status)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]reminderResponse, 0, len(items))
		for _, rem := range items {
			out = append(out, toReminderResponse(rem))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// deactivateReminderHandler godoc
// @Summary Desactivar recordatorio
// @Tags reminders
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param petID path string true "ID de la mascota"
// @Param reminderID path string true "ID del recordatorio"
// @Success 200 {object} reminderResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "reminder not found"
// @Router /pets/{petID}/reminders/{reminderID}/deactivate [post]
func deactivateReminderHandler(svc *Service, petsSvc *pets.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		petID := chi.URLParam(r, "petID")
		if _, err := petsSvc.OwnedBy(r.Context(), petID, claims.UserID); err != nil {
			pets.WriteAccessError(w, err)
			return
		}

		rem, err := svc.GetByID(r.Context(), chi.URLParam(r, "reminderID"))
		if err != nil || rem.PetID != petID {
			http.Error(w, "reminder not found", http.StatusNotFound)
			return
		}

		updated, err := svc.Deactivate(r.Context(), rem.ID)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				http.Error(w, "reminder not found", http.StatusNotFound)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, toReminderResponse(updated))
	}
}

func toReminderResponse(r Reminder) reminderResponse {
	return reminderResponse{
		ID:        r.ID,
		PetID:     r.PetID,
		Title:     r.Title,
		Date:      r.Date,
		Type:      r.Type,
		Status:    r.Status,
		Notes:     r.Notes,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
