package events

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"pet-care-insights/internal/domain/pets"
	"pet-care-insights/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, petsSvc *pets.Service) {
	r.Route("/pets/{petID}/events", func(er chi.Router) {
		er.Post("/", createEventHandler(svc, petsSvc))
		er.Get("/", listEventsHandler(svc, petsSvc))

		er.Post("/{eventID}/complete", transitionEventHandler(svc, petsSvc, svc.Complete))
		er.Post("/{eventID}/cancel", transitionEventHandler(svc, petsSvc, svc.Cancel))
	})
}

// createEventRequest es el cuerpo para agendar un evento en el calendario.
type createEventRequest struct {
	Title string    `json:"title"`
	Date  string    `json:"date"` // RFC3339
	Type  EventType `json:"type" enums:"visit,exam,vaccine,medication,grooming,other"`
	Notes string    `json:"notes"`
}

// eventResponse representa un evento del calendario devuelto por la API.
type eventResponse struct {
	ID        string      `json:"id"`
	PetID     string      `json:"pet_id"`
	Title     string      `json:"title"`
	Date      time.Time   `json:"date"`
	Type      EventType   `json:"type"`
	Status    EventStatus `json:"status"`
	Notes     string      `json:"notes"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// createEventHandler godoc
// @Summary Agendar evento
// @Description Crea un evento pendiente en el calendario de la mascota. Solo el tutor.
// @Tags events
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param petID path string true "ID de la mascota"
// @Param payload body createEventRequest true "Datos del evento; date en formato RFC3339"
// @Success 201 {object} eventResponse
// @Failure 400 {string} string "invalid json / date inválido / reglas de negocio"
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "pet not found"
// @Router /pets/{petID}/events [post]
func createEventHandler(svc *Service, petsSvc *pets.Service) http.HandlerFunc {
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

		var req createEventRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		t, err := time.Parse(time.RFC3339, req.Date)
		if err != nil {
			http.Error(w, "date must be RFC3339", http.StatusBadRequest)
			return
		}

		e, err := svc.Create(r.Context(), petID, CreateInput{
			Title: req.Title,
			Date:  t,
			Type:  req.Type,
			Notes: req.Notes,
		})
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		writeJSON(w, http.StatusCreated, toEventResponse(e))
	}
}

// listEventsHandler godoc
// @Summary Listar eventos de una mascota
// @Description Lista el calendario de la mascota. Permite filtrar por tipos, status, rango de fechas y texto.
// @Tags events
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param petID path string true "ID de la mascota"
// @Param limit query int false "Máximo de eventos a devolver (1-200). Por defecto 50"
// @Param types query string false "Lista CSV de tipos (ej: visit,vaccine)"
// @Param status query string false "Lista CSV de status (ej: pending)"
// @Param from query string false "Fecha mínima (RFC3339)"
// @Param to query string false "Fecha máxima (RFC3339)"
// @Param q query string false "Texto libre en título/notas"
// @Success 200 {array} eventResponse
// @Failure 400 {string} string "Parámetros de filtro inválidos"
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "pet not found"
// @Router /pets/{petID}/events [get]
func listEventsHandler(svc *Service, petsSvc *pets.Service) http.HandlerFunc {
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

		filter, err := parseListFilter(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		items, err := svc.ListByPet(r.Context(), petID, filter)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]eventResponse, 0, len(items))
		for _, e := range items {
			out = append(out, toEventResponse(e))
		}

		writeJSON(w, http.StatusOK, out)
	}
}

// transitionEventHandler godoc
// @Summary Completar o cancelar un evento
// @Description Solo eventos pendientes pueden pasar a done/cancelled. Repetir la misma transición es idempotente.
// @Tags events
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param petID path string true "ID de la mascota"
// @Param eventID path string true "ID del evento"
// @Success 200 {object} eventResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "event not found"
// @Failure 409 {string} string "invalid state"
// @Router /pets/{petID}/events/{eventID}/complete [post]
// @Router /pets/{petID}/events/{eventID}/cancel [post]
func transitionEventHandler(svc *Service, petsSvc *pets.Service, apply func(ctx context.Context, id string) (CalendarEvent, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		petID := chi.URLParam(r, "petID")
		eventID := chi.URLParam(r, "eventID")

		// Permisos primero, para no filtrar si existe el evento
		if _, err := petsSvc.OwnedBy(r.Context(), petID, claims.UserID); err != nil {
			pets.WriteAccessError(w, err)
			return
		}

		ev, err := svc.GetByID(r.Context(), eventID)
		if err != nil || ev.PetID != petID {
			http.Error(w, "event not found", http.StatusNotFound)
			return
		}

		updated, err := apply(r.Context(), eventID)
		if err != nil {
			switch {
			case errors.Is(err, ErrBadState):
				http.Error(w, err.Error(), http.StatusConflict)
			case errors.Is(err, ErrNotFound):
				http.Error(w, "event not found", http.StatusNotFound)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		writeJSON(w, http.StatusOK, toEventResponse(updated))
	}
}

func parseListFilter(r *http.Request) (ListFilter, error) {
	limit := DefaultLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= MaxLimit {
			limit = n
		}
	}

	filter := ListFilter{Limit: limit}

	if v := strings.TrimSpace(r.URL.Query().Get("types")); v != "" {
		for _, p := range strings.Split(v, ",") {
			if t := EventType(strings.TrimSpace(p)); t != "" {
				filter.Types = append(filter.Types, t)
			}
		}
	}
	if v := strings.TrimSpace(r.URL.Query().Get("status")); v != "" {
		for _, p := range strings.Split(v, ",") {
			if st := EventStatus(strings.TrimSpace(p)); st != "" {
				filter.Statuses = append(filter.Statuses, st)
			}
		}
	}

	if v := strings.TrimSpace(r.URL.Query().Get("from")); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return ListFilter{}, errors.New("from must be RFC3339")
		}
		filter.From = &t
	}
	if v := strings.TrimSpace(r.URL.Query().Get("to")); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return ListFilter{}, errors.New("to must be RFC3339")
		}
		filter.To = &t
	}

	filter.Query = strings.TrimSpace(r.URL.Query().Get("q"))

	return filter, nil
}

func toEventResponse(e CalendarEvent) eventResponse {
	return eventResponse{
		ID:        e.ID,
		PetID:     e.PetID,
		Title:     e.Title,
		Date:      e.Date,
		Type:      e.Type,
		Status:    e.Status,
		Notes:     e.Notes,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
