package notifications

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"pet-care-insights/internal/domain/urgency"
	"pet-care-insights/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Get("/me/notifications", listNotificationsHandler(svc))
}

type notificationResponse struct {
	ID          string        `json:"id"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Time        string        `json:"time"`
	PetID       string        `json:"pet_id"`
	PetName     string        `json:"pet_name"`
	Urgency     urgency.Level `json:"urgency" enums:"high,medium,normal"`
	Source      Source        `json:"source" enums:"event,reminder"`
	Category    Category      `json:"category" enums:"calendar,reminders"`
	Date        time.Time     `json:"date"`
	Link        Category      `json:"link"`
}

type feedResponse struct {
	Notifications []notificationResponse `json:"notifications"`
	UnreadCount   int                    `json:"unread_count"`
}

// listNotificationsHandler godoc
// @Summary Panel de notificaciones
// @Description Eventos pendientes y recordatorios activos de todas las mascotas del usuario, entre 24h atrás y 72h adelante, ordenados por urgencia y fecha.
// @Tags notifications
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Success 200 {object} feedResponse
// @Failure 401 {string} string "unauthorized"
// @Router /me/notifications [get]
func listNotificationsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		feed := svc.ForUser(r.Context(), claims.UserID)

		out := feedResponse{
			Notifications: make([]notificationResponse, 0, len(feed.Notifications)),
			UnreadCount:   feed.UnreadCount,
		}
		for _, n := range feed.Notifications {
			out.Notifications = append(out.Notifications, notificationResponse{
				ID:          n.ID,
				Title:       n.Title,
				Description: n.Description,
				Time:        n.TimeLabel,
				PetID:       n.PetID,
				PetName:     n.PetName,
				Urgency:     n.Urgency,
				Source:      n.Source,
				Category:    n.Category,
				Date:        n.SourceDate,
				Link:        n.LinkTarget,
			})
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
