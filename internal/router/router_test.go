package router_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"pet-care-insights/internal/ports/capabilities"
	"pet-care-insights/internal/router"
)

// lunes 10/03/2025 09:00 UTC
var now = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

func fixedNow() time.Time { return now }

type staticCaps capabilities.Set

func (s staticCaps) Resolve(ctx context.Context, userID string) (capabilities.Set, error) {
	return capabilities.Set(s), nil
}

func newServer(t *testing.T, opts router.Options) *httptest.Server {
	t.Helper()
	opts.Now = fixedNow
	ts := httptest.NewServer(router.NewRouter(opts))
	t.Cleanup(ts.Close)
	return ts
}

func TestHTTP_EndToEnd_NotificationsReportAndVaccines(t *testing.T) {
	ts := newServer(t, router.Options{})

	ownerID := "owner-1"

	petID := createResource(t, ts.URL, ownerID, "/pets", map[string]any{
		"name":    "Milo",
		"species": "dog",
		"breed":   "mixed",
		"sex":     "male",
		"vaccinations": []map[string]any{
			{"name": "Parvo", "date": "2024-03-01", "next_date": "2025-03-01"},
		},
	})

	// evento hoy 11:00 => high, recordatorio de visita mañana => medium,
	// evento en 5 días => fuera de la ventana
	createResource(t, ts.URL, ownerID, "/pets/"+petID+"/events", map[string]any{
		"title": "Control anual",
		"date":  now.Add(2 * time.Hour).Format(time.RFC3339),
		"type":  "visit",
	})
	createResource(t, ts.URL, ownerID, "/pets/"+petID+"/events", map[string]any{
		"title": "Baño",
		"date":  now.Add(5 * 24 * time.Hour).Format(time.RFC3339),
		"type":  "grooming",
	})
	createResource(t, ts.URL, ownerID, "/pets/"+petID+"/reminders", map[string]any{
		"title": "Llevar análisis",
		"date":  now.Add(25 * time.Hour).Format(time.RFC3339),
		"type":  "visit",
	})

	for _, rec := range []map[string]any{
		{"kind": "metric", "category": "weight", "value": 10, "date": "2025-02-20"},
		{"kind": "metric", "category": "weight", "value": 11, "date": "2025-03-05"},
		{"kind": "vaccination", "name": "Rabies", "date": "2024-03-14", "next_date": "2025-03-14"},
		{"kind": "health_log", "date": "2025-03-01", "activity_level": "high", "activity_minutes": 30, "symptoms": []string{"cough"}},
	} {
		createResource(t, ts.URL, ownerID, "/pets/"+petID+"/records", rec)
	}

	// notificaciones
	{
		st, body := doReq(t, ts.URL, "GET", "/me/notifications", ownerID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 notifications, got %d body=%s", st, body)
		}
		var feed struct {
			Notifications []struct {
				ID       string `json:"id"`
				Time     string `json:"time"`
				Urgency  string `json:"urgency"`
				Category string `json:"category"`
				PetName  string `json:"pet_name"`
			} `json:"notifications"`
			UnreadCount int `json:"unread_count"`
		}
		_ = json.Unmarshal(body, &feed)

		if len(feed.Notifications) != 2 {
			t.Fatalf("expected 2 notifications in window, got %d body=%s", len(feed.Notifications), body)
		}
		first, second := feed.Notifications[0], feed.Notifications[1]
		if first.Urgency != "high" || first.Time != "Today at 11:00" || !strings.HasPrefix(first.ID, "event:") {
			t.Fatalf("unexpected first notification: %+v", first)
		}
		if second.Urgency != "medium" || second.Time != "Tomorrow at 10:00" || second.Category != "calendar" {
			t.Fatalf("unexpected second notification: %+v", second)
		}
		if first.PetName != "Milo" {
			t.Fatalf("expected pet name Milo, got %q", first.PetName)
		}
		if feed.UnreadCount != 2 {
			t.Fatalf("expected unread 2, got %d", feed.UnreadCount)
		}
	}

	// estado de vacunas: Rabies vence en 4 días, Parvo (perfil) vencida
	{
		st, body := doReq(t, ts.URL, "GET", "/pets/"+petID+"/vaccinations/status", ownerID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 vaccination status, got %d body=%s", st, body)
		}
		var resp struct {
			Upcoming []struct {
				Name   string `json:"name"`
				Status string `json:"status"`
				Source string `json:"source"`
			} `json:"upcoming"`
		}
		_ = json.Unmarshal(body, &resp)
		statuses := map[string]string{}
		for _, v := range resp.Upcoming {
			statuses[v.Name] = v.Status
		}
		if statuses["Rabies"] != "due_soon" {
			t.Fatalf("expected Rabies due_soon, got %q body=%s", statuses["Rabies"], body)
		}
		if statuses["Parvo"] != "overdue" {
			t.Fatalf("expected Parvo overdue, got %q body=%s", statuses["Parvo"], body)
		}
	}

	// reporte de 30 días, todas las secciones
	{
		st, body := doReq(t, ts.URL, "GET", "/pets/"+petID+"/report?range=30d", ownerID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 report, got %d body=%s", st, body)
		}
		var rep struct {
			PetName string `json:"pet_name"`
			Weight  *struct {
				Current *float64 `json:"current"`
				Trend   *struct {
					Direction string `json:"direction"`
				} `json:"trend"`
			} `json:"weight"`
			Symptoms *struct {
				Total int `json:"total"`
			} `json:"symptoms"`
		}
		_ = json.Unmarshal(body, &rep)
		if rep.PetName != "Milo" {
			t.Fatalf("expected pet_name Milo, got %q", rep.PetName)
		}
		if rep.Weight == nil || rep.Weight.Current == nil || *rep.Weight.Current != 11 {
			t.Fatalf("unexpected weight section: %s", body)
		}
		if rep.Weight.Trend == nil || rep.Weight.Trend.Direction != "up" {
			t.Fatalf("expected upward trend: %s", body)
		}
		if rep.Symptoms == nil || rep.Symptoms.Total != 1 {
			t.Fatalf("unexpected symptoms section: %s", body)
		}
	}

	// solo algunas secciones
	{
		st, body := doReq(t, ts.URL, "GET", "/pets/"+petID+"/report?sections=weight", ownerID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 report, got %d body=%s", st, body)
		}
		var raw map[string]json.RawMessage
		_ = json.Unmarshal(body, &raw)
		if _, ok := raw["weight"]; !ok {
			t.Fatalf("expected weight key: %s", body)
		}
		if _, ok := raw["vaccinations"]; ok {
			t.Fatalf("vaccinations key must be absent: %s", body)
		}
	}
}

func TestHTTP_Report_Validation(t *testing.T) {
	ts := newServer(t, router.Options{})

	petID := createResource(t, ts.URL, "owner-1", "/pets", map[string]any{"name": "Milo"})

	cases := []struct {
		name string
		path string
		user string
		want int
	}{
		{"unknown preset", "/pets/" + petID + "/report?range=2d", "owner-1", http.StatusBadRequest},
		{"unknown section", "/pets/" + petID + "/report?sections=weight,teeth", "owner-1", http.StatusBadRequest},
		{"inverted range", "/pets/" + petID + "/report?from=2025-03-01&to=2025-02-01", "owner-1", http.StatusBadRequest},
		{"no auth", "/pets/" + petID + "/report", "", http.StatusUnauthorized},
		{"other owner", "/pets/" + petID + "/report", "intruder", http.StatusForbidden},
		{"missing pet", "/pets/nope/report", "owner-1", http.StatusNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			st, body := doReq(t, ts.URL, "GET", tc.path, tc.user, nil)
			if st != tc.want {
				t.Fatalf("expected %d, got %d body=%s", tc.want, st, body)
			}
		})
	}
}

func TestHTTP_Report_CapabilitiesMaskSections(t *testing.T) {
	ts := newServer(t, router.Options{
		Capabilities: staticCaps{capabilities.ReportSection("weight"): true},
	})

	petID := createResource(t, ts.URL, "owner-1", "/pets", map[string]any{"name": "Milo"})

	st, body := doReq(t, ts.URL, "GET", "/pets/"+petID+"/report", "owner-1", nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", st, body)
	}
	var raw map[string]json.RawMessage
	_ = json.Unmarshal(body, &raw)
	if _, ok := raw["weight"]; !ok {
		t.Fatalf("expected weight section: %s", body)
	}
	for _, k := range []string{"activity", "vaccinations", "medications", "visits", "symptoms", "food", "water"} {
		if _, ok := raw[k]; ok {
			t.Fatalf("section %s should be masked: %s", k, body)
		}
	}
}

func TestHTTP_Notifications_RequireAuthAndOwnPets(t *testing.T) {
	ts := newServer(t, router.Options{})

	if st, _ := doReq(t, ts.URL, "GET", "/me/notifications", "", nil); st != http.StatusUnauthorized {
		t.Fatalf("expected 401 without user, got %d", st)
	}

	petID := createResource(t, ts.URL, "owner-1", "/pets", map[string]any{"name": "Milo"})
	createResource(t, ts.URL, "owner-1", "/pets/"+petID+"/events", map[string]any{
		"title": "Vacuna",
		"date":  now.Add(time.Hour).Format(time.RFC3339),
		"type":  "vaccine",
	})

	st, body := doReq(t, ts.URL, "GET", "/me/notifications", "someone-else", nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200, got %d", st)
	}
	var feed struct {
		Notifications []json.RawMessage `json:"notifications"`
		UnreadCount   int               `json:"unread_count"`
	}
	_ = json.Unmarshal(body, &feed)
	if len(feed.Notifications) != 0 || feed.UnreadCount != 0 {
		t.Fatalf("expected empty feed for another user, got %s", body)
	}

	// otro usuario no puede crear eventos en la mascota ajena
	if st, _ := doReq(t, ts.URL, "POST", "/pets/"+petID+"/events", "someone-else", map[string]any{
		"title": "x", "date": now.Format(time.RFC3339), "type": "other",
	}); st != http.StatusForbidden {
		t.Fatalf("expected 403 creating event on foreign pet, got %d", st)
	}
}

func TestHTTP_Health(t *testing.T) {
	ts := newServer(t, router.Options{})
	st, body := doReq(t, ts.URL, "GET", "/health", "", nil)
	if st != http.StatusOK || string(body) != "ok" {
		t.Fatalf("unexpected health response %d %q", st, body)
	}
}

func createResource(t *testing.T, baseURL, userID, path string, payload map[string]any) string {
	t.Helper()

	st, body := doReq(t, baseURL, "POST", path, userID, payload)
	if st != http.StatusCreated {
		t.Fatalf("expected 201 POST %s, got %d body=%s", path, st, string(body))
	}

	var resp struct {
		ID string `json:"id"`
	}
	_ = json.Unmarshal(body, &resp)
	if resp.ID == "" {
		t.Fatalf("POST %s: missing id body=%s", path, string(body))
	}
	return resp.ID
}

func doReq(t *testing.T, baseURL, method, path, debugUserID string, body any) (int, []byte) {
	t.Helper()

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("json marshal: %v", err)
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, baseURL+path, rdr)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if debugUserID != "" {
		req.Header.Set("X-Debug-User-ID", debugUserID)
	}

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer res.Body.Close()

	respBody, _ := io.ReadAll(res.Body)
	return res.StatusCode, respBody
}
