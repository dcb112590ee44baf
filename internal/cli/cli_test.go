package cli_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"pet-care-insights/internal/cli"
)

const snapshotJSON = `{
  "pets": [
    {"id": "p1", "owner_user_id": "u1", "name": "Milo", "species": "dog",
     "vaccinations": [{"name": "Parvo", "date": "2024-03-01", "next_date": "2025-03-01"}]},
    {"id": "p2", "owner_user_id": "u2", "name": "Ajena"}
  ],
  "events": [
    {"id": "e1", "pet_id": "p1", "title": "Control anual", "date": "2025-03-10T11:00:00Z", "type": "visit"},
    {"id": "e2", "pet_id": "p2", "title": "No es mío", "date": "2025-03-10T11:00:00Z", "type": "visit"}
  ],
  "reminders": [
    {"id": "r1", "pet_id": "p1", "title": "Pastilla", "date": "2025-03-11T10:00:00Z", "type": "medication"}
  ],
  "records": [
    {"pet_id": "p1", "kind": "metric", "category": "weight", "value": 10, "date": "2025-02-20"},
    {"pet_id": "p1", "kind": "metric", "category": "weight", "value": 11, "date": "2025-03-05"},
    {"pet_id": "p1", "kind": "vaccination", "name": "Rabies", "date": "2024-03-14", "next_date": "2025-03-14"}
  ]
}`

const fixedNow = "2025-03-10T09:00:00Z"

func writeSnapshot(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "snapshot.json")
	if err := os.WriteFile(path, []byte(snapshotJSON), 0o600); err != nil {
		t.Fatalf("write snapshot: %v", err)
	}
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	root := cli.NewRootCmd()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestNotifications_JSON(t *testing.T) {
	data := writeSnapshot(t)

	out, err := run(t, "notifications", "--data", data, "--user", "u1", "--now", fixedNow, "--format", "json")
	if err != nil {
		t.Fatalf("notifications: %v", err)
	}

	var feed struct {
		Notifications []struct {
			ID      string `json:"id"`
			Time    string `json:"time"`
			Urgency string `json:"urgency"`
		} `json:"notifications"`
		UnreadCount int `json:"unread_count"`
	}
	if err := json.Unmarshal([]byte(out), &feed); err != nil {
		t.Fatalf("decode: %v out=%s", err, out)
	}
	if len(feed.Notifications) != 2 {
		t.Fatalf("expected 2 notifications (own pets only), got %s", out)
	}
	if feed.Notifications[0].ID != "event:e1" || feed.Notifications[0].Time != "Today at 11:00" {
		t.Fatalf("unexpected first notification: %+v", feed.Notifications[0])
	}
	if feed.Notifications[1].Urgency != "medium" {
		t.Fatalf("expected reminder tomorrow as medium: %+v", feed.Notifications[1])
	}
	if feed.UnreadCount != 2 {
		t.Fatalf("expected unread 2, got %d", feed.UnreadCount)
	}
}

func TestNotifications_TableAndTimezone(t *testing.T) {
	data := writeSnapshot(t)

	out, err := run(t, "notifications", "--data", data, "--user", "u1", "--now", fixedNow, "--tz", "America/Argentina/Buenos_Aires")
	if err != nil {
		t.Fatalf("notifications: %v", err)
	}
	// 11:00Z = 08:00 en Buenos Aires
	if !strings.Contains(out, "Today at 08:00") {
		t.Fatalf("expected local label, got:\n%s", out)
	}
	if !strings.Contains(out, "2 unread") {
		t.Fatalf("expected unread footer, got:\n%s", out)
	}
}

func TestNotifications_RequiresUserAndSource(t *testing.T) {
	if _, err := run(t, "notifications", "--user", "u1"); err == nil {
		t.Fatalf("expected error without --data/--db")
	}
	data := writeSnapshot(t)
	if _, err := run(t, "notifications", "--data", data); err == nil {
		t.Fatalf("expected error without --user")
	}
	if _, err := run(t, "notifications", "--data", data, "--user", "u1", "--format", "xml"); err == nil {
		t.Fatalf("expected error on unknown format")
	}
}

func TestVaccines_Table(t *testing.T) {
	data := writeSnapshot(t)

	out, err := run(t, "vaccines", "--data", data, "--pet", "p1", "--now", fixedNow)
	if err != nil {
		t.Fatalf("vaccines: %v", err)
	}
	for _, want := range []string{"Rabies", "Due soon", "Parvo", "Overdue"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestVaccines_ForeignUserForbidden(t *testing.T) {
	data := writeSnapshot(t)
	if _, err := run(t, "vaccines", "--data", data, "--pet", "p1", "--user", "u2", "--now", fixedNow); err == nil {
		t.Fatalf("expected error for another user's pet")
	}
}

func TestReport_JSONSections(t *testing.T) {
	data := writeSnapshot(t)

	out, err := run(t, "report", "--data", data, "--pet", "p1", "--now", fixedNow,
		"--range", "30d", "--sections", "weight", "--format", "json")
	if err != nil {
		t.Fatalf("report: %v", err)
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal([]byte(out), &raw); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if _, ok := raw["weight"]; !ok {
		t.Fatalf("expected weight section: %s", out)
	}
	if _, ok := raw["vaccinations"]; ok {
		t.Fatalf("vaccinations must be absent: %s", out)
	}
}

func TestReport_TableAndErrors(t *testing.T) {
	data := writeSnapshot(t)

	out, err := run(t, "report", "--data", data, "--pet", "p1", "--now", fixedNow)
	if err != nil {
		t.Fatalf("report: %v", err)
	}
	if !strings.Contains(out, "current 11.0") || !strings.Contains(out, "trend up") {
		t.Fatalf("unexpected weight summary:\n%s", out)
	}

	if _, err := run(t, "report", "--data", data, "--pet", "p1", "--range", "2d"); err == nil {
		t.Fatalf("expected error on unknown preset")
	}
	if _, err := run(t, "report", "--data", data, "--pet", "p1", "--sections", "teeth"); err == nil {
		t.Fatalf("expected error on unknown section")
	}
	if _, err := run(t, "report", "--data", data); err == nil {
		t.Fatalf("expected error without --pet")
	}
}

func TestImport_ThenQueryBolt(t *testing.T) {
	data := writeSnapshot(t)
	db := filepath.Join(t.TempDir(), "petcare.db")

	out, err := run(t, "import", "--data", data, "--db", db)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if !strings.Contains(out, "imported 2 pets, 2 events, 1 reminders, 3 records") {
		t.Fatalf("unexpected import summary: %s", out)
	}

	out, err = run(t, "notifications", "--db", db, "--user", "u1", "--now", fixedNow, "--format", "json")
	if err != nil {
		t.Fatalf("notifications from bolt: %v", err)
	}
	if !strings.Contains(out, `"event:e1"`) {
		t.Fatalf("expected e1 from bolt store: %s", out)
	}
}

func TestImport_RequiresBothPaths(t *testing.T) {
	data := writeSnapshot(t)
	if _, err := run(t, "import", "--data", data); err == nil {
		t.Fatalf("expected error without --db")
	}
}

func TestVaccines_RelativeDue(t *testing.T) {
	data := writeSnapshot(t)

	out, err := run(t, "vaccines", "--data", data, "--pet", "p1", "--now", fixedNow)
	if err != nil {
		t.Fatalf("vaccines: %v", err)
	}
	if !strings.Contains(out, "from now") || !strings.Contains(out, "ago") {
		t.Fatalf("expected relative due column:\n%s", out)
	}
}
