package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"

	"pet-care-insights/internal/domain/notifications"
	"pet-care-insights/internal/domain/reports"
	"pet-care-insights/internal/domain/vaccines"
	"pet-care-insights/internal/platform/dates"
)

func newTable(w io.Writer, header []string) *tablewriter.Table {
	tw := tablewriter.NewWriter(w)
	tw.SetHeader(header)
	tw.SetBorder(true)
	tw.SetRowLine(false)
	tw.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	tw.SetAlignment(tablewriter.ALIGN_LEFT)
	tw.SetAutoWrapText(false)
	return tw
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// ─── notifications ────────────────────────────────────────────────────────────

type notificationJSON struct {
	ID       string    `json:"id"`
	Title    string    `json:"title"`
	Time     string    `json:"time"`
	PetID    string    `json:"pet_id"`
	PetName  string    `json:"pet_name"`
	Urgency  string    `json:"urgency"`
	Source   string    `json:"source"`
	Category string    `json:"category"`
	Date     time.Time `json:"date"`
}

func renderNotifications(w io.Writer, feed notifications.Feed, format string) error {
	if format == FormatJSON {
		out := struct {
			Notifications []notificationJSON `json:"notifications"`
			UnreadCount   int                `json:"unread_count"`
		}{Notifications: make([]notificationJSON, 0, len(feed.Notifications)), UnreadCount: feed.UnreadCount}
		for _, n := range feed.Notifications {
			out.Notifications = append(out.Notifications, notificationJSON{
				ID: n.ID, Title: n.Title, Time: n.TimeLabel, PetID: n.PetID, PetName: n.PetName,
				Urgency: string(n.Urgency), Source: string(n.Source), Category: string(n.Category), Date: n.SourceDate,
			})
		}
		return writeJSON(w, out)
	}

	if len(feed.Notifications) == 0 {
		_, err := fmt.Fprintln(w, "No notifications.")
		return err
	}

	tw := newTable(w, []string{"URGENCY", "WHEN", "PET", "TITLE", "SOURCE", "CATEGORY"})
	for _, n := range feed.Notifications {
		tw.Append([]string{
			strings.ToUpper(string(n.Urgency)),
			n.TimeLabel,
			n.PetName,
			n.Title,
			string(n.Source),
			string(n.Category),
		})
	}
	tw.Render()
	_, err := fmt.Fprintf(w, "%d unread\n", feed.UnreadCount)
	return err
}

// ─── vaccines ─────────────────────────────────────────────────────────────────

type vaccineJSON struct {
	Name     string     `json:"name"`
	Date     time.Time  `json:"date"`
	NextDate *time.Time `json:"next_date,omitempty"`
	Source   string     `json:"source"`
	Status   string     `json:"status"`
	Label    string     `json:"label"`
}

func renderVaccines(w io.Writer, p vaccines.Partitioned, format string, now time.Time) error {
	if format == FormatJSON {
		conv := func(in []vaccines.Evaluated) []vaccineJSON {
			out := make([]vaccineJSON, 0, len(in))
			for _, v := range in {
				out = append(out, vaccineJSON{
					Name: v.Name, Date: v.Date, NextDate: v.NextDate,
					Source: string(v.Source), Status: string(v.Status), Label: v.Status.Label(),
				})
			}
			return out
		}
		return writeJSON(w, struct {
			Applied  []vaccineJSON `json:"applied"`
			Upcoming []vaccineJSON `json:"upcoming"`
		}{conv(p.Applied), conv(p.Upcoming)})
	}

	tw := newTable(w, []string{"VACCINE", "STATUS", "APPLIED", "NEXT", "DUE", "SOURCE"})
	for _, group := range [][]vaccines.Evaluated{p.Upcoming, p.Applied} {
		for _, v := range group {
			tw.Append([]string{
				v.Name,
				v.Status.Label(),
				v.Date.Format(dates.DateFormat),
				optionalDate(v.NextDate),
				relative(v.NextDate, now),
				string(v.Source),
			})
		}
	}
	tw.Render()
	return nil
}

// ─── report ───────────────────────────────────────────────────────────────────

func renderReport(w io.Writer, c reports.Content, format string) error {
	if format == FormatJSON {
		return writeJSON(w, c)
	}

	if _, err := fmt.Fprintf(w, "%s  %s .. %s (%s)\n",
		c.PetName,
		c.Range.Start.Format(dates.DateFormat),
		c.Range.End.Format(dates.DateFormat),
		c.Range.Preset,
	); err != nil {
		return err
	}

	tw := newTable(w, []string{"SECTION", "SUMMARY"})
	for _, row := range reportRows(c) {
		tw.Append(row)
	}
	tw.Render()
	return nil
}

// reportRows resume cada sección presente en una línea, en el orden canónico.
func reportRows(c reports.Content) [][]string {
	var rows [][]string
	add := func(s reports.Section, summary string) {
		rows = append(rows, []string{string(s), summary})
	}

	if s := c.Weight; s != nil {
		parts := []string{fmt.Sprintf("%d points", len(s.Points))}
		if s.Current != nil {
			parts = append(parts, fmt.Sprintf("current %.1f", *s.Current))
		}
		if s.Average != nil {
			parts = append(parts, fmt.Sprintf("avg %.1f", *s.Average))
		}
		if s.Trend != nil {
			parts = append(parts, fmt.Sprintf("trend %s %.1f%%", s.Trend.Direction, s.Trend.Percentage))
		}
		add(reports.SectionWeight, strings.Join(parts, ", "))
	}
	if s := c.Activity; s != nil {
		parts := []string{fmt.Sprintf("%d logs", s.Logs), fmt.Sprintf("%d min total", s.TotalMinutes)}
		if s.AverageMinutes != nil {
			parts = append(parts, fmt.Sprintf("avg %d min", *s.AverageMinutes))
		}
		if s.MostFrequentLevel != "" {
			parts = append(parts, "mostly "+s.MostFrequentLevel)
		}
		add(reports.SectionActivity, strings.Join(parts, ", "))
	}
	if s := c.Vaccinations; s != nil {
		add(reports.SectionVaccinations, fmt.Sprintf("%d applied, %d upcoming, %d possible duplicates",
			len(s.History), len(s.Upcoming), len(s.PossibleDuplicates)))
	}
	if s := c.Medications; s != nil {
		add(reports.SectionMedications, fmt.Sprintf("%d active, %d in history", len(s.Active), len(s.History)))
	}
	if s := c.Visits; s != nil {
		add(reports.SectionVisits, fmt.Sprintf("%d past, %d upcoming", len(s.History), len(s.Upcoming)))
	}
	if s := c.Symptoms; s != nil {
		add(reports.SectionSymptoms, countsSummary(s.Counts, s.Total))
	}
	if s := c.Food; s != nil {
		add(reports.SectionFood, fmt.Sprintf("%d entries", len(s.Entries)))
	}
	if s := c.Water; s != nil {
		summary := countsSummary(s.Levels, -1)
		if s.MostFrequent != "" {
			summary += ", mostly " + s.MostFrequent
		}
		add(reports.SectionWater, summary)
	}
	return rows
}

// countsSummary: total < 0 omite el total.
func countsSummary(counts []reports.Count, total int) string {
	if len(counts) == 0 {
		return "none"
	}
	parts := make([]string, 0, len(counts)+1)
	for _, c := range counts {
		parts = append(parts, fmt.Sprintf("%s (%d)", c.Value, c.Count))
	}
	if total >= 0 {
		parts = append(parts, fmt.Sprintf("total %d", total))
	}
	return strings.Join(parts, ", ")
}

// relative: "3 days from now" / "1 week ago".
func relative(t *time.Time, now time.Time) string {
	if t == nil {
		return "-"
	}
	return humanize.RelTime(*t, now, "ago", "from now")
}

func optionalDate(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.Format(dates.DateFormat)
}
