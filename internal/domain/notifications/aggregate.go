package notifications

import (
	"errors"
	"sort"
	"time"

	"pet-care-insights/internal/domain/events"
	"pet-care-insights/internal/domain/pets"
	"pet-care-insights/internal/domain/reminders"
	"pet-care-insights/internal/domain/urgency"
)

// Aggregate es puro: mismos datos y mismo now => mismo Feed.
func Aggregate(evs []events.CalendarEvent, rems []reminders.Reminder, petList []pets.Pet, now time.Time) Feed {
	names := pets.NameIndex(petList)
	feed := Empty()

	add := func(n Notification, ts time.Time) {
		c, err := urgency.Classify(ts, now)
		if err != nil {
			if errors.Is(err, urgency.ErrInvalidTimestamp) {
				feed.Skipped++
			}
			return
		}

		n.Urgency = c.Level
		n.TimeLabel = c.TimeLabel
		n.SourceDate = ts
		n.PetName = petName(names, n.PetID)
		feed.Notifications = append(feed.Notifications, n)
	}

	for _, e := range evs {
		if e.Status != events.EventStatusPending {
			continue
		}
		add(Notification{
			ID:          "event:" + e.ID,
			Title:       e.Title,
			Description: e.Notes,
			PetID:       e.PetID,
			Source:      SourceEvent,
			Category:    CategoryCalendar,
			LinkTarget:  CategoryCalendar,
		}, e.Date)
	}

	for _, r := range rems {
		if r.Status != reminders.StatusActive {
			continue
		}
		cat := reminderCategory(r.Type)
		add(Notification{
			ID:          "reminder:" + r.ID,
			Title:       r.Title,
			Description: r.Notes,
			PetID:       r.PetID,
			Source:      SourceReminder,
			Category:    cat,
			LinkTarget:  cat,
		}, r.Date)
	}

	sort.SliceStable(feed.Notifications, func(i, j int) bool {
		a, b := feed.Notifications[i], feed.Notifications[j]
		if a.Urgency.Rank() != b.Urgency.Rank() {
			return a.Urgency.Rank() < b.Urgency.Rank()
		}
		return a.SourceDate.Before(b.SourceDate)
	})

	for _, n := range feed.Notifications {
		if n.Urgency.Unread() {
			feed.UnreadCount++
		}
	}
	return feed
}

// Las consultas se gestionan desde el calendario; el resto desde recordatorios.
func reminderCategory(t reminders.ReminderType) Category {
	if t == reminders.ReminderTypeVisit {
		return CategoryCalendar
	}
	return CategoryReminders
}

func petName(names map[string]string, id string) string {
	if n, ok := names[id]; ok {
		return n
	}
	return pets.PlaceholderName
}
