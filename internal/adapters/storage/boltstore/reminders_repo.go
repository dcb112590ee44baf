package boltstore

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
	"time"

	bolt "go.etcd.io/bbolt"

	"pet-care-insights/internal/domain/reminders"
)

type reminderDoc struct {
	ID        string                 `json:"id"`
	PetID     string                 `json:"pet_id"`
	Title     string                 `json:"title"`
	Date      time.Time              `json:"date"`
	Type      reminders.ReminderType `json:"type"`
	Status    reminders.Status       `json:"status"`
	Notes     string                 `json:"notes,omitempty"`
	CreatedAt time.Time              `json:"created_at"`
	UpdatedAt time.Time              `json:"updated_at"`
}

type reminderRepo struct {
	s *Store
}

func (s *Store) Reminders() reminders.Repository {
	return &reminderRepo{s: s}
}

func (r *reminderRepo) Create(ctx context.Context, rem reminders.Reminder) error {
	return r.s.db.Update(func(tx *bolt.Tx) error {
		return put(tx, bucketReminders, rem.ID, reminderDoc(rem))
	})
}

func (r *reminderRepo) GetByID(ctx context.Context, id string) (reminders.Reminder, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return reminders.Reminder{}, reminders.ErrNotFound
	}

	var doc reminderDoc
	var found bool
	err := r.s.db.View(func(tx *bolt.Tx) error {
		var err error
		found, err = get(tx, bucketReminders, id, &doc)
		return err
	})
	if err != nil {
		return reminders.Reminder{}, err
	}
	if !found {
		return reminders.Reminder{}, reminders.ErrNotFound
	}
	return reminders.Reminder(doc), nil
}

func (r *reminderRepo) ListByPet(ctx context.Context, petID string, status reminders.Status) ([]reminders.Reminder, error) {
	out := make([]reminders.Reminder, 0)
	err := r.s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketReminders).ForEach(func(_, v []byte) error {
			var doc reminderDoc
			if err := json.Unmarshal(v, &doc); err != nil {
				return err
			}
			if doc.PetID != petID || (status != "" && doc.Status != status) {
				return nil
			}
			out = append(out, reminders.Reminder(doc))
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Date.Equal(out[j].Date) {
			return out[i].ID < out[j].ID
		}
		return out[i].Date.Before(out[j].Date)
	})
	return out, nil
}

func (r *reminderRepo) SetStatus(ctx context.Context, id string, status reminders.Status, at time.Time) error {
	return r.s.db.Update(func(tx *bolt.Tx) error {
		var doc reminderDoc
		found, err := get(tx, bucketReminders, id, &doc)
		if err != nil {
			return err
		}
		if !found {
			return reminders.ErrNotFound
		}
		doc.Status = status
		doc.UpdatedAt = at
		return put(tx, bucketReminders, id, doc)
	})
}
