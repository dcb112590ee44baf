package boltstore

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	bolt "go.etcd.io/bbolt"

	"pet-care-insights/internal/domain/records"
)

// recordDoc envuelve el Payload de la API; las fechas quedan en RFC3339 con
// offset, así que decodificar con UTC no pierde información.
type recordDoc struct {
	PetID   string          `json:"pet_id"`
	Seq     uint64          `json:"seq"`
	Payload records.Payload `json:"payload"`
}

type recordRepo struct {
	s *Store
}

func (s *Store) Records() records.Repository {
	return &recordRepo{s: s}
}

func (r *recordRepo) Create(ctx context.Context, rec records.Record) error {
	return r.s.db.Update(func(tx *bolt.Tx) error {
		seq, err := tx.Bucket(bucketRecords).NextSequence()
		if err != nil {
			return err
		}
		return put(tx, bucketRecords, rec.RecordID(), recordDoc{
			PetID:   rec.PetRef(),
			Seq:     seq,
			Payload: records.ToPayload(rec),
		})
	})
}

// ListByPet respeta el orden de alta, igual que el adapter en memoria.
func (r *recordRepo) ListByPet(ctx context.Context, petID string, filter records.ListFilter) ([]records.Record, error) {
	type seqRecord struct {
		seq uint64
		rec records.Record
	}
	var found []seqRecord

	err := r.s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketRecords).ForEach(func(k, v []byte) error {
			var doc recordDoc
			if err := json.Unmarshal(v, &doc); err != nil {
				return err
			}
			if doc.PetID != petID || !filter.WantsKind(doc.Payload.Kind) {
				return nil
			}
			rec, err := doc.Payload.ToRecord(time.UTC)
			if err != nil {
				return fmt.Errorf("boltstore: record %s: %w", k, err)
			}
			rec = records.WithPet(rec, doc.PetID)
			if filter.Matches(rec) {
				found = append(found, seqRecord{seq: doc.Seq, rec: rec})
			}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(found, func(i, j int) bool { return found[i].seq < found[j].seq })
	out := make([]records.Record, 0, len(found))
	for _, f := range found {
		out = append(out, f.rec)
	}
	return out, nil
}
