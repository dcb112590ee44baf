// Package boltstore persiste las mascotas y su historial en un archivo bbolt
// local. Lo usa la CLI (modo offline) y la API cuando no hay DB_DSN.
//
// Buckets:
//
//	pets     : perfil de cada mascota, clave = id
//	events   : eventos de calendario, clave = id
//	reminders: recordatorios, clave = id
//	records  : registros de salud (payload JSON de la API + pet_id)
//	_meta    : schema_version, created_at
package boltstore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	bolt "go.etcd.io/bbolt"
)

const schemaVersion = 1

var (
	bucketPets      = []byte("pets")
	bucketEvents    = []byte("events")
	bucketReminders = []byte("reminders")
	bucketRecords   = []byte("records")
	bucketInternal  = []byte("_meta")
)

type Store struct {
	db *bolt.DB
}

// Open abre (o crea) la base en path, creando directorios y buckets.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("boltstore: creating db directory: %w", err)
	}

	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: 2 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("boltstore: opening %s: %w", path, err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("boltstore: migration: %w", err)
	}
	return s, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) Path() string {
	return s.db.Path()
}

// SchemaVersion lee la versión grabada en _meta.
func (s *Store) SchemaVersion() (int, error) {
	var v int
	err := s.db.View(func(tx *bolt.Tx) error {
		raw := tx.Bucket(bucketInternal).Get([]byte("schema_version"))
		if raw == nil {
			return nil
		}
		n, err := strconv.Atoi(string(raw))
		v = n
		return err
	})
	return v, err
}

func (s *Store) migrate() error {
	return s.db.Update(func(tx *bolt.Tx) error {
		for _, name := range [][]byte{bucketPets, bucketEvents, bucketReminders, bucketRecords, bucketInternal} {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return fmt.Errorf("creating bucket %s: %w", name, err)
			}
		}

		meta := tx.Bucket(bucketInternal)
		if meta.Get([]byte("schema_version")) == nil {
			if err := meta.Put([]byte("schema_version"), []byte(strconv.Itoa(schemaVersion))); err != nil {
				return err
			}
			if err := meta.Put([]byte("created_at"), []byte(time.Now().UTC().Format(time.RFC3339))); err != nil {
				return err
			}
		}
		return nil
	})
}

func put(tx *bolt.Tx, bucket []byte, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding %s/%s: %w", bucket, key, err)
	}
	return tx.Bucket(bucket).Put([]byte(key), data)
}

// get devuelve false si la clave no existe.
func get(tx *bolt.Tx, bucket []byte, key string, v any) (bool, error) {
	raw := tx.Bucket(bucket).Get([]byte(key))
	if raw == nil {
		return false, nil
	}
	return true, json.Unmarshal(raw, v)
}
