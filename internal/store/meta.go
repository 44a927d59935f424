package store

import (
	"fmt"
	"strconv"
)

// Meta rows hold streak counters, lifetime totals and account flags.
// Unlike settings they are not user-editable.

func (s *Store) GetMeta(key string) (string, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM meta WHERE key = ?`, key).Scan(&value)
	if err != nil {
		return "", fmt.Errorf("get meta %q: %w", key, err)
	}
	return value, nil
}

func (s *Store) SetMeta(key, value string) error {
	_, err := s.db.Exec(
		`INSERT INTO meta (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	return err
}

func (s *Store) GetMetaInt(key string, fallback int) int {
	v, err := s.GetMeta(key)
	if err != nil {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func (s *Store) SetMetaInt(key string, value int) error {
	return s.SetMeta(key, strconv.Itoa(value))
}

func (s *Store) GetMetaBool(key string, fallback bool) bool {
	v, err := s.GetMeta(key)
	if err != nil {
		return fallback
	}
	return v == "1"
}

func (s *Store) SetMetaBool(key string, value bool) error {
	return s.SetMeta(key, strconv.Itoa(boolToInt(value)))
}
