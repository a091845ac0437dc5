package storage

import "time"

// Entry is one persisted key-value pair.
type Entry struct {
	Key       string
	Value     string
	UpdatedAt time.Time
}
