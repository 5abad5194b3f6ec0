package model

import "time"

// KVEntry is one row of the flat key-value blob store.
type KVEntry struct {
	Key       string    `gorm:"primaryKey;size:191"`
	Value     []byte    `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}
