package entities

import (
	"time"

	"gorm.io/datatypes"
)

// KVEntry is one JSON value under a client's storage key.
type KVEntry struct {
	ID        uint           `gorm:"primaryKey"`
	ClientID  string         `gorm:"uniqueIndex:idx_kv_client_key;size:64" json:"client_id"`
	Key       string         `gorm:"column:storage_key;uniqueIndex:idx_kv_client_key;size:128" json:"key"`
	Value     datatypes.JSON `json:"value"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
