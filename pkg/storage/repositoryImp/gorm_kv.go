package repositoryImp

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"agniro/entities"
	"agniro/pkg/storage/repository"
)

type gormKV struct{ db *gorm.DB }

func New(db *gorm.DB) repository.KVRepository { return &gormKV{db} }

func (r *gormKV) Get(clientID, key string) ([]byte, bool, error) {
	var e entities.KVEntry
	err := r.db.Where("client_id = ? AND storage_key = ?", clientID, key).First(&e).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("kv get %s: %w", key, err)
	}
	return []byte(e.Value), true, nil
}

func (r *gormKV) Set(clientID, key string, value []byte) error {
	e := entities.KVEntry{ClientID: clientID, Key: key, Value: value}
	err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "client_id"}, {Name: "storage_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&e).Error
	if err != nil {
		return fmt.Errorf("kv set %s: %w", key, err)
	}
	return nil
}

func (r *gormKV) Remove(clientID, key string) error {
	err := r.db.Where("client_id = ? AND storage_key = ?", clientID, key).Delete(&entities.KVEntry{}).Error
	if err != nil {
		return fmt.Errorf("kv remove %s: %w", key, err)
	}
	return nil
}
