package gormrepo

import (
	"context"
	"errors"
	"time"

	"skyladder/internal/adapter/repo/gorm/model"
	"skyladder/internal/app/ports"
	"skyladder/internal/domain/meta"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SaveRepo struct {
	db *gorm.DB
}

func NewSaveRepo(db *gorm.DB) SaveRepo {
	return SaveRepo{db: db}
}

// Load decodes the stored record. A payload that no longer parses yields
// the default record instead of an error.
func (r SaveRepo) Load(ctx context.Context, profileID string) (meta.Record, error) {
	var m model.SaveRecord
	if err := getDBFromCtx(ctx, r.db).Where("profile_id = ?", profileID).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return meta.Record{}, ports.ErrNotFound
		}
		return meta.Record{}, err
	}
	rec, _ := meta.Decode(m.Payload)
	return rec, nil
}

func (r SaveRepo) Save(ctx context.Context, profileID string, record meta.Record) error {
	payload, err := meta.Encode(record)
	if err != nil {
		return err
	}
	row := model.SaveRecord{
		ProfileID: profileID,
		Payload:   payload,
		UpdatedAt: time.Now().UTC(),
	}
	return getDBFromCtx(ctx, r.db).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "profile_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"payload", "updated_at"}),
	}).Create(&row).Error
}
