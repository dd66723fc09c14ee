package gormrepo

import (
	"context"
	"errors"
	"strings"
	"time"

	"skyladder/internal/adapter/repo/gorm/model"
	"skyladder/internal/app/ports"

	"gorm.io/gorm"
)

type ProfileCredentialRepo struct {
	db *gorm.DB
}

func NewProfileCredentialRepo(db *gorm.DB) ProfileCredentialRepo {
	return ProfileCredentialRepo{db: db}
}

func (r ProfileCredentialRepo) Create(ctx context.Context, credential ports.ProfileCredentialRecord) error {
	row := model.ProfileCredential{
		ProfileID: credential.ProfileID,
		KeySalt:   credential.KeySalt,
		KeyHash:   credential.KeyHash,
		Status:    credential.Status,
		CreatedAt: credential.CreatedAt,
		UpdatedAt: time.Now().UTC(),
	}
	if err := getDBFromCtx(ctx, r.db).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return ports.ErrConflict
		}
		return err
	}
	return nil
}

func (r ProfileCredentialRepo) GetByProfileID(ctx context.Context, profileID string) (ports.ProfileCredentialRecord, error) {
	var row model.ProfileCredential
	if err := getDBFromCtx(ctx, r.db).Where(&model.ProfileCredential{ProfileID: profileID}).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.ProfileCredentialRecord{}, ports.ErrNotFound
		}
		return ports.ProfileCredentialRecord{}, err
	}
	return ports.ProfileCredentialRecord{
		ProfileID: row.ProfileID,
		KeySalt:   row.KeySalt,
		KeyHash:   row.KeyHash,
		Status:    row.Status,
		CreatedAt: row.CreatedAt,
	}, nil
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "unique constraint")
}
