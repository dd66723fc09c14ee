package gormrepo

import (
	"context"
	"encoding/json"
	"errors"

	"skyladder/internal/adapter/repo/gorm/model"
	"skyladder/internal/app/ports"

	"gorm.io/gorm"
)

type IntentExecutionRepo struct {
	db *gorm.DB
}

func NewIntentExecutionRepo(db *gorm.DB) IntentExecutionRepo {
	return IntentExecutionRepo{db: db}
}

func (r IntentExecutionRepo) GetByIdempotencyKey(ctx context.Context, profileID, key string) (*ports.IntentExecutionRecord, error) {
	var m model.IntentExecution
	err := getDBFromCtx(ctx, r.db).
		Where(&model.IntentExecution{ProfileID: profileID, IdempotencyKey: key}).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	var result ports.IntentResult
	if err := json.Unmarshal(m.Result, &result); err != nil {
		return nil, err
	}
	return &ports.IntentExecutionRecord{
		ProfileID:      m.ProfileID,
		IdempotencyKey: m.IdempotencyKey,
		IntentType:     m.IntentType,
		Result:         result,
		AppliedAt:      m.AppliedAt,
	}, nil
}

func (r IntentExecutionRepo) SaveExecution(ctx context.Context, execution ports.IntentExecutionRecord) error {
	resultJSON, err := json.Marshal(execution.Result)
	if err != nil {
		return err
	}
	m := model.IntentExecution{
		ProfileID:      execution.ProfileID,
		IdempotencyKey: execution.IdempotencyKey,
		IntentType:     execution.IntentType,
		ResultCode:     string(execution.Result.ResultCode),
		Result:         resultJSON,
		AppliedAt:      execution.AppliedAt,
	}
	if err := getDBFromCtx(ctx, r.db).Create(&m).Error; err != nil {
		if isUniqueViolation(err) {
			return ports.ErrConflict
		}
		return err
	}
	return nil
}
