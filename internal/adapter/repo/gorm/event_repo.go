package gormrepo

import (
	"context"
	"encoding/json"

	"skyladder/internal/adapter/repo/gorm/model"
	"skyladder/internal/domain/ascent"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type EventRepo struct {
	db *gorm.DB
}

func NewEventRepo(db *gorm.DB) EventRepo {
	return EventRepo{db: db}
}

func (r EventRepo) Append(ctx context.Context, profileID string, events []ascent.DomainEvent) error {
	if len(events) == 0 {
		return nil
	}
	rows := make([]model.DomainEvent, 0, len(events))
	for _, e := range events {
		var b []byte
		if len(e.Payload) > 0 {
			b, _ = json.Marshal(e.Payload)
		}
		rows = append(rows, model.DomainEvent{
			ProfileID:  profileID,
			Type:       e.Type,
			Category:   string(e.Category),
			Message:    e.Message,
			OccurredAt: e.OccurredAt,
			Payload:    b,
		})
	}
	return getDBFromCtx(ctx, r.db).Create(&rows).Error
}

func (r EventRepo) ListByProfileID(ctx context.Context, profileID string, limit int) ([]ascent.DomainEvent, error) {
	rows := []model.DomainEvent{}
	query := getDBFromCtx(ctx, r.db).
		Where(&model.DomainEvent{ProfileID: profileID}).
		Clauses(clause.OrderBy{
			Columns: []clause.OrderByColumn{
				{Column: clause.Column{Name: "occurred_at"}, Desc: true},
				{Column: clause.Column{Name: "id"}, Desc: true},
			},
		})
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]ascent.DomainEvent, 0, len(rows))
	for _, row := range rows {
		var payload map[string]any
		if len(row.Payload) > 0 {
			_ = json.Unmarshal(row.Payload, &payload)
		}
		out = append(out, ascent.DomainEvent{
			Type:       row.Type,
			Category:   ascent.Category(row.Category),
			Message:    row.Message,
			OccurredAt: row.OccurredAt,
			Payload:    payload,
		})
	}
	return out, nil
}
