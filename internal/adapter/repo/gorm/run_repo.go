package gormrepo

import (
	"context"
	"encoding/json"
	"errors"

	"skyladder/internal/adapter/repo/gorm/model"
	"skyladder/internal/app/ports"
	"skyladder/internal/domain/ascent"

	"gorm.io/gorm"
)

type RunRepo struct {
	db *gorm.DB
}

func NewRunRepo(db *gorm.DB) RunRepo {
	return RunRepo{db: db}
}

func (r RunRepo) GetByProfileID(ctx context.Context, profileID string) (ascent.RunState, error) {
	var m model.RunState
	if err := getDBFromCtx(ctx, r.db).Where("profile_id = ?", profileID).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ascent.RunState{}, ports.ErrNotFound
		}
		return ascent.RunState{}, err
	}
	return toRunState(m)
}

func (r RunRepo) SaveWithVersion(ctx context.Context, run ascent.RunState, expectedVersion int64) error {
	db := getDBFromCtx(ctx, r.db)
	m, err := toRunModel(run)
	if err != nil {
		return err
	}
	if expectedVersion == 0 {
		if err := db.Create(&m).Error; err != nil {
			if isUniqueViolation(err) {
				return ports.ErrConflict
			}
			return err
		}
		return nil
	}

	updates := map[string]any{
		"phase":         m.Phase,
		"floor":         m.Floor,
		"player":        m.Player,
		"monster":       m.Monster,
		"offered_pills": m.OfferedPills,
		"active_event":  m.ActiveEvent,
		"story_text":    m.StoryText,
		"last_drop":     m.LastDrop,
		"version":       m.Version,
		"updated_at":    m.UpdatedAt,
	}

	res := db.Model(&model.RunState{}).
		Where("profile_id = ? AND version = ?", run.ProfileID, expectedVersion).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ports.ErrConflict
	}
	return nil
}

func toRunModel(run ascent.RunState) (model.RunState, error) {
	m := model.RunState{
		ProfileID:   run.ProfileID,
		Phase:       string(run.Phase),
		ActiveEvent: string(run.ActiveEvent),
		StoryText:   run.StoryText,
		Version:     run.Version,
		UpdatedAt:   run.UpdatedAt,
	}
	var err error
	if run.Player != nil {
		m.Floor = int32(run.Player.Floor)
		if m.Player, err = json.Marshal(run.Player); err != nil {
			return model.RunState{}, err
		}
	}
	if run.Monster != nil {
		if m.Monster, err = json.Marshal(run.Monster); err != nil {
			return model.RunState{}, err
		}
	}
	if len(run.OfferedPills) > 0 {
		if m.OfferedPills, err = json.Marshal(run.OfferedPills); err != nil {
			return model.RunState{}, err
		}
	}
	if run.LastDrop != nil {
		if m.LastDrop, err = json.Marshal(run.LastDrop); err != nil {
			return model.RunState{}, err
		}
	}
	return m, nil
}

func toRunState(m model.RunState) (ascent.RunState, error) {
	run := ascent.RunState{
		ProfileID:   m.ProfileID,
		Phase:       ascent.Phase(m.Phase),
		ActiveEvent: ascent.EventID(m.ActiveEvent),
		StoryText:   m.StoryText,
		Version:     m.Version,
		UpdatedAt:   m.UpdatedAt,
	}
	if len(m.Player) > 0 {
		run.Player = &ascent.Player{}
		if err := json.Unmarshal(m.Player, run.Player); err != nil {
			return ascent.RunState{}, err
		}
	}
	if len(m.Monster) > 0 {
		run.Monster = &ascent.Monster{}
		if err := json.Unmarshal(m.Monster, run.Monster); err != nil {
			return ascent.RunState{}, err
		}
	}
	if len(m.OfferedPills) > 0 {
		if err := json.Unmarshal(m.OfferedPills, &run.OfferedPills); err != nil {
			return ascent.RunState{}, err
		}
	}
	if len(m.LastDrop) > 0 {
		run.LastDrop = &ascent.Equipment{}
		if err := json.Unmarshal(m.LastDrop, run.LastDrop); err != nil {
			return ascent.RunState{}, err
		}
	}
	return run, nil
}
