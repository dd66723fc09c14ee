package status

import (
	"context"
	"errors"
	"strings"

	"skyladder/internal/app/ports"
	"skyladder/internal/domain/ascent"
	"skyladder/internal/domain/meta"
)

var ErrInvalidRequest = errors.New("invalid status request")

type UseCase struct {
	Runs    ports.RunRepository
	Saves   ports.SaveRepository
	Content ascent.Content
}

func (u UseCase) Execute(ctx context.Context, req Request) (Response, error) {
	req.ProfileID = strings.TrimSpace(req.ProfileID)
	if req.ProfileID == "" {
		return Response{}, ErrInvalidRequest
	}
	run, err := u.Runs.GetByProfileID(ctx, req.ProfileID)
	if errors.Is(err, ports.ErrNotFound) {
		run = ascent.RunState{ProfileID: req.ProfileID, Phase: ascent.PhaseNone}
	} else if err != nil {
		return Response{}, err
	}

	record, err := u.Saves.Load(ctx, req.ProfileID)
	if errors.Is(err, ports.ErrNotFound) {
		record = meta.NewRecord()
	} else if err != nil {
		return Response{}, err
	}
	record = record.Normalize()

	return Response{Run: run, Save: record, View: u.buildView(run, record)}, nil
}

func (u UseCase) buildView(run ascent.RunState, record meta.Record) View {
	phase := run.Phase
	if phase == "" {
		phase = ascent.PhaseNone
	}
	v := View{
		RestCost:       ascent.RestCost,
		AllowedIntents: ascent.AllowedIntents(phase),
		TalentCosts:    make(map[string]int, len(meta.TalentKeys)),
		ActiveBonds:    []ascent.ElementKey{},
	}
	for _, k := range meta.TalentKeys {
		level, _ := record.Talents.Level(k)
		v.TalentCosts[string(k)] = meta.TalentCost(level)
	}
	if run.ActiveEvent != "" && u.Content != nil {
		text := u.Content.EventText(run.ActiveEvent)
		v.EventText = &text
	}

	p := run.Player
	if p == nil {
		return v
	}
	v.Realm = ascent.RealmForFloor(p.Floor)
	v.CombatStats = ascent.CombatStats(*p)
	v.Bonds = ascent.CheckBonds(p.Elements)
	v.ActiveBonds = v.Bonds.Active()
	v.CraftCost = ascent.CalculateCraftCost(p.CraftAttemptsThisFloor, p.Talents.AlchemyEfficiency)
	v.NextMishap = ascent.MishapChance(p.CraftAttemptsThisFloor + 1)
	v.InterestPreview = ascent.CalculateInterest(p.Stones, p.Talents.InterestCap)
	v.VictoryReward = ascent.VictoryReward(p.Floor)
	return v
}
