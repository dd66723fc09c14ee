package replay

import (
	"context"
	"errors"
	"strings"

	"skyladder/internal/app/ports"
	"skyladder/internal/domain/ascent"
)

var ErrInvalidRequest = errors.New("invalid replay request")

const DefaultLimit = 200

type UseCase struct {
	Events ports.EventRepository
}

func (u UseCase) Execute(ctx context.Context, req Request) (Response, error) {
	req.ProfileID = strings.TrimSpace(req.ProfileID)
	if req.ProfileID == "" || req.Limit < 0 {
		return Response{}, ErrInvalidRequest
	}
	if req.Limit == 0 {
		req.Limit = DefaultLimit
	}
	events, err := u.Events.ListByProfileID(ctx, req.ProfileID, req.Limit)
	if err != nil {
		return Response{}, err
	}
	events = filterEvents(events, req)
	return Response{Events: events, Summary: summarize(events)}, nil
}

func filterEvents(events []ascent.DomainEvent, req Request) []ascent.DomainEvent {
	if req.OccurredFrom <= 0 && req.OccurredTo <= 0 && req.Category == "" {
		return events
	}
	out := make([]ascent.DomainEvent, 0, len(events))
	for _, evt := range events {
		ts := evt.OccurredAt.Unix()
		if req.OccurredFrom > 0 && ts < req.OccurredFrom {
			continue
		}
		if req.OccurredTo > 0 && ts > req.OccurredTo {
			continue
		}
		if req.Category != "" && evt.Category != req.Category {
			continue
		}
		out = append(out, evt)
	}
	return out
}

func summarize(events []ascent.DomainEvent) Summary {
	s := Summary{Achievements: []string{}}
	for _, evt := range events {
		switch evt.Type {
		case "floor_cleared":
			s.FloorsCleared++
			s.HighestFloor = max(s.HighestFloor, int(num(evt.Payload["floor"])))
		case "pills_offered":
			s.Crafts++
		case "craft_mishap":
			s.Crafts++
			s.Mishaps++
		case "equipment_dropped":
			s.Drops++
		case "player_died":
			s.Deaths++
			s.PointsEarned += int(num(evt.Payload["payout"]))
			s.HighestFloor = max(s.HighestFloor, int(num(evt.Payload["floor"])))
		case "achievement_unlocked":
			if id, ok := evt.Payload["achievement_id"].(string); ok {
				s.Achievements = append(s.Achievements, id)
			}
		}
	}
	return s
}

// num reads a numeric payload value; stored payloads come back from JSON as
// float64.
func num(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int64:
		return float64(n)
	default:
		return 0
	}
}
