package play

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"skyladder/internal/app/ports"
	"skyladder/internal/domain/ascent"
	"skyladder/internal/domain/meta"
)

var ErrInvalidRequest = errors.New("invalid intent request")

type UseCase struct {
	TxManager   ports.TxManager
	Runs        ports.RunRepository
	Saves       ports.SaveRepository
	Events      ports.EventRepository
	Executions  ports.IntentExecutionRepository
	Metrics     ports.IntentMetrics
	Progression ascent.ProgressionService
	Log         zerolog.Logger
	Now         func() time.Time
}

func (u UseCase) Execute(ctx context.Context, req Request) (Response, error) {
	req.ProfileID = strings.TrimSpace(req.ProfileID)
	req.IdempotencyKey = strings.TrimSpace(req.IdempotencyKey)
	req.Intent.Type = ascent.IntentType(strings.TrimSpace(string(req.Intent.Type)))
	if req.ProfileID == "" || req.Intent.Type == "" {
		return Response{}, ErrInvalidRequest
	}

	nowFn := u.Now
	if nowFn == nil {
		nowFn = time.Now
	}
	svc := u.Progression
	if svc.Now == nil {
		svc.Now = nowFn
	}
	log := u.Log.With().Str("profile_id", req.ProfileID).Str("intent", string(req.Intent.Type)).Logger()

	var out Response
	err := u.TxManager.RunInTx(ctx, func(txCtx context.Context) error {
		if replay, ok, err := u.replayIdempotent(txCtx, req); err != nil {
			return err
		} else if ok {
			out = replay
			return nil
		}

		run, err := u.loadRun(txCtx, req.ProfileID)
		if err != nil {
			return err
		}
		record, recordLoaded := u.loadRecord(txCtx, req.ProfileID, log)

		res, err := svc.Apply(run, record, req.Intent)
		if err != nil {
			return err
		}

		if res.Run.Version != run.Version {
			if err := u.Runs.SaveWithVersion(txCtx, res.Run, run.Version); err != nil {
				return fmt.Errorf("save run: %w", err)
			}
		}
		if len(res.Events) > 0 && u.Events != nil {
			if err := u.Events.Append(txCtx, req.ProfileID, res.Events); err != nil {
				return fmt.Errorf("append events: %w", err)
			}
		}
		out = Response{
			Run:        res.Run,
			Save:       res.Record,
			Events:     res.Events,
			ResultCode: res.ResultCode,
		}
		if req.IdempotencyKey != "" && u.Executions != nil {
			if err := u.Executions.SaveExecution(txCtx, ports.IntentExecutionRecord{
				ProfileID:      req.ProfileID,
				IdempotencyKey: req.IdempotencyKey,
				IntentType:     string(req.Intent.Type),
				Result: ports.IntentResult{
					Run:        out.Run,
					Record:     out.Save,
					Events:     out.Events,
					ResultCode: out.ResultCode,
				},
				AppliedAt: nowFn(),
			}); err != nil {
				return fmt.Errorf("save execution: %w", err)
			}
		}
		switch {
		case !res.RecordChanged:
		case !recordLoaded:
			log.Warn().Msg("record was unreadable; skipping save so the stored record is kept")
		default:
			if err := u.Saves.Save(txCtx, req.ProfileID, res.Record); err != nil {
				log.Error().Err(err).Msg("save record failed; progress kept in memory only")
			}
		}
		if res.ResultCode == ascent.ResultDeath {
			log.Info().
				Int("points", res.Record.Points).
				Int("rebirth_count", res.Record.RebirthCount).
				Msg("run ended")
		}
		return nil
	})
	if err != nil {
		if u.Metrics != nil {
			if errors.Is(err, ports.ErrConflict) {
				u.Metrics.RecordConflict()
			} else {
				u.Metrics.RecordFailure()
			}
		}
		return Response{}, err
	}
	if u.Metrics != nil {
		u.Metrics.RecordSuccess(req.Intent.Type, out.ResultCode)
	}
	return out, nil
}

func (u UseCase) replayIdempotent(ctx context.Context, req Request) (Response, bool, error) {
	if req.IdempotencyKey == "" || u.Executions == nil {
		return Response{}, false, nil
	}
	exec, err := u.Executions.GetByIdempotencyKey(ctx, req.ProfileID, req.IdempotencyKey)
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return Response{}, false, nil
		}
		return Response{}, false, err
	}
	if exec == nil {
		return Response{}, false, nil
	}
	return Response{
		Run:        exec.Result.Run,
		Save:       exec.Result.Record,
		Events:     exec.Result.Events,
		ResultCode: exec.Result.ResultCode,
		Replayed:   true,
	}, true, nil
}

func (u UseCase) loadRun(ctx context.Context, profileID string) (ascent.RunState, error) {
	run, err := u.Runs.GetByProfileID(ctx, profileID)
	if errors.Is(err, ports.ErrNotFound) {
		return ascent.RunState{ProfileID: profileID, Phase: ascent.PhaseNone}, nil
	}
	if err != nil {
		return ascent.RunState{}, fmt.Errorf("load run: %w", err)
	}
	return run, nil
}

// loadRecord never fails: an unreadable save plays on with defaults. The
// second result is false when a stored record may exist but could not be
// read, and the defaults must then never be written back over it.
func (u UseCase) loadRecord(ctx context.Context, profileID string, log zerolog.Logger) (meta.Record, bool) {
	record, err := u.Saves.Load(ctx, profileID)
	switch {
	case errors.Is(err, ports.ErrNotFound):
		return meta.NewRecord(), true
	case err != nil:
		log.Warn().Err(err).Msg("load record failed; using defaults")
		return meta.NewRecord(), false
	}
	return record.Normalize(), true
}
