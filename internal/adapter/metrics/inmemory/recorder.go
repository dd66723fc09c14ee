package inmemory

import (
	"sync"
	"time"

	"skyladder/internal/domain/ascent"
)

type Snapshot struct {
	IntentTotal    uint64            `json:"intent_total"`
	IntentSuccess  uint64            `json:"intent_success"`
	IntentConflict uint64            `json:"intent_conflict"`
	IntentFailure  uint64            `json:"intent_failure"`
	ByResultCode   map[string]uint64 `json:"by_result_code"`
	ByIntent       map[string]uint64 `json:"by_intent"`
	Deaths         uint64            `json:"deaths"`
	StartedAt      time.Time         `json:"started_at"`
}

// Recorder counts intent outcomes for the /ops/kpi endpoint.
type Recorder struct {
	mu        sync.Mutex
	success   uint64
	conflict  uint64
	failure   uint64
	byResult  map[string]uint64
	byIntent  map[string]uint64
	startedAt time.Time
}

func NewRecorder() *Recorder {
	return &Recorder{
		byResult:  map[string]uint64{},
		byIntent:  map[string]uint64{},
		startedAt: time.Now().UTC(),
	}
}

func (r *Recorder) RecordSuccess(intent ascent.IntentType, resultCode ascent.ResultCode) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.success++
	r.byResult[string(resultCode)]++
	r.byIntent[string(intent)]++
}

func (r *Recorder) RecordConflict() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.conflict++
}

func (r *Recorder) RecordFailure() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failure++
}

func (r *Recorder) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := Snapshot{
		IntentSuccess:  r.success,
		IntentConflict: r.conflict,
		IntentFailure:  r.failure,
		IntentTotal:    r.success + r.conflict + r.failure,
		ByResultCode:   make(map[string]uint64, len(r.byResult)),
		ByIntent:       make(map[string]uint64, len(r.byIntent)),
		Deaths:         r.byResult[string(ascent.ResultDeath)],
		StartedAt:      r.startedAt,
	}
	for k, v := range r.byResult {
		out.ByResultCode[k] = v
	}
	for k, v := range r.byIntent {
		out.ByIntent[k] = v
	}
	return out
}

func (r *Recorder) SnapshotAny() any {
	return r.Snapshot()
}
