package inmemory

import (
	"testing"

	"skyladder/internal/app/ports"
	"skyladder/internal/domain/ascent"
)

var _ ports.IntentMetrics = (*Recorder)(nil)

func TestRecorderSnapshot(t *testing.T) {
	r := NewRecorder()
	r.RecordSuccess(ascent.IntentCraft, ascent.ResultOK)
	r.RecordSuccess(ascent.IntentAdvance, ascent.ResultDeath)
	r.RecordSuccess(ascent.IntentCraft, ascent.ResultRejected)
	r.RecordConflict()
	r.RecordFailure()

	s := r.Snapshot()
	if s.IntentTotal != 5 {
		t.Fatalf("expected total 5, got %d", s.IntentTotal)
	}
	if s.IntentSuccess != 3 {
		t.Fatalf("expected success 3, got %d", s.IntentSuccess)
	}
	if s.IntentConflict != 1 || s.IntentFailure != 1 {
		t.Fatalf("expected conflict/failure 1/1, got %d/%d", s.IntentConflict, s.IntentFailure)
	}
	if s.ByResultCode[string(ascent.ResultDeath)] != 1 || s.Deaths != 1 {
		t.Fatalf("expected one death, got %+v", s)
	}
	if s.ByIntent[string(ascent.IntentCraft)] != 2 {
		t.Fatalf("expected craft count 2, got %d", s.ByIntent[string(ascent.IntentCraft)])
	}
	if s.StartedAt.IsZero() {
		t.Fatalf("expected start time")
	}
}

func TestRecorderSnapshot_IsACopy(t *testing.T) {
	r := NewRecorder()
	r.RecordSuccess(ascent.IntentRest, ascent.ResultOK)
	s := r.Snapshot()
	s.ByIntent[string(ascent.IntentRest)] = 99
	if r.Snapshot().ByIntent[string(ascent.IntentRest)] != 1 {
		t.Fatalf("snapshot must not share maps with the recorder")
	}
}
