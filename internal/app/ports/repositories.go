package ports

import (
	"context"
	"time"

	"skyladder/internal/domain/ascent"
	"skyladder/internal/domain/meta"
)

// SaveRepository stores the cross-run record of each profile.
type SaveRepository interface {
	Load(ctx context.Context, profileID string) (meta.Record, error)
	Save(ctx context.Context, profileID string, record meta.Record) error
}

type RunRepository interface {
	GetByProfileID(ctx context.Context, profileID string) (ascent.RunState, error)
	SaveWithVersion(ctx context.Context, run ascent.RunState, expectedVersion int64) error
}

type EventRepository interface {
	Append(ctx context.Context, profileID string, events []ascent.DomainEvent) error
	ListByProfileID(ctx context.Context, profileID string, limit int) ([]ascent.DomainEvent, error)
}

type IntentResult struct {
	Run        ascent.RunState      `json:"run"`
	Record     meta.Record          `json:"record"`
	Events     []ascent.DomainEvent `json:"events"`
	ResultCode ascent.ResultCode    `json:"result_code"`
}

type IntentExecutionRecord struct {
	ProfileID      string
	IdempotencyKey string
	IntentType     string
	Result         IntentResult
	AppliedAt      time.Time
}

// IntentExecutionRepository remembers results by idempotency key so a
// retried request replays the original outcome.
type IntentExecutionRepository interface {
	GetByIdempotencyKey(ctx context.Context, profileID, key string) (*IntentExecutionRecord, error)
	SaveExecution(ctx context.Context, execution IntentExecutionRecord) error
}

type ProfileCredentialRecord struct {
	ProfileID string
	KeySalt   []byte
	KeyHash   []byte
	Status    string
	CreatedAt time.Time
}

type ProfileCredentialRepository interface {
	Create(ctx context.Context, credential ProfileCredentialRecord) error
	GetByProfileID(ctx context.Context, profileID string) (ProfileCredentialRecord, error)
}
