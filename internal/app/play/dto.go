package play

import (
	"skyladder/internal/domain/ascent"
	"skyladder/internal/domain/meta"
)

type Request struct {
	ProfileID      string
	IdempotencyKey string
	Intent         ascent.Intent
}

type Response struct {
	Run        ascent.RunState      `json:"run"`
	Save       meta.Record          `json:"save"`
	Events     []ascent.DomainEvent `json:"events"`
	ResultCode ascent.ResultCode    `json:"result_code"`
	Replayed   bool                 `json:"replayed,omitempty"`
}
