package ports

import "skyladder/internal/domain/ascent"

type IntentMetrics interface {
	RecordSuccess(intent ascent.IntentType, resultCode ascent.ResultCode)
	RecordConflict()
	RecordFailure()
}
