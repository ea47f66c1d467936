package models

// FailureKind tags why a participant could not be relocated
type FailureKind string

const (
	// FailureNotInVoice indicates the participant had already left voice
	FailureNotInVoice FailureKind = "not_in_voice"

	// FailureForbidden indicates the bot lacked permission to move the participant
	FailureForbidden FailureKind = "forbidden"

	// FailureRateLimited indicates the platform throttled the move call
	FailureRateLimited FailureKind = "rate_limited"

	// FailureTargetGone indicates the destination channel no longer exists
	FailureTargetGone FailureKind = "target_gone"

	// FailureBatchAborted indicates the participant was skipped because the
	// batch was aborted before their turn
	FailureBatchAborted FailureKind = "batch_aborted"

	// FailureUnknown covers everything else
	FailureUnknown FailureKind = "unknown"
)

// ParticipantFailure records one participant the executor could not move
type ParticipantFailure struct {
	// UserID is the participant that failed to move
	UserID string

	// Kind is the failure classification
	Kind FailureKind
}

// MoveReport summarizes one batch relocation
type MoveReport struct {
	// TargetChannelID is the channel the batch moved into. For a spawned
	// room this is only known once the room has been created.
	TargetChannelID string

	// Attempted is the number of move calls actually issued
	Attempted int

	// Succeeded is the number of participants relocated
	Succeeded int

	// Failed is the number of participants not relocated, including any
	// skipped by an abort
	Failed int

	// Failures lists the participants that were not relocated
	Failures []ParticipantFailure

	// Aborted indicates the batch stopped before every participant was tried
	Aborted bool

	// AbortReason describes why the batch stopped, when Aborted is set
	AbortReason string

	// MovedUserIDs lists the participants that were relocated, in move order
	MovedUserIDs []string
}
