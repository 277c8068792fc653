package domain

import "time"

// AuditAction names a mutating operation recorded in the audit trail.
type AuditAction string

const (
	AuditCreateNote       AuditAction = "CREATE_NOTE"
	AuditUpdateNote       AuditAction = "UPDATE_NOTE"
	AuditDeleteNote       AuditAction = "DELETE_NOTE"
	AuditCancelNote       AuditAction = "CANCEL_NOTE"
	AuditReinstateNote    AuditAction = "REINSTATE_NOTE"
	AuditCreateCommitment AuditAction = "CREATE_COMMITMENT"
	AuditUpdateCommitment AuditAction = "UPDATE_COMMITMENT"
	AuditDeleteCommitment AuditAction = "DELETE_COMMITMENT"
	AuditCreateReturn     AuditAction = "CREATE_RETURN"
	AuditDeleteReturn     AuditAction = "DELETE_RETURN"
	AuditCreateSection    AuditAction = "CREATE_SECTION"
	AuditDeleteSection    AuditAction = "DELETE_SECTION"
)

// AuditEntry is an append-only record of a successful mutation.
type AuditEntry struct {
	AuditID     string      `json:"auditID"`
	ActorID     string      `json:"actorID"`
	Action      AuditAction `json:"action"`
	TargetTable string      `json:"targetTable"`
	TargetID    string      `json:"targetID"`
	Detail      string      `json:"detail"`
	RecordedAt  time.Time   `json:"recordedAt"`
}

// AuditCursor positions a page of the audit trail strictly after the given entry.
type AuditCursor struct {
	RecordedAt time.Time
	AuditID    string
}

// AuditPage is one page of the audit trail, newest first.
// NextCursor is empty on the last page.
type AuditPage struct {
	Entries    []AuditEntry `json:"entries"`
	NextCursor string       `json:"nextCursor,omitempty"`
}

// LedgerEventType names a change published to dependents after commit.
type LedgerEventType string

const (
	EventNoteSaved         LedgerEventType = "note.saved"
	EventNoteDeleted       LedgerEventType = "note.deleted"
	EventNoteStatusChanged LedgerEventType = "note.status_changed"
	EventCommitmentChanged LedgerEventType = "commitment.changed"
	EventReturnChanged     LedgerEventType = "return.changed"
	EventSectionChanged    LedgerEventType = "section.changed"
)

// LedgerEvent tells dependents that balances under a note may have moved.
type LedgerEvent struct {
	Type         LedgerEventType `json:"type"`
	NoteID       string          `json:"noteID,omitempty"`
	AllocationID string          `json:"allocationID,omitempty"`
	EntityID     string          `json:"entityID"`
	ActorID      string          `json:"actorID"`
	OccurredAt   time.Time       `json:"occurredAt"`
}
