package amqp

import (
	"encoding/json"
	"time"

	"github.com/SscSPs/credit_notes_app/internal/core/domain"
)

// LedgerMessage is the wire form of a ledger change. Consumers re-read balances
// from the database; the message only says which note and allocation moved.
type LedgerMessage struct {
	Type         string    `json:"type"`
	NoteID       string    `json:"noteID,omitempty"`
	AllocationID string    `json:"allocationID,omitempty"`
	EntityID     string    `json:"entityID"`
	ActorID      string    `json:"actorID"`
	OccurredAt   time.Time `json:"occurredAt"`
}

// NewLedgerMessage builds the message for event, stamping it now when the event carries no time.
func NewLedgerMessage(event domain.LedgerEvent) *LedgerMessage {
	occurred := event.OccurredAt
	if occurred.IsZero() {
		occurred = time.Now().UTC()
	}
	return &LedgerMessage{
		Type:         string(event.Type),
		NoteID:       event.NoteID,
		AllocationID: event.AllocationID,
		EntityID:     event.EntityID,
		ActorID:      event.ActorID,
		OccurredAt:   occurred,
	}
}

// ToJSON converts the message to JSON bytes
func (m *LedgerMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// LedgerMessageFromJSON decodes a message published by Notifier.
func LedgerMessageFromJSON(data []byte) (*LedgerMessage, error) {
	var msg LedgerMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
