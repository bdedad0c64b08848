package events

import "noteapp/internal/contract"

type SocketEvent interface {
	GetType() contract.EventType
}

type Ack struct{}

func (*Ack) GetType() contract.EventType {
	return contract.EventAck
}

type SessionExpired struct{}

func (*SessionExpired) GetType() contract.EventType {
	return contract.EventSessionExpired
}

// NoteCreated holds the whole note response body.
type NoteCreated struct {
	*contract.NoteResponse
}

func (e *NoteCreated) GetType() contract.EventType {
	return contract.EventNoteCreated
}

// NoteUpdated holds the whole note response body.
type NoteUpdated struct {
	*contract.NoteResponse
}

func (e *NoteUpdated) GetType() contract.EventType {
	return contract.EventNoteUpdated
}

// NoteDeleted holds only the note ID.
type NoteDeleted struct {
	NoteID int64 `json:"id"`
}

func (e *NoteDeleted) GetType() contract.EventType {
	return contract.EventNoteDeleted
}

// NoteShared tells a viewer a note just became visible to them.
type NoteShared struct {
	*contract.NoteResponse
}

func (e *NoteShared) GetType() contract.EventType {
	return contract.EventNoteShared
}

// NoteRevoked tells a viewer a note is no longer visible to them.
type NoteRevoked struct {
	NoteID int64 `json:"id"`
}

func (e *NoteRevoked) GetType() contract.EventType {
	return contract.EventNoteRevoked
}
