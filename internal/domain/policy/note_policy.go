package policy

import (
	"noteapp/internal/domain/entity"
	"noteapp/internal/utils/apierror"
)

// NotePolicy encapsulates the ownership rules for note access.
// It returns apierror.ErrorResponse directly for seamless integration
// with handlers and services.
//
// Both CanSee and CanMutate answer with the same masked not-found error
// on denial: a caller must never be able to tell "this note does not
// exist" apart from "this note exists but is not yours".
type NotePolicy struct{}

func NewNotePolicy() *NotePolicy {
	return &NotePolicy{}
}

// CanSee allows the owner and anyone in the shared-with set.
func (p *NotePolicy) CanSee(note *entity.Note, actor *entity.User) apierror.ErrorResponse {
	if note == nil {
		return apierror.NoteNotFoundError
	}

	if !note.IsOwnedBy(actor) && !note.IsSharedWith(actor) {
		return apierror.NoteNotFoundError // ^^
	}
	return nil
}

// CanMutate allows only the owner. Shared-with membership grants read
// access, never write access.
func (p *NotePolicy) CanMutate(note *entity.Note, actor *entity.User) apierror.ErrorResponse {
	if note == nil || !note.IsOwnedBy(actor) {
		return apierror.NoteNotFoundError
	}
	return nil
}
