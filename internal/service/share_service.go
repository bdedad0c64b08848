package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/gommon/log"

	"noteapp/internal/contract"
	"noteapp/internal/domain/entity"
	"noteapp/internal/domain/events"
	"noteapp/internal/domain/policy"
	"noteapp/internal/utils"
	"noteapp/internal/utils/apierror"
)

// ShareService maintains the set of users a note is shared with. Every
// mutation is owner-only and answers non-owners with the same masked
// not-found error the note service uses.
type ShareService struct {
	NoteRepo   NoteRepository
	UserRepo   UserRepository
	Policy     *policy.NotePolicy
	Dispatcher EventDispatcher
	Validate   *validator.Validate
}

func NewShareService(
	noteRepo NoteRepository,
	userRepo UserRepository,
	notePolicy *policy.NotePolicy,
	dispatcher EventDispatcher,
	validate *validator.Validate,
) *ShareService {
	return &ShareService{
		NoteRepo:   noteRepo,
		UserRepo:   userRepo,
		Policy:     notePolicy,
		Dispatcher: dispatcher,
		Validate:   validate,
	}
}

// ShareNote grants the user behind targetEmail read access to the note.
// Sharing with yourself and re-sharing with an existing viewer are both
// rejected explicitly rather than swallowed as no-ops.
func (s *ShareService) ShareNote(actor *entity.User, noteID int64, req *contract.ShareNoteRequest) (*contract.NoteResponse, apierror.ErrorResponse) {
	utils.Sanitize(req)
	if valerr := s.Validate.Struct(req); valerr != nil {
		return nil, apierror.FromValidationError(valerr)
	}

	note, apierr := s.fetchNote(noteID)
	if apierr != nil {
		return nil, apierr
	}

	if perr := s.Policy.CanMutate(note, actor); perr != nil {
		return nil, perr
	}

	target, err := s.UserRepo.FindByEmail(req.Email)
	if err != nil {
		log.Errorf("failed to resolve share target %s: %v", req.Email, err)
		return nil, apierror.InternalServerError
	}

	if target == nil {
		return nil, apierror.ShareTargetNotFoundError
	}

	if target.ID == actor.ID {
		return nil, apierror.SelfShareError
	}

	if note.IsSharedWith(target) {
		return nil, apierror.AlreadySharedError
	}

	// AddShare also appends the target to note.SharedWith in memory, so
	// the response below already reflects the new viewer.
	if err := s.NoteRepo.AddShare(note, target); err != nil {
		log.Errorf("failed to share note %d with user %d: %v", note.ID, target.ID, err)
		return nil, apierror.InternalServerError
	}

	note.UpdatedAt = utils.NowUTC()
	if err := s.NoteRepo.Save(note); err != nil {
		log.Errorf("failed to bump note %d after share: %v", note.ID, err)
		return nil, apierror.InternalServerError
	}

	resp := toNoteResponse(note)
	go s.Dispatcher.DispatchToUsers(context.Background(), []int64{target.ID}, &events.NoteShared{NoteResponse: resp})
	return resp, nil
}

// RevokeAccess removes a user from the note's shared-with set. Revoking
// someone who was never in the set is a silent no-op.
func (s *ShareService) RevokeAccess(actor *entity.User, noteID, targetUserID int64) (*contract.NoteResponse, apierror.ErrorResponse) {
	note, apierr := s.fetchNote(noteID)
	if apierr != nil {
		return nil, apierr
	}

	if perr := s.Policy.CanMutate(note, actor); perr != nil {
		return nil, perr
	}

	if err := s.NoteRepo.RemoveShare(note, &entity.User{ID: targetUserID}); err != nil {
		log.Errorf("failed to revoke access of user %d to note %d: %v", targetUserID, note.ID, err)
		return nil, apierror.InternalServerError
	}

	remaining := note.SharedWith[:0]
	for _, user := range note.SharedWith {
		if user.ID != targetUserID {
			remaining = append(remaining, user)
		}
	}
	note.SharedWith = remaining

	note.UpdatedAt = utils.NowUTC()
	if err := s.NoteRepo.Save(note); err != nil {
		log.Errorf("failed to bump note %d after revoke: %v", note.ID, err)
		return nil, apierror.InternalServerError
	}

	go s.Dispatcher.DispatchToUsers(context.Background(), []int64{targetUserID}, &events.NoteRevoked{NoteID: note.ID})
	return toNoteResponse(note), nil
}

// GetSharedNotes lists every note shared with the viewer, newest first.
// The results are read-only: the viewer can call none of the mutation
// entry points on them.
func (s *ShareService) GetSharedNotes(viewer *entity.User) ([]*contract.NoteResponse, apierror.ErrorResponse) {
	notes, err := s.NoteRepo.FindSharedWith(viewer.ID)
	if err != nil {
		log.Errorf("failed to fetch shared notes: %v", err)
		return nil, apierror.InternalServerError
	}

	resp := make([]*contract.NoteResponse, len(notes))
	for i, note := range notes {
		resp[i] = toNoteResponse(note)
	}
	return resp, nil
}

func (s *ShareService) fetchNote(noteID int64) (*entity.Note, apierror.ErrorResponse) {
	note, err := s.NoteRepo.FindByID(noteID)
	if err != nil {
		log.Errorf("failed to fetch note: %v", err)
		return nil, apierror.InternalServerError
	}
	return note, nil
}
