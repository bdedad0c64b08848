package service

import (
	"context"
	"errors"
	"io"
	"mime/multipart"
	"path/filepath"

	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/gommon/log"

	"noteapp/internal/contract"
	"noteapp/internal/domain/entity"
	"noteapp/internal/domain/events"
	"noteapp/internal/domain/policy"
	"noteapp/internal/infrastructure/aws/storage"
	"noteapp/internal/utils"
	"noteapp/internal/utils/apierror"
	"noteapp/internal/utils/uid"
)

type NoteRepository interface {
	FindByID(id int64) (*entity.Note, error)
	FindAllByOwner(ownerID int64) ([]*entity.Note, error)
	FindSharedWith(userID int64) ([]*entity.Note, error)
	Save(note *entity.Note) error
	ReplaceTags(note *entity.Note, tags []*entity.Tag) error
	AddShare(note *entity.Note, user *entity.User) error
	RemoveShare(note *entity.Note, user *entity.User) error
	Delete(note *entity.Note) error
}

// TagResolver is the find-or-create normalizer notes resolve their tag
// names through.
type TagResolver interface {
	ResolveTags(ownerID int64, names []string) ([]*entity.Tag, apierror.ErrorResponse)
}

// EventDispatcher pushes a socket event to every open connection of the
// listed users. Dispatch is best-effort; note mutations never fail
// because a push did.
type EventDispatcher interface {
	DispatchToUsers(ctx context.Context, userIDs []int64, evt events.SocketEvent)
}

type DefaultNoteService struct {
	NoteRepo   NoteRepository
	Tags       TagResolver
	Policy     *policy.NotePolicy
	S3         storage.S3Client
	Dispatcher EventDispatcher
	Validate   *validator.Validate
}

func NewNoteService(
	noteRepo NoteRepository,
	tags TagResolver,
	notePolicy *policy.NotePolicy,
	s3 storage.S3Client,
	dispatcher EventDispatcher,
	validate *validator.Validate,
) *DefaultNoteService {
	return &DefaultNoteService{
		NoteRepo:   noteRepo,
		Tags:       tags,
		Policy:     notePolicy,
		S3:         s3,
		Dispatcher: dispatcher,
		Validate:   validate,
	}
}

// GetNotes returns the actor's own notes, newest first.
func (n *DefaultNoteService) GetNotes(actor *entity.User) ([]*contract.NoteResponse, apierror.ErrorResponse) {
	notes, err := n.NoteRepo.FindAllByOwner(actor.ID)
	if err != nil {
		log.Errorf("failed to fetch notes: %v", err)
		return nil, apierror.InternalServerError
	}

	resp := make([]*contract.NoteResponse, len(notes))
	for i, note := range notes {
		resp[i] = toNoteResponse(note)
	}
	return resp, nil
}

// GetNote returns a single note if the actor owns it or it was shared
// with them. Anything else answers with the masked not-found error.
func (n *DefaultNoteService) GetNote(actor *entity.User, noteID int64) (*contract.NoteResponse, apierror.ErrorResponse) {
	note, apierr := n.fetchNote(noteID)
	if apierr != nil {
		return nil, apierr
	}

	if perr := n.Policy.CanSee(note, actor); perr != nil {
		return nil, perr
	}
	return toNoteResponse(note), nil
}

func (n *DefaultNoteService) CreateNote(actor *entity.User, req *contract.CreateNoteRequest) (*contract.NoteResponse, apierror.ErrorResponse) {
	utils.Sanitize(req)
	if valerr := n.Validate.Struct(req); valerr != nil {
		return nil, apierror.FromValidationError(valerr)
	}

	tags, apierr := n.Tags.ResolveTags(actor.ID, req.Tags)
	if apierr != nil {
		return nil, apierr
	}

	now := utils.NowUTC()
	note := &entity.Note{
		ID:        uid.Generate(),
		Title:     req.Title,
		Content:   req.Content,
		Images:    req.Images,
		OwnerID:   actor.ID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := n.NoteRepo.Save(note); err != nil {
		log.Errorf("failed to save note: %v", err)
		return nil, apierror.InternalServerError
	}

	if len(tags) > 0 {
		if err := n.NoteRepo.ReplaceTags(note, tags); err != nil {
			log.Errorf("failed to attach tags to note %d: %v", note.ID, err)
			return nil, apierror.InternalServerError
		}
	}

	note.Owner = actor
	note.Tags = tags
	resp := toNoteResponse(note)
	go n.Dispatcher.DispatchToUsers(context.Background(), interestedUserIDs(note), &events.NoteCreated{NoteResponse: resp})
	return resp, nil
}

// UpdateNote applies a partial update. Only fields present in the request
// change; a present tag list is re-resolved and replaces the whole set.
func (n *DefaultNoteService) UpdateNote(actor *entity.User, noteID int64, req *contract.UpdateNoteRequest) (*contract.NoteResponse, apierror.ErrorResponse) {
	utils.Sanitize(req)
	if valerr := n.Validate.Struct(req); valerr != nil {
		return nil, apierror.FromValidationError(valerr)
	}

	note, apierr := n.fetchNote(noteID)
	if apierr != nil {
		return nil, apierr
	}

	if perr := n.Policy.CanMutate(note, actor); perr != nil {
		return nil, perr
	}

	if req.Title != nil {
		note.Title = *req.Title
	}
	if req.Content != nil {
		note.Content = *req.Content
	}
	if req.Images != nil {
		note.Images = req.Images
	}

	if req.Tags != nil {
		tags, terr := n.Tags.ResolveTags(actor.ID, req.Tags)
		if terr != nil {
			return nil, terr
		}
		if err := n.NoteRepo.ReplaceTags(note, tags); err != nil {
			log.Errorf("failed to replace tags of note %d: %v", note.ID, err)
			return nil, apierror.InternalServerError
		}
		note.Tags = tags
	}

	note.UpdatedAt = utils.NowUTC()
	if err := n.NoteRepo.Save(note); err != nil {
		log.Errorf("failed to update note: %v", err)
		return nil, apierror.InternalServerError
	}

	resp := toNoteResponse(note)
	go n.Dispatcher.DispatchToUsers(context.Background(), interestedUserIDs(note), &events.NoteUpdated{NoteResponse: resp})
	return resp, nil
}

// DeleteNote hard-deletes an owned note along with its sharing state, so
// no viewer retains access to anything. Tags are left behind on purpose;
// orphaned tags are harmless and cheap.
func (n *DefaultNoteService) DeleteNote(actor *entity.User, noteID int64) apierror.ErrorResponse {
	note, apierr := n.fetchNote(noteID)
	if apierr != nil {
		return apierr
	}

	if perr := n.Policy.CanMutate(note, actor); perr != nil {
		return perr
	}

	if err := n.deleteImages(note); err != nil {
		log.Errorf("failed to delete images of note %d: %v", note.ID, err)
		return apierror.InternalServerError
	}

	viewers := interestedUserIDs(note)
	if err := n.NoteRepo.Delete(note); err != nil {
		log.Errorf("failed to delete note: %v", err)
		return apierror.InternalServerError
	}

	go n.Dispatcher.DispatchToUsers(context.Background(), viewers, &events.NoteDeleted{NoteID: note.ID})
	return nil
}

// UploadImage stores an image object and returns the key to reference
// from a note's image list.
func (n *DefaultNoteService) UploadImage(actor *entity.User, fileHeader *multipart.FileHeader) (*contract.ImageUploadResponse, apierror.ErrorResponse) {
	if apierr := checkImageFile(fileHeader); apierr != nil {
		return nil, apierr
	}

	data, apierr := readImageFile(fileHeader)
	if apierr != nil {
		return nil, apierr
	}

	ext := filepath.Ext(fileHeader.Filename)
	key := storage.PathImages + uuid.NewString() + ext
	if err := n.S3.UploadFile(data, key); err != nil {
		log.Errorf("failed to upload image: %v", err)
		return nil, apierror.InternalServerError
	}
	return &contract.ImageUploadResponse{Key: key}, nil
}

func (n *DefaultNoteService) fetchNote(noteID int64) (*entity.Note, apierror.ErrorResponse) {
	note, err := n.NoteRepo.FindByID(noteID)
	if err != nil {
		log.Errorf("failed to fetch note: %v", err)
		return nil, apierror.InternalServerError
	}
	return note, nil
}

// deleteImages removes the note's objects from the bucket. It is
// idempotent: a missing object is not an error, which keeps deletes from
// failing when the database and the bucket are out of sync.
func (n *DefaultNoteService) deleteImages(note *entity.Note) error {
	var noKey *types.NoSuchKey
	for _, key := range note.Images {
		if key == "" {
			continue
		}

		err := n.S3.DeleteFile(key)
		if err != nil && !errors.As(err, &noKey) {
			return err
		}
	}
	return nil
}

func checkImageFile(fileHeader *multipart.FileHeader) apierror.ErrorResponse {
	if fileHeader.Size > contract.MaxImageSizeBytes {
		return apierror.NewImageTooLargeError(contract.MaxImageSizeBytes)
	}

	if ext, ok := utils.CheckFileExt(fileHeader.Filename, contract.ValidImageFileTypes); !ok {
		return apierror.NewInvalidFileExtError(ext)
	}
	return nil
}

func readImageFile(fileHeader *multipart.FileHeader) ([]byte, apierror.ErrorResponse) {
	file, err := fileHeader.Open()
	if err != nil {
		log.Errorf("failed to open file: %v", err)
		return nil, apierror.InternalServerError
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		log.Errorf("failed to read file: %v", err)
		return nil, apierror.InternalServerError
	}
	return data, nil
}
