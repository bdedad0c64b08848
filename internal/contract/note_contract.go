package contract

const MaxImageSizeBytes = 10 * 1024 * 1024

var ValidImageFileTypes = []string{"png", "jpg", "jpeg", "webp", "gif"}

type NoteResponse struct {
	ID         int64          `json:"id"`
	Title      string         `json:"title"`
	Content    string         `json:"content"`
	Images     []string       `json:"images"`
	Tags       []*TagResponse `json:"tags"`
	Owner      *UserSummary   `json:"owner"`
	SharedWith []*UserSummary `json:"shared_with"`
	CreatedAt  string         `json:"created_at"`
	UpdatedAt  string         `json:"updated_at"`
}

type TagResponse struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Color     string `json:"color"`
	OwnerID   int64  `json:"owner_id"`
	CreatedAt string `json:"created_at"`
}

type CreateNoteRequest struct {
	Title   string   `json:"title" validate:"required,min=1,max=200"`
	Content string   `json:"content" validate:"required,min=1,max=1000000"`
	Images  []string `json:"images" validate:"omitempty,max=20,nodupes"`
	Tags    []string `json:"tags" validate:"omitempty,max=50,dive,required,min=1,max=50"`
}

// UpdateNoteRequest is a partial update: only fields present in the
// request body are applied. Pointer scalars and nil-vs-empty slices are
// what make "absent" a typed, checkable distinction here.
type UpdateNoteRequest struct {
	Title   *string  `json:"title" validate:"omitempty,min=1,max=200"`
	Content *string  `json:"content" validate:"omitempty,min=1,max=1000000"`
	Images  []string `json:"images" validate:"omitempty,max=20,nodupes"`
	Tags    []string `json:"tags" validate:"omitempty,max=50,dive,required,min=1,max=50"`
}

type ShareNoteRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ImageUploadResponse struct {
	Key string `json:"key"`
}
