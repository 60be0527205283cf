package domain

import "time"

// Note holds a weak back reference to its folder: the folder may be deleted
// independently, in which case the reference is cleared and the note becomes
// unfiled.
type Note struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Title     string    `json:"title"`
	Content   string    `json:"content,omitempty"`
	FolderID  *string   `json:"folder_id,omitempty"`
	Tags      []string  `json:"tags"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CreateNoteRequest struct {
	Title    string   `json:"title" validate:"required,min=1"`
	Content  string   `json:"content"`
	FolderID string   `json:"folder_id"`
	Tags     []string `json:"tags"`
}

// UpdateNoteRequest distinguishes absent fields (nil) from explicitly cleared
// ones: an empty folder_id unfiles the note.
type UpdateNoteRequest struct {
	Title    *string   `json:"title"`
	Content  *string   `json:"content"`
	FolderID *string   `json:"folder_id"`
	Tags     *[]string `json:"tags"`
}

// NoteResponse carries the note with its tag references expanded into full
// tag documents.
type NoteResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content,omitempty"`
	FolderID  *string   `json:"folder_id,omitempty"`
	Tags      []*Tag    `json:"tags"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NoteFilter narrows a note listing. Search matches title or content
// case-insensitively.
type NoteFilter struct {
	Search   string
	FolderID string
	TagID    string
}
