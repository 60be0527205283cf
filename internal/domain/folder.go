package domain

import "time"

// Folder is owned by exactly one user; its name is unique per owner.
type Folder struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CreateFolderRequest struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
}

type UpdateFolderRequest struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
}
