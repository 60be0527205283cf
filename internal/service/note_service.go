package service

import (
	"errors"
	"sort"
	"time"

	"noteful-server/internal/domain"
	"noteful-server/internal/repository"

	"github.com/google/uuid"
)

type NoteService struct {
	noteRepo   repository.NoteRepository
	folderRepo repository.FolderRepository
	tagRepo    repository.TagRepository
	events     Publisher
}

func NewNoteService(noteRepo repository.NoteRepository, folderRepo repository.FolderRepository, tagRepo repository.TagRepository, events Publisher) *NoteService {
	return &NoteService{
		noteRepo:   noteRepo,
		folderRepo: folderRepo,
		tagRepo:    tagRepo,
		events:     events,
	}
}

func (s *NoteService) Create(userID string, req *domain.CreateNoteRequest) (*domain.NoteResponse, error) {
	if err := s.validateFolderRef(userID, req.FolderID); err != nil {
		return nil, err
	}
	if err := s.validateTagRefs(userID, req.Tags); err != nil {
		return nil, err
	}

	note := &domain.Note{
		ID:        uuid.New().String(),
		UserID:    userID,
		Title:     req.Title,
		Content:   req.Content,
		Tags:      req.Tags,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if note.Tags == nil {
		note.Tags = []string{}
	}
	if req.FolderID != "" {
		note.FolderID = &req.FolderID
	}

	if err := s.noteRepo.Create(note); err != nil {
		return nil, err
	}

	s.publish(userID, "note.created", note.ID)
	return s.toResponse(note), nil
}

func (s *NoteService) List(userID string, filter domain.NoteFilter) ([]*domain.NoteResponse, error) {
	if filter.FolderID != "" {
		if uuid.Validate(filter.FolderID) != nil {
			return nil, ErrInvalidFolderRef
		}
		if err := s.validateFolderRef(userID, filter.FolderID); err != nil {
			return nil, err
		}
	}
	if filter.TagID != "" && uuid.Validate(filter.TagID) != nil {
		return nil, ErrInvalidTagRef
	}

	notes, err := s.noteRepo.List(userID, filter)
	if err != nil {
		return nil, err
	}

	sort.Slice(notes, func(i, j int) bool {
		return notes[i].UpdatedAt.After(notes[j].UpdatedAt)
	})

	responses := make([]*domain.NoteResponse, len(notes))
	for i, note := range notes {
		responses[i] = s.toResponse(note)
	}

	return responses, nil
}

func (s *NoteService) Get(userID, noteID string) (*domain.NoteResponse, error) {
	note, err := s.find(userID, noteID)
	if err != nil {
		return nil, err
	}

	return s.toResponse(note), nil
}

func (s *NoteService) Update(userID, noteID string, req *domain.UpdateNoteRequest) (*domain.NoteResponse, error) {
	note, err := s.find(userID, noteID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		if *req.Title == "" {
			return nil, ErrMissingTitle
		}
		note.Title = *req.Title
	}

	if req.Content != nil {
		note.Content = *req.Content
	}

	if req.FolderID != nil {
		// An explicit empty folder id unfiles the note.
		if *req.FolderID == "" {
			note.FolderID = nil
		} else {
			if err := s.validateFolderRef(userID, *req.FolderID); err != nil {
				return nil, err
			}
			note.FolderID = req.FolderID
		}
	}

	if req.Tags != nil {
		if err := s.validateTagRefs(userID, *req.Tags); err != nil {
			return nil, err
		}
		note.Tags = *req.Tags
		if note.Tags == nil {
			note.Tags = []string{}
		}
	}

	note.UpdatedAt = time.Now()

	if err := s.noteRepo.Update(note); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNoteNotFound
		}
		return nil, err
	}

	s.publish(userID, "note.updated", note.ID)
	return s.toResponse(note), nil
}

func (s *NoteService) Delete(userID, noteID string) error {
	if _, err := s.find(userID, noteID); err != nil {
		return err
	}

	if err := s.noteRepo.Delete(noteID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNoteNotFound
		}
		return err
	}

	s.publish(userID, "note.deleted", noteID)
	return nil
}

func (s *NoteService) find(userID, noteID string) (*domain.Note, error) {
	note, err := s.noteRepo.FindByID(noteID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNoteNotFound
		}
		return nil, err
	}

	if note.UserID != userID {
		return nil, ErrNoteNotFound
	}

	return note, nil
}

// validateFolderRef accepts an empty id (unfiled note) and otherwise
// requires a well-formed id referencing a folder the same user owns.
func (s *NoteService) validateFolderRef(userID, folderID string) error {
	if folderID == "" {
		return nil
	}
	if uuid.Validate(folderID) != nil {
		return ErrInvalidFolderRef
	}

	folder, err := s.folderRepo.FindByID(folderID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrInvalidFolderRef
		}
		return err
	}
	if folder.UserID != userID {
		return ErrInvalidFolderRef
	}

	return nil
}

func (s *NoteService) validateTagRefs(userID string, tags []string) error {
	for _, tagID := range tags {
		if uuid.Validate(tagID) != nil {
			return ErrInvalidTagRef
		}

		tag, err := s.tagRepo.FindByID(tagID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ErrInvalidTagRef
			}
			return err
		}
		if tag.UserID != userID {
			return ErrInvalidTagRef
		}
	}

	return nil
}

// toResponse expands tag references into full tag documents. A reference
// whose tag has since disappeared is dropped from the view rather than
// failing the request.
func (s *NoteService) toResponse(note *domain.Note) *domain.NoteResponse {
	tags := make([]*domain.Tag, 0, len(note.Tags))
	for _, tagID := range note.Tags {
		tag, err := s.tagRepo.FindByID(tagID)
		if err != nil {
			continue
		}
		tags = append(tags, tag)
	}

	return &domain.NoteResponse{
		ID:        note.ID,
		Title:     note.Title,
		Content:   note.Content,
		FolderID:  note.FolderID,
		Tags:      tags,
		CreatedAt: note.CreatedAt,
		UpdatedAt: note.UpdatedAt,
	}
}

func (s *NoteService) publish(userID, eventType, entityID string) {
	if s.events != nil {
		s.events.Publish(userID, eventType, entityID)
	}
}
