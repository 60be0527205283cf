package service

import (
	"errors"
	"sort"
	"time"

	"noteful-server/internal/domain"
	"noteful-server/internal/repository"

	"github.com/google/uuid"
)

type FolderService struct {
	folderRepo repository.FolderRepository
	noteRepo   repository.NoteRepository
	events     Publisher
}

func NewFolderService(folderRepo repository.FolderRepository, noteRepo repository.NoteRepository, events Publisher) *FolderService {
	return &FolderService{
		folderRepo: folderRepo,
		noteRepo:   noteRepo,
		events:     events,
	}
}

func (s *FolderService) Create(userID string, req *domain.CreateFolderRequest) (*domain.Folder, error) {
	taken, err := s.folderRepo.NameExists(userID, req.Name)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrFolderNameTaken
	}

	folder := &domain.Folder{
		ID:        uuid.New().String(),
		UserID:    userID,
		Name:      req.Name,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := s.folderRepo.Create(folder); err != nil {
		return nil, err
	}

	s.publish(userID, "folder.created", folder.ID)
	return folder, nil
}

func (s *FolderService) List(userID string) ([]*domain.Folder, error) {
	folders, err := s.folderRepo.ListByOwner(userID)
	if err != nil {
		return nil, err
	}

	sort.Slice(folders, func(i, j int) bool {
		return folders[i].Name < folders[j].Name
	})

	return folders, nil
}

// Get returns a folder only if the user owns it. A foreign folder is
// indistinguishable from a missing one.
func (s *FolderService) Get(userID, folderID string) (*domain.Folder, error) {
	folder, err := s.folderRepo.FindByID(folderID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrFolderNotFound
		}
		return nil, err
	}

	if folder.UserID != userID {
		return nil, ErrFolderNotFound
	}

	return folder, nil
}

func (s *FolderService) Update(userID, folderID string, req *domain.UpdateFolderRequest) (*domain.Folder, error) {
	folder, err := s.Get(userID, folderID)
	if err != nil {
		return nil, err
	}

	if req.Name != folder.Name {
		taken, err := s.folderRepo.NameExists(userID, req.Name)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, ErrFolderNameTaken
		}
	}

	folder.Name = req.Name
	folder.UpdatedAt = time.Now()

	if err := s.folderRepo.Update(folder); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrFolderNotFound
		}
		return nil, err
	}

	s.publish(userID, "folder.updated", folder.ID)
	return folder, nil
}

// Delete removes a folder the user owns, then clears the folder reference on
// every dependent note. The two steps are deliberately sequenced: the
// clearing update runs only once the delete is confirmed, and a failure in
// the second step is reported as an IntegrityError because the store offers
// no multi-document transaction to roll the delete back.
func (s *FolderService) Delete(userID, folderID string) error {
	if _, err := s.Get(userID, folderID); err != nil {
		return err
	}

	if err := s.folderRepo.Delete(folderID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrFolderNotFound
		}
		return err
	}

	if err := s.noteRepo.ClearFolderRefs(folderID); err != nil {
		return &IntegrityError{Op: "folder delete", Err: err}
	}

	s.publish(userID, "folder.deleted", folderID)
	return nil
}

func (s *FolderService) publish(userID, eventType, entityID string) {
	if s.events != nil {
		s.events.Publish(userID, eventType, entityID)
	}
}
