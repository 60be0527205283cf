package service

import (
	"errors"
	"sort"
	"time"

	"noteful-server/internal/domain"
	"noteful-server/internal/repository"

	"github.com/google/uuid"
)

type TagService struct {
	tagRepo  repository.TagRepository
	noteRepo repository.NoteRepository
	events   Publisher
}

func NewTagService(tagRepo repository.TagRepository, noteRepo repository.NoteRepository, events Publisher) *TagService {
	return &TagService{
		tagRepo:  tagRepo,
		noteRepo: noteRepo,
		events:   events,
	}
}

func (s *TagService) Create(userID string, req *domain.CreateTagRequest) (*domain.Tag, error) {
	taken, err := s.tagRepo.NameExists(userID, req.Name)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrTagNameTaken
	}

	tag := &domain.Tag{
		ID:        uuid.New().String(),
		UserID:    userID,
		Name:      req.Name,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := s.tagRepo.Create(tag); err != nil {
		return nil, err
	}

	s.publish(userID, "tag.created", tag.ID)
	return tag, nil
}

func (s *TagService) List(userID string) ([]*domain.Tag, error) {
	tags, err := s.tagRepo.ListByOwner(userID)
	if err != nil {
		return nil, err
	}

	sort.Slice(tags, func(i, j int) bool {
		return tags[i].Name < tags[j].Name
	})

	return tags, nil
}

func (s *TagService) Get(userID, tagID string) (*domain.Tag, error) {
	tag, err := s.tagRepo.FindByID(tagID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTagNotFound
		}
		return nil, err
	}

	if tag.UserID != userID {
		return nil, ErrTagNotFound
	}

	return tag, nil
}

func (s *TagService) Update(userID, tagID string, req *domain.UpdateTagRequest) (*domain.Tag, error) {
	tag, err := s.Get(userID, tagID)
	if err != nil {
		return nil, err
	}

	if req.Name != tag.Name {
		taken, err := s.tagRepo.NameExists(userID, req.Name)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, ErrTagNameTaken
		}
	}

	tag.Name = req.Name
	tag.UpdatedAt = time.Now()

	if err := s.tagRepo.Update(tag); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTagNotFound
		}
		return nil, err
	}

	s.publish(userID, "tag.updated", tag.ID)
	return tag, nil
}

// Delete removes an owned tag and then pulls its id out of every note's tag
// set. Same delete-then-clean sequencing as folder deletion: the pull runs
// only after a confirmed delete, and its failure surfaces as an
// IntegrityError.
func (s *TagService) Delete(userID, tagID string) error {
	if _, err := s.Get(userID, tagID); err != nil {
		return err
	}

	if err := s.tagRepo.Delete(tagID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrTagNotFound
		}
		return err
	}

	if err := s.noteRepo.PullTagRefs(tagID); err != nil {
		return &IntegrityError{Op: "tag delete", Err: err}
	}

	s.publish(userID, "tag.deleted", tagID)
	return nil
}

func (s *TagService) publish(userID, eventType, entityID string) {
	if s.events != nil {
		s.events.Publish(userID, eventType, entityID)
	}
}
