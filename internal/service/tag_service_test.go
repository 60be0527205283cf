package service

import (
	"errors"
	"testing"

	"noteful-server/internal/domain"
)

func TestTagService_Create(t *testing.T) {
	tagRepo := newMockTagRepository()
	service := NewTagService(tagRepo, newMockNoteRepository(), nil)

	if _, err := service.Create("user-1", &domain.CreateTagRequest{Name: "urgent"}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if _, err := service.Create("user-1", &domain.CreateTagRequest{Name: "urgent"}); !errors.Is(err, ErrTagNameTaken) {
		t.Errorf("Create() duplicate name error = %v, want %v", err, ErrTagNameTaken)
	}
}

func TestTagService_DeletePullsNoteReferences(t *testing.T) {
	tagRepo := newMockTagRepository()
	noteRepo := newMockNoteRepository()
	service := NewTagService(tagRepo, noteRepo, nil)

	tagRepo.Create(&domain.Tag{ID: "tag-1", UserID: "user-1", Name: "urgent"})
	noteRepo.Create(&domain.Note{
		ID: "note-1", UserID: "user-1", Title: "double tagged",
		Tags: []string{"tag-1", "tag-2"},
	})
	noteRepo.Create(&domain.Note{
		ID: "note-2", UserID: "user-1", Title: "other tag",
		Tags: []string{"tag-2"},
	})

	if err := service.Delete("user-1", "tag-1"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	if _, err := tagRepo.FindByID("tag-1"); err == nil {
		t.Error("Delete() tag still present")
	}

	note1, _ := noteRepo.FindByID("note-1")
	if contains(note1.Tags, "tag-1") {
		t.Error("Delete() note still references deleted tag")
	}
	if !contains(note1.Tags, "tag-2") {
		t.Error("Delete() removed an unrelated tag reference")
	}

	note2, _ := noteRepo.FindByID("note-2")
	if len(note2.Tags) != 1 || note2.Tags[0] != "tag-2" {
		t.Error("Delete() altered a note that never referenced the tag")
	}
}

func TestTagService_DeleteNotOwned(t *testing.T) {
	tagRepo := newMockTagRepository()
	noteRepo := newMockNoteRepository()
	service := NewTagService(tagRepo, noteRepo, nil)

	tagRepo.Create(&domain.Tag{ID: "tag-1", UserID: "user-1", Name: "private"})

	if err := service.Delete("user-2", "tag-1"); !errors.Is(err, ErrTagNotFound) {
		t.Errorf("Delete() foreign tag error = %v, want %v", err, ErrTagNotFound)
	}

	if _, err := tagRepo.FindByID("tag-1"); err != nil {
		t.Error("Delete() removed a tag the requester does not own")
	}
}

func TestTagService_DeleteIntegrityFailure(t *testing.T) {
	tagRepo := newMockTagRepository()
	noteRepo := newMockNoteRepository()
	noteRepo.pullErr = errors.New("update rejected")
	service := NewTagService(tagRepo, noteRepo, nil)

	tagRepo.Create(&domain.Tag{ID: "tag-1", UserID: "user-1", Name: "doomed"})

	err := service.Delete("user-1", "tag-1")
	if err == nil {
		t.Fatal("Delete() expected integrity error but got none")
	}

	var integrityErr *IntegrityError
	if !errors.As(err, &integrityErr) {
		t.Fatalf("Delete() error = %T, want *IntegrityError", err)
	}
}
