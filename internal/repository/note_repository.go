package repository

import (
	"context"
	"fmt"
	"time"

	"noteful-server/internal/domain"

	"github.com/go-kivik/kivik/v4"
)

type NoteRepository interface {
	Create(note *domain.Note) error
	FindByID(id string) (*domain.Note, error)
	List(userID string, filter domain.NoteFilter) ([]*domain.Note, error)
	Update(note *domain.Note) error
	Delete(id string) error

	// ClearFolderRefs unfiles every note referencing the folder, leaving all
	// other note fields untouched. Run only after the folder delete is
	// confirmed.
	ClearFolderRefs(folderID string) error

	// PullTagRefs removes the tag id from every note's tag set.
	PullTagRefs(tagID string) error
}

type noteRepository struct {
	client *kivik.Client
	dbName string
}

func NewNoteRepository(client *kivik.Client, dbName string) NoteRepository {
	return &noteRepository{
		client: client,
		dbName: dbName,
	}
}

func (r *noteRepository) Create(note *domain.Note) error {
	db := r.client.DB(r.dbName)

	docID := fmt.Sprintf("note:%s", note.ID)
	_, err := db.Put(context.Background(), docID, note)
	if err != nil {
		return fmt.Errorf("failed to create note: %w", err)
	}

	return nil
}

func (r *noteRepository) FindByID(id string) (*domain.Note, error) {
	db := r.client.DB(r.dbName)

	docID := fmt.Sprintf("note:%s", id)
	row := db.Get(context.Background(), docID)

	var note domain.Note
	if err := row.ScanDoc(&note); err != nil {
		if isNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find note: %w", err)
	}

	return &note, nil
}

func (r *noteRepository) List(userID string, filter domain.NoteFilter) ([]*domain.Note, error) {
	db := r.client.DB(r.dbName)

	selector := map[string]interface{}{
		"_id":     idPrefix("note"),
		"user_id": userID,
	}

	if filter.Search != "" {
		pattern := "(?i)" + filter.Search
		selector["$or"] = []map[string]interface{}{
			{"title": map[string]interface{}{"$regex": pattern}},
			{"content": map[string]interface{}{"$regex": pattern}},
		}
	}

	if filter.FolderID != "" {
		selector["folder_id"] = filter.FolderID
	}

	if filter.TagID != "" {
		selector["tags"] = map[string]interface{}{
			"$elemMatch": map[string]interface{}{"$eq": filter.TagID},
		}
	}

	query := map[string]interface{}{"selector": selector}

	rows := db.Find(context.Background(), query)
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}
	defer rows.Close()

	var notes []*domain.Note
	for rows.Next() {
		var note domain.Note
		if err := rows.ScanDoc(&note); err != nil {
			continue
		}
		notes = append(notes, &note)
	}

	return notes, nil
}

func (r *noteRepository) Update(note *domain.Note) error {
	db := r.client.DB(r.dbName)
	docID := fmt.Sprintf("note:%s", note.ID)

	var existingDoc map[string]interface{}
	row := db.Get(context.Background(), docID)
	if err := row.ScanDoc(&existingDoc); err != nil {
		if isNotFound(err) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to fetch existing note for update: %w", err)
	}

	existingDoc["title"] = note.Title
	existingDoc["content"] = note.Content
	existingDoc["tags"] = note.Tags
	existingDoc["updated_at"] = time.Now()

	if note.FolderID != nil {
		existingDoc["folder_id"] = *note.FolderID
	} else {
		delete(existingDoc, "folder_id")
	}

	_, err := db.Put(context.Background(), docID, existingDoc)
	if err != nil {
		return fmt.Errorf("failed to update note: %w", err)
	}

	return nil
}

func (r *noteRepository) Delete(id string) error {
	db := r.client.DB(r.dbName)
	docID := fmt.Sprintf("note:%s", id)

	var existingDoc map[string]interface{}
	row := db.Get(context.Background(), docID)
	if err := row.ScanDoc(&existingDoc); err != nil {
		if isNotFound(err) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to fetch note for delete: %w", err)
	}

	rev, _ := existingDoc["_rev"].(string)
	if _, err := db.Delete(context.Background(), docID, rev); err != nil {
		return fmt.Errorf("failed to delete note: %w", err)
	}

	return nil
}

func (r *noteRepository) ClearFolderRefs(folderID string) error {
	db := r.client.DB(r.dbName)

	query := map[string]interface{}{
		"selector": map[string]interface{}{
			"_id":       idPrefix("note"),
			"folder_id": folderID,
		},
	}

	rows := db.Find(context.Background(), query)
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to find notes referencing folder: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var doc map[string]interface{}
		if err := rows.ScanDoc(&doc); err != nil {
			return fmt.Errorf("failed to scan note referencing folder: %w", err)
		}

		delete(doc, "folder_id")
		doc["updated_at"] = time.Now()

		docID, _ := doc["_id"].(string)
		if _, err := db.Put(context.Background(), docID, doc); err != nil {
			return fmt.Errorf("failed to clear folder reference on %s: %w", docID, err)
		}
	}

	return nil
}

func (r *noteRepository) PullTagRefs(tagID string) error {
	db := r.client.DB(r.dbName)

	query := map[string]interface{}{
		"selector": map[string]interface{}{
			"_id": idPrefix("note"),
			"tags": map[string]interface{}{
				"$elemMatch": map[string]interface{}{"$eq": tagID},
			},
		},
	}

	rows := db.Find(context.Background(), query)
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to find notes referencing tag: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var doc map[string]interface{}
		if err := rows.ScanDoc(&doc); err != nil {
			return fmt.Errorf("failed to scan note referencing tag: %w", err)
		}

		raw, _ := doc["tags"].([]interface{})
		kept := make([]interface{}, 0, len(raw))
		for _, t := range raw {
			if s, ok := t.(string); ok && s == tagID {
				continue
			}
			kept = append(kept, t)
		}

		doc["tags"] = kept
		doc["updated_at"] = time.Now()

		docID, _ := doc["_id"].(string)
		if _, err := db.Put(context.Background(), docID, doc); err != nil {
			return fmt.Errorf("failed to pull tag reference on %s: %w", docID, err)
		}
	}

	return nil
}
