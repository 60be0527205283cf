package repository

import (
	"context"
	"fmt"
	"time"

	"noteful-server/internal/domain"

	"github.com/go-kivik/kivik/v4"
)

type TagRepository interface {
	Create(tag *domain.Tag) error
	FindByID(id string) (*domain.Tag, error)
	ListByOwner(userID string) ([]*domain.Tag, error)
	NameExists(userID, name string) (bool, error)
	Update(tag *domain.Tag) error
	Delete(id string) error
}

type tagRepository struct {
	client *kivik.Client
	dbName string
}

func NewTagRepository(client *kivik.Client, dbName string) TagRepository {
	return &tagRepository{
		client: client,
		dbName: dbName,
	}
}

func (r *tagRepository) Create(tag *domain.Tag) error {
	db := r.client.DB(r.dbName)

	docID := fmt.Sprintf("tag:%s", tag.ID)
	_, err := db.Put(context.Background(), docID, tag)
	if err != nil {
		return fmt.Errorf("failed to create tag: %w", err)
	}

	return nil
}

func (r *tagRepository) FindByID(id string) (*domain.Tag, error) {
	db := r.client.DB(r.dbName)

	docID := fmt.Sprintf("tag:%s", id)
	row := db.Get(context.Background(), docID)

	var tag domain.Tag
	if err := row.ScanDoc(&tag); err != nil {
		if isNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find tag: %w", err)
	}

	return &tag, nil
}

func (r *tagRepository) ListByOwner(userID string) ([]*domain.Tag, error) {
	db := r.client.DB(r.dbName)

	query := map[string]interface{}{
		"selector": map[string]interface{}{
			"_id":     idPrefix("tag"),
			"user_id": userID,
		},
	}

	rows := db.Find(context.Background(), query)
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}
	defer rows.Close()

	var tags []*domain.Tag
	for rows.Next() {
		var tag domain.Tag
		if err := rows.ScanDoc(&tag); err != nil {
			continue
		}
		tags = append(tags, &tag)
	}

	return tags, nil
}

func (r *tagRepository) NameExists(userID, name string) (bool, error) {
	db := r.client.DB(r.dbName)

	query := map[string]interface{}{
		"selector": map[string]interface{}{
			"_id":     idPrefix("tag"),
			"user_id": userID,
			"name":    name,
		},
		"limit": 1,
	}

	rows := db.Find(context.Background(), query)
	if err := rows.Err(); err != nil {
		return false, fmt.Errorf("failed to query tag by name: %w", err)
	}
	defer rows.Close()

	return rows.Next(), nil
}

func (r *tagRepository) Update(tag *domain.Tag) error {
	db := r.client.DB(r.dbName)
	docID := fmt.Sprintf("tag:%s", tag.ID)

	var existingDoc map[string]interface{}
	row := db.Get(context.Background(), docID)
	if err := row.ScanDoc(&existingDoc); err != nil {
		if isNotFound(err) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to fetch existing tag for update: %w", err)
	}

	existingDoc["name"] = tag.Name
	existingDoc["updated_at"] = time.Now()

	_, err := db.Put(context.Background(), docID, existingDoc)
	if err != nil {
		return fmt.Errorf("failed to update tag: %w", err)
	}

	return nil
}

func (r *tagRepository) Delete(id string) error {
	db := r.client.DB(r.dbName)
	docID := fmt.Sprintf("tag:%s", id)

	var existingDoc map[string]interface{}
	row := db.Get(context.Background(), docID)
	if err := row.ScanDoc(&existingDoc); err != nil {
		if isNotFound(err) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to fetch tag for delete: %w", err)
	}

	rev, _ := existingDoc["_rev"].(string)
	if _, err := db.Delete(context.Background(), docID, rev); err != nil {
		return fmt.Errorf("failed to delete tag: %w", err)
	}

	return nil
}
