package repository

import (
	"context"
	"fmt"
	"time"

	"noteful-server/internal/domain"

	"github.com/go-kivik/kivik/v4"
)

type FolderRepository interface {
	Create(folder *domain.Folder) error
	FindByID(id string) (*domain.Folder, error)
	ListByOwner(userID string) ([]*domain.Folder, error)
	NameExists(userID, name string) (bool, error)
	Update(folder *domain.Folder) error
	Delete(id string) error
}

type folderRepository struct {
	client *kivik.Client
	dbName string
}

func NewFolderRepository(client *kivik.Client, dbName string) FolderRepository {
	return &folderRepository{
		client: client,
		dbName: dbName,
	}
}

func (r *folderRepository) Create(folder *domain.Folder) error {
	db := r.client.DB(r.dbName)

	docID := fmt.Sprintf("folder:%s", folder.ID)
	_, err := db.Put(context.Background(), docID, folder)
	if err != nil {
		return fmt.Errorf("failed to create folder: %w", err)
	}

	return nil
}

func (r *folderRepository) FindByID(id string) (*domain.Folder, error) {
	db := r.client.DB(r.dbName)

	docID := fmt.Sprintf("folder:%s", id)
	row := db.Get(context.Background(), docID)

	var folder domain.Folder
	if err := row.ScanDoc(&folder); err != nil {
		if isNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find folder: %w", err)
	}

	return &folder, nil
}

func (r *folderRepository) ListByOwner(userID string) ([]*domain.Folder, error) {
	db := r.client.DB(r.dbName)

	query := map[string]interface{}{
		"selector": map[string]interface{}{
			"_id":     idPrefix("folder"),
			"user_id": userID,
		},
	}

	rows := db.Find(context.Background(), query)
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list folders: %w", err)
	}
	defer rows.Close()

	var folders []*domain.Folder
	for rows.Next() {
		var folder domain.Folder
		if err := rows.ScanDoc(&folder); err != nil {
			continue
		}
		folders = append(folders, &folder)
	}

	return folders, nil
}

func (r *folderRepository) NameExists(userID, name string) (bool, error) {
	db := r.client.DB(r.dbName)

	query := map[string]interface{}{
		"selector": map[string]interface{}{
			"_id":     idPrefix("folder"),
			"user_id": userID,
			"name":    name,
		},
		"limit": 1,
	}

	rows := db.Find(context.Background(), query)
	if err := rows.Err(); err != nil {
		return false, fmt.Errorf("failed to query folder by name: %w", err)
	}
	defer rows.Close()

	return rows.Next(), nil
}

func (r *folderRepository) Update(folder *domain.Folder) error {
	db := r.client.DB(r.dbName)
	docID := fmt.Sprintf("folder:%s", folder.ID)

	var existingDoc map[string]interface{}
	row := db.Get(context.Background(), docID)
	if err := row.ScanDoc(&existingDoc); err != nil {
		if isNotFound(err) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to fetch existing folder for update: %w", err)
	}

	existingDoc["name"] = folder.Name
	existingDoc["updated_at"] = time.Now()

	_, err := db.Put(context.Background(), docID, existingDoc)
	if err != nil {
		return fmt.Errorf("failed to update folder: %w", err)
	}

	return nil
}

func (r *folderRepository) Delete(id string) error {
	db := r.client.DB(r.dbName)
	docID := fmt.Sprintf("folder:%s", id)

	var existingDoc map[string]interface{}
	row := db.Get(context.Background(), docID)
	if err := row.ScanDoc(&existingDoc); err != nil {
		if isNotFound(err) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to fetch folder for delete: %w", err)
	}

	rev, _ := existingDoc["_rev"].(string)
	if _, err := db.Delete(context.Background(), docID, rev); err != nil {
		return fmt.Errorf("failed to delete folder: %w", err)
	}

	return nil
}
