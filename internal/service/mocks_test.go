package service

import (
	"noteful-server/internal/domain"
	"noteful-server/internal/repository"
)

type mockUserRepository struct {
	users map[string]*domain.User
}

func newMockUserRepository() *mockUserRepository {
	return &mockUserRepository{
		users: make(map[string]*domain.User),
	}
}

// Create copies so callers clearing the digest on their own pointer do not
// reach into the stored record.
func (m *mockUserRepository) Create(user *domain.User) error {
	stored := *user
	m.users[user.ID] = &stored
	return nil
}

func (m *mockUserRepository) FindByID(id string) (*domain.User, error) {
	if user, ok := m.users[id]; ok {
		u := *user
		return &u, nil
	}
	return nil, repository.ErrNotFound
}

func (m *mockUserRepository) FindByUsername(username string) (*domain.User, error) {
	for _, user := range m.users {
		if user.Username == username {
			u := *user
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *mockUserRepository) UsernameExists(username string) (bool, error) {
	_, err := m.FindByUsername(username)
	return err == nil, nil
}

type mockFolderRepository struct {
	folders map[string]*domain.Folder
}

func newMockFolderRepository() *mockFolderRepository {
	return &mockFolderRepository{
		folders: make(map[string]*domain.Folder),
	}
}

func (m *mockFolderRepository) Create(folder *domain.Folder) error {
	m.folders[folder.ID] = folder
	return nil
}

func (m *mockFolderRepository) FindByID(id string) (*domain.Folder, error) {
	if folder, ok := m.folders[id]; ok {
		return folder, nil
	}
	return nil, repository.ErrNotFound
}

func (m *mockFolderRepository) ListByOwner(userID string) ([]*domain.Folder, error) {
	var folders []*domain.Folder
	for _, folder := range m.folders {
		if folder.UserID == userID {
			folders = append(folders, folder)
		}
	}
	return folders, nil
}

func (m *mockFolderRepository) NameExists(userID, name string) (bool, error) {
	for _, folder := range m.folders {
		if folder.UserID == userID && folder.Name == name {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockFolderRepository) Update(folder *domain.Folder) error {
	if _, ok := m.folders[folder.ID]; !ok {
		return repository.ErrNotFound
	}
	m.folders[folder.ID] = folder
	return nil
}

func (m *mockFolderRepository) Delete(id string) error {
	if _, ok := m.folders[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.folders, id)
	return nil
}

type mockNoteRepository struct {
	notes    map[string]*domain.Note
	clearErr error
	pullErr  error
}

func newMockNoteRepository() *mockNoteRepository {
	return &mockNoteRepository{
		notes: make(map[string]*domain.Note),
	}
}

func (m *mockNoteRepository) Create(note *domain.Note) error {
	m.notes[note.ID] = note
	return nil
}

func (m *mockNoteRepository) FindByID(id string) (*domain.Note, error) {
	if note, ok := m.notes[id]; ok {
		return note, nil
	}
	return nil, repository.ErrNotFound
}

func (m *mockNoteRepository) List(userID string, filter domain.NoteFilter) ([]*domain.Note, error) {
	var notes []*domain.Note
	for _, note := range m.notes {
		if note.UserID != userID {
			continue
		}
		if filter.FolderID != "" && (note.FolderID == nil || *note.FolderID != filter.FolderID) {
			continue
		}
		if filter.TagID != "" && !contains(note.Tags, filter.TagID) {
			continue
		}
		notes = append(notes, note)
	}
	return notes, nil
}

func (m *mockNoteRepository) Update(note *domain.Note) error {
	if _, ok := m.notes[note.ID]; !ok {
		return repository.ErrNotFound
	}
	m.notes[note.ID] = note
	return nil
}

func (m *mockNoteRepository) Delete(id string) error {
	if _, ok := m.notes[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.notes, id)
	return nil
}

func (m *mockNoteRepository) ClearFolderRefs(folderID string) error {
	if m.clearErr != nil {
		return m.clearErr
	}
	for _, note := range m.notes {
		if note.FolderID != nil && *note.FolderID == folderID {
			note.FolderID = nil
		}
	}
	return nil
}

func (m *mockNoteRepository) PullTagRefs(tagID string) error {
	if m.pullErr != nil {
		return m.pullErr
	}
	for _, note := range m.notes {
		kept := note.Tags[:0]
		for _, t := range note.Tags {
			if t != tagID {
				kept = append(kept, t)
			}
		}
		note.Tags = kept
	}
	return nil
}

type mockTagRepository struct {
	tags map[string]*domain.Tag
}

func newMockTagRepository() *mockTagRepository {
	return &mockTagRepository{
		tags: make(map[string]*domain.Tag),
	}
}

func (m *mockTagRepository) Create(tag *domain.Tag) error {
	m.tags[tag.ID] = tag
	return nil
}

func (m *mockTagRepository) FindByID(id string) (*domain.Tag, error) {
	if tag, ok := m.tags[id]; ok {
		return tag, nil
	}
	return nil, repository.ErrNotFound
}

func (m *mockTagRepository) ListByOwner(userID string) ([]*domain.Tag, error) {
	var tags []*domain.Tag
	for _, tag := range m.tags {
		if tag.UserID == userID {
			tags = append(tags, tag)
		}
	}
	return tags, nil
}

func (m *mockTagRepository) NameExists(userID, name string) (bool, error) {
	for _, tag := range m.tags {
		if tag.UserID == userID && tag.Name == name {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockTagRepository) Update(tag *domain.Tag) error {
	if _, ok := m.tags[tag.ID]; !ok {
		return repository.ErrNotFound
	}
	m.tags[tag.ID] = tag
	return nil
}

func (m *mockTagRepository) Delete(id string) error {
	if _, ok := m.tags[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.tags, id)
	return nil
}

type recordedEvent struct {
	userID    string
	eventType string
	entityID  string
}

type mockPublisher struct {
	events []recordedEvent
}

func (m *mockPublisher) Publish(userID, eventType, entityID string) {
	m.events = append(m.events, recordedEvent{userID, eventType, entityID})
}

func contains(values []string, target string) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}
