package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"noteful-server/internal/domain"
	"noteful-server/internal/middleware"
	"noteful-server/internal/service"
	"noteful-server/pkg/response"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type NoteHandler struct {
	noteService *service.NoteService
	validator   *validator.Validate
}

func NewNoteHandler(noteService *service.NoteService) *NoteHandler {
	return &NoteHandler{
		noteService: noteService,
		validator:   validator.New(),
	}
}

func (h *NoteHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r)

	var req domain.CreateNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		response.BadRequest(w, "missing 'title' in request body")
		return
	}

	note, err := h.noteService.Create(userID, &req)
	if err != nil {
		h.writeError(w, err)
		return
	}

	response.CreatedAt(w, r.URL.Path+"/"+note.ID, note)
}

// List supports searchTerm, folderId and tagId query filters, newest first.
func (h *NoteHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r)

	filter := domain.NoteFilter{
		Search:   r.URL.Query().Get("searchTerm"),
		FolderID: r.URL.Query().Get("folderId"),
		TagID:    r.URL.Query().Get("tagId"),
	}

	notes, err := h.noteService.List(userID, filter)
	if err != nil {
		h.writeError(w, err)
		return
	}

	response.Success(w, notes)
}

func (h *NoteHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r)

	noteID, ok := h.pathID(w, r)
	if !ok {
		return
	}

	note, err := h.noteService.Get(userID, noteID)
	if err != nil {
		h.writeError(w, err)
		return
	}

	response.Success(w, note)
}

func (h *NoteHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r)

	noteID, ok := h.pathID(w, r)
	if !ok {
		return
	}

	var req domain.UpdateNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	note, err := h.noteService.Update(userID, noteID, &req)
	if err != nil {
		h.writeError(w, err)
		return
	}

	response.Success(w, note)
}

func (h *NoteHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r)

	noteID, ok := h.pathID(w, r)
	if !ok {
		return
	}

	if err := h.noteService.Delete(userID, noteID); err != nil {
		h.writeError(w, err)
		return
	}

	response.NoContent(w)
}

func (h *NoteHandler) pathID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := mux.Vars(r)["id"]
	if uuid.Validate(id) != nil {
		response.BadRequest(w, "the id is not valid")
		return "", false
	}
	return id, true
}

func (h *NoteHandler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrNoteNotFound):
		response.NotFound(w, "note not found")
	case errors.Is(err, service.ErrInvalidFolderRef):
		response.BadRequest(w, "the folder id is not valid")
	case errors.Is(err, service.ErrInvalidTagRef):
		response.BadRequest(w, "the tags array contains an invalid id")
	case errors.Is(err, service.ErrMissingTitle):
		response.BadRequest(w, "missing 'title' in request body")
	default:
		response.InternalError(w, err.Error())
	}
}
