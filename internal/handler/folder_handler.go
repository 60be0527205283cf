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

type FolderHandler struct {
	folderService *service.FolderService
	validator     *validator.Validate
}

func NewFolderHandler(folderService *service.FolderService) *FolderHandler {
	return &FolderHandler{
		folderService: folderService,
		validator:     validator.New(),
	}
}

func (h *FolderHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r)

	var req domain.CreateFolderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		response.BadRequest(w, "missing 'name' in request body")
		return
	}

	folder, err := h.folderService.Create(userID, &req)
	if err != nil {
		h.writeError(w, err)
		return
	}

	response.CreatedAt(w, r.URL.Path+"/"+folder.ID, folder)
}

func (h *FolderHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r)

	folders, err := h.folderService.List(userID)
	if err != nil {
		h.writeError(w, err)
		return
	}

	response.Success(w, folders)
}

func (h *FolderHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r)

	folderID, ok := h.pathID(w, r)
	if !ok {
		return
	}

	folder, err := h.folderService.Get(userID, folderID)
	if err != nil {
		h.writeError(w, err)
		return
	}

	response.Success(w, folder)
}

func (h *FolderHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r)

	folderID, ok := h.pathID(w, r)
	if !ok {
		return
	}

	var req domain.UpdateFolderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		response.BadRequest(w, "missing 'name' in request body")
		return
	}

	folder, err := h.folderService.Update(userID, folderID, &req)
	if err != nil {
		h.writeError(w, err)
		return
	}

	response.Success(w, folder)
}

func (h *FolderHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r)

	folderID, ok := h.pathID(w, r)
	if !ok {
		return
	}

	if err := h.folderService.Delete(userID, folderID); err != nil {
		h.writeError(w, err)
		return
	}

	response.NoContent(w)
}

func (h *FolderHandler) pathID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := mux.Vars(r)["id"]
	if uuid.Validate(id) != nil {
		response.BadRequest(w, "the id is not valid")
		return "", false
	}
	return id, true
}

func (h *FolderHandler) writeError(w http.ResponseWriter, err error) {
	var integrityErr *service.IntegrityError

	switch {
	case errors.Is(err, service.ErrFolderNotFound):
		response.NotFound(w, "folder not found")
	case errors.Is(err, service.ErrFolderNameTaken):
		response.BadRequest(w, "folder name already exists")
	case errors.As(err, &integrityErr):
		response.InternalError(w, integrityErr.Error())
	default:
		response.InternalError(w, err.Error())
	}
}
