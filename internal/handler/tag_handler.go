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

type TagHandler struct {
	tagService *service.TagService
	validator  *validator.Validate
}

func NewTagHandler(tagService *service.TagService) *TagHandler {
	return &TagHandler{
		tagService: tagService,
		validator:  validator.New(),
	}
}

func (h *TagHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r)

	var req domain.CreateTagRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		response.BadRequest(w, "missing 'name' in request body")
		return
	}

	tag, err := h.tagService.Create(userID, &req)
	if err != nil {
		h.writeError(w, err)
		return
	}

	response.CreatedAt(w, r.URL.Path+"/"+tag.ID, tag)
}

func (h *TagHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r)

	tags, err := h.tagService.List(userID)
	if err != nil {
		h.writeError(w, err)
		return
	}

	response.Success(w, tags)
}

func (h *TagHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r)

	tagID, ok := h.pathID(w, r)
	if !ok {
		return
	}

	tag, err := h.tagService.Get(userID, tagID)
	if err != nil {
		h.writeError(w, err)
		return
	}

	response.Success(w, tag)
}

func (h *TagHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r)

	tagID, ok := h.pathID(w, r)
	if !ok {
		return
	}

	var req domain.UpdateTagRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		response.BadRequest(w, "missing 'name' in request body")
		return
	}

	tag, err := h.tagService.Update(userID, tagID, &req)
	if err != nil {
		h.writeError(w, err)
		return
	}

	response.Success(w, tag)
}

func (h *TagHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r)

	tagID, ok := h.pathID(w, r)
	if !ok {
		return
	}

	if err := h.tagService.Delete(userID, tagID); err != nil {
		h.writeError(w, err)
		return
	}

	response.NoContent(w)
}

func (h *TagHandler) pathID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := mux.Vars(r)["id"]
	if uuid.Validate(id) != nil {
		response.BadRequest(w, "the id is not valid")
		return "", false
	}
	return id, true
}

func (h *TagHandler) writeError(w http.ResponseWriter, err error) {
	var integrityErr *service.IntegrityError

	switch {
	case errors.Is(err, service.ErrTagNotFound):
		response.NotFound(w, "tag not found")
	case errors.Is(err, service.ErrTagNameTaken):
		response.BadRequest(w, "tag name already exists")
	case errors.As(err, &integrityErr):
		response.InternalError(w, integrityErr.Error())
	default:
		response.InternalError(w, err.Error())
	}
}
