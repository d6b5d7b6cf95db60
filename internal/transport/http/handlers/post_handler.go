package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/pawhub/pawhub/internal/service"
	"github.com/pawhub/pawhub/internal/transport/http/middleware"
	"github.com/pawhub/pawhub/pkg/validator"
)

type PostHandler struct {
	postService *service.PostService
}

func NewPostHandler(postService *service.PostService) *PostHandler {
	return &PostHandler{postService: postService}
}

func (h *PostHandler) Create(w http.ResponseWriter, r *http.Request) {
	var content string
	var image *service.ImageUpload

	if isMultipart(r) {
		if err := r.ParseMultipartForm(maxImageMemory); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid multipart form", "invalid_form")
			return
		}
		content = r.FormValue("content")
		img, err := imageFromForm(r, "image")
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid image upload", "invalid_form")
			return
		}
		image = img
	} else {
		var req struct {
			Content string `json:"content"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid request body", "invalid_json")
			return
		}
		content = req.Content
	}

	if ferr := validator.Required(validator.Field{Name: "content", Value: content}); ferr != nil {
		writeFieldError(w, ferr)
		return
	}

	post, err := h.postService.Create(r.Context(), middleware.GetUserID(r.Context()), content, image)
	if err != nil {
		writeInternal(w, "create post", err)
		return
	}

	writeSuccess(w, http.StatusCreated, "Post created", map[string]any{"post": post})
}

// Feed returns newest-first posts with cursor paging: ?limit=20&before=<post id>.
func (h *PostHandler) Feed(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	var before *uuid.UUID
	if raw := r.URL.Query().Get("before"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid before cursor", "validation_error")
			return
		}
		before = &id
	}

	posts, err := h.postService.Feed(r.Context(), before, limit)
	if err != nil {
		writeInternal(w, "list posts", err)
		return
	}

	writeSuccess(w, http.StatusOK, "", map[string]any{"posts": posts})
}

func (h *PostHandler) Get(w http.ResponseWriter, r *http.Request) {
	postID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	post, err := h.postService.Get(r.Context(), postID)
	if err != nil {
		if errors.Is(err, service.ErrPostNotFound) {
			writeError(w, http.StatusNotFound, "Post not found", "not_found")
			return
		}
		writeInternal(w, "get post", err)
		return
	}

	writeSuccess(w, http.StatusOK, "", map[string]any{"post": post})
}

func (h *PostHandler) Delete(w http.ResponseWriter, r *http.Request) {
	postID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.postService.Delete(r.Context(), middleware.GetUserID(r.Context()), postID); err != nil {
		if errors.Is(err, service.ErrPostNotFound) {
			writeError(w, http.StatusNotFound, "Post not found", "not_found")
			return
		}
		writeInternal(w, "delete post", err)
		return
	}

	writeSuccess(w, http.StatusOK, "Post deleted", nil)
}

type commentRequest struct {
	Content  string  `json:"content"`
	ParentID *string `json:"parentId"`
}

func (h *PostHandler) AddComment(w http.ResponseWriter, r *http.Request) {
	postID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req commentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", "invalid_json")
		return
	}

	if ferr := validator.Required(validator.Field{Name: "content", Value: req.Content}); ferr != nil {
		writeFieldError(w, ferr)
		return
	}

	var parentID *uuid.UUID
	if req.ParentID != nil && *req.ParentID != "" {
		id, err := uuid.Parse(*req.ParentID)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid parentId", "validation_error")
			return
		}
		parentID = &id
	}

	comment, err := h.postService.AddComment(r.Context(), middleware.GetUserID(r.Context()), postID, req.Content, parentID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPostNotFound):
			writeError(w, http.StatusNotFound, "Post not found", "not_found")
		case errors.Is(err, service.ErrParentComment):
			writeError(w, http.StatusBadRequest, "Parent comment does not belong to this post", "validation_error")
		default:
			writeInternal(w, "add comment", err)
		}
		return
	}

	writeSuccess(w, http.StatusCreated, "Comment created", map[string]any{"comment": comment})
}
