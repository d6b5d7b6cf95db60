package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/pawhub/pawhub/internal/service"
	"github.com/pawhub/pawhub/internal/transport/http/middleware"
	"github.com/pawhub/pawhub/pkg/validator"
)

type UserHandler struct {
	userService *service.UserService
}

func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, err := h.userService.Get(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			writeError(w, http.StatusNotFound, "User not found", "not_found")
			return
		}
		writeInternal(w, "get profile", err)
		return
	}

	writeSuccess(w, http.StatusOK, "", map[string]any{"user": user})
}

type updateProfileRequest struct {
	FullName  *string `json:"fullName"`
	Gender    *string `json:"gender"`
	Birthdate *string `json:"birthdate"`
}

func (h *UserHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	var req updateProfileRequest
	var image *service.ImageUpload

	if isMultipart(r) {
		if err := r.ParseMultipartForm(maxImageMemory); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid multipart form", "invalid_form")
			return
		}
		req = updateProfileRequest{
			FullName:  formValue(r, "fullName"),
			Gender:    formValue(r, "gender"),
			Birthdate: formValue(r, "birthdate"),
		}
		img, err := imageFromForm(r, "image")
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid image upload", "invalid_form")
			return
		}
		image = img
	} else {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid request body", "invalid_json")
			return
		}
	}

	input := service.UpdateProfileInput{
		FullName: req.FullName,
		Gender:   req.Gender,
		Image:    image,
	}
	if req.Birthdate != nil {
		birthdate, ferr := validator.Birthdate(*req.Birthdate)
		if ferr != nil {
			writeFieldError(w, ferr)
			return
		}
		input.Birthdate = &birthdate
	}

	user, err := h.userService.UpdateProfile(r.Context(), middleware.GetUserID(r.Context()), input)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			writeError(w, http.StatusNotFound, "User not found", "not_found")
			return
		}
		writeInternal(w, "update profile", err)
		return
	}

	writeSuccess(w, http.StatusOK, "Profile updated", map[string]any{"user": user})
}

// formValue returns nil when the field is absent from the form so
// partial multipart updates work like partial JSON updates.
func formValue(r *http.Request, name string) *string {
	if vals, ok := r.MultipartForm.Value[name]; ok && len(vals) > 0 {
		return &vals[0]
	}
	return nil
}
