package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/pawhub/pawhub/internal/service"
	"github.com/pawhub/pawhub/internal/transport/http/middleware"
	"github.com/pawhub/pawhub/pkg/validator"
)

type AuthHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type registerRequest struct {
	FullName  string `json:"fullName"`
	Gender    string `json:"gender"`
	Birthdate string `json:"birthdate"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

// Register accepts JSON, or multipart/form-data when the client
// attaches a profile image alongside the fields.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	var image *service.ImageUpload

	if isMultipart(r) {
		if err := r.ParseMultipartForm(maxImageMemory); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid multipart form", "invalid_form")
			return
		}
		req = registerRequest{
			FullName:  r.FormValue("fullName"),
			Gender:    r.FormValue("gender"),
			Birthdate: r.FormValue("birthdate"),
			Email:     r.FormValue("email"),
			Password:  r.FormValue("password"),
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

	if ferr := validator.Required(
		validator.Field{Name: "fullName", Value: req.FullName},
		validator.Field{Name: "gender", Value: req.Gender},
		validator.Field{Name: "birthdate", Value: req.Birthdate},
		validator.Field{Name: "email", Value: req.Email},
		validator.Field{Name: "password", Value: req.Password},
	); ferr != nil {
		writeFieldError(w, ferr)
		return
	}

	email, ferr := validator.Email(req.Email)
	if ferr != nil {
		writeFieldError(w, ferr)
		return
	}
	if ferr := validator.Password(req.Password); ferr != nil {
		writeFieldError(w, ferr)
		return
	}
	birthdate, ferr := validator.Birthdate(req.Birthdate)
	if ferr != nil {
		writeFieldError(w, ferr)
		return
	}

	user, err := h.authService.Register(r.Context(), service.RegisterInput{
		FullName:  req.FullName,
		Gender:    req.Gender,
		Birthdate: birthdate,
		Email:     email,
		Password:  req.Password,
		Image:     image,
	})
	if err != nil {
		// 400 for duplicates rather than 409 is the documented API
		// contract here.
		if errors.Is(err, service.ErrEmailTaken) {
			writeError(w, http.StatusBadRequest, "Email is already registered", "email_taken")
			return
		}
		writeInternal(w, "register", err)
		return
	}

	writeSuccess(w, http.StatusCreated, "Registration successful", map[string]any{
		"userId": user.ID,
		"user":   user,
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", "invalid_json")
		return
	}

	if ferr := validator.Required(
		validator.Field{Name: "email", Value: req.Email},
		validator.Field{Name: "password", Value: req.Password},
	); ferr != nil {
		writeFieldError(w, ferr)
		return
	}

	email, ferr := validator.Email(req.Email)
	if ferr != nil {
		writeFieldError(w, ferr)
		return
	}

	resp, err := h.authService.Login(r.Context(), email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCreds) {
			writeError(w, http.StatusUnauthorized, "Invalid email or password", "invalid_credentials")
			return
		}
		writeInternal(w, "login", err)
		return
	}

	writeSuccess(w, http.StatusOK, "Login successful", map[string]any{
		"token":   resp.Token,
		"isAdmin": resp.IsAdmin,
		"user":    resp.User,
	})
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaims(r.Context())

	if err := h.authService.Logout(r.Context(), claims); err != nil {
		writeInternal(w, "logout", err)
		return
	}

	writeSuccess(w, http.StatusOK, "Logged out", nil)
}
