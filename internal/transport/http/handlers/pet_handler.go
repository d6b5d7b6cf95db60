package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/pawhub/pawhub/internal/service"
	"github.com/pawhub/pawhub/internal/transport/http/middleware"
	"github.com/pawhub/pawhub/pkg/validator"
)

type PetHandler struct {
	petService *service.PetService
}

func NewPetHandler(petService *service.PetService) *PetHandler {
	return &PetHandler{petService: petService}
}

type petRequest struct {
	Name      string `json:"name"`
	Species   string `json:"species"`
	Breed     string `json:"breed"`
	Gender    string `json:"gender"`
	Birthdate string `json:"birthdate"`
}

func (h *PetHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req petRequest
	var image *service.ImageUpload

	if isMultipart(r) {
		if err := r.ParseMultipartForm(maxImageMemory); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid multipart form", "invalid_form")
			return
		}
		req = petRequest{
			Name:      r.FormValue("name"),
			Species:   r.FormValue("species"),
			Breed:     r.FormValue("breed"),
			Gender:    r.FormValue("gender"),
			Birthdate: r.FormValue("birthdate"),
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
		validator.Field{Name: "name", Value: req.Name},
		validator.Field{Name: "species", Value: req.Species},
	); ferr != nil {
		writeFieldError(w, ferr)
		return
	}

	var birthdate *time.Time
	if req.Birthdate != "" {
		parsed, ferr := validator.Birthdate(req.Birthdate)
		if ferr != nil {
			writeFieldError(w, ferr)
			return
		}
		birthdate = &parsed
	}

	pet, err := h.petService.Create(r.Context(), middleware.GetUserID(r.Context()), service.CreatePetInput{
		Name:      req.Name,
		Species:   req.Species,
		Breed:     req.Breed,
		Gender:    req.Gender,
		Birthdate: birthdate,
		Image:     image,
	})
	if err != nil {
		writeInternal(w, "create pet", err)
		return
	}

	writeSuccess(w, http.StatusCreated, "Pet created", map[string]any{"pet": pet})
}

func (h *PetHandler) List(w http.ResponseWriter, r *http.Request) {
	pets, err := h.petService.List(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		writeInternal(w, "list pets", err)
		return
	}

	writeSuccess(w, http.StatusOK, "", map[string]any{"pets": pets})
}

func (h *PetHandler) Get(w http.ResponseWriter, r *http.Request) {
	petID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	pet, err := h.petService.Get(r.Context(), middleware.GetUserID(r.Context()), petID)
	if err != nil {
		h.respondPetError(w, "get pet", err)
		return
	}

	writeSuccess(w, http.StatusOK, "", map[string]any{"pet": pet})
}

type updatePetRequest struct {
	Name      *string `json:"name"`
	Species   *string `json:"species"`
	Breed     *string `json:"breed"`
	Gender    *string `json:"gender"`
	Birthdate *string `json:"birthdate"`
}

func (h *PetHandler) Update(w http.ResponseWriter, r *http.Request) {
	petID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req updatePetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", "invalid_json")
		return
	}

	input := service.UpdatePetInput{
		Name:    req.Name,
		Species: req.Species,
		Breed:   req.Breed,
		Gender:  req.Gender,
	}
	if req.Birthdate != nil {
		parsed, ferr := validator.Birthdate(*req.Birthdate)
		if ferr != nil {
			writeFieldError(w, ferr)
			return
		}
		input.Birthdate = &parsed
	}

	pet, err := h.petService.Update(r.Context(), middleware.GetUserID(r.Context()), petID, input)
	if err != nil {
		h.respondPetError(w, "update pet", err)
		return
	}

	writeSuccess(w, http.StatusOK, "Pet updated", map[string]any{"pet": pet})
}

func (h *PetHandler) Delete(w http.ResponseWriter, r *http.Request) {
	petID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.petService.Delete(r.Context(), middleware.GetUserID(r.Context()), petID); err != nil {
		h.respondPetError(w, "delete pet", err)
		return
	}

	writeSuccess(w, http.StatusOK, "Pet deleted", nil)
}

func (h *PetHandler) AttachPhoto(w http.ResponseWriter, r *http.Request) {
	petID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := r.ParseMultipartForm(maxImageMemory); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid multipart form", "invalid_form")
		return
	}
	image, err := imageFromForm(r, "image")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid image upload", "invalid_form")
		return
	}
	if image == nil {
		writeError(w, http.StatusBadRequest, "image is required", "validation_error")
		return
	}

	pet, err := h.petService.AttachPhoto(r.Context(), middleware.GetUserID(r.Context()), petID, image)
	if err != nil {
		h.respondPetError(w, "attach pet photo", err)
		return
	}

	writeSuccess(w, http.StatusOK, "Photo attached", map[string]any{"pet": pet})
}

type medicalRecordRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	VetName     string `json:"vetName"`
	VisitDate   string `json:"visitDate"`
}

func (h *PetHandler) AddRecord(w http.ResponseWriter, r *http.Request) {
	petID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req medicalRecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", "invalid_json")
		return
	}

	if ferr := validator.Required(
		validator.Field{Name: "title", Value: req.Title},
		validator.Field{Name: "visitDate", Value: req.VisitDate},
	); ferr != nil {
		writeFieldError(w, ferr)
		return
	}
	visitDate, ferr := validator.Date("visitDate", req.VisitDate)
	if ferr != nil {
		writeFieldError(w, ferr)
		return
	}

	rec, err := h.petService.AddRecord(r.Context(), middleware.GetUserID(r.Context()), petID, service.MedicalRecordInput{
		Title:       req.Title,
		Description: req.Description,
		VetName:     req.VetName,
		VisitDate:   visitDate,
	})
	if err != nil {
		h.respondPetError(w, "add medical record", err)
		return
	}

	writeSuccess(w, http.StatusCreated, "Medical record created", map[string]any{"record": rec})
}

func (h *PetHandler) ListRecords(w http.ResponseWriter, r *http.Request) {
	petID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	records, err := h.petService.ListRecords(r.Context(), middleware.GetUserID(r.Context()), petID)
	if err != nil {
		h.respondPetError(w, "list medical records", err)
		return
	}

	writeSuccess(w, http.StatusOK, "", map[string]any{"records": records})
}

type updateMedicalRecordRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	VetName     *string `json:"vetName"`
	VisitDate   *string `json:"visitDate"`
}

func (h *PetHandler) UpdateRecord(w http.ResponseWriter, r *http.Request) {
	recordID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req updateMedicalRecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", "invalid_json")
		return
	}

	input := service.UpdateMedicalRecordInput{
		Title:       req.Title,
		Description: req.Description,
		VetName:     req.VetName,
	}
	if req.VisitDate != nil {
		visitDate, ferr := validator.Date("visitDate", *req.VisitDate)
		if ferr != nil {
			writeFieldError(w, ferr)
			return
		}
		input.VisitDate = &visitDate
	}

	rec, err := h.petService.UpdateRecord(r.Context(), middleware.GetUserID(r.Context()), recordID, input)
	if err != nil {
		h.respondPetError(w, "update medical record", err)
		return
	}

	writeSuccess(w, http.StatusOK, "Medical record updated", map[string]any{"record": rec})
}

func (h *PetHandler) DeleteRecord(w http.ResponseWriter, r *http.Request) {
	recordID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.petService.DeleteRecord(r.Context(), middleware.GetUserID(r.Context()), recordID); err != nil {
		h.respondPetError(w, "delete medical record", err)
		return
	}

	writeSuccess(w, http.StatusOK, "Medical record deleted", nil)
}

func (h *PetHandler) respondPetError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, service.ErrPetNotFound):
		writeError(w, http.StatusNotFound, "Pet not found", "not_found")
	case errors.Is(err, service.ErrRecordNotFound):
		writeError(w, http.StatusNotFound, "Medical record not found", "not_found")
	default:
		writeInternal(w, op, err)
	}
}

// pathID parses the {id} path segment. A malformed id is a 400.
func pathID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue(name))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid id", "validation_error")
		return uuid.Nil, false
	}
	return id, true
}
