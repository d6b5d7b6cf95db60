package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/pawhub/pawhub/internal/service"
	"github.com/pawhub/pawhub/pkg/validator"
)

type ShopHandler struct {
	shopService *service.ShopService
}

func NewShopHandler(shopService *service.ShopService) *ShopHandler {
	return &ShopHandler{shopService: shopService}
}

func (h *ShopHandler) List(w http.ResponseWriter, r *http.Request) {
	shops, err := h.shopService.List(r.Context())
	if err != nil {
		writeInternal(w, "list shops", err)
		return
	}

	writeSuccess(w, http.StatusOK, "", map[string]any{"shops": shops})
}

func (h *ShopHandler) Get(w http.ResponseWriter, r *http.Request) {
	shopID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	shop, err := h.shopService.Get(r.Context(), shopID)
	if err != nil {
		if errors.Is(err, service.ErrShopNotFound) {
			writeError(w, http.StatusNotFound, "Shop not found", "not_found")
			return
		}
		writeInternal(w, "get shop", err)
		return
	}

	writeSuccess(w, http.StatusOK, "", map[string]any{"shop": shop})
}

type shopRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Address     string `json:"address"`
	Phone       string `json:"phone"`
}

func (h *ShopHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req shopRequest
	var image *service.ImageUpload

	if isMultipart(r) {
		if err := r.ParseMultipartForm(maxImageMemory); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid multipart form", "invalid_form")
			return
		}
		req = shopRequest{
			Name:        r.FormValue("name"),
			Description: r.FormValue("description"),
			Address:     r.FormValue("address"),
			Phone:       r.FormValue("phone"),
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
		validator.Field{Name: "address", Value: req.Address},
	); ferr != nil {
		writeFieldError(w, ferr)
		return
	}

	shop, err := h.shopService.Create(r.Context(), service.CreateShopInput{
		Name:        req.Name,
		Description: req.Description,
		Address:     req.Address,
		Phone:       req.Phone,
		Image:       image,
	})
	if err != nil {
		writeInternal(w, "create shop", err)
		return
	}

	writeSuccess(w, http.StatusCreated, "Shop created", map[string]any{"shop": shop})
}

type updateShopRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Address     *string `json:"address"`
	Phone       *string `json:"phone"`
}

func (h *ShopHandler) Update(w http.ResponseWriter, r *http.Request) {
	shopID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req updateShopRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", "invalid_json")
		return
	}

	shop, err := h.shopService.Update(r.Context(), shopID, service.UpdateShopInput{
		Name:        req.Name,
		Description: req.Description,
		Address:     req.Address,
		Phone:       req.Phone,
	})
	if err != nil {
		if errors.Is(err, service.ErrShopNotFound) {
			writeError(w, http.StatusNotFound, "Shop not found", "not_found")
			return
		}
		writeInternal(w, "update shop", err)
		return
	}

	writeSuccess(w, http.StatusOK, "Shop updated", map[string]any{"shop": shop})
}

func (h *ShopHandler) Delete(w http.ResponseWriter, r *http.Request) {
	shopID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.shopService.Delete(r.Context(), shopID); err != nil {
		if errors.Is(err, service.ErrShopNotFound) {
			writeError(w, http.StatusNotFound, "Shop not found", "not_found")
			return
		}
		writeInternal(w, "delete shop", err)
		return
	}

	writeSuccess(w, http.StatusOK, "Shop deleted", nil)
}
