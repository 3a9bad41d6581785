package category

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/frahmantamala/personal-finance/internal/auth"
	"github.com/frahmantamala/personal-finance/internal/transport"
	"github.com/frahmantamala/personal-finance/pkg/logger"
	"github.com/go-chi/chi"
)

type ServiceAPI interface {
	Create(ownerID int64, dto CreateCategoryDTO) (*Category, error)
	List(ownerID int64, categoryType, search string) ([]*Category, error)
	GetByID(ownerID, id int64) (*Category, error)
	Update(ownerID, id int64, dto UpdateCategoryDTO) (*Category, error)
	Delete(ownerID, id int64) error
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(service ServiceAPI) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     service,
	}
}

func (h *Handler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.UserFromContext(r.Context())
	if !ok || identity == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto CreateCategoryDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("CreateCategory: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	c, err := h.Service.Create(identity.UserID, dto)
	if err != nil {
		h.Logger.Error("CreateCategory: service error", "error", err, "user_id", identity.UserID)

		switch {
		case errors.Is(err, ErrCategoryExists):
			h.WriteError(w, http.StatusConflict, "category already exists")
		case errors.Is(err, ErrInvalidType):
			h.WriteError(w, http.StatusBadRequest, "type must be either income or expense")
		case errors.Is(err, ErrMissingFields):
			h.WriteError(w, http.StatusBadRequest, "name and type are required")
		default:
			h.WriteError(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	h.WriteJSON(w, http.StatusCreated, CategoryResponse{
		Message:  "Category created successfully",
		Category: c,
	})
}

func (h *Handler) GetCategories(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.UserFromContext(r.Context())
	if !ok || identity == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	categoryType := r.URL.Query().Get("type")
	search := r.URL.Query().Get("search")

	categories, err := h.Service.List(identity.UserID, categoryType, search)
	if err != nil {
		h.Logger.Error("GetCategories: service error", "error", err, "user_id", identity.UserID)
		h.WriteError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.WriteJSON(w, http.StatusOK, CategoriesResponse{
		Categories: categories,
	})
}

func (h *Handler) GetCategory(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.UserFromContext(r.Context())
	if !ok || identity == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := parseID(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid category ID")
		return
	}

	c, err := h.Service.GetByID(identity.UserID, id)
	if err != nil {
		if errors.Is(err, ErrCategoryNotFound) {
			h.WriteError(w, http.StatusNotFound, "category not found")
			return
		}
		h.Logger.Error("GetCategory: service error", "error", err, "category_id", id)
		h.WriteError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{"category": c})
}

func (h *Handler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.UserFromContext(r.Context())
	if !ok || identity == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := parseID(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid category ID")
		return
	}

	var dto UpdateCategoryDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("UpdateCategory: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	c, err := h.Service.Update(identity.UserID, id, dto)
	if err != nil {
		h.Logger.Error("UpdateCategory: service error", "error", err, "category_id", id)

		switch {
		case errors.Is(err, ErrCategoryNotFound):
			h.WriteError(w, http.StatusNotFound, "category not found")
		case errors.Is(err, ErrInvalidType):
			h.WriteError(w, http.StatusBadRequest, "type must be either income or expense")
		case errors.Is(err, ErrCategoryExists):
			h.WriteError(w, http.StatusConflict, "category already exists")
		default:
			h.WriteError(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	h.WriteJSON(w, http.StatusOK, CategoryResponse{
		Message:  "Category updated successfully",
		Category: c,
	})
}

func (h *Handler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.UserFromContext(r.Context())
	if !ok || identity == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := parseID(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid category ID")
		return
	}

	if err := h.Service.Delete(identity.UserID, id); err != nil {
		h.Logger.Error("DeleteCategory: service error", "error", err, "category_id", id)

		switch {
		case errors.Is(err, ErrCategoryNotFound):
			h.WriteError(w, http.StatusNotFound, "category not found")
		case errors.Is(err, ErrCategoryInUse):
			h.WriteError(w, http.StatusBadRequest, "cannot delete category with associated transactions")
		default:
			h.WriteError(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]string{"message": "Category deleted successfully"})
}

func parseID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}
