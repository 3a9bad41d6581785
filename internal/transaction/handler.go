package transaction

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
	Create(ownerID int64, dto CreateTransactionDTO) (*Transaction, error)
	List(ownerID int64) ([]*Transaction, error)
	GetByID(id int64) (*Transaction, error)
	Update(id int64, dto UpdateTransactionDTO) (*Transaction, error)
	Delete(id int64) error
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

func (h *Handler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.UserFromContext(r.Context())
	if !ok || identity == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto CreateTransactionDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("CreateTransaction: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	t, err := h.Service.Create(identity.UserID, dto)
	if err != nil {
		h.Logger.Error("CreateTransaction: service error", "error", err, "user_id", identity.UserID)
		h.WriteError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.WriteJSON(w, http.StatusCreated, TransactionResponse{
		Message:     "Transaction created successfully",
		Transaction: t,
	})
}

func (h *Handler) GetTransactions(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.UserFromContext(r.Context())
	if !ok || identity == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	transactions, err := h.Service.List(identity.UserID)
	if err != nil {
		h.Logger.Error("GetTransactions: service error", "error", err, "user_id", identity.UserID)
		h.WriteError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.WriteJSON(w, http.StatusOK, TransactionsResponse{
		Transactions: transactions,
	})
}

func (h *Handler) GetTransaction(w http.ResponseWriter, r *http.Request) {
	if _, ok := auth.UserFromContext(r.Context()); !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := parseID(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid transaction ID")
		return
	}

	t, err := h.Service.GetByID(id)
	if err != nil {
		if errors.Is(err, ErrTransactionNotFound) {
			h.WriteError(w, http.StatusNotFound, "transaction not found")
			return
		}
		h.Logger.Error("GetTransaction: service error", "error", err, "transaction_id", id)
		h.WriteError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{"transaction": t})
}

func (h *Handler) UpdateTransaction(w http.ResponseWriter, r *http.Request) {
	if _, ok := auth.UserFromContext(r.Context()); !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := parseID(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid transaction ID")
		return
	}

	var dto UpdateTransactionDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("UpdateTransaction: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	t, err := h.Service.Update(id, dto)
	if err != nil {
		if errors.Is(err, ErrTransactionNotFound) {
			h.WriteError(w, http.StatusNotFound, "transaction not found")
			return
		}
		h.Logger.Error("UpdateTransaction: service error", "error", err, "transaction_id", id)
		h.WriteError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.WriteJSON(w, http.StatusOK, TransactionResponse{
		Message:     "Transaction updated successfully",
		Transaction: t,
	})
}

func (h *Handler) DeleteTransaction(w http.ResponseWriter, r *http.Request) {
	if _, ok := auth.UserFromContext(r.Context()); !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := parseID(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid transaction ID")
		return
	}

	if err := h.Service.Delete(id); err != nil {
		if errors.Is(err, ErrTransactionNotFound) {
			h.WriteError(w, http.StatusNotFound, "transaction not found")
			return
		}
		h.Logger.Error("DeleteTransaction: service error", "error", err, "transaction_id", id)
		h.WriteError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]string{"message": "Transaction deleted successfully"})
}

func parseID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}
