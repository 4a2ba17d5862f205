package server

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"gitlab.ozon.dev/ecom/returns/internal/lifecycle"
	"gitlab.ozon.dev/ecom/returns/internal/repository"
	"gitlab.ozon.dev/ecom/returns/internal/service"
	"gitlab.ozon.dev/ecom/returns/internal/storage"
)

var validate = validator.New()

type createItemRequest struct {
	OrderLineID string `json:"order_line_id" validate:"required"`
	ProductName string `json:"product_name" validate:"required"`
	Quantity    int    `json:"quantity" validate:"required,gt=0"`
	Condition   string `json:"condition"`
	UnitPrice   int64  `json:"unit_price" validate:"gte=0"`
}

type createReturnRequest struct {
	OrderID         string              `json:"order_id" validate:"required"`
	UserID          string              `json:"user_id" validate:"required"`
	RequestedAction string              `json:"requested_action" validate:"required,oneof=refund replacement repair"`
	ReasonCode      string              `json:"reason_code" validate:"required"`
	ReasonText      string              `json:"reason_text"`
	OrderTotal      int64               `json:"order_total" validate:"required,gt=0"`
	PickupAddress   string              `json:"pickup_address"`
	CustomerShips   bool                `json:"customer_ships"`
	Items           []createItemRequest `json:"items" validate:"required,min=1,dive"`
}

func (s *Server) handleCreateReturn(w http.ResponseWriter, r *http.Request) {
	var req createReturnRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	items := make([]storage.DraftItem, len(req.Items))
	for i, it := range req.Items {
		items[i] = storage.DraftItem{
			OrderLineID: it.OrderLineID,
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			Condition:   it.Condition,
			UnitPrice:   it.UnitPrice,
		}
	}

	ret, err := s.service.CreateReturn(r.Context(), service.CreateReturnCommand{
		OrderID:         req.OrderID,
		UserID:          req.UserID,
		RequestedAction: req.RequestedAction,
		ReasonCode:      req.ReasonCode,
		ReasonText:      req.ReasonText,
		OrderTotal:      req.OrderTotal,
		PickupAddress:   req.PickupAddress,
		CustomerShips:   req.CustomerShips,
		Items:           items,
		Actor:           req.UserID,
		Role:            lifecycle.RoleCustomer,
	})
	if err != nil {
		s.respondServiceError(w, "create_return", err)
		return
	}

	respondJSON(w, http.StatusCreated, ret)
}

func (s *Server) handleGetReturn(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid return id")
		return
	}

	identity, _ := staffFromContext(r.Context())

	detail, err := s.service.GetDetail(r.Context(), id, identity.Role)
	if err != nil {
		s.respondServiceError(w, "get_return", err)
		return
	}

	respondJSON(w, http.StatusOK, detail)
}

type listReturnsResponse struct {
	Returns []storage.Return           `json:"returns"`
	Stats   map[lifecycle.Status]int64 `json:"stats,omitempty"`
	Page    int                        `json:"page"`
	Limit   int                        `json:"limit"`
}

func (s *Server) handleListReturns(w http.ResponseWriter, r *http.Request) {
	filter := repository.ReturnFilter{
		Status: r.URL.Query().Get("status"),
		Search: r.URL.Query().Get("search"),
		Page:   1,
		Limit:  20,
	}

	if pageStr := r.URL.Query().Get("page"); pageStr != "" {
		page, err := strconv.Atoi(pageStr)
		if err != nil || page <= 0 {
			respondError(w, http.StatusBadRequest, "Invalid value for 'page' parameter")
			return
		}
		filter.Page = page
	}
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil || limit <= 0 {
			respondError(w, http.StatusBadRequest, "Invalid value for 'limit' parameter")
			return
		}
		filter.Limit = limit
	}
	if fromStr := r.URL.Query().Get("from"); fromStr != "" {
		from, err := time.Parse(time.RFC3339, fromStr)
		if err != nil {
			respondError(w, http.StatusBadRequest, "Invalid value for 'from' parameter, use RFC3339")
			return
		}
		filter.From = &from
	}
	if toStr := r.URL.Query().Get("to"); toStr != "" {
		to, err := time.Parse(time.RFC3339, toStr)
		if err != nil {
			respondError(w, http.StatusBadRequest, "Invalid value for 'to' parameter, use RFC3339")
			return
		}
		filter.To = &to
	}

	returns, err := s.service.List(r.Context(), filter)
	if err != nil {
		s.respondServiceError(w, "list_returns", err)
		return
	}

	resp := listReturnsResponse{
		Returns: returns,
		Page:    filter.Page,
		Limit:   filter.Limit,
	}

	// The embedded stats come from the read-model cache; the listing itself
	// must not fail when the cache cannot refresh.
	if stats, err := s.service.GetStats(r.Context()); err == nil {
		resp.Stats = stats
	} else {
		log.Printf("Failed to load stats for listing: %v", err)
	}

	respondJSON(w, http.StatusOK, resp)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.service.GetStats(r.Context())
	if err != nil {
		s.respondServiceError(w, "get_stats", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"stats": stats})
}

type approveRequest struct {
	Notes           string     `json:"notes"`
	PickupScheduled *time.Time `json:"pickup_scheduled"`
	PickupCarrier   string     `json:"pickup_carrier"`
	PickupAddress   string     `json:"pickup_address"`
	CustomerShips   bool       `json:"customer_ships"`
}

func (s *Server) handleApprove(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid return id")
		return
	}

	var req approveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	identity, _ := staffFromContext(r.Context())

	ret, err := s.service.Approve(r.Context(), service.ApproveCommand{
		ReturnID:        id,
		Notes:           req.Notes,
		PickupScheduled: req.PickupScheduled,
		PickupCarrier:   req.PickupCarrier,
		PickupAddress:   req.PickupAddress,
		CustomerShips:   req.CustomerShips,
		Actor:           identity.Username,
		Role:            identity.Role,
	})
	if err != nil {
		s.respondServiceError(w, "approve_return", err)
		return
	}

	respondJSON(w, http.StatusOK, ret)
}

type rejectRequest struct {
	Notes string `json:"notes" validate:"required"`
}

func (s *Server) handleReject(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid return id")
		return
	}

	var req rejectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	identity, _ := staffFromContext(r.Context())

	ret, err := s.service.Reject(r.Context(), service.RejectCommand{
		ReturnID: id,
		Notes:    req.Notes,
		Actor:    identity.Username,
		Role:     identity.Role,
	})
	if err != nil {
		s.respondServiceError(w, "reject_return", err)
		return
	}

	respondJSON(w, http.StatusOK, ret)
}

type updateStatusRequest struct {
	NewStatus       string     `json:"new_status" validate:"required"`
	Notes           string     `json:"notes"`
	PickupScheduled *time.Time `json:"pickup_scheduled"`
	PickupCarrier   string     `json:"pickup_carrier"`
}

func (s *Server) handleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid return id")
		return
	}

	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	identity, _ := staffFromContext(r.Context())

	ret, err := s.service.UpdateStatus(r.Context(), service.UpdateStatusCommand{
		ReturnID:        id,
		NewStatus:       req.NewStatus,
		Notes:           req.Notes,
		PickupScheduled: req.PickupScheduled,
		PickupCarrier:   req.PickupCarrier,
		Actor:           identity.Username,
		Role:            identity.Role,
	})
	if err != nil {
		s.respondServiceError(w, "update_status", err)
		return
	}

	respondJSON(w, http.StatusOK, ret)
}

type noteRequest struct {
	Notes string `json:"notes" validate:"required"`
}

func (s *Server) handleAddNote(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid return id")
		return
	}

	var req noteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	identity, _ := staffFromContext(r.Context())

	ret, err := s.service.AddNote(r.Context(), service.NoteCommand{
		ReturnID: id,
		Notes:    req.Notes,
		Actor:    identity.Username,
		Role:     identity.Role,
	})
	if err != nil {
		s.respondServiceError(w, "add_note", err)
		return
	}

	respondJSON(w, http.StatusOK, ret)
}

type refundRequest struct {
	ReturnID string `json:"return_id" validate:"required,uuid"`
	Amount   int64  `json:"amount" validate:"required,gt=0"`
	Method   string `json:"method" validate:"required,oneof=original_payment store_credit bank_transfer"`
	Partial  bool   `json:"partial"`
	Notes    string `json:"notes"`
}

func (s *Server) handleCreateRefund(w http.ResponseWriter, r *http.Request) {
	var req refundRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	returnID, err := uuid.Parse(req.ReturnID)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid return_id")
		return
	}

	identity, _ := staffFromContext(r.Context())

	ret, err := s.service.InitiateRefund(r.Context(), service.RefundCommand{
		ReturnID: returnID,
		Amount:   req.Amount,
		Method:   req.Method,
		Partial:  req.Partial,
		Notes:    req.Notes,
		Actor:    identity.Username,
		Role:     identity.Role,
	})
	if err != nil {
		s.respondServiceError(w, "initiate_refund", err)
		return
	}

	respondJSON(w, http.StatusOK, ret)
}

type replacementRequest struct {
	ReturnID string `json:"return_id" validate:"required,uuid"`
	Notes    string `json:"notes"`
}

func (s *Server) handleCreateReplacement(w http.ResponseWriter, r *http.Request) {
	var req replacementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	returnID, err := uuid.Parse(req.ReturnID)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid return_id")
		return
	}

	identity, _ := staffFromContext(r.Context())

	ret, err := s.service.CreateReplacement(r.Context(), service.ReplacementCommand{
		ReturnID: returnID,
		Notes:    req.Notes,
		Actor:    identity.Username,
		Role:     identity.Role,
	})
	if err != nil {
		s.respondServiceError(w, "create_replacement", err)
		return
	}

	respondJSON(w, http.StatusOK, ret)
}
