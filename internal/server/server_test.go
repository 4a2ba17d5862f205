package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"gitlab.ozon.dev/ecom/returns/internal/lifecycle"
	"gitlab.ozon.dev/ecom/returns/internal/repository"
	mock_server "gitlab.ozon.dev/ecom/returns/internal/server/mocks"
	"gitlab.ozon.dev/ecom/returns/internal/service"
	"gitlab.ozon.dev/ecom/returns/internal/storage"
)

func asManager(req *http.Request) *http.Request {
	return req.WithContext(withStaff(req.Context(), "alice", lifecycle.RoleManager))
}

func testReturn(id uuid.UUID, status lifecycle.Status) *storage.Return {
	return &storage.Return{
		ID:           id,
		ReturnNumber: "RET-20250310-AAAA1111",
		OrderID:      "order-1001",
		UserID:       "user-42",
		Status:       status,
		OrderTotal:   10000,
		Version:      2,
	}
}

func TestHandleCreateReturn(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := mock_server.NewMockReturnsService(ctrl)
	mockStaff := mock_server.NewMockStaffRepo(ctrl)
	server := New(mockService, mockStaff)

	returnID := uuid.New()

	tests := []struct {
		name           string
		requestBody    map[string]interface{}
		setupMocks     func()
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "successful creation",
			requestBody: map[string]interface{}{
				"order_id":         "order-1001",
				"user_id":          "user-42",
				"requested_action": "refund",
				"reason_code":      "damaged",
				"order_total":      10000,
				"items": []map[string]interface{}{
					{"order_line_id": "line-1", "product_name": "kettle", "quantity": 1, "unit_price": 10000},
				},
			},
			setupMocks: func() {
				mockService.EXPECT().
					CreateReturn(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, cmd service.CreateReturnCommand) (*storage.Return, error) {
						assert.Equal(t, "order-1001", cmd.OrderID)
						assert.Equal(t, lifecycle.RoleCustomer, cmd.Role)
						assert.Equal(t, "user-42", cmd.Actor)
						require.Len(t, cmd.Items, 1)
						return testReturn(returnID, lifecycle.StatusPending), nil
					})
			},
			expectedStatus: http.StatusCreated,
			expectedBody:   `"return_number":"RET-20250310-AAAA1111"`,
		},
		{
			name:           "malformed body",
			requestBody:    nil,
			setupMocks:     func() {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `Invalid request body`,
		},
		{
			name: "missing order id",
			requestBody: map[string]interface{}{
				"user_id":          "user-42",
				"requested_action": "refund",
				"reason_code":      "damaged",
				"order_total":      10000,
				"items": []map[string]interface{}{
					{"order_line_id": "line-1", "product_name": "kettle", "quantity": 1},
				},
			},
			setupMocks:     func() {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `required`,
		},
		{
			name: "unknown action",
			requestBody: map[string]interface{}{
				"order_id":         "order-1001",
				"user_id":          "user-42",
				"requested_action": "exchange",
				"reason_code":      "damaged",
				"order_total":      10000,
				"items": []map[string]interface{}{
					{"order_line_id": "line-1", "product_name": "kettle", "quantity": 1},
				},
			},
			setupMocks:     func() {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `oneof`,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tc.setupMocks()

			var bodyReader *bytes.Reader
			if tc.requestBody != nil {
				body, err := json.Marshal(tc.requestBody)
				require.NoError(t, err)
				bodyReader = bytes.NewReader(body)
			} else {
				bodyReader = bytes.NewReader([]byte("{invalid"))
			}
			req := httptest.NewRequest(http.MethodPost, "/returns", bodyReader)
			req.Header.Set("Content-Type", "application/json")

			rr := httptest.NewRecorder()

			server.handleCreateReturn(rr, req)

			assert.Equal(t, tc.expectedStatus, rr.Code)
			assert.Contains(t, rr.Body.String(), tc.expectedBody)
		})
	}
}

func TestHandleGetReturn(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := mock_server.NewMockReturnsService(ctrl)
	mockStaff := mock_server.NewMockStaffRepo(ctrl)
	server := New(mockService, mockStaff)

	returnID := uuid.New()

	t.Run("detail with available transitions", func(t *testing.T) {
		detail := &service.Detail{
			ReturnDetail: storage.ReturnDetail{
				Return: *testReturn(returnID, lifecycle.StatusRefundInitiated),
			},
			AvailableTransitions: []lifecycle.Status{lifecycle.StatusCompleted},
		}
		mockService.EXPECT().
			GetDetail(gomock.Any(), returnID, lifecycle.RoleManager).
			Return(detail, nil)

		req := httptest.NewRequest(http.MethodGet, "/returns/admin/"+returnID.String(), nil)
		req = mux.SetURLVars(req, map[string]string{"id": returnID.String()})
		req = asManager(req)

		rr := httptest.NewRecorder()

		server.handleGetReturn(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), `"available_transitions":["completed"]`)
	})

	t.Run("invalid id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/returns/admin/not-a-uuid", nil)
		req = mux.SetURLVars(req, map[string]string{"id": "not-a-uuid"})
		req = asManager(req)

		rr := httptest.NewRecorder()

		server.handleGetReturn(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.JSONEq(t, `{"error":"Invalid return id"}`, rr.Body.String())
	})

	t.Run("not found", func(t *testing.T) {
		mockService.EXPECT().
			GetDetail(gomock.Any(), returnID, lifecycle.RoleManager).
			Return(nil, repository.ErrObjectNotFound)

		req := httptest.NewRequest(http.MethodGet, "/returns/admin/"+returnID.String(), nil)
		req = mux.SetURLVars(req, map[string]string{"id": returnID.String()})
		req = asManager(req)

		rr := httptest.NewRecorder()

		server.handleGetReturn(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestHandleApprove(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := mock_server.NewMockReturnsService(ctrl)
	mockStaff := mock_server.NewMockStaffRepo(ctrl)
	server := New(mockService, mockStaff)

	returnID := uuid.New()
	pickupAt := time.Date(2025, 3, 15, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name           string
		requestBody    map[string]interface{}
		setupMocks     func()
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "successful approve",
			requestBody: map[string]interface{}{
				"notes":            "ok to return",
				"pickup_scheduled": pickupAt.Format(time.RFC3339),
				"pickup_carrier":   "cdek",
			},
			setupMocks: func() {
				mockService.EXPECT().
					Approve(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, cmd service.ApproveCommand) (*storage.Return, error) {
						assert.Equal(t, returnID, cmd.ReturnID)
						assert.Equal(t, "alice", cmd.Actor)
						assert.Equal(t, lifecycle.RoleManager, cmd.Role)
						require.NotNil(t, cmd.PickupScheduled)
						assert.True(t, cmd.PickupScheduled.Equal(pickupAt))
						return testReturn(returnID, lifecycle.StatusApproved), nil
					})
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"status":"approved"`,
		},
		{
			name:        "version race",
			requestBody: map[string]interface{}{"customer_ships": true},
			setupMocks: func() {
				mockService.EXPECT().
					Approve(gomock.Any(), gomock.Any()).
					Return(nil, repository.ErrStaleState)
			},
			expectedStatus: http.StatusConflict,
			expectedBody:   `re-fetch and retry`,
		},
		{
			name:        "shipping collaborator down",
			requestBody: map[string]interface{}{"customer_ships": true},
			setupMocks: func() {
				mockService.EXPECT().
					Approve(gomock.Any(), gomock.Any()).
					Return(nil, service.ErrSideEffectFailed)
			},
			expectedStatus: http.StatusBadGateway,
			expectedBody:   `safe to retry`,
		},
		{
			name:        "role not allowed",
			requestBody: map[string]interface{}{"customer_ships": true},
			setupMocks: func() {
				mockService.EXPECT().
					Approve(gomock.Any(), gomock.Any()).
					Return(nil, lifecycle.ErrForbidden)
			},
			expectedStatus: http.StatusForbidden,
			expectedBody:   `forbidden`,
		},
		{
			name:        "not an edge",
			requestBody: map[string]interface{}{"customer_ships": true},
			setupMocks: func() {
				mockService.EXPECT().
					Approve(gomock.Any(), gomock.Any()).
					Return(nil, lifecycle.ErrInvalidTransition)
			},
			expectedStatus: http.StatusConflict,
			expectedBody:   `invalid transition`,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tc.setupMocks()

			body, err := json.Marshal(tc.requestBody)
			require.NoError(t, err)
			req := httptest.NewRequest(http.MethodPut, "/returns/admin/"+returnID.String()+"/approve", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			req = mux.SetURLVars(req, map[string]string{"id": returnID.String()})
			req = asManager(req)

			rr := httptest.NewRecorder()

			server.handleApprove(rr, req)

			assert.Equal(t, tc.expectedStatus, rr.Code)
			assert.Contains(t, rr.Body.String(), tc.expectedBody)
		})
	}
}

func TestHandleReject(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := mock_server.NewMockReturnsService(ctrl)
	mockStaff := mock_server.NewMockStaffRepo(ctrl)
	server := New(mockService, mockStaff)

	returnID := uuid.New()

	t.Run("notes are required", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPut, "/returns/admin/"+returnID.String()+"/reject", bytes.NewReader([]byte(`{}`)))
		req = mux.SetURLVars(req, map[string]string{"id": returnID.String()})
		req = asManager(req)

		rr := httptest.NewRecorder()

		server.handleReject(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, rr.Body.String(), "required")
	})

	t.Run("successful reject", func(t *testing.T) {
		mockService.EXPECT().
			Reject(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, cmd service.RejectCommand) (*storage.Return, error) {
				assert.Equal(t, "photos show prior damage", cmd.Notes)
				return testReturn(returnID, lifecycle.StatusRejected), nil
			})

		body := []byte(`{"notes":"photos show prior damage"}`)
		req := httptest.NewRequest(http.MethodPut, "/returns/admin/"+returnID.String()+"/reject", bytes.NewReader(body))
		req = mux.SetURLVars(req, map[string]string{"id": returnID.String()})
		req = asManager(req)

		rr := httptest.NewRecorder()

		server.handleReject(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), `"status":"rejected"`)
	})
}

func TestHandleUpdateStatus(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := mock_server.NewMockReturnsService(ctrl)
	mockStaff := mock_server.NewMockStaffRepo(ctrl)
	server := New(mockService, mockStaff)

	returnID := uuid.New()

	tests := []struct {
		name           string
		requestBody    string
		setupMocks     func()
		expectedStatus int
		expectedBody   string
	}{
		{
			name:        "successful update",
			requestBody: `{"new_status":"in_transit"}`,
			setupMocks: func() {
				mockService.EXPECT().
					UpdateStatus(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, cmd service.UpdateStatusCommand) (*storage.Return, error) {
						assert.Equal(t, "in_transit", cmd.NewStatus)
						return testReturn(returnID, lifecycle.StatusInTransit), nil
					})
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"status":"in_transit"`,
		},
		{
			name:           "missing new_status",
			requestBody:    `{"notes":"moving"}`,
			setupMocks:     func() {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `required`,
		},
		{
			name:        "refund edge refused",
			requestBody: `{"new_status":"refund_initiated"}`,
			setupMocks: func() {
				mockService.EXPECT().
					UpdateStatus(gomock.Any(), gomock.Any()).
					Return(nil, lifecycle.ErrValidation)
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `validation failed`,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tc.setupMocks()

			req := httptest.NewRequest(http.MethodPut, "/returns/admin/"+returnID.String()+"/status", bytes.NewReader([]byte(tc.requestBody)))
			req = mux.SetURLVars(req, map[string]string{"id": returnID.String()})
			req = asManager(req)

			rr := httptest.NewRecorder()

			server.handleUpdateStatus(rr, req)

			assert.Equal(t, tc.expectedStatus, rr.Code)
			assert.Contains(t, rr.Body.String(), tc.expectedBody)
		})
	}
}

func TestHandleAddNote(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := mock_server.NewMockReturnsService(ctrl)
	mockStaff := mock_server.NewMockStaffRepo(ctrl)
	server := New(mockService, mockStaff)

	returnID := uuid.New()

	mockService.EXPECT().
		AddNote(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, cmd service.NoteCommand) (*storage.Return, error) {
			assert.Equal(t, returnID, cmd.ReturnID)
			assert.Equal(t, "customer sent photos", cmd.Notes)
			assert.Equal(t, "alice", cmd.Actor)
			return testReturn(returnID, lifecycle.StatusPending), nil
		})

	body := []byte(`{"notes":"customer sent photos"}`)
	req := httptest.NewRequest(http.MethodPost, "/returns/admin/"+returnID.String()+"/notes", bytes.NewReader(body))
	req = mux.SetURLVars(req, map[string]string{"id": returnID.String()})
	req = asManager(req)

	rr := httptest.NewRecorder()

	server.handleAddNote(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestHandleCreateRefund(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := mock_server.NewMockReturnsService(ctrl)
	mockStaff := mock_server.NewMockStaffRepo(ctrl)
	server := New(mockService, mockStaff)

	returnID := uuid.New()

	tests := []struct {
		name           string
		requestBody    map[string]interface{}
		setupMocks     func()
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "successful refund",
			requestBody: map[string]interface{}{
				"return_id": returnID.String(),
				"amount":    5000,
				"method":    "original_payment",
				"partial":   true,
			},
			setupMocks: func() {
				mockService.EXPECT().
					InitiateRefund(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, cmd service.RefundCommand) (*storage.Return, error) {
						assert.Equal(t, returnID, cmd.ReturnID)
						assert.EqualValues(t, 5000, cmd.Amount)
						assert.True(t, cmd.Partial)
						return testReturn(returnID, lifecycle.StatusRefundPartial), nil
					})
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"status":"refund_partial"`,
		},
		{
			name: "unknown method",
			requestBody: map[string]interface{}{
				"return_id": returnID.String(),
				"amount":    5000,
				"method":    "cash_in_envelope",
			},
			setupMocks:     func() {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `oneof`,
		},
		{
			name: "return id is not a uuid",
			requestBody: map[string]interface{}{
				"return_id": "42",
				"amount":    5000,
				"method":    "original_payment",
			},
			setupMocks:     func() {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `uuid`,
		},
		{
			name: "amount above total",
			requestBody: map[string]interface{}{
				"return_id": returnID.String(),
				"amount":    20000,
				"method":    "original_payment",
			},
			setupMocks: func() {
				mockService.EXPECT().
					InitiateRefund(gomock.Any(), gomock.Any()).
					Return(nil, lifecycle.ErrValidation)
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `validation failed`,
		},
		{
			name: "payment collaborator down",
			requestBody: map[string]interface{}{
				"return_id": returnID.String(),
				"amount":    5000,
				"method":    "original_payment",
			},
			setupMocks: func() {
				mockService.EXPECT().
					InitiateRefund(gomock.Any(), gomock.Any()).
					Return(nil, service.ErrSideEffectFailed)
			},
			expectedStatus: http.StatusBadGateway,
			expectedBody:   `safe to retry`,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tc.setupMocks()

			body, err := json.Marshal(tc.requestBody)
			require.NoError(t, err)
			req := httptest.NewRequest(http.MethodPost, "/refunds/admin", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			req = asManager(req)

			rr := httptest.NewRecorder()

			server.handleCreateRefund(rr, req)

			assert.Equal(t, tc.expectedStatus, rr.Code)
			assert.Contains(t, rr.Body.String(), tc.expectedBody)
		})
	}
}

func TestHandleCreateReplacement(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := mock_server.NewMockReturnsService(ctrl)
	mockStaff := mock_server.NewMockStaffRepo(ctrl)
	server := New(mockService, mockStaff)

	returnID := uuid.New()

	t.Run("successful replacement", func(t *testing.T) {
		mockService.EXPECT().
			CreateReplacement(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, cmd service.ReplacementCommand) (*storage.Return, error) {
				assert.Equal(t, returnID, cmd.ReturnID)
				return testReturn(returnID, lifecycle.StatusReplacementInitiated), nil
			})

		body := []byte(`{"return_id":"` + returnID.String() + `"}`)
		req := httptest.NewRequest(http.MethodPost, "/replacements/admin", bytes.NewReader(body))
		req = asManager(req)

		rr := httptest.NewRecorder()

		server.handleCreateReplacement(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), `"status":"replacement_initiated"`)
	})

	t.Run("already refunded", func(t *testing.T) {
		mockService.EXPECT().
			CreateReplacement(gomock.Any(), gomock.Any()).
			Return(nil, lifecycle.ErrValidation)

		body := []byte(`{"return_id":"` + returnID.String() + `"}`)
		req := httptest.NewRequest(http.MethodPost, "/replacements/admin", bytes.NewReader(body))
		req = asManager(req)

		rr := httptest.NewRecorder()

		server.handleCreateReplacement(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestHandleListReturns(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := mock_server.NewMockReturnsService(ctrl)
	mockStaff := mock_server.NewMockStaffRepo(ctrl)
	server := New(mockService, mockStaff)

	returnID := uuid.New()

	t.Run("filters are parsed and stats embedded", func(t *testing.T) {
		mockService.EXPECT().
			List(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, filter repository.ReturnFilter) ([]storage.Return, error) {
				assert.Equal(t, "approved", filter.Status)
				assert.Equal(t, "RET-20250310", filter.Search)
				assert.Equal(t, 2, filter.Page)
				assert.Equal(t, 5, filter.Limit)
				require.NotNil(t, filter.From)
				return []storage.Return{*testReturn(returnID, lifecycle.StatusApproved)}, nil
			})
		mockService.EXPECT().
			GetStats(gomock.Any()).
			Return(map[lifecycle.Status]int64{lifecycle.StatusApproved: 1}, nil)

		req := httptest.NewRequest(http.MethodGet,
			"/returns/admin?status=approved&search=RET-20250310&page=2&limit=5&from=2025-03-01T00:00:00Z", nil)
		req = asManager(req)

		rr := httptest.NewRecorder()

		server.handleListReturns(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), `"stats":{"approved":1}`)
		assert.Contains(t, rr.Body.String(), `"return_number":"RET-20250310-AAAA1111"`)
	})

	t.Run("listing survives a stats failure", func(t *testing.T) {
		mockService.EXPECT().
			List(gomock.Any(), gomock.Any()).
			Return([]storage.Return{*testReturn(returnID, lifecycle.StatusPending)}, nil)
		mockService.EXPECT().
			GetStats(gomock.Any()).
			Return(nil, errors.New("cache refresh failed"))

		req := httptest.NewRequest(http.MethodGet, "/returns/admin", nil)
		req = asManager(req)

		rr := httptest.NewRecorder()

		server.handleListReturns(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.NotContains(t, rr.Body.String(), `"stats"`)
	})

	t.Run("invalid page", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/returns/admin?page=zero", nil)
		req = asManager(req)

		rr := httptest.NewRecorder()

		server.handleListReturns(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.JSONEq(t, `{"error":"Invalid value for 'page' parameter"}`, rr.Body.String())
	})

	t.Run("invalid from date", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/returns/admin?from=yesterday", nil)
		req = asManager(req)

		rr := httptest.NewRecorder()

		server.handleListReturns(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestHandleStats(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := mock_server.NewMockReturnsService(ctrl)
	mockStaff := mock_server.NewMockStaffRepo(ctrl)
	server := New(mockService, mockStaff)

	mockService.EXPECT().
		GetStats(gomock.Any()).
		Return(map[lifecycle.Status]int64{
			lifecycle.StatusPending:   4,
			lifecycle.StatusCompleted: 11,
		}, nil)

	req := httptest.NewRequest(http.MethodGet, "/returns/admin/stats", nil)
	req = asManager(req)

	rr := httptest.NewRecorder()

	server.handleStats(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"stats":{"pending":4,"completed":11}}`, rr.Body.String())
}

func TestBasicAuthMiddleware(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := mock_server.NewMockReturnsService(ctrl)
	mockStaff := mock_server.NewMockStaffRepo(ctrl)
	server := New(mockService, mockStaff)

	probe := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, ok := staffFromContext(r.Context())
		require.True(t, ok)
		assert.Equal(t, "alice", identity.Username)
		assert.Equal(t, lifecycle.RoleManager, identity.Role)
		w.WriteHeader(http.StatusOK)
	})
	handler := server.basicAuthMiddleware(probe)

	t.Run("no credentials", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/returns/admin", nil)
		rr := httptest.NewRecorder()

		handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.NotEmpty(t, rr.Header().Get("WWW-Authenticate"))
	})

	t.Run("wrong credentials", func(t *testing.T) {
		mockStaff.EXPECT().
			ValidateStaff(gomock.Any(), "alice", "wrong").
			Return(nil, repository.ErrObjectNotFound)

		req := httptest.NewRequest(http.MethodGet, "/returns/admin", nil)
		req.SetBasicAuth("alice", "wrong")
		rr := httptest.NewRecorder()

		handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("valid credentials populate the staff identity", func(t *testing.T) {
		mockStaff.EXPECT().
			ValidateStaff(gomock.Any(), "alice", "s3cret").
			Return(&repository.StaffUser{Username: "alice", Role: "manager"}, nil)

		req := httptest.NewRequest(http.MethodGet, "/returns/admin", nil)
		req.SetBasicAuth("alice", "s3cret")
		rr := httptest.NewRecorder()

		handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
	})
}

func TestStatusFromError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", repository.ErrObjectNotFound, http.StatusNotFound},
		{"forbidden", lifecycle.ErrForbidden, http.StatusForbidden},
		{"invalid transition", lifecycle.ErrInvalidTransition, http.StatusConflict},
		{"stale", repository.ErrStaleState, http.StatusConflict},
		{"side effect", service.ErrSideEffectFailed, http.StatusBadGateway},
		{"validation", lifecycle.ErrValidation, http.StatusBadRequest},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, statusFromError(tt.err))
		})
	}
}
