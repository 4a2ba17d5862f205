package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitlab.ozon.dev/ecom/returns/internal/service"
)

func TestOrderClient_CreateReplacementOrder(t *testing.T) {
	ctx := context.Background()
	returnID := uuid.New()

	req := service.ReplacementRequest{
		ReturnID: returnID,
		OrderID:  "order-1001",
		UserID:   "user-42",
		Items: []service.ReplacementItem{
			{OrderLineID: "line-1", ProductName: "kettle", Quantity: 1},
			{OrderLineID: "line-2", ProductName: "lid", Quantity: 2},
		},
	}

	t.Run("success", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/orders/replacements", r.URL.Path)

			var body replacementRequestBody
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "order-1001", body.OrderID)
			require.Len(t, body.Items, 2)
			assert.Equal(t, "line-2", body.Items[1].OrderLineID)
			assert.Equal(t, 2, body.Items[1].Quantity)

			w.WriteHeader(http.StatusCreated)
			_ = json.NewEncoder(w).Encode(replacementResponseBody{OrderID: "order-2002", Status: "created"})
		}))
		defer srv.Close()

		client := NewOrderClient(srv.URL, srv.Client())

		newOrderID, err := client.CreateReplacementOrder(ctx, req)
		require.NoError(t, err)
		assert.Equal(t, "order-2002", newOrderID)
	})

	t.Run("order service unavailable", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer srv.Close()

		client := NewOrderClient(srv.URL, srv.Client())

		_, err := client.CreateReplacementOrder(ctx, req)
		assert.Error(t, err)
	})
}
