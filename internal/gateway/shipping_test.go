package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitlab.ozon.dev/ecom/returns/internal/service"
)

func TestShippingClient_SchedulePickup(t *testing.T) {
	ctx := context.Background()
	returnID := uuid.New()
	pickupAt := time.Date(2025, 3, 15, 10, 0, 0, 0, time.UTC)

	req := service.PickupRequest{
		ReturnID:    returnID,
		OrderID:     "order-1001",
		Address:     "Moscow, Lva Tolstogo 16",
		ScheduledAt: pickupAt,
		Carrier:     "cdek",
	}

	t.Run("success", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/pickups", r.URL.Path)

			var body pickupRequestBody
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "cdek", body.Carrier)
			assert.Equal(t, "Moscow, Lva Tolstogo 16", body.Address)
			assert.True(t, body.ScheduledAt.Equal(pickupAt))

			_ = json.NewEncoder(w).Encode(pickupResponseBody{TicketID: "TICKET-9", Status: "booked"})
		}))
		defer srv.Close()

		client := NewShippingClient(srv.URL, srv.Client())

		ticketID, err := client.SchedulePickup(ctx, req)
		require.NoError(t, err)
		assert.Equal(t, "TICKET-9", ticketID)
	})

	t.Run("carrier api down", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer srv.Close()

		client := NewShippingClient(srv.URL, srv.Client())

		_, err := client.SchedulePickup(ctx, req)
		assert.Error(t, err)
	})
}
