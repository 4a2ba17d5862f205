package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"gitlab.ozon.dev/ecom/returns/internal/service"
)

// ShippingClient calls the logistics collaborator over HTTP JSON. It
// implements service.ShippingService.
type ShippingClient struct {
	baseURL string
	client  *http.Client
}

func NewShippingClient(baseURL string, client *http.Client) *ShippingClient {
	if client == nil {
		client = http.DefaultClient
	}
	return &ShippingClient{baseURL: baseURL, client: client}
}

type pickupRequestBody struct {
	ReturnID    string    `json:"return_id"`
	OrderID     string    `json:"order_id"`
	Address     string    `json:"address"`
	ScheduledAt time.Time `json:"scheduled_at"`
	Carrier     string    `json:"carrier"`
}

type pickupResponseBody struct {
	TicketID string `json:"ticket_id"`
	Status   string `json:"status"`
}

// SchedulePickup books a carrier pickup and returns the carrier ticket id.
func (c *ShippingClient) SchedulePickup(ctx context.Context, req service.PickupRequest) (string, error) {
	body, err := json.Marshal(pickupRequestBody{
		ReturnID:    req.ReturnID.String(),
		OrderID:     req.OrderID,
		Address:     req.Address,
		ScheduledAt: req.ScheduledAt,
		Carrier:     req.Carrier,
	})
	if err != nil {
		return "", fmt.Errorf("marshal pickup request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/pickups", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build pickup request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("pickup request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return "", fmt.Errorf("shipping service returned %s", resp.Status)
	}

	var result pickupResponseBody
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("decode pickup response: %w", err)
	}
	return result.TicketID, nil
}
