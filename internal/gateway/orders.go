package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"gitlab.ozon.dev/ecom/returns/internal/service"
)

// OrderClient calls the order collaborator over HTTP JSON. It implements
// service.OrderService.
type OrderClient struct {
	baseURL string
	client  *http.Client
}

func NewOrderClient(baseURL string, client *http.Client) *OrderClient {
	if client == nil {
		client = http.DefaultClient
	}
	return &OrderClient{baseURL: baseURL, client: client}
}

type replacementItemBody struct {
	OrderLineID string `json:"order_line_id"`
	ProductName string `json:"product_name"`
	Quantity    int    `json:"quantity"`
}

type replacementRequestBody struct {
	ReturnID string                `json:"return_id"`
	OrderID  string                `json:"order_id"`
	UserID   string                `json:"user_id"`
	Items    []replacementItemBody `json:"items"`
}

type replacementResponseBody struct {
	OrderID string `json:"order_id"`
	Status  string `json:"status"`
}

// CreateReplacementOrder places a zero-cost replacement order and returns the
// new order id.
func (c *OrderClient) CreateReplacementOrder(ctx context.Context, req service.ReplacementRequest) (string, error) {
	items := make([]replacementItemBody, len(req.Items))
	for i, it := range req.Items {
		items[i] = replacementItemBody{
			OrderLineID: it.OrderLineID,
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
		}
	}

	body, err := json.Marshal(replacementRequestBody{
		ReturnID: req.ReturnID.String(),
		OrderID:  req.OrderID,
		UserID:   req.UserID,
		Items:    items,
	})
	if err != nil {
		return "", fmt.Errorf("marshal replacement request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/orders/replacements", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build replacement request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("replacement request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return "", fmt.Errorf("order service returned %s", resp.Status)
	}

	var result replacementResponseBody
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("decode replacement response: %w", err)
	}
	return result.OrderID, nil
}
