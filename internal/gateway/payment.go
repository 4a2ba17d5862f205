package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"gitlab.ozon.dev/ecom/returns/internal/service"
)

// PaymentClient calls the payment collaborator over HTTP JSON. It implements
// service.PaymentService.
type PaymentClient struct {
	baseURL string
	client  *http.Client
}

func NewPaymentClient(baseURL string, client *http.Client) *PaymentClient {
	if client == nil {
		client = http.DefaultClient
	}
	return &PaymentClient{baseURL: baseURL, client: client}
}

type refundRequestBody struct {
	ReturnID string `json:"return_id"`
	OrderID  string `json:"order_id"`
	UserID   string `json:"user_id"`
	Amount   int64  `json:"amount"`
	Method   string `json:"method"`
	Partial  bool   `json:"partial"`
}

type refundResponseBody struct {
	RefundID string `json:"refund_id"`
	Status   string `json:"status"`
}

// CreateRefund opens a refund on the payment side and returns its external id.
// A 400 or 422 answer means the service refused the amount.
func (c *PaymentClient) CreateRefund(ctx context.Context, req service.RefundRequest) (string, error) {
	body, err := json.Marshal(refundRequestBody{
		ReturnID: req.ReturnID.String(),
		OrderID:  req.OrderID,
		UserID:   req.UserID,
		Amount:   req.Amount,
		Method:   req.Method,
		Partial:  req.Partial,
	})
	if err != nil {
		return "", fmt.Errorf("marshal refund request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/refunds", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build refund request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("refund request: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated:
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return "", fmt.Errorf("%w: payment service returned %s", service.ErrInvalidAmount, resp.Status)
	default:
		return "", fmt.Errorf("payment service returned %s", resp.Status)
	}

	var result refundResponseBody
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("decode refund response: %w", err)
	}
	return result.RefundID, nil
}
