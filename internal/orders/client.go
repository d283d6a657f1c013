// Package orders holds the order service client and the local archive
// of confirmed orders that backs the confirmation view.
package orders

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sony/gobreaker/v2"
)

var ErrSubmissionFailed = errors.New("order submission failed")

// SubmitRequest is the wire shape the order service accepts. Field
// names follow the storefront API contract.
type SubmitRequest struct {
	FullName      string       `json:"fullName"`
	Phone         string       `json:"phone"`
	Address       string       `json:"address"`
	Email         string       `json:"email"`
	AcceptedTerms bool         `json:"acceptedTerms"`
	TotalPrice    int64        `json:"totalPrice"`
	Items         []SubmitItem `json:"items"`
}

type SubmitItem struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

type SubmitResponse struct {
	OrderID string `json:"orderId"`
}

// Client submits orders over HTTP behind a circuit breaker, so a dead
// order service fails fast instead of tying up checkout goroutines.
type Client struct {
	baseURL    string
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker[*SubmitResponse]
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	settings := gobreaker.Settings{
		Name:    "order-service",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		breaker:    gobreaker.NewCircuitBreaker[*SubmitResponse](settings),
	}
}

// Submit posts the order. Any non-2xx response, transport error or
// breaker rejection surfaces as a wrapped ErrSubmissionFailed; the
// caller decides how to recover.
func (c *Client) Submit(ctx context.Context, order SubmitRequest) (*SubmitResponse, error) {
	result, err := c.breaker.Execute(func() (*SubmitResponse, error) {
		return c.post(ctx, order)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, fmt.Errorf("%w: order service unavailable: %v", ErrSubmissionFailed, err)
		}
		return nil, err
	}
	return result, nil
}

func (c *Client) post(ctx context.Context, order SubmitRequest) (*SubmitResponse, error) {
	body, err := json.Marshal(order)
	if err != nil {
		return nil, fmt.Errorf("marshal order: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/orders", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build order request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSubmissionFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain so the connection can be reused.
		io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("%w: unexpected status %d", ErrSubmissionFailed, resp.StatusCode)
	}

	var result SubmitResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", ErrSubmissionFailed, err)
	}
	if result.OrderID == "" {
		return nil, fmt.Errorf("%w: empty order id", ErrSubmissionFailed)
	}
	return &result, nil
}
