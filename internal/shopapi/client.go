package shopapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pankaj1920/shop/internal/model"
)

// Client is a thin HTTP client for the shop REST API.
// It handles Bearer token authentication, the {result,status,alert}
// envelope, and automatic retry with exponential backoff on HTTP 429.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	maxRetries int
	maxBackoff time.Duration
}

// NewClient creates a new shop API client. The token may be empty for
// anonymous access.
func NewClient(baseURL, token string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		maxRetries: 3,
		maxBackoff: 30 * time.Second,
	}
}

// Ping checks that the API is reachable.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.do(ctx, http.MethodGet, "/health", nil, nil)
	return err
}

// GetComments fetches the comments of a product.
func (c *Client) GetComments(ctx context.Context, productID int) ([]model.Comment, error) {
	var dtos []commentDTO
	path := "/comment?id=" + url.QueryEscape(strconv.Itoa(productID))
	if _, err := c.do(ctx, http.MethodGet, path, nil, &dtos); err != nil {
		return nil, err
	}
	comments := make([]model.Comment, 0, len(dtos))
	for _, d := range dtos {
		comments = append(comments, d.toModel())
	}
	return comments, nil
}

// AddComment posts a comment and returns the server's acknowledgement
// message, if any.
func (c *Client) AddComment(ctx context.Context, productID int, rate float64, comment string) (string, error) {
	var ok bool
	alert, err := c.do(ctx, http.MethodPost, "/comment", addCommentRequest{
		ProductID: productID,
		Rate:      rate,
		Comment:   comment,
	}, &ok)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", &APIError{StatusCode: http.StatusOK, Message: "comment was not accepted"}
	}
	return alertMessage(alert), nil
}

// GetBasket fetches the basket lines.
func (c *Client) GetBasket(ctx context.Context) ([]model.BasketItem, error) {
	var dtos []basketDTO
	if _, err := c.do(ctx, http.MethodGet, "/basket", nil, &dtos); err != nil {
		return nil, err
	}
	items := make([]model.BasketItem, 0, len(dtos))
	for _, d := range dtos {
		items = append(items, d.toModel())
	}
	return items, nil
}

// AddToBasket adds count units of a product to the basket.
func (c *Client) AddToBasket(ctx context.Context, productID, count int) (string, error) {
	var ok bool
	alert, err := c.do(ctx, http.MethodPost, "/basket/add", addToBasketRequest{
		ProductID: productID,
		Count:     count,
	}, &ok)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", &APIError{StatusCode: http.StatusOK, Message: "product was not added to the basket"}
	}
	return alertMessage(alert), nil
}

// BuyProduct places an order for the basket with the given shipping.
func (c *Client) BuyProduct(ctx context.Context, shipping model.ShippingType) (string, error) {
	var ok bool
	alert, err := c.do(ctx, http.MethodPost, "/order/add", buyRequest{ShippingType: shipping.ID}, &ok)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", &APIError{StatusCode: http.StatusOK, Message: "order was not accepted"}
	}
	return alertMessage(alert), nil
}

func alertMessage(a *Alert) string {
	if a == nil {
		return ""
	}
	return strings.TrimSpace(a.Message)
}

// do builds the request, handles auth, rate limiting with exponential
// backoff and the response envelope. The envelope result is decoded into
// result when both are non-nil.
func (c *Client) do(
	ctx context.Context,
	method string,
	path string,
	body interface{},
	result interface{},
) (*Alert, error) {
	endpoint := c.baseURL + path

	var payload []byte
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshaling request body: %w", err)
		}
		payload = data
	}

	// Retries of the same mutation share one key.
	idempotencyKey := ""
	if method != http.MethodGet {
		idempotencyKey = uuid.New().String()
	}

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		var bodyReader io.Reader
		if payload != nil {
			bodyReader = bytes.NewReader(payload)
		}

		req, err := http.NewRequestWithContext(ctx, method, endpoint, bodyReader)
		if err != nil {
			return nil, fmt.Errorf("creating request: %w", err)
		}

		if c.token != "" {
			req.Header.Set("Authorization", "Bearer "+c.token)
		}
		req.Header.Set("Accept", "application/json")
		if payload != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		if idempotencyKey != "" {
			req.Header.Set("Idempotency-Key", idempotencyKey)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			return nil, &NetworkError{Op: method + " " + path, Err: err}
		}

		respBody, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()
		if readErr != nil {
			return nil, &NetworkError{Op: method + " " + path, Err: readErr}
		}

		if resp.StatusCode == http.StatusTooManyRequests {
			lastErr = fmt.Errorf("rate limited (429) on %s %s", method, path)

			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(c.retryAfterDuration(resp, attempt)):
				continue
			}
		}

		if resp.StatusCode == http.StatusUnauthorized {
			return nil, &AuthError{
				Message: fmt.Sprintf("the API token for %s was rejected", c.baseURL),
			}
		}

		var env envelope
		decoded := len(respBody) > 0 && json.Unmarshal(respBody, &env) == nil

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			apiErr := &APIError{StatusCode: resp.StatusCode, Message: strings.TrimSpace(string(respBody))}
			if decoded && env.Alert != nil {
				apiErr.Title = env.Alert.Title
				apiErr.Message = env.Alert.Message
			}
			return nil, apiErr
		}

		// No content to parse (e.g. 204 or a bare health check).
		if resp.StatusCode == http.StatusNoContent || len(respBody) == 0 {
			return nil, nil
		}
		if !decoded {
			if result == nil {
				return nil, nil
			}
			return nil, fmt.Errorf("unmarshaling response from %s %s: invalid envelope", method, path)
		}

		if !env.Status {
			apiErr := &APIError{StatusCode: resp.StatusCode, Message: "request failed"}
			if env.Alert != nil {
				apiErr.Title = env.Alert.Title
				apiErr.Message = env.Alert.Message
			}
			return nil, apiErr
		}

		if result != nil && len(env.Result) > 0 && string(env.Result) != "null" {
			if err := json.Unmarshal(env.Result, result); err != nil {
				return nil, fmt.Errorf("unmarshaling result from %s %s: %w", method, path, err)
			}
		}

		return env.Alert, nil
	}

	return nil, fmt.Errorf("max retries (%d) exceeded: %w", c.maxRetries, lastErr)
}

// retryAfterDuration reads the Retry-After header and computes a wait
// duration. Falls back to exponential backoff if the header is missing.
func (c *Client) retryAfterDuration(resp *http.Response, attempt int) time.Duration {
	if header := resp.Header.Get("Retry-After"); header != "" {
		if seconds, err := strconv.Atoi(header); err == nil {
			wait := time.Duration(seconds) * time.Second
			if wait > c.maxBackoff {
				wait = c.maxBackoff
			}
			return wait
		}
	}

	// Exponential backoff: 1s, 2s, 4s, ...
	backoff := time.Duration(1<<uint(attempt)) * time.Second
	if backoff > c.maxBackoff {
		backoff = c.maxBackoff
	}
	return backoff
}
