package shopapi

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/pankaj1920/shop/internal/model"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	c := NewClient(server.URL+"/", "secret", 2*time.Second)
	c.maxBackoff = time.Millisecond
	return c
}

func writeEnvelope(t *testing.T, w http.ResponseWriter, status bool, result interface{}, alert *Alert) {
	t.Helper()
	raw, err := json.Marshal(result)
	require.NoError(t, err)
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(envelope{Result: raw, Status: status, Alert: alert})
}

func TestClient_GetComments(t *testing.T) {
	t.Parallel()

	var gotAuth, gotQuery string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotQuery = r.URL.Query().Get("id")
		require.Equal(t, "/comment", r.URL.Path)
		writeEnvelope(t, w, true, []commentDTO{
			{ID: "c1", ProductID: 7, User: commentUser{FetchName: "Mina"}, Comment: "nice", Rate: 4, CreateAt: "2024-03-01T10:00:00Z"},
			{ID: "c2", ProductID: 7, Comment: "meh", Rate: 2, CreateAt: "not a date"},
		}, nil)
	})

	comments, err := c.GetComments(context.Background(), 7)
	require.NoError(t, err)
	require.Equal(t, "Bearer secret", gotAuth)
	require.Equal(t, "7", gotQuery)
	require.Len(t, comments, 2)
	require.Equal(t, "Mina", comments[0].User)
	require.Equal(t, 2024, comments[0].CreatedAt.Year())
	require.True(t, comments[1].CreatedAt.IsZero())
}

func TestClient_AddCommentSendsBodyAndReturnsAlert(t *testing.T) {
	t.Parallel()

	var got addCommentRequest
	var idem string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		idem = r.Header.Get("Idempotency-Key")
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &got))
		writeEnvelope(t, w, true, true, &Alert{Message: " saved "})
	})

	msg, err := c.AddComment(context.Background(), 3, 4.5, "great")
	require.NoError(t, err)
	require.Equal(t, "saved", msg)
	require.Equal(t, addCommentRequest{ProductID: 3, Rate: 4.5, Comment: "great"}, got)
	require.NotEmpty(t, idem)
}

func TestClient_AddToBasket(t *testing.T) {
	t.Parallel()

	var got addToBasketRequest
	var path string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &got))
		writeEnvelope(t, w, true, true, nil)
	})

	msg, err := c.AddToBasket(context.Background(), 2, 3)
	require.NoError(t, err)
	require.Empty(t, msg)
	require.Equal(t, "/basket/add", path)
	require.Equal(t, addToBasketRequest{ProductID: 2, Count: 3}, got)
}

func TestClient_StatusFalseIsAPIError(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(t, w, false, nil, &Alert{Title: "Oops", Message: "product not found"})
	})

	_, err := c.GetBasket(context.Background())
	apiErr, ok := AsAPIError(err)
	require.True(t, ok)
	require.Equal(t, "Oops", apiErr.Title)
	require.Equal(t, "product not found", apiErr.Message)
}

func TestClient_ResultFalseIsAPIError(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(t, w, true, false, nil)
	})

	_, err := c.BuyProduct(context.Background(), model.DefaultShippingTypes()[0])
	_, ok := AsAPIError(err)
	require.True(t, ok)
}

func TestClient_UnauthorizedIsAuthError(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	_, err := c.GetComments(context.Background(), 1)
	require.True(t, IsAuthError(err))
	require.False(t, IsNetworkError(err))
}

func TestClient_ServerErrorCarriesAlert(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		writeEnvelope(t, w, false, nil, &Alert{Title: "Server", Message: "down for maintenance"})
	})

	_, err := c.GetBasket(context.Background())
	apiErr, ok := AsAPIError(err)
	require.True(t, ok)
	require.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
	require.Equal(t, "down for maintenance", apiErr.Message)
}

func TestClient_RetriesOnRateLimit(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	keys := make(chan string, 4)
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		keys <- r.Header.Get("Idempotency-Key")
		if calls.Add(1) < 3 {
			w.Header().Set("Retry-After", "60")
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		writeEnvelope(t, w, true, true, nil)
	})

	_, err := c.BuyProduct(context.Background(), model.DefaultShippingTypes()[0])
	require.NoError(t, err)
	require.Equal(t, int32(3), calls.Load())

	first := <-keys
	require.Equal(t, first, <-keys)
	require.Equal(t, first, <-keys)
}

func TestClient_UnreachableIsNetworkError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.NotFoundHandler())
	addr := server.URL
	server.Close()

	c := NewClient(addr, "", time.Second)
	err := c.Ping(context.Background())
	require.True(t, IsNetworkError(err))
}

func TestClient_PingAcceptsBareOK(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/health", r.URL.Path)
		_, _ = w.Write([]byte("ok"))
	})
	require.NoError(t, c.Ping(context.Background()))
}

func TestClient_CancelledContextIsNotNetworkError(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(t, w, true, []basketDTO{}, nil)
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.GetBasket(ctx)
	require.ErrorIs(t, err, context.Canceled)
	require.False(t, IsNetworkError(err))
}
