package orders

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"marketplace-companion/internal/domain"
)

func TestSubmit_PostsFinalizedCart(t *testing.T) {
	var got submitRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/orders" {
			t.Fatalf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"orderId":"ord-77"}`))
	}))
	defer srv.Close()

	client := NewHTTP(srv.URL, time.Second, zerolog.Nop())
	orderID, err := client.Submit(context.Background(), []domain.CartLine{
		{ProductID: 1, Quantity: 2, UnitPriceCents: 1500},
		{ProductID: 2, Quantity: 1, UnitPriceCents: 700},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if orderID != "ord-77" {
		t.Fatalf("expected order id ord-77, got %q", orderID)
	}
	if got.IdempotencyKey == "" {
		t.Fatal("expected idempotency key on submission")
	}
	if len(got.Lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(got.Lines))
	}
	if got.TotalCents != 3700 {
		t.Fatalf("expected total 3700, got %d", got.TotalCents)
	}
}

func TestSubmit_SnakeCaseOrderID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"order_id":"ord-9"}`))
	}))
	defer srv.Close()

	client := NewHTTP(srv.URL, time.Second, zerolog.Nop())
	orderID, err := client.Submit(context.Background(), []domain.CartLine{{ProductID: 1, Quantity: 1}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if orderID != "ord-9" {
		t.Fatalf("expected snake_case alias normalized, got %q", orderID)
	}
}

func TestSubmit_RejectionWrapsErrSubmitFailed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusConflict)
	}))
	defer srv.Close()

	client := NewHTTP(srv.URL, time.Second, zerolog.Nop())
	if _, err := client.Submit(context.Background(), []domain.CartLine{{ProductID: 1, Quantity: 1}}); !errors.Is(err, ErrSubmitFailed) {
		t.Fatalf("expected ErrSubmitFailed, got %v", err)
	}
}

func TestSubmit_NetworkFailureWrapsErrSubmitFailed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close()

	client := NewHTTP(srv.URL, time.Second, zerolog.Nop())
	if _, err := client.Submit(context.Background(), []domain.CartLine{{ProductID: 1, Quantity: 1}}); !errors.Is(err, ErrSubmitFailed) {
		t.Fatalf("expected ErrSubmitFailed, got %v", err)
	}
}
