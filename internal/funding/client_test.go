package funding

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

func testClient(t *testing.T, handler http.HandlerFunc) *HTTPClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewHTTP(srv.URL, time.Second, zerolog.Nop())
}

func TestGet_SnakeCasePayload(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/funding-requests/4" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":4,"title":"Bakery expansion","status":"approved","amount_cents":500000,"admin_approved":true}`))
	})

	request, err := client.Get(context.Background(), 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if request.Status != domain.FundingApproved {
		t.Fatalf("expected approved, got %q", request.Status)
	}
	if request.AmountCents != 500000 {
		t.Fatalf("expected amount_cents normalized, got %d", request.AmountCents)
	}
	if !request.AdminApproved {
		t.Fatal("expected admin_approved normalized")
	}
}

func TestGet_FloatAmountNormalized(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":4,"status":"pending","amount":1250.50}`))
	})

	request, err := client.Get(context.Background(), 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if request.AmountCents != 125050 {
		t.Fatalf("expected 125050 cents, got %d", request.AmountCents)
	}
}

func TestGet_NotFound(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	if _, err := client.Get(context.Background(), 1); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPatch_SendsOnlySetFields(t *testing.T) {
	var body map[string]interface{}
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPatch {
			t.Fatalf("expected PATCH, got %s", r.Method)
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":4,"status":"approved"}`))
	})

	status := domain.FundingApproved
	if _, err := client.Patch(context.Background(), 4, StatusPatch{Status: &status}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if body["status"] != "approved" {
		t.Fatalf("expected status in patch, got %v", body)
	}
	if _, ok := body["adminApproved"]; ok {
		t.Fatal("unset fields must be omitted from the patch")
	}
}

func TestMessages_AliasNormalized(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/funding-requests/4/messages" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id":"m1","author":"amira","message":"any update?"}]`))
	})

	messages, err := client.Messages(context.Background(), 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(messages) != 1 {
		t.Fatalf("expected 1 message, got %d", len(messages))
	}
	if messages[0].Body != "any update?" {
		t.Fatalf("expected message alias normalized to body, got %q", messages[0].Body)
	}
	if messages[0].RequestID != 4 {
		t.Fatalf("expected request id stamped, got %d", messages[0].RequestID)
	}
}

func TestPostMessage_RoundTrip(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Fatalf("expected POST, got %s", r.Method)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":"m2","author":"omar","body":"sent the docs"}`))
	})

	message, err := client.PostMessage(context.Background(), 4, "omar", "sent the docs")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if message.ID != "m2" || message.Body != "sent the docs" {
		t.Fatalf("unexpected message %+v", message)
	}
}
