package cartsync

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/abdelemjid/carpet-shop-sub000/models"
)

func TestClientFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/user/cart" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if r.Header.Get("Authorization") != "token-123" {
			t.Errorf("missing bearer token, got %q", r.Header.Get("Authorization"))
		}
		_ = json.NewEncoder(w).Encode([]models.CartLine{
			{ProductID: 1, OrderQuantity: 2, ProductName: "Red Carpet"},
		})
	}))
	defer srv.Close()

	lines, err := NewClient(srv.URL, "token-123").Fetch(context.Background())
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(lines) != 1 || lines[0].ProductID != 1 || lines[0].OrderQuantity != 2 {
		t.Fatalf("lines = %+v", lines)
	}
}

func TestClientReplaceSendsWireShape(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/user/cart" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		var payload []map[string]interface{}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Errorf("decode payload: %v", err)
		}
		if len(payload) != 1 {
			t.Fatalf("payload = %+v", payload)
		}
		if _, ok := payload[0]["_id"]; ok {
			t.Error("line id leaked into the sync payload")
		}
		if payload[0]["productId"] != float64(7) || payload[0]["orderQuantity"] != float64(3) {
			t.Errorf("payload line = %+v", payload[0])
		}
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"message": "Cart synced", "inserted": 1, "updated": 0,
		})
	}))
	defer srv.Close()

	inserted, updated, err := NewClient(srv.URL, "t").Replace(context.Background(), []models.CartLine{
		{ID: 55, ProductID: 7, OrderQuantity: 3, ProductName: "Kilim", ProductPrice: 15},
	})
	if err != nil {
		t.Fatalf("replace: %v", err)
	}
	if inserted != 1 || updated != 0 {
		t.Errorf("counts = %d/%d, want 1/0", inserted, updated)
	}
}

func TestClientFetchErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	if _, err := NewClient(srv.URL, "bad").Fetch(context.Background()); err == nil {
		t.Fatal("expected an error for non-200 response")
	}
}
