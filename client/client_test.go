package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
)

func TestGetProtectedData(t *testing.T) {
	var hits atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		if r.URL.Path != "/protected-data/0xdata" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		json.NewEncoder(w).Encode(ProtectedData{
			Address:      "0xdata",
			Owner:        "0xowner",
			CollectionID: "42",
		})
	}))
	defer server.Close()

	c := New(server.URL)

	data, err := c.GetProtectedData(context.Background(), "0xdata")
	if err != nil {
		t.Fatal(err)
	}
	if data.Owner != "0xowner" || data.CollectionID != "42" {
		t.Errorf("unexpected record: %+v", data)
	}

	// second lookup is served from the cache
	_, err = c.GetProtectedData(context.Background(), "0xdata")
	if err != nil {
		t.Fatal(err)
	}
	if hits.Load() != 1 {
		t.Errorf("expected 1 gateway hit, got %d", hits.Load())
	}

	_, err = c.GetProtectedData(context.Background(), "0xmissing")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestExists(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/protected-data/0xdata":
			json.NewEncoder(w).Encode(ProtectedData{Address: "0xdata"})
		case "/protected-data/0xbroken":
			w.WriteHeader(http.StatusInternalServerError)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	c := New(server.URL)

	ok, err := c.Exists(context.Background(), "0xdata")
	if err != nil || !ok {
		t.Errorf("expected existing address to resolve, got %v %v", ok, err)
	}

	ok, err = c.Exists(context.Background(), "0xmissing")
	if err != nil || ok {
		t.Errorf("expected missing address to report false, got %v %v", ok, err)
	}

	// a gateway failure must not be mistaken for absence
	_, err = c.Exists(context.Background(), "0xbroken")
	if err == nil {
		t.Error("expected an error for a failing gateway")
	}
}
