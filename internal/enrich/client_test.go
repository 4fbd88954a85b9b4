package enrich

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient_DisabledWithoutURL(t *testing.T) {
	assert.Nil(t, NewClient("", time.Second))
	assert.Nil(t, NewClient("   ", time.Second))
}

func TestClient_Enrich(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, Path, r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "a line worth keeping", body["quote"])

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"received":"a line worth keeping","memmi":"Tasty!","source":"model"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL+"/", time.Second)
	require.NotNil(t, client)

	resp, err := client.Enrich(context.Background(), "a line worth keeping")
	require.NoError(t, err)
	assert.Equal(t, "Tasty!", resp.Memmi)
	assert.Equal(t, "model", resp.Source)
	assert.Equal(t, "a line worth keeping", resp.Received)
}

func TestClient_Enrich_BadStatus(t *testing.T) {
	for _, status := range []int{http.StatusBadRequest, http.StatusInternalServerError, http.StatusMovedPermanently} {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
		}))

		client := NewClient(server.URL, time.Second)
		client.http.CheckRedirect = func(*http.Request, []*http.Request) error { return http.ErrUseLastResponse }

		_, err := client.Enrich(context.Background(), "x")
		assert.ErrorIs(t, err, ErrBadResponse, "status %d", status)
		server.Close()
	}
}

func TestClient_Enrich_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(time.Second):
		}
	}))
	defer server.Close()

	client := NewClient(server.URL, 20*time.Millisecond)
	_, err := client.Enrich(context.Background(), "x")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrBadResponse)
}

func TestClient_Enrich_Garbage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("not json"))
	}))
	defer server.Close()

	_, err := NewClient(server.URL, time.Second).Enrich(context.Background(), "x")
	assert.Error(t, err)
}
