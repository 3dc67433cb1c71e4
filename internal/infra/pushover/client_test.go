package pushover_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zinnia/internal/infra/pushover"
)

func TestClient_Notify(t *testing.T) {
	var form map[string]string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, r.ParseForm())
		form = map[string]string{
			"token":   r.PostForm.Get("token"),
			"user":    r.PostForm.Get("user"),
			"title":   r.PostForm.Get("title"),
			"message": r.PostForm.Get("message"),
		}
		json.NewEncoder(w).Encode(map[string]any{"status": 1})
	}))
	defer server.Close()

	client := pushover.NewClientWithURL("app-token", "user-key", "", server.URL)

	require.NoError(t, client.Notify(context.Background(), "Routine complete: 10 steps"))
	assert.Equal(t, map[string]string{
		"token":   "app-token",
		"user":    "user-key",
		"title":   "Zinnia",
		"message": "Routine complete: 10 steps",
	}, form)
}

func TestClient_NotifyError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]any{"status": 0, "errors": []string{"user identifier is invalid"}})
	}))
	defer server.Close()

	client := pushover.NewClientWithURL("app-token", "bad", "Lamp", server.URL)

	err := client.Notify(context.Background(), "hello")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "user identifier is invalid")
}

func TestClient_NotifyWithoutCredentials(t *testing.T) {
	called := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer server.Close()

	client := pushover.NewClientWithURL("", "", "", server.URL)

	assert.NoError(t, client.Notify(context.Background(), "hello"))
	assert.False(t, called)
}
