package sms

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

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestClient_Send(t *testing.T) {
	var got MessageRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/messages", r.URL.Path)
		assert.Equal(t, "Bearer key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_ = json.NewEncoder(w).Encode(MessageResponse{ID: "m-1", Status: "queued"})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "key", "STK", time.Second, nopLogger{})
	require.NoError(t, client.Send(context.Background(), "+420777123456", "code 384920"))

	assert.Equal(t, MessageRequest{From: "STK", To: "+420777123456", Text: "code 384920"}, got)
}

func TestClient_Send_Errors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{"rejected number", http.StatusBadRequest, `invalid number`, ErrRejected},
		{"gateway down", http.StatusServiceUnavailable, ``, ErrInvalidResponse},
		{"malformed body", http.StatusOK, `not json`, ErrInvalidResponse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			client := NewClient(srv.URL, "key", "STK", time.Second, nopLogger{})
			assert.ErrorIs(t, client.Send(context.Background(), "+420", "x"), tt.wantErr)
		})
	}
}
