package http_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	finhttp "github.com/rujira-labs/finsdk/delivery/http"
)

func TestGet(t *testing.T) {
	tests := []struct {
		name           string
		url            string
		header         http.Header
		timeout        time.Duration
		serverResponse func(w http.ResponseWriter, r *http.Request)
		expectedBody   string
		expectedStatus int
		expectError    bool
	}{
		{
			name: "Success",
			url:  "/success",
			serverResponse: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"markets":[]}`))
			},
			expectedBody:   `{"markets":[]}`,
			expectedStatus: http.StatusOK,
		},
		{
			name:   "Forwards headers",
			url:    "/auth",
			header: http.Header{"Authorization": []string{"Bearer secret"}},
			serverResponse: func(w http.ResponseWriter, r *http.Request) {
				if r.Header.Get("Authorization") != "Bearer secret" {
					w.WriteHeader(http.StatusUnauthorized)
					return
				}
				w.Write([]byte("ok"))
			},
			expectedBody:   "ok",
			expectedStatus: http.StatusOK,
		},
		{
			name: "Server Error is not a transport error",
			url:  "/error",
			serverResponse: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			},
			expectedBody:   "Internal Server Error\n",
			expectedStatus: http.StatusInternalServerError,
		},
		{
			name:    "Timeout",
			url:     "/timeout",
			timeout: 10 * time.Millisecond,
			serverResponse: func(w http.ResponseWriter, r *http.Request) {
				time.Sleep(50 * time.Millisecond)
				w.Write([]byte("Too late"))
			},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(tt.serverResponse))
			defer server.Close()

			client := finhttp.NewClient(tt.timeout)

			body, statusCode, err := finhttp.Get(context.Background(), client, server.URL+tt.url, tt.header)
			if tt.expectError {
				assert.Error(t, err)
				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.expectedStatus, statusCode)
			assert.Equal(t, tt.expectedBody, string(body))
		})
	}
}
