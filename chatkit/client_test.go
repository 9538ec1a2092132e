package chatkit_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fupbi/followup-shell/chatkit"
)

func TestClientCreateSession(t *testing.T) {
	var received map[string]interface{}
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/v1/chatkit/sessions", r.URL.Path)
		require.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		require.Equal(t, "chatkit_beta=v1", r.Header.Get("OpenAI-Beta"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"client_secret":"cs_123","expires_after":{"anchor":"created_at","seconds":600}}`))
	}))
	defer upstream.Close()

	client := chatkit.NewClient(upstream.URL, "sk-test")
	created, err := client.CreateSession(context.Background(), chatkit.SessionRequest{
		WorkflowID:        "wf_test",
		UserID:            "anon-1",
		FileUploadEnabled: true,
	})
	require.NoError(t, err)
	require.Equal(t, "cs_123", created.ClientSecret)
	require.JSONEq(t, `{"anchor":"created_at","seconds":600}`, string(created.ExpiresAfter))

	workflow, ok := received["workflow"].(map[string]interface{})
	require.True(t, ok)
	require.Equal(t, "wf_test", workflow["id"])
	require.Equal(t, "anon-1", received["user"])
	cfg, ok := received["chatkit_configuration"].(map[string]interface{})
	require.True(t, ok)
	fileUpload, ok := cfg["file_upload"].(map[string]interface{})
	require.True(t, ok)
	require.Equal(t, true, fileUpload["enabled"])
}

func TestClientCreateSessionUpstreamError(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		wantMessage string
		wantDetails string
	}{
		{
			name:        "error as string",
			status:      http.StatusBadRequest,
			body:        `{"error":"Unknown workflow"}`,
			wantMessage: "Unknown workflow",
			wantDetails: `{"error":"Unknown workflow"}`,
		},
		{
			name:        "error object with message",
			status:      http.StatusUnauthorized,
			body:        `{"error":{"message":"Incorrect API key provided","type":"invalid_request_error"}}`,
			wantMessage: "Incorrect API key provided",
		},
		{
			name:        "details as string",
			status:      http.StatusBadRequest,
			body:        `{"details":"workflow is archived"}`,
			wantMessage: "workflow is archived",
		},
		{
			name:        "nested details error",
			status:      http.StatusBadGateway,
			body:        `{"details":{"error":{"message":"upstream overloaded"}}}`,
			wantMessage: "upstream overloaded",
		},
		{
			name:        "top-level message",
			status:      http.StatusTooManyRequests,
			body:        `{"message":"rate limited"}`,
			wantMessage: "rate limited",
		},
		{
			name:        "unstructured body falls back to status",
			status:      http.StatusInternalServerError,
			body:        `boom`,
			wantMessage: "Failed to create session:",
			wantDetails: `{}`,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			}))
			defer upstream.Close()

			client := chatkit.NewClient(upstream.URL, "sk-test")
			_, err := client.CreateSession(context.Background(), chatkit.SessionRequest{
				WorkflowID: "wf_test",
				UserID:     "anon-1",
			})

			var upstreamErr *chatkit.UpstreamError
			require.ErrorAs(t, err, &upstreamErr)
			require.Equal(t, tc.status, upstreamErr.StatusCode)
			require.Contains(t, upstreamErr.Message, tc.wantMessage)
			if tc.wantDetails == "" {
				tc.wantDetails = tc.body
			}
			require.JSONEq(t, tc.wantDetails, string(upstreamErr.Details))
		})
	}
}

func TestClientCreateSessionTransportError(t *testing.T) {
	// Nothing listens here; the dial fails before any HTTP exchange.
	client := chatkit.NewClient("http://127.0.0.1:1", "sk-test")
	_, err := client.CreateSession(context.Background(), chatkit.SessionRequest{
		WorkflowID: "wf_test",
		UserID:     "anon-1",
	})
	require.Error(t, err)

	var upstreamErr *chatkit.UpstreamError
	require.False(t, errors.As(err, &upstreamErr))
}
