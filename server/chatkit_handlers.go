package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/fupbi/followup-shell/chatkit"
	"github.com/fupbi/followup-shell/internal/apperrors"
)

// AnonCookieName identifies the anonymous widget user across visits. It is
// independent of the auth cookie and never cross-validated against it.
const AnonCookieName = "chatkit_session_id"

const anonCookieMaxAge = 30 * 24 * time.Hour

// createSessionRequest mirrors the tolerated client body shapes: workflow
// id under workflow.id or the legacy flat workflowId, plus the file-upload
// toggle under chatkit_configuration.
type createSessionRequest struct {
	Workflow *struct {
		ID string `json:"id"`
	} `json:"workflow"`
	WorkflowID    string `json:"workflowId"`
	Configuration *struct {
		FileUpload *struct {
			Enabled bool `json:"enabled"`
		} `json:"file_upload"`
	} `json:"chatkit_configuration"`
}

// CreateSessionHandler processes POST /api/create-session: resolves a
// workflow id (body, then environment, then hardcoded fallback), pins an
// anonymous user id in a long-lived cookie, and forwards the call to the
// provider. Provider rejections pass through with their original status
// and message; transport failures collapse to a generic 500.
func (s *Server) CreateSessionHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.config.OpenAIAPIKey == "" {
			log.Error().Err(apperrors.ErrMissingAPIKey).Msg("create-session: OPENAI_API_KEY is not set")
			writeJSON(w, http.StatusInternalServerError, errorBody("Missing OPENAI_API_KEY environment variable"))
			return
		}

		var body createSessionRequest
		_ = json.NewDecoder(r.Body).Decode(&body)

		userID := s.resolveAnonUserID(w, r)

		workflowID := s.resolveWorkflowID(body)
		if workflowID == "" {
			writeJSON(w, http.StatusBadRequest, errorBody("Missing workflow id"))
			return
		}

		fileUpload := false
		if body.Configuration != nil && body.Configuration.FileUpload != nil {
			fileUpload = body.Configuration.FileUpload.Enabled
		}

		created, err := s.chatkit.CreateSession(r.Context(), chatkit.SessionRequest{
			WorkflowID:        workflowID,
			UserID:            userID,
			FileUploadEnabled: fileUpload,
		})

		var upstream *chatkit.UpstreamError
		switch {
		case errors.As(err, &upstream):
			writeJSON(w, upstream.StatusCode, map[string]interface{}{
				"error":   upstream.Message,
				"details": upstream.Details,
			})
			return
		case err != nil:
			log.Error().Err(err).Msg("create-session: provider unreachable")
			writeJSON(w, http.StatusInternalServerError, errorBody("Unexpected error"))
			return
		}

		writeJSON(w, http.StatusOK, map[string]interface{}{
			"client_secret": created.ClientSecret,
			"expires_after": created.ExpiresAfter,
		})
	}
}

func (s *Server) resolveWorkflowID(body createSessionRequest) string {
	if body.Workflow != nil && body.Workflow.ID != "" {
		return body.Workflow.ID
	}
	if body.WorkflowID != "" {
		return body.WorkflowID
	}
	if s.config.WorkflowID != "" {
		return s.config.WorkflowID
	}
	return chatkit.DefaultWorkflowID
}

// resolveAnonUserID returns the visitor's anonymous id, minting and
// persisting a fresh one for 30 days when the cookie is absent.
func (s *Server) resolveAnonUserID(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(AnonCookieName); err == nil && c.Value != "" {
		return c.Value
	}

	userID := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     AnonCookieName,
		Value:    userID,
		Path:     "/",
		MaxAge:   int(anonCookieMaxAge.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   isSecure(r),
	})
	return userID
}
