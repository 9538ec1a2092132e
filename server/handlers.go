package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/fupbi/followup-shell/internal/apperrors"
	"github.com/fupbi/followup-shell/session"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginHandler processes POST /api/login. An unparseable body is treated
// as an absent one and caught by the required-field check; credential
// failures answer with one generic message and status so the two failure
// paths stay indistinguishable.
func (s *Server) LoginHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body loginRequest
		_ = json.NewDecoder(r.Body).Decode(&body)

		if body.Email == "" || body.Password == "" {
			writeJSON(w, http.StatusBadRequest, errorBody("Email and password are required"))
			return
		}

		issued, err := s.sessions.Login(body.Email, body.Password)
		switch {
		case errors.Is(err, apperrors.ErrInvalidCredentials):
			writeJSON(w, http.StatusUnauthorized, errorBody("Invalid credentials"))
			return
		case errors.Is(err, apperrors.ErrMissingSecret):
			log.Error().Msg("login: AUTH_SECRET is not set")
			writeJSON(w, http.StatusInternalServerError, errorBody("Auth misconfiguration"))
			return
		case err != nil:
			log.Error().Err(err).Msg("login failed")
			writeJSON(w, http.StatusInternalServerError, errorBody("Auth misconfiguration"))
			return
		}

		session.WriteCookie(w, issued.Token, isSecure(r))
		writeJSON(w, http.StatusOK, map[string]string{"email": issued.Email})
	}
}

// SessionHandler processes GET /api/session: returns the authenticated
// identity or a bare 401. Why the session is invalid is never surfaced.
// The secret is checked before the cookie, so a misconfigured deployment
// answers 500 even to requests that carry no cookie at all.
func (s *Server) SessionHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.config.AuthSecret == "" {
			log.Error().Msg("session lookup: AUTH_SECRET is not set")
			writeJSON(w, http.StatusInternalServerError, errorBody("Auth misconfiguration"))
			return
		}

		token, ok := session.TokenFromRequest(r)
		if !ok {
			writeJSON(w, http.StatusUnauthorized, errorBody("Unauthorized"))
			return
		}

		email, err := s.sessions.Authenticate(token)
		switch {
		case errors.Is(err, apperrors.ErrMissingSecret):
			writeJSON(w, http.StatusInternalServerError, errorBody("Auth misconfiguration"))
			return
		case err != nil:
			writeJSON(w, http.StatusUnauthorized, errorBody("Unauthorized"))
			return
		}

		writeJSON(w, http.StatusOK, map[string]string{"email": email})
	}
}

// LogoutHandler processes DELETE /api/session. Clearing needs no token
// validation and is idempotent.
func (s *Server) LogoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.config.AuthSecret == "" {
			log.Error().Msg("logout: AUTH_SECRET is not set")
			writeJSON(w, http.StatusInternalServerError, errorBody("Auth misconfiguration"))
			return
		}

		session.ClearCookie(w, isSecure(r))
		w.WriteHeader(http.StatusNoContent)
	}
}
