package session

import (
	"net/http"
	"time"
)

// CookieName is the fixed auth cookie identifier.
const CookieName = "fup_auth"

// CookieMaxAge is the session TTL; the cookie Max-Age and the payload
// expiry are both derived from it.
const CookieMaxAge = 12 * time.Hour

// clearSentinel replaces the token value when the cookie is cleared.
const clearSentinel = "deleted"

// WriteCookie sets the auth cookie carrying token. Attributes are fixed:
// Path=/, Max-Age=43200, HttpOnly, SameSite=Lax, plus Secure over TLS.
func WriteCookie(w http.ResponseWriter, token string, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(CookieMaxAge.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   secure,
	})
}

// ClearCookie writes the same cookie with the sentinel value and Max-Age=0,
// which makes the browser drop it immediately. Idempotent.
func ClearCookie(w http.ResponseWriter, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    clearSentinel,
		Path:     "/",
		MaxAge:   -1, // serialized as Max-Age=0
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   secure,
	})
}

// TokenFromRequest extracts the auth token from the request's cookie
// header. The sentinel left behind by ClearCookie counts as absent.
func TokenFromRequest(r *http.Request) (string, bool) {
	c, err := r.Cookie(CookieName)
	if err != nil || c.Value == "" || c.Value == clearSentinel {
		return "", false
	}
	return c.Value, true
}
