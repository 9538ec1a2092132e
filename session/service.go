package session

import (
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/fupbi/followup-shell/internal/apperrors"
	"github.com/fupbi/followup-shell/users"
)

// failureDelay is the fixed pause applied to every failed login so that an
// unknown email and a wrong password are indistinguishable by timing. It
// elapses fully even if the client has disconnected.
const failureDelay = 200 * time.Millisecond

// IssuedSession is the result of a successful login.
type IssuedSession struct {
	Email string
	Token string
}

// Service orchestrates login (validate credentials, issue token) and
// session lookup (validate token, return identity). Sessions are stateless:
// the signed token is the full state, nothing is persisted server-side.
type Service struct {
	secret   string
	registry *users.Registry
	signer   *Signer

	nowTime   func() time.Time
	sleep     func(time.Duration)
	failDelay time.Duration
}

// ServiceOption modifies a Service, primarily for testing.
type ServiceOption func(*Service)

// WithNowTime sets the clock (for testing).
func WithNowTime(nowFunc func() time.Time) ServiceOption {
	return func(s *Service) {
		s.nowTime = nowFunc
	}
}

// WithFailureDelay overrides the login failure delay (for testing).
func WithFailureDelay(d time.Duration) ServiceOption {
	return func(s *Service) {
		s.failDelay = d
	}
}

func NewService(secret string, registry *users.Registry, options ...ServiceOption) *Service {
	s := &Service{
		secret:    secret,
		registry:  registry,
		signer:    NewSigner(),
		nowTime:   time.Now,
		sleep:     time.Sleep,
		failDelay: failureDelay,
	}
	for _, opt := range options {
		opt(s)
	}
	return s
}

// Login validates credentials against the registry and, on success, issues
// a signed session token expiring 12 hours from now. Unknown email and
// wrong password both return ErrInvalidCredentials after the same fixed
// delay; nothing in the response distinguishes the two.
func (s *Service) Login(email, password string) (*IssuedSession, error) {
	if s.secret == "" {
		return nil, apperrors.ErrMissingSecret
	}

	user, found := s.registry.FindByEmail(email)
	if !found {
		s.sleep(s.failDelay)
		return nil, apperrors.ErrInvalidCredentials
	}
	if !users.CheckPasswordHash(password, user.PasswordHash) {
		s.sleep(s.failDelay)
		return nil, apperrors.ErrInvalidCredentials
	}

	token, err := s.issueToken(user.Email)
	if err != nil {
		return nil, errors.Wrap(err, "[Service.Login] issue token")
	}
	return &IssuedSession{Email: user.Email, Token: token}, nil
}

// Authenticate validates a token and returns the subject it was issued to.
// Malformed structure, bad signature and expiry all collapse to
// ErrNoSession so no verification detail can be used as an oracle. Only a
// missing secret surfaces as its own error.
func (s *Service) Authenticate(token string) (string, error) {
	email, err := s.checkToken(token)
	switch {
	case apperrors.Is(err, apperrors.ErrMissingSecret):
		return "", err
	case err != nil:
		return "", apperrors.ErrNoSession
	}
	return email, nil
}

// checkToken reports the precise verification failure. Callers outside
// Authenticate's collapse must not see these sentinels.
func (s *Service) checkToken(token string) (string, error) {
	if s.secret == "" {
		return "", apperrors.ErrMissingSecret
	}

	encodedPayload, signature, ok := splitToken(token)
	if !ok {
		return "", apperrors.ErrMalformedToken
	}

	payload, payloadBytes, err := DecodePayload(encodedPayload)
	if err != nil {
		return "", err
	}

	valid, err := s.signer.Verify(payloadBytes, s.secret, signature)
	if err != nil {
		return "", err
	}
	if !valid {
		return "", apperrors.ErrBadSignature
	}

	if payload.Exp <= s.nowTime().UnixMilli() {
		return "", apperrors.ErrTokenExpired
	}
	return payload.Email, nil
}

func (s *Service) issueToken(email string) (string, error) {
	payload := Payload{
		Email: email,
		Exp:   s.nowTime().Add(CookieMaxAge).UnixMilli(),
	}
	encoded, payloadBytes, err := EncodePayload(payload)
	if err != nil {
		return "", err
	}
	signature, err := s.signer.Sign(payloadBytes, s.secret)
	if err != nil {
		return "", err
	}
	return encoded + "." + signature, nil
}

// splitToken splits the <payload>.<signature> wire form.
func splitToken(token string) (encodedPayload, signature string, ok bool) {
	encodedPayload, signature, found := strings.Cut(token, ".")
	if !found || encodedPayload == "" || signature == "" {
		return "", "", false
	}
	return encodedPayload, signature, true
}
