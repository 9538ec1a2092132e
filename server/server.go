package server

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/fupbi/followup-shell/chatkit"
	"github.com/fupbi/followup-shell/internal/config"
	"github.com/fupbi/followup-shell/session"
)

// Server wires the session service, the provider client and the embedded
// shell assets behind one ServeMux.
type Server struct {
	env      string
	mux      *http.ServeMux
	routes   []string
	config   config.Config
	sessions *session.Service
	chatkit  chatkit.SessionCreator
}

func New(cfg config.Config, sessions *session.Service, sessionCreator chatkit.SessionCreator) *Server {
	s := &Server{
		env:      cfg.Env,
		mux:      http.NewServeMux(),
		config:   cfg,
		sessions: sessions,
		chatkit:  sessionCreator,
	}
	s.initRoutes()
	s.logRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) RegisterRouteHandler(pattern string, handler http.Handler) {
	s.routes = append(s.routes, pattern)
	s.mux.Handle(pattern, handler)
}

func (s *Server) RegisterRouteFunc(pattern string, handler func(http.ResponseWriter, *http.Request)) {
	s.routes = append(s.routes, pattern)
	s.mux.HandleFunc(pattern, handler)
}

func (s *Server) logRoutes() {
	if s.env != "DEV" {
		return
	}
	for _, route := range s.routes {
		log.Debug().Str("route", route).Msg("registered")
	}
}

// getScheme determines http/https for the Secure cookie flag.
func getScheme(r *http.Request) string {
	if r.TLS != nil {
		return "https"
	}
	if scheme := r.Header.Get("X-Forwarded-Proto"); scheme != "" {
		return scheme
	}
	return "http"
}

func isSecure(r *http.Request) bool {
	return getScheme(r) == "https"
}
