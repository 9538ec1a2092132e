package server

const (
	RouteLogin         = "/api/login"
	RouteSession       = "/api/session"
	RouteCreateSession = "/api/create-session"
)

func (s *Server) initRoutes() {
	// Auth API
	s.RegisterRouteHandler("POST "+RouteLogin, ChainMiddleware(s.LoginHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteSession, ChainMiddleware(s.SessionHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("DELETE "+RouteSession, ChainMiddleware(s.LogoutHandler(), s.APIMiddleware()...))

	// Provider session brokering
	s.RegisterRouteHandler("POST "+RouteCreateSession, ChainMiddleware(s.CreateSessionHandler(), s.APIMiddleware()...))

	// Shell pages + assets (the access guard runs client-side on load)
	s.RegisterRouteHandler("GET /{$}", ChainMiddleware(s.ShellHandler(), s.HTMLMiddleware()...))
	s.RegisterRouteHandler("GET /login", ChainMiddleware(s.LoginPageHandler(), s.HTMLMiddleware()...))
	s.RegisterRouteHandler("GET /assets/", s.AssetsHandler())
}
