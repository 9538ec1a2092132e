package server

import (
	"embed"
	"io/fs"
	"net/http"
)

// The shell is a handful of static files baked into the binary; there is
// no server-side templating, the pages talk to the JSON API.
//
//go:embed web
var webFS embed.FS

func (s *Server) ShellHandler() http.HandlerFunc {
	return s.servePage("web/index.html")
}

func (s *Server) LoginPageHandler() http.HandlerFunc {
	return s.servePage("web/login.html")
}

func (s *Server) servePage(name string) http.HandlerFunc {
	page, err := webFS.ReadFile(name)
	if err != nil {
		panic("missing embedded page: " + name)
	}
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		_, _ = w.Write(page)
	}
}

func (s *Server) AssetsHandler() http.Handler {
	assets, err := fs.Sub(webFS, "web/assets")
	if err != nil {
		panic("missing embedded assets: " + err.Error())
	}
	return http.StripPrefix("/assets/", http.FileServerFS(assets))
}
