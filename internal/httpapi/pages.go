package httpapi

import (
	"net/http"
	"path/filepath"

	"github.com/go-chi/chi/v5"
)

// pageRoutes maps app routes to their entry document under StaticDir
var pageRoutes = map[string]string{
	"/":             "index.html",
	"/task-manager": "task-manager/index.html",
	"/ecommerce":    "ecommerce/index.html",
	"/ai-chatbot":   "ai-chatbot/index.html",
}

// mountPages serves the front-end apps and their assets from StaticDir
func (s *Server) mountPages(r chi.Router) {
	for route, doc := range pageRoutes {
		path := filepath.Join(s.StaticDir, filepath.FromSlash(doc))
		r.Get(route, func(w http.ResponseWriter, r *http.Request) {
			http.ServeFile(w, r, path)
		})
	}
	r.Handle("/*", http.FileServer(http.Dir(s.StaticDir)))
}
