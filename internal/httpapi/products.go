package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// ListProducts handles GET /api/products?search=&category=
func (s *Server) ListProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	writeJSON(w, http.StatusOK, s.Products.List(r.Context(), q.Get("search"), q.Get("category")))
}

// GetProduct handles GET /api/products/{id}
func (s *Server) GetProduct(w http.ResponseWriter, r *http.Request) {
	p, err := s.Products.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, r, err, "Failed to load product")
		return
	}
	writeJSON(w, http.StatusOK, p)
}
