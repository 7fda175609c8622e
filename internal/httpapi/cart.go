package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/erauner12/showcase/internal/model"
	"github.com/go-chi/chi/v5"
)

// cartQtyReq is the body of PUT /api/cart/{id}
type cartQtyReq struct {
	Qty *int `json:"qty"`
}

// ListCart handles GET /api/cart
func (s *Server) ListCart(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.Cart.List(r.Context()))
}

// AddToCart handles POST /api/cart. The body is a product; the response is the full cart.
func (s *Server) AddToCart(w http.ResponseWriter, r *http.Request) {
	var product model.Product
	if err := json.NewDecoder(r.Body).Decode(&product); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid JSON")
		return
	}

	cart, err := s.Cart.Add(r.Context(), product)
	if err = tolerateWriteFailure(r.Context(), err); err != nil {
		writeServiceError(w, r, err, "Failed to add to cart")
		return
	}
	writeJSON(w, http.StatusOK, cart)
}

// UpdateCartQty handles PUT /api/cart/{id}
func (s *Server) UpdateCartQty(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var body cartQtyReq
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid JSON")
		return
	}
	if body.Qty == nil {
		writeError(w, r, http.StatusBadRequest, "qty is required")
		return
	}

	cart, err := s.Cart.SetQty(r.Context(), id, *body.Qty)
	if err = tolerateWriteFailure(r.Context(), err); err != nil {
		writeServiceError(w, r, err, "Failed to update cart")
		return
	}
	writeJSON(w, http.StatusOK, cart)
}

// RemoveFromCart handles DELETE /api/cart/{id}
func (s *Server) RemoveFromCart(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	cart, err := s.Cart.Remove(r.Context(), id)
	if err = tolerateWriteFailure(r.Context(), err); err != nil {
		writeServiceError(w, r, err, "Failed to remove from cart")
		return
	}
	writeJSON(w, http.StatusOK, cart)
}
