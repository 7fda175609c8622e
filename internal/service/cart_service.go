package service

import (
	"context"

	"github.com/erauner12/showcase/internal/model"
	"github.com/erauner12/showcase/internal/storage"
	"github.com/rs/zerolog/log"
)

// CartService encapsulates the storefront cart. Every mutation answers with
// the full cart so clients can replace their copy wholesale.
type CartService struct {
	Cart *storage.Collection[model.CartEntry]
}

// NewCartService creates a CartService over the cart document of backend
func NewCartService(backend storage.Backend) *CartService {
	return &CartService{
		Cart: storage.NewCollection[model.CartEntry](backend, storage.CartCollection),
	}
}

// List returns the cart
func (s *CartService) List(ctx context.Context) []model.CartEntry {
	return s.Cart.Read(ctx)
}

// Add increments the quantity of product when present, else appends it with qty 1
func (s *CartService) Add(ctx context.Context, p model.Product) ([]model.CartEntry, error) {
	if err := p.Validate(); err != nil {
		return nil, &ValidationError{Field: "product", Message: err.Error()}
	}

	cart, err := s.Cart.Update(ctx, func(cart []model.CartEntry) ([]model.CartEntry, error) {
		if i := indexOf(cart, p.ID); i >= 0 {
			cart[i].Qty++
			return cart, nil
		}
		return append(cart, model.CartEntry{Product: p, Qty: 1}), nil
	})
	if err != nil && !isPersistence(err) {
		return nil, err
	}

	log.Ctx(ctx).Debug().Str("productId", p.ID).Msg("added to cart")
	return cart, err
}

// SetQty sets the quantity of an entry; qty <= 0 removes it
func (s *CartService) SetQty(ctx context.Context, id string, qty int) ([]model.CartEntry, error) {
	cart, err := s.Cart.Update(ctx, func(cart []model.CartEntry) ([]model.CartEntry, error) {
		i := indexOf(cart, id)
		if i < 0 {
			return nil, &NotFoundError{Kind: "cart item", ID: id}
		}
		if qty <= 0 {
			return removeID(cart, id), nil
		}
		cart[i].Qty = qty
		return cart, nil
	})
	if err != nil && !isPersistence(err) {
		return nil, err
	}
	return cart, err
}

// Remove drops the entry with the given id. Unknown ids are not an error.
func (s *CartService) Remove(ctx context.Context, id string) ([]model.CartEntry, error) {
	cart, err := s.Cart.Update(ctx, func(cart []model.CartEntry) ([]model.CartEntry, error) {
		return removeID(cart, id), nil
	})
	if err != nil && !isPersistence(err) {
		return nil, err
	}
	return cart, err
}
