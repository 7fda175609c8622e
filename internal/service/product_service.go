package service

import (
	"context"

	"github.com/erauner12/showcase/internal/model"
	"github.com/erauner12/showcase/internal/storage"
	"github.com/erauner12/showcase/internal/view"
)

// ProductService serves the read-only catalogue
type ProductService struct {
	Products *storage.Collection[model.Product]
}

// NewProductService creates a ProductService over the products document of backend
func NewProductService(backend storage.Backend) *ProductService {
	return &ProductService{
		Products: storage.NewCollection[model.Product](backend, storage.ProductsCollection),
	}
}

// List filters the catalogue by category, then by a name search
func (s *ProductService) List(ctx context.Context, search, category string) []model.Product {
	return view.Project(s.Products.Read(ctx), view.Category[model.Product](category), search)
}

// Get returns one product
func (s *ProductService) Get(ctx context.Context, id string) (model.Product, error) {
	products := s.Products.Read(ctx)
	if i := indexOf(products, id); i >= 0 {
		return products[i], nil
	}
	return model.Product{}, &NotFoundError{Kind: "product", ID: id}
}
