package client

import (
	"context"
	"net/http"
	"net/url"

	"github.com/erauner12/showcase/internal/collection"
	"github.com/erauner12/showcase/internal/model"
)

// TaskRemote talks to /api/tasks. It answers creates and updates with the
// canonical task.
type TaskRemote struct {
	http *HTTPClient
}

// NewTaskRemote creates a TaskRemote over c
func NewTaskRemote(c *HTTPClient) *TaskRemote {
	return &TaskRemote{http: c}
}

var _ collection.Remote[model.Task, model.TaskDraft] = (*TaskRemote)(nil)
var _ collection.OrderPersister[model.Task] = (*TaskRemote)(nil)

// List fetches every task
func (r *TaskRemote) List(ctx context.Context) ([]model.Task, error) {
	var tasks []model.Task
	if err := r.http.doJSON(ctx, http.MethodGet, "/api/tasks", "", nil, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// Create posts a draft and returns the server's task
func (r *TaskRemote) Create(ctx context.Context, d model.TaskDraft) (collection.Ack[model.Task], error) {
	var task model.Task
	if err := r.http.doJSON(ctx, http.MethodPost, "/api/tasks", "", d, &task); err != nil {
		return collection.Ack[model.Task]{}, err
	}
	return collection.Ack[model.Task]{Item: &task}, nil
}

// Patch sends a partial update and returns the server's task
func (r *TaskRemote) Patch(ctx context.Context, id string, p model.Patch) (collection.Ack[model.Task], error) {
	var task model.Task
	if err := r.http.doJSON(ctx, http.MethodPut, "/api/tasks/"+url.PathEscape(id), id, p, &task); err != nil {
		return collection.Ack[model.Task]{}, err
	}
	return collection.Ack[model.Task]{Item: &task}, nil
}

// Remove deletes a task
func (r *TaskRemote) Remove(ctx context.Context, id string) (collection.Ack[model.Task], error) {
	err := r.http.doJSON(ctx, http.MethodDelete, "/api/tasks/"+url.PathEscape(id), id, nil, nil)
	return collection.Ack[model.Task]{}, err
}

// PersistOrder stores a new task order
func (r *TaskRemote) PersistOrder(ctx context.Context, tasks []model.Task) error {
	body := struct {
		Tasks []model.Task `json:"tasks"`
	}{Tasks: tasks}
	return r.http.doJSON(ctx, http.MethodPost, "/api/tasks/reorder", "", body, nil)
}

// CartRemote talks to /api/cart. Every mutation answers with the full cart.
type CartRemote struct {
	http *HTTPClient
}

// NewCartRemote creates a CartRemote over c
func NewCartRemote(c *HTTPClient) *CartRemote {
	return &CartRemote{http: c}
}

var _ collection.Remote[model.CartEntry, model.Product] = (*CartRemote)(nil)

// List fetches the cart
func (r *CartRemote) List(ctx context.Context) ([]model.CartEntry, error) {
	var cart []model.CartEntry
	if err := r.http.doJSON(ctx, http.MethodGet, "/api/cart", "", nil, &cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// Create adds one of product to the cart
func (r *CartRemote) Create(ctx context.Context, p model.Product) (collection.Ack[model.CartEntry], error) {
	return r.snapshot(ctx, http.MethodPost, "/api/cart", "", p)
}

// Patch changes the quantity of an entry. Only Qty is meaningful for carts.
func (r *CartRemote) Patch(ctx context.Context, id string, p model.Patch) (collection.Ack[model.CartEntry], error) {
	if p.Qty == nil {
		return collection.Ack[model.CartEntry]{}, &collection.ValidationError{
			Collection: "cart",
			Err:        errQtyRequired,
		}
	}
	body := struct {
		Qty int `json:"qty"`
	}{Qty: *p.Qty}
	return r.snapshot(ctx, http.MethodPut, "/api/cart/"+url.PathEscape(id), id, body)
}

// Remove deletes an entry
func (r *CartRemote) Remove(ctx context.Context, id string) (collection.Ack[model.CartEntry], error) {
	return r.snapshot(ctx, http.MethodDelete, "/api/cart/"+url.PathEscape(id), id, nil)
}

func (r *CartRemote) snapshot(ctx context.Context, method, path, id string, body any) (collection.Ack[model.CartEntry], error) {
	var cart []model.CartEntry
	if err := r.http.doJSON(ctx, method, path, id, body, &cart); err != nil {
		return collection.Ack[model.CartEntry]{}, err
	}
	return collection.Ack[model.CartEntry]{Snapshot: cart, Full: true}, nil
}

// ProductRemote reads the catalogue
type ProductRemote struct {
	http *HTTPClient
}

// NewProductRemote creates a ProductRemote over c
func NewProductRemote(c *HTTPClient) *ProductRemote {
	return &ProductRemote{http: c}
}

// List fetches the catalogue; the server filters by category first, then search
func (r *ProductRemote) List(ctx context.Context, search, category string) ([]model.Product, error) {
	q := url.Values{}
	if search != "" {
		q.Set("search", search)
	}
	if category != "" {
		q.Set("category", category)
	}
	path := "/api/products"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var products []model.Product
	if err := r.http.doJSON(ctx, http.MethodGet, path, "", nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// Get fetches one product
func (r *ProductRemote) Get(ctx context.Context, id string) (model.Product, error) {
	var p model.Product
	err := r.http.doJSON(ctx, http.MethodGet, "/api/products/"+url.PathEscape(id), id, nil, &p)
	return p, err
}
