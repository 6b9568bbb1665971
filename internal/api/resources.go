package api

import (
	"context"
	"net/url"

	"github.com/jmorales/shopdesk/internal/model"
)

// Resource is a typed endpoint set for one resource collection. Every
// collection exposes the same five operations under its base path:
//
//	GET    {base}          list
//	GET    {base}/stats    aggregate stats
//	POST   {base}          create
//	PUT    {base}/{id}     update
//	DELETE {base}/{id}     delete
type Resource[T any] struct {
	c    *Client
	base string
}

// NewResource creates an endpoint set rooted at base (e.g. /api/customers).
func NewResource[T any](c *Client, base string) *Resource[T] {
	return &Resource[T]{c: c, base: base}
}

// List retrieves the full collection.
func (r *Resource[T]) List(ctx context.Context) ([]T, error) {
	var out []T
	if err := r.c.Get(ctx, r.base, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Stats retrieves the server-computed aggregate counters.
func (r *Resource[T]) Stats(ctx context.Context) (*model.Stats, error) {
	var out model.Stats
	if err := r.c.Get(ctx, r.base+"/stats", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Create submits a new entity and returns the server's canonical object.
func (r *Resource[T]) Create(ctx context.Context, draft T) (T, error) {
	var out T
	if err := r.c.Post(ctx, r.base, draft, &out); err != nil {
		return out, err
	}
	return out, nil
}

// Update replaces an existing entity and returns the server's canonical
// object. Local state must take the returned object wholesale, never
// merge it with stale fields.
func (r *Resource[T]) Update(ctx context.Context, id string, draft T) (T, error) {
	var out T
	if err := r.c.Put(ctx, r.base+"/"+url.PathEscape(id), draft, &out); err != nil {
		return out, err
	}
	return out, nil
}

// Delete removes an entity by id.
func (r *Resource[T]) Delete(ctx context.Context, id string) error {
	return r.c.Delete(ctx, r.base+"/"+url.PathEscape(id))
}

// Customers returns the endpoint set for customer records.
func Customers(c *Client) *Resource[model.Customer] {
	return NewResource[model.Customer](c, "/api/customers")
}

// Jobs returns the endpoint set for repair tickets.
func Jobs(c *Client) *Resource[model.Job] {
	return NewResource[model.Job](c, "/api/jobs")
}

// Stock returns the endpoint set for inventory items.
func Stock(c *Client) *Resource[model.StockItem] {
	return NewResource[model.StockItem](c, "/api/stock")
}

// Refunds returns the endpoint set for refunds.
func Refunds(c *Client) *Resource[model.Refund] {
	return NewResource[model.Refund](c, "/api/refunds")
}

// Warranties returns the endpoint set for warranties.
func Warranties(c *Client) *Resource[model.Warranty] {
	return NewResource[model.Warranty](c, "/api/warranties")
}

// Technicians returns the endpoint set for technicians.
func Technicians(c *Client) *Resource[model.Technician] {
	return NewResource[model.Technician](c, "/api/technicians")
}
