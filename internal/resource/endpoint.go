package resource

import (
	"context"
	"net/url"

	"rentalmanager/internal/client"
	"rentalmanager/internal/transform"
)

// Endpoint is the transport of one entity type. Implementations return
// records that already passed the boundary transformer.
type Endpoint[E Record, C, U any] interface {
	// Name and Plural are the human readable entity names used in messages.
	Name() string
	Plural() string

	List(ctx context.Context, scope client.Scope, filter url.Values) ([]E, client.Page, error)
	Get(ctx context.Context, scope client.Scope, id int64) (E, error)
	Create(ctx context.Context, scope client.Scope, input C) (E, error)
	Update(ctx context.Context, scope client.Scope, id int64, input U) (E, error)
	Delete(ctx context.Context, scope client.Scope, id int64) error
}

// HTTPEndpoint reaches one API collection through the rental client.
type HTTPEndpoint[E Record, C, U any] struct {
	client     *client.Client
	collection client.Collection
	entity     *transform.Entity[E, C, U]
}

func NewHTTPEndpoint[E Record, C, U any](c *client.Client, collection client.Collection, entity *transform.Entity[E, C, U]) *HTTPEndpoint[E, C, U] {
	return &HTTPEndpoint[E, C, U]{client: c, collection: collection, entity: entity}
}

func (h *HTTPEndpoint[E, C, U]) Name() string   { return h.entity.Name() }
func (h *HTTPEndpoint[E, C, U]) Plural() string { return h.entity.Plural() }

func (h *HTTPEndpoint[E, C, U]) List(ctx context.Context, scope client.Scope, filter url.Values) ([]E, client.Page, error) {
	resp, err := h.client.Get(ctx, h.collection.Path(scope, 0), filter)
	if err != nil {
		return nil, client.Page{}, err
	}
	items, page, err := client.List(resp.Data)
	if err != nil {
		return nil, client.Page{}, err
	}
	records, err := h.entity.DecodeListResult(items)
	if err != nil {
		return nil, client.Page{}, err
	}
	return records, page, nil
}

func (h *HTTPEndpoint[E, C, U]) Get(ctx context.Context, scope client.Scope, id int64) (E, error) {
	resp, err := h.client.Get(ctx, h.collection.Path(scope, id), nil)
	if err != nil {
		var zero E
		return zero, err
	}
	return h.decodeItem(resp.Data)
}

func (h *HTTPEndpoint[E, C, U]) Create(ctx context.Context, scope client.Scope, input C) (E, error) {
	var zero E
	body, err := h.entity.CreatePayload(input)
	if err != nil {
		return zero, err
	}
	resp, err := h.client.Post(ctx, h.collection.Path(scope, 0), body)
	if err != nil {
		return zero, err
	}
	return h.decodeItem(resp.Data)
}

func (h *HTTPEndpoint[E, C, U]) Update(ctx context.Context, scope client.Scope, id int64, input U) (E, error) {
	var zero E
	body, err := h.entity.UpdatePayload(input)
	if err != nil {
		return zero, err
	}
	resp, err := h.client.Patch(ctx, h.collection.Path(scope, id), body)
	if err != nil {
		return zero, err
	}
	return h.decodeItem(resp.Data)
}

func (h *HTTPEndpoint[E, C, U]) Delete(ctx context.Context, scope client.Scope, id int64) error {
	_, err := h.client.Delete(ctx, h.collection.Path(scope, id))
	return err
}

func (h *HTTPEndpoint[E, C, U]) decodeItem(data []byte) (E, error) {
	item, err := client.Item(data)
	if err != nil {
		var zero E
		return zero, err
	}
	return h.entity.DecodeResult(item)
}
