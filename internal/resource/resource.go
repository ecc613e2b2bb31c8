// Package resource implements the CRUD verbs every backend collection shares.
package resource

import (
	"context"
	"net/url"
	"strings"

	"github.com/angelmondragon/shopdash/pkg/apiclient"
	pkgerrors "github.com/angelmondragon/shopdash/pkg/errors"
	"github.com/angelmondragon/shopdash/pkg/models"
)

type identified[T any] interface {
	*T
	ResolveID()
}

// Collection is one backend collection rooted at path (for example
// "/products") whose list responses are wrapped under key.
type Collection[T any, PT identified[T]] struct {
	api  *apiclient.Client
	path string
	key  string
}

func NewCollection[T any, PT identified[T]](api *apiclient.Client, path, key string) Collection[T, PT] {
	return Collection[T, PT]{api: api, path: strings.TrimRight(path, "/"), key: key}
}

// Client exposes the underlying api client for entity-specific verbs.
func (c Collection[T, PT]) Client() *apiclient.Client {
	return c.api
}

// ItemPath builds the path of a single record, or of a sub-resource of it.
func (c Collection[T, PT]) ItemPath(id string, rest ...string) string {
	parts := append([]string{c.path, url.PathEscape(id)}, rest...)
	return strings.Join(parts, "/")
}

func (c Collection[T, PT]) ready() error {
	if c.api == nil {
		return pkgerrors.New(pkgerrors.CodeDependency, "backend client unavailable")
	}
	return nil
}

func requireID(id string) error {
	if strings.TrimSpace(id) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "id is required")
	}
	return nil
}

func (c Collection[T, PT]) List(ctx context.Context, filters url.Values) ([]T, error) {
	if err := c.ready(); err != nil {
		return nil, err
	}
	items, err := apiclient.List[T](ctx, c.api, c.path+"/", c.key, filters)
	if err != nil {
		return nil, err
	}
	return models.ResolveAll[T, PT](items), nil
}

func (c Collection[T, PT]) Get(ctx context.Context, id string) (*T, error) {
	if err := c.ready(); err != nil {
		return nil, err
	}
	if err := requireID(id); err != nil {
		return nil, err
	}
	var out T
	if err := c.api.Get(ctx, c.ItemPath(id), nil, &out); err != nil {
		return nil, err
	}
	PT(&out).ResolveID()
	return &out, nil
}

func (c Collection[T, PT]) Create(ctx context.Context, input any) (*T, error) {
	if err := c.ready(); err != nil {
		return nil, err
	}
	var out T
	if err := c.api.Post(ctx, c.path+"/", input, &out); err != nil {
		return nil, err
	}
	PT(&out).ResolveID()
	return &out, nil
}

func (c Collection[T, PT]) Update(ctx context.Context, id string, input any) (*T, error) {
	if err := c.ready(); err != nil {
		return nil, err
	}
	if err := requireID(id); err != nil {
		return nil, err
	}
	var out T
	if err := c.api.Patch(ctx, c.ItemPath(id), nil, input, &out); err != nil {
		return nil, err
	}
	PT(&out).ResolveID()
	return &out, nil
}

func (c Collection[T, PT]) Delete(ctx context.Context, id string) error {
	if err := c.ready(); err != nil {
		return err
	}
	if err := requireID(id); err != nil {
		return err
	}
	return c.api.Delete(ctx, c.ItemPath(id))
}

// Patch issues a bodyless PATCH on a sub-resource of id, such as
// /orders/{id}/status, and decodes the updated record.
func (c Collection[T, PT]) Patch(ctx context.Context, id string, query url.Values, rest ...string) (*T, error) {
	if err := c.ready(); err != nil {
		return nil, err
	}
	if err := requireID(id); err != nil {
		return nil, err
	}
	var out T
	if err := c.api.Patch(ctx, c.ItemPath(id, rest...), query, nil, &out); err != nil {
		return nil, err
	}
	PT(&out).ResolveID()
	return &out, nil
}
