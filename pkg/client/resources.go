package client

import (
	"context"
	"errors"
	"net/http"
	"net/url"
)

var errNoID = errors.New("item has no id")

// Doc is a singleton section (hero, about, skills, settings).
type Doc[T any] struct {
	c    *Client
	name string
}

// Get reads the public document.
func (d Doc[T]) Get(ctx context.Context) (*T, error) {
	var out T
	if err := d.c.doJSON(ctx, http.MethodGet, "/portfolio/"+d.name, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Update sends a partial document; absent fields are left as stored.
func (d Doc[T]) Update(ctx context.Context, patch interface{}) (*T, error) {
	var out T
	if err := d.c.doJSON(ctx, http.MethodPut, "/admin/"+d.name, patch, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Resource is a list section with admin CRUD.
type Resource[T any] struct {
	c      *Client
	public string
	admin  string
}

// List reads the public listing (published blog articles only).
func (r Resource[T]) List(ctx context.Context) ([]T, error) {
	var out []T
	if err := r.c.doJSON(ctx, http.MethodGet, r.public, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// All reads the admin listing, drafts included.
func (r Resource[T]) All(ctx context.Context) ([]T, error) {
	var out []T
	if err := r.c.doJSON(ctx, http.MethodGet, r.admin, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r Resource[T]) Create(ctx context.Context, item interface{}) (*T, error) {
	var out T
	if err := r.c.doJSON(ctx, http.MethodPost, r.admin, item, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r Resource[T]) Update(ctx context.Context, id string, patch interface{}) (*T, error) {
	if id == "" {
		return nil, &Error{Kind: KindValidation, Message: errNoID.Error(), Err: errNoID}
	}
	var out T
	if err := r.c.doJSON(ctx, http.MethodPut, r.admin+"/"+url.PathEscape(id), patch, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r Resource[T]) Delete(ctx context.Context, id string) error {
	if id == "" {
		return &Error{Kind: KindValidation, Message: errNoID.Error(), Err: errNoID}
	}
	return r.c.doJSON(ctx, http.MethodDelete, r.admin+"/"+url.PathEscape(id), nil, nil)
}
