package client

import (
	"context"
	"net/http"
	"net/url"
)

// Invoke sends req through r and decodes the JSON response into out when out
// is non-nil.
func Invoke(ctx context.Context, r Requester, req Request, out any) error {
	resp, err := r.Do(ctx, req)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	return resp.Decode(out)
}

func (c *Client) Get(ctx context.Context, path string, query url.Values, out any) error {
	return Invoke(ctx, c, Request{Method: http.MethodGet, Path: path, Query: query}, out)
}

func (c *Client) Post(ctx context.Context, path string, body any, out any) error {
	return Invoke(ctx, c, Request{Method: http.MethodPost, Path: path, Body: body}, out)
}

func (c *Client) Patch(ctx context.Context, path string, body any, out any) error {
	return Invoke(ctx, c, Request{Method: http.MethodPatch, Path: path, Body: body}, out)
}

func (c *Client) Delete(ctx context.Context, path string) error {
	return Invoke(ctx, c, Request{Method: http.MethodDelete, Path: path}, nil)
}
