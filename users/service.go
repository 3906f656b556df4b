package users

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/jrsteele09/panel-console/client"
)

const basePath = "/users/"

// Service wraps the /users endpoints.
type Service struct {
	requester client.Requester
}

func NewService(requester client.Requester) *Service {
	return &Service{requester: requester}
}

func (p ListParams) query() url.Values {
	q := url.Values{}
	if p.Skip > 0 {
		q.Set("skip", strconv.Itoa(p.Skip))
	}
	if p.Limit > 0 {
		q.Set("limit", strconv.Itoa(p.Limit))
	}
	if p.Status != "" {
		q.Set("status", string(p.Status))
	}
	if p.Search != "" {
		q.Set("search", p.Search)
	}
	return q
}

func (s *Service) List(ctx context.Context, params ListParams) (*ListResponse, error) {
	resp := new(ListResponse)
	if err := s.invoke(ctx, http.MethodGet, basePath, nil, params.query(), resp); err != nil {
		return nil, fmt.Errorf("[users List] %w", err)
	}
	return resp, nil
}

func (s *Service) Get(ctx context.Context, id int) (*User, error) {
	user := new(User)
	if err := s.invoke(ctx, http.MethodGet, itemPath(id), nil, nil, user); err != nil {
		return nil, fmt.Errorf("[users Get] %w", err)
	}
	return user, nil
}

func (s *Service) Create(ctx context.Context, req CreateRequest) (*User, error) {
	user := new(User)
	if err := s.invoke(ctx, http.MethodPost, basePath, req, nil, user); err != nil {
		return nil, fmt.Errorf("[users Create] %w", err)
	}
	return user, nil
}

func (s *Service) Update(ctx context.Context, id int, req UpdateRequest) (*User, error) {
	user := new(User)
	if err := s.invoke(ctx, http.MethodPatch, itemPath(id), req, nil, user); err != nil {
		return nil, fmt.Errorf("[users Update] %w", err)
	}
	return user, nil
}

func (s *Service) Delete(ctx context.Context, id int) error {
	if err := s.invoke(ctx, http.MethodDelete, itemPath(id), nil, nil, nil); err != nil {
		return fmt.Errorf("[users Delete] %w", err)
	}
	return nil
}

// ResetTraffic zeroes the used traffic counter and returns the updated user.
func (s *Service) ResetTraffic(ctx context.Context, id int) (*User, error) {
	user := new(User)
	if err := s.invoke(ctx, http.MethodPost, itemPath(id)+"/reset-traffic", nil, nil, user); err != nil {
		return nil, fmt.Errorf("[users ResetTraffic] %w", err)
	}
	return user, nil
}

// RevokeSubscription invalidates the user's subscription link.
func (s *Service) RevokeSubscription(ctx context.Context, id int) (*ActionResult, error) {
	result := new(ActionResult)
	if err := s.invoke(ctx, http.MethodPost, itemPath(id)+"/revoke-sub", nil, nil, result); err != nil {
		return nil, fmt.Errorf("[users RevokeSubscription] %w", err)
	}
	return result, nil
}

// Proxies returns the backend's proxy view for the user as is.
func (s *Service) Proxies(ctx context.Context, id int) (json.RawMessage, error) {
	var proxies json.RawMessage
	if err := s.invoke(ctx, http.MethodGet, itemPath(id)+"/proxies", nil, nil, &proxies); err != nil {
		return nil, fmt.Errorf("[users Proxies] %w", err)
	}
	return proxies, nil
}

// Inbounds returns the inbounds assigned to the user as is.
func (s *Service) Inbounds(ctx context.Context, id int) (json.RawMessage, error) {
	var inbounds json.RawMessage
	if err := s.invoke(ctx, http.MethodGet, itemPath(id)+"/inbounds", nil, nil, &inbounds); err != nil {
		return nil, fmt.Errorf("[users Inbounds] %w", err)
	}
	return inbounds, nil
}

// AssignInbounds replaces the user's inbound assignment.
func (s *Service) AssignInbounds(ctx context.Context, id int, inboundIDs []int) (json.RawMessage, error) {
	if inboundIDs == nil {
		inboundIDs = []int{}
	}
	var result json.RawMessage
	body := assignInboundsRequest{InboundIDs: inboundIDs}
	if err := s.invoke(ctx, http.MethodPost, itemPath(id)+"/assign-inbounds", body, nil, &result); err != nil {
		return nil, fmt.Errorf("[users AssignInbounds] %w", err)
	}
	return result, nil
}

func (s *Service) invoke(ctx context.Context, method, path string, body any, query url.Values, out any) error {
	return client.Invoke(ctx, s.requester, client.Request{Method: method, Path: path, Body: body, Query: query}, out)
}

func itemPath(id int) string {
	return basePath + strconv.Itoa(id)
}
