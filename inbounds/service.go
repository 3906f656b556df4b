package inbounds

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/jrsteele09/panel-console/client"
)

const basePath = "/inbounds/"

type Service struct {
	requester client.Requester
}

func NewService(requester client.Requester) *Service {
	return &Service{requester: requester}
}

func (s *Service) List(ctx context.Context, params ListParams) ([]Inbound, error) {
	q := url.Values{}
	if params.Skip > 0 {
		q.Set("skip", strconv.Itoa(params.Skip))
	}
	if params.Limit > 0 {
		q.Set("limit", strconv.Itoa(params.Limit))
	}

	var inbounds []Inbound
	req := client.Request{Method: http.MethodGet, Path: basePath, Query: q}
	if err := client.Invoke(ctx, s.requester, req, &inbounds); err != nil {
		return nil, fmt.Errorf("[inbounds List] %w", err)
	}
	return inbounds, nil
}

func (s *Service) Get(ctx context.Context, id int) (*Inbound, error) {
	inbound := new(Inbound)
	req := client.Request{Method: http.MethodGet, Path: itemPath(id)}
	if err := client.Invoke(ctx, s.requester, req, inbound); err != nil {
		return nil, fmt.Errorf("[inbounds Get] %w", err)
	}
	return inbound, nil
}

func (s *Service) Create(ctx context.Context, create CreateRequest) (*Inbound, error) {
	inbound := new(Inbound)
	req := client.Request{Method: http.MethodPost, Path: basePath, Body: create}
	if err := client.Invoke(ctx, s.requester, req, inbound); err != nil {
		return nil, fmt.Errorf("[inbounds Create] %w", err)
	}
	return inbound, nil
}

func (s *Service) Update(ctx context.Context, id int, update UpdateRequest) (*Inbound, error) {
	inbound := new(Inbound)
	req := client.Request{Method: http.MethodPatch, Path: itemPath(id), Body: update}
	if err := client.Invoke(ctx, s.requester, req, inbound); err != nil {
		return nil, fmt.Errorf("[inbounds Update] %w", err)
	}
	return inbound, nil
}

func (s *Service) Delete(ctx context.Context, id int) error {
	req := client.Request{Method: http.MethodDelete, Path: itemPath(id)}
	if err := client.Invoke(ctx, s.requester, req, nil); err != nil {
		return fmt.Errorf("[inbounds Delete] %w", err)
	}
	return nil
}

func itemPath(id int) string {
	return basePath + strconv.Itoa(id)
}
