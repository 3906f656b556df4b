package admins

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jrsteele09/panel-console/client"
)

const basePath = "/admins/"

type Service struct {
	requester client.Requester
}

func NewService(requester client.Requester) *Service {
	return &Service{requester: requester}
}

func (s *Service) List(ctx context.Context) ([]Admin, error) {
	var admins []Admin
	if err := client.Invoke(ctx, s.requester, client.Request{Method: http.MethodGet, Path: basePath}, &admins); err != nil {
		return nil, fmt.Errorf("[admins List] %w", err)
	}
	return admins, nil
}

func (s *Service) Create(ctx context.Context, req CreateRequest) (*Admin, error) {
	admin := new(Admin)
	if err := client.Invoke(ctx, s.requester, client.Request{Method: http.MethodPost, Path: basePath, Body: req}, admin); err != nil {
		return nil, fmt.Errorf("[admins Create] %w", err)
	}
	return admin, nil
}

func (s *Service) Update(ctx context.Context, id int, req UpdateRequest) (*Admin, error) {
	admin := new(Admin)
	if err := client.Invoke(ctx, s.requester, client.Request{Method: http.MethodPatch, Path: itemPath(id), Body: req}, admin); err != nil {
		return nil, fmt.Errorf("[admins Update] %w", err)
	}
	return admin, nil
}

func (s *Service) Delete(ctx context.Context, id int) error {
	if err := client.Invoke(ctx, s.requester, client.Request{Method: http.MethodDelete, Path: itemPath(id)}, nil); err != nil {
		return fmt.Errorf("[admins Delete] %w", err)
	}
	return nil
}

func itemPath(id int) string {
	return fmt.Sprintf("%s%d", basePath, id)
}
