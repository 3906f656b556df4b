package nodes

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/jrsteele09/panel-console/client"
	panelerrors "github.com/jrsteele09/panel-console/internal/errors"
)

const basePath = "/nodes/"

type Service struct {
	requester client.Requester
}

func NewService(requester client.Requester) *Service {
	return &Service{requester: requester}
}

func (s *Service) List(ctx context.Context, params ListParams) ([]Node, error) {
	q := url.Values{}
	if params.Skip > 0 {
		q.Set("skip", strconv.Itoa(params.Skip))
	}
	if params.Limit > 0 {
		q.Set("limit", strconv.Itoa(params.Limit))
	}
	if params.OnlineOnly {
		q.Set("online_only", "true")
	}

	var nodes []Node
	if err := s.invoke(ctx, http.MethodGet, basePath, nil, q, &nodes); err != nil {
		return nil, fmt.Errorf("[nodes List] %w", err)
	}
	return nodes, nil
}

func (s *Service) Get(ctx context.Context, id int) (*Node, error) {
	node := new(Node)
	if err := s.invoke(ctx, http.MethodGet, itemPath(id), nil, nil, node); err != nil {
		return nil, fmt.Errorf("[nodes Get] %w", err)
	}
	return node, nil
}

func (s *Service) Create(ctx context.Context, req CreateRequest) (*Node, error) {
	node := new(Node)
	if err := s.invoke(ctx, http.MethodPost, basePath, req, nil, node); err != nil {
		return nil, fmt.Errorf("[nodes Create] %w", err)
	}
	return node, nil
}

func (s *Service) Update(ctx context.Context, id int, req UpdateRequest) (*Node, error) {
	node := new(Node)
	if err := s.invoke(ctx, http.MethodPatch, itemPath(id), req, nil, node); err != nil {
		return nil, fmt.Errorf("[nodes Update] %w", err)
	}
	return node, nil
}

func (s *Service) Delete(ctx context.Context, id int) error {
	if err := s.invoke(ctx, http.MethodDelete, itemPath(id), nil, nil, nil); err != nil {
		return fmt.Errorf("[nodes Delete] %w", err)
	}
	return nil
}

// Connect asks the panel to reach the node and start managing it.
func (s *Service) Connect(ctx context.Context, id int) (*ActionResult, error) {
	result := new(ActionResult)
	if err := s.invoke(ctx, http.MethodPost, itemPath(id)+"/connect", nil, nil, result); err != nil {
		return nil, fmt.Errorf("[nodes Connect] %w", err)
	}
	return result, nil
}

func (s *Service) Disconnect(ctx context.Context, id int) (*ActionResult, error) {
	result := new(ActionResult)
	if err := s.invoke(ctx, http.MethodPost, itemPath(id)+"/disconnect", nil, nil, result); err != nil {
		return nil, fmt.Errorf("[nodes Disconnect] %w", err)
	}
	return result, nil
}

// GenerateSSL issues a certificate bundle for a node that does not exist yet.
// The backend takes both values as query parameters and no body.
func (s *Service) GenerateSSL(ctx context.Context, name, address string) (*SSLBundle, error) {
	if name == "" || address == "" {
		return nil, panelerrors.Wrapf(panelerrors.ErrMissingArgument, "[nodes GenerateSSL] name and address are required")
	}
	q := url.Values{}
	q.Set("node_name", name)
	q.Set("node_address", address)

	bundle := new(SSLBundle)
	if err := s.invoke(ctx, http.MethodPost, basePath+"generate-ssl", nil, q, bundle); err != nil {
		return nil, fmt.Errorf("[nodes GenerateSSL] %w", err)
	}
	return bundle, nil
}

func (s *Service) invoke(ctx context.Context, method, path string, body any, query url.Values, out any) error {
	return client.Invoke(ctx, s.requester, client.Request{Method: method, Path: path, Body: body, Query: query}, out)
}

func itemPath(id int) string {
	return basePath + strconv.Itoa(id)
}
