package templates

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/jrsteele09/panel-console/client"
	panelerrors "github.com/jrsteele09/panel-console/internal/errors"
)

const (
	basePath         = "/templates/"
	generatePath     = basePath + "generate"
	realityKeysPath  = basePath + "reality/keys"
	realityShortPath = basePath + "reality/short-ids"
)

type Service struct {
	requester client.Requester
}

func NewService(requester client.Requester) *Service {
	return &Service{requester: requester}
}

func (s *Service) List(ctx context.Context) ([]Template, error) {
	var templates []Template
	if err := client.Invoke(ctx, s.requester, client.Request{Method: http.MethodGet, Path: basePath}, &templates); err != nil {
		return nil, fmt.Errorf("[templates List] %w", err)
	}
	return templates, nil
}

// Generate renders templateID with params into an inbound configuration.
func (s *Service) Generate(ctx context.Context, templateID string, params GenerateParams) (*GenerateResult, error) {
	if templateID == "" {
		return nil, panelerrors.Wrapf(panelerrors.ErrMissingArgument, "[templates Generate] template id")
	}
	body := generateRequest{TemplateID: templateID, GenerateParams: params}

	result := new(GenerateResult)
	if err := client.Invoke(ctx, s.requester, client.Request{Method: http.MethodPost, Path: generatePath, Body: body}, result); err != nil {
		return nil, fmt.Errorf("[templates Generate] %w", err)
	}
	return result, nil
}

// RealityKeys asks the backend for a fresh x25519 key pair.
func (s *Service) RealityKeys(ctx context.Context) (*RealityKeys, error) {
	keys := new(RealityKeys)
	if err := client.Invoke(ctx, s.requester, client.Request{Method: http.MethodGet, Path: realityKeysPath}, keys); err != nil {
		return nil, fmt.Errorf("[templates RealityKeys] %w", err)
	}
	return keys, nil
}

// ShortIDs generates count Reality short ids. A count <= 0 uses the backend default.
func (s *Service) ShortIDs(ctx context.Context, count int) (*ShortIDs, error) {
	var q url.Values
	if count > 0 {
		q = url.Values{"count": []string{strconv.Itoa(count)}}
	}

	ids := new(ShortIDs)
	if err := client.Invoke(ctx, s.requester, client.Request{Method: http.MethodGet, Path: realityShortPath, Query: q}, ids); err != nil {
		return nil, fmt.Errorf("[templates ShortIDs] %w", err)
	}
	return ids, nil
}
