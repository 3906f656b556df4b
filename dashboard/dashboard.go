// Package dashboard builds the headline numbers shown after login.
package dashboard

import (
	"context"
	"fmt"
	"math"

	"github.com/jrsteele09/panel-console/inbounds"
	"github.com/jrsteele09/panel-console/nodes"
	"github.com/jrsteele09/panel-console/users"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

const bytesPerGiB = 1024 * 1024 * 1024

type Summary struct {
	TotalUsers     int     `json:"total_users"`
	ActiveNodes    int     `json:"active_nodes"`
	TotalInbounds  int     `json:"total_inbounds"`
	TotalTrafficGB float64 `json:"total_traffic_gb"`
}

type UserLister interface {
	List(ctx context.Context, params users.ListParams) (*users.ListResponse, error)
}

type NodeLister interface {
	List(ctx context.Context, params nodes.ListParams) ([]nodes.Node, error)
}

type InboundLister interface {
	List(ctx context.Context, params inbounds.ListParams) ([]inbounds.Inbound, error)
}

// Sources are the services the summary is computed from. The resource
// services in this module satisfy them.
type Sources struct {
	Users    UserLister
	Nodes    NodeLister
	Inbounds InboundLister
}

// Load fetches the three lists concurrently. The first failure cancels the
// others and is returned as is.
func Load(ctx context.Context, src Sources) (Summary, error) {
	var (
		userList    *users.ListResponse
		nodeList    []nodes.Node
		inboundList []inbounds.Inbound
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		userList, err = src.Users.List(ctx, users.ListParams{})
		return err
	})
	g.Go(func() error {
		var err error
		nodeList, err = src.Nodes.List(ctx, nodes.ListParams{})
		return err
	})
	g.Go(func() error {
		var err error
		inboundList, err = src.Inbounds.List(ctx, inbounds.ListParams{})
		return err
	})
	if err := g.Wait(); err != nil {
		return Summary{}, fmt.Errorf("[dashboard Load] %w", err)
	}

	return summarize(userList, nodeList, inboundList), nil
}

// LoadOrEmpty is Load for callers that render whatever they get: failures are
// logged and a zero summary is returned.
func LoadOrEmpty(ctx context.Context, src Sources) Summary {
	summary, err := Load(ctx, src)
	if err != nil {
		log.Error().Err(err).Msg("failed to load dashboard stats")
		return Summary{}
	}
	return summary
}

func summarize(userList *users.ListResponse, nodeList []nodes.Node, inboundList []inbounds.Inbound) Summary {
	var summary Summary

	var trafficBytes int64
	if userList != nil {
		summary.TotalUsers = userList.Total
		if summary.TotalUsers == 0 {
			summary.TotalUsers = len(userList.Items)
		}
		for _, u := range userList.Items {
			trafficBytes += u.TrafficUsedBytes
		}
	}

	for _, n := range nodeList {
		if n.IsEnabled {
			summary.ActiveNodes++
		}
	}
	summary.TotalInbounds = len(inboundList)
	summary.TotalTrafficGB = math.Round(float64(trafficBytes)/bytesPerGiB*100) / 100
	return summary
}
