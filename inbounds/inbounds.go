// Package inbounds wraps the panel's /inbounds endpoints.
package inbounds

// Inbound is a listening proxy endpoint. Transport specific settings are kept
// as raw JSON objects since their shape depends on the protocol.
type Inbound struct {
	ID                   int              `json:"id"`
	Tag                  string           `json:"tag"`
	Type                 string           `json:"type"`
	Listen               string           `json:"listen"`
	Port                 int              `json:"port"`
	Network              string           `json:"network"`
	Security             *string          `json:"security,omitempty"`
	TLSSettings          map[string]any   `json:"tls_settings,omitempty"`
	RealitySettings      map[string]any   `json:"reality_settings,omitempty"`
	StreamSettings       map[string]any   `json:"stream_settings,omitempty"`
	SniffingEnabled      bool             `json:"sniffing_enabled"`
	SniffingDestOverride []string         `json:"sniffing_dest_override,omitempty"`
	DomainStrategy       *string          `json:"domain_strategy,omitempty"`
	Fallbacks            []map[string]any `json:"fallbacks,omitempty"`
	ExcludedNodes        []string         `json:"excluded_nodes,omitempty"`
	Remark               *string          `json:"remark,omitempty"`
	IsEnabled            bool             `json:"is_enabled"`
	CreatedAt            string           `json:"created_at,omitempty"`
	UpdatedAt            string           `json:"updated_at,omitempty"`
}

type ListParams struct {
	Skip  int
	Limit int
}

type CreateRequest struct {
	Tag                  string           `json:"tag"`
	Type                 string           `json:"type"`
	Listen               string           `json:"listen,omitempty"`
	Port                 int              `json:"port"`
	Network              string           `json:"network,omitempty"`
	Security             *string          `json:"security,omitempty"`
	TLSSettings          map[string]any   `json:"tls_settings,omitempty"`
	RealitySettings      map[string]any   `json:"reality_settings,omitempty"`
	StreamSettings       map[string]any   `json:"stream_settings,omitempty"`
	SniffingEnabled      *bool            `json:"sniffing_enabled,omitempty"`
	SniffingDestOverride []string         `json:"sniffing_dest_override,omitempty"`
	DomainStrategy       *string          `json:"domain_strategy,omitempty"`
	Fallbacks            []map[string]any `json:"fallbacks,omitempty"`
	BlockTorrents        bool             `json:"block_torrents,omitempty"`
	Remark               *string          `json:"remark,omitempty"`
}

type UpdateRequest struct {
	Tag                  *string          `json:"tag,omitempty"`
	Type                 *string          `json:"type,omitempty"`
	Listen               *string          `json:"listen,omitempty"`
	Port                 *int             `json:"port,omitempty"`
	Network              *string          `json:"network,omitempty"`
	Security             *string          `json:"security,omitempty"`
	TLSSettings          map[string]any   `json:"tls_settings,omitempty"`
	RealitySettings      map[string]any   `json:"reality_settings,omitempty"`
	StreamSettings       map[string]any   `json:"stream_settings,omitempty"`
	SniffingEnabled      *bool            `json:"sniffing_enabled,omitempty"`
	SniffingDestOverride []string         `json:"sniffing_dest_override,omitempty"`
	DomainStrategy       *string          `json:"domain_strategy,omitempty"`
	Fallbacks            []map[string]any `json:"fallbacks,omitempty"`
	IsEnabled            *bool            `json:"is_enabled,omitempty"`
	BlockTorrents        *bool            `json:"block_torrents,omitempty"`
	Remark               *string          `json:"remark,omitempty"`
}
