// Package nodes wraps the panel's /nodes endpoints. A node is a remote server
// running the proxy core that the panel manages over gRPC or REST.
package nodes

type APIProtocol string

const (
	ProtocolGRPC APIProtocol = "grpc"
	ProtocolREST APIProtocol = "rest"
)

type Node struct {
	ID                   int         `json:"id"`
	Name                 string      `json:"name"`
	Address              string      `json:"address"`
	APIPort              int         `json:"api_port"`
	APIProtocol          APIProtocol `json:"api_protocol"`
	UsageRatio           float64     `json:"usage_ratio"`
	TrafficLimitBytes    *int64      `json:"traffic_limit_bytes,omitempty"`
	TrafficUsedBytes     int64       `json:"traffic_used_bytes"`
	TrafficNotifyPercent int         `json:"traffic_notify_percent"`
	IsConnected          bool        `json:"is_connected"`
	IsEnabled            bool        `json:"is_enabled"`
	XrayRunning          bool        `json:"xray_running"`
	XrayVersion          *string     `json:"xray_version,omitempty"`
	NodeVersion          *string     `json:"node_version,omitempty"`
	CoreType             *string     `json:"core_type,omitempty"`
	CPUCount             *int        `json:"cpu_count,omitempty"`
	CPUModel             *string     `json:"cpu_model,omitempty"`
	TotalRAMMB           *int        `json:"total_ram_mb,omitempty"`
	CountryCode          *string     `json:"country_code,omitempty"`
	ViewPosition         int         `json:"view_position"`
	AddHostToInbounds    bool        `json:"add_host_to_inbounds"`
	LastStatusMessage    *string     `json:"last_status_message,omitempty"`
	LastConnectedAt      *string     `json:"last_connected_at,omitempty"`
	UptimeSeconds        *int64      `json:"uptime_seconds,omitempty"`
	CreatedAt            string      `json:"created_at,omitempty"`
	UpdatedAt            string      `json:"updated_at,omitempty"`
}

type ListParams struct {
	Skip       int
	Limit      int // 0 leaves the backend default (100)
	OnlineOnly bool
}

type CreateRequest struct {
	Name                 string      `json:"name"`
	Address              string      `json:"address"`
	APIPort              int         `json:"api_port,omitempty"`
	APIProtocol          APIProtocol `json:"api_protocol,omitempty"`
	APIKey               string      `json:"api_key"`
	UsageRatio           float64     `json:"usage_ratio,omitempty"`
	TrafficLimitBytes    *int64      `json:"traffic_limit_bytes,omitempty"`
	TrafficNotifyPercent *int        `json:"traffic_notify_percent,omitempty"`
	CountryCode          *string     `json:"country_code,omitempty"`
	ViewPosition         int         `json:"view_position,omitempty"`
	AddHostToInbounds    bool        `json:"add_host_to_inbounds,omitempty"`
}

type UpdateRequest struct {
	Name                 *string      `json:"name,omitempty"`
	Address              *string      `json:"address,omitempty"`
	APIPort              *int         `json:"api_port,omitempty"`
	APIProtocol          *APIProtocol `json:"api_protocol,omitempty"`
	APIKey               *string      `json:"api_key,omitempty"`
	UsageRatio           *float64     `json:"usage_ratio,omitempty"`
	TrafficLimitBytes    *int64       `json:"traffic_limit_bytes,omitempty"`
	TrafficNotifyPercent *int         `json:"traffic_notify_percent,omitempty"`
	IsEnabled            *bool        `json:"is_enabled,omitempty"`
	CountryCode          *string      `json:"country_code,omitempty"`
	ViewPosition         *int         `json:"view_position,omitempty"`
	AddHostToInbounds    *bool        `json:"add_host_to_inbounds,omitempty"`
}

// ActionResult is returned by connect and disconnect.
type ActionResult struct {
	Success     bool    `json:"success"`
	Message     string  `json:"message"`
	XrayRunning *bool   `json:"xray_running,omitempty"`
	XrayVersion *string `json:"xray_version,omitempty"`
	NodeVersion *string `json:"node_version,omitempty"`
}

// SSLBundle holds the certificates issued for a node before it is created.
type SSLBundle struct {
	Success           bool   `json:"success"`
	Name              string `json:"name"`
	Address           string `json:"address"`
	CACertificate     string `json:"ca_certificate"`
	ClientCertificate string `json:"client_certificate"`
	ClientKey         string `json:"client_key"`
}
