package users

type Status string

const (
	StatusActive   Status = "ACTIVE"
	StatusDisabled Status = "DISABLED"
	StatusLimited  Status = "LIMITED"
	StatusExpired  Status = "EXPIRED"
)

type TrafficLimitStrategy string

const (
	StrategyNoReset TrafficLimitStrategy = "NO_RESET"
	StrategyDay     TrafficLimitStrategy = "DAY"
	StrategyWeek    TrafficLimitStrategy = "WEEK"
	StrategyMonth   TrafficLimitStrategy = "MONTH"
)

type ProxyType string

const (
	ProxyVMess       ProxyType = "VMESS"
	ProxyVLESS       ProxyType = "VLESS"
	ProxyTrojan      ProxyType = "TROJAN"
	ProxyShadowsocks ProxyType = "SHADOWSOCKS"
)

// User is a subscriber of the panel
type User struct {
	ID                   int                  `json:"id"`
	Username             string               `json:"username"`
	Email                *string              `json:"email,omitempty"`
	Status               Status               `json:"status"`
	TrafficLimitBytes    *int64               `json:"traffic_limit_bytes,omitempty"`
	TrafficUsedBytes     int64                `json:"traffic_used_bytes"`
	TrafficLimitStrategy TrafficLimitStrategy `json:"traffic_limit_strategy,omitempty"`
	ExpireAt             *string              `json:"expire_at,omitempty"`
	SubRevokedAt         *string              `json:"sub_revoked_at,omitempty"`
	OnlineAt             *string              `json:"online_at,omitempty"`
	Description          *string              `json:"description,omitempty"`
	TelegramID           *int64               `json:"telegram_id,omitempty"`
	HwidDeviceLimit      *int                 `json:"hwid_device_limit,omitempty"`
	CreatedAt            string               `json:"created_at,omitempty"`
	UpdatedAt            string               `json:"updated_at,omitempty"`
	Proxies              []Proxy              `json:"proxies,omitempty"`
	HwidDevices          []HwidDevice         `json:"hwid_devices,omitempty"`
}

// Proxy holds the per-protocol credentials of a user
type Proxy struct {
	ID             int       `json:"id,omitempty"`
	UserID         int       `json:"user_id,omitempty"`
	Type           ProxyType `json:"type"`
	VMessUUID      *string   `json:"vmess_uuid,omitempty"`
	VLESSUUID      *string   `json:"vless_uuid,omitempty"`
	VLESSFlow      *string   `json:"vless_flow,omitempty"`
	TrojanPassword *string   `json:"trojan_password,omitempty"`
	SSPassword     *string   `json:"ss_password,omitempty"`
	SSMethod       *string   `json:"ss_method,omitempty"`
	Network        *string   `json:"network,omitempty"`
	Security       *string   `json:"security,omitempty"`
	SNI            *string   `json:"sni,omitempty"`
	ALPN           []string  `json:"alpn,omitempty"`
	Fingerprint    *string   `json:"fingerprint,omitempty"`
	CreatedAt      string    `json:"created_at,omitempty"`
}

type HwidDevice struct {
	ID          int     `json:"id"`
	HWID        string  `json:"hwid"`
	DeviceOS    *string `json:"device_os,omitempty"`
	VerOS       *string `json:"ver_os,omitempty"`
	DeviceModel *string `json:"device_model,omitempty"`
	FirstSeenAt string  `json:"first_seen_at"`
	LastSeenAt  string  `json:"last_seen_at"`
}

// ListResponse is the paged answer of GET /users/
type ListResponse struct {
	Total int    `json:"total"`
	Items []User `json:"items"`
}

type ListParams struct {
	Skip   int
	Limit  int // 0 leaves the backend default (50)
	Status Status
	Search string
}

type CreateRequest struct {
	Username             string               `json:"username"`
	Password             string               `json:"password"`
	Email                *string              `json:"email,omitempty"`
	Status               Status               `json:"status,omitempty"`
	TrafficLimitBytes    *int64               `json:"traffic_limit_bytes,omitempty"`
	TrafficLimitStrategy TrafficLimitStrategy `json:"traffic_limit_strategy,omitempty"`
	ExpireAt             *string              `json:"expire_at,omitempty"`
	Description          *string              `json:"description,omitempty"`
	TelegramID           *int64               `json:"telegram_id,omitempty"`
	HwidDeviceLimit      *int                 `json:"hwid_device_limit,omitempty"`
	Proxies              []Proxy              `json:"proxies,omitempty"`
	InboundTags          []string             `json:"inbound_tags,omitempty"`
}

// UpdateRequest only sends the fields that are set
type UpdateRequest struct {
	Email                *string               `json:"email,omitempty"`
	Password             *string               `json:"password,omitempty"`
	Status               *Status               `json:"status,omitempty"`
	TrafficLimitBytes    *int64                `json:"traffic_limit_bytes,omitempty"`
	TrafficLimitStrategy *TrafficLimitStrategy `json:"traffic_limit_strategy,omitempty"`
	ExpireAt             *string               `json:"expire_at,omitempty"`
	Description          *string               `json:"description,omitempty"`
	TelegramID           *int64                `json:"telegram_id,omitempty"`
	HwidDeviceLimit      *int                  `json:"hwid_device_limit,omitempty"`
}

type assignInboundsRequest struct {
	InboundIDs []int `json:"inbound_ids"`
}

// ActionResult is the generic {"message": ...} answer of action endpoints
type ActionResult struct {
	Message string `json:"message"`
}
