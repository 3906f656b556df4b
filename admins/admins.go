package admins

// Admin is a panel operator. GET /auth/me returns the authenticated one.
// Timestamps are kept as the backend sends them (naive ISO 8601).
type Admin struct {
	ID          int      `json:"id"`
	Username    string   `json:"username"`
	IsSudo      bool     `json:"is_sudo"`
	IsActive    bool     `json:"is_active"`
	Roles       []string `json:"roles"`
	MFAEnabled  bool     `json:"mfa_enabled"`
	TelegramID  *int64   `json:"telegram_id,omitempty"`
	LastLoginAt *string  `json:"last_login_at,omitempty"`
	CreatedAt   string   `json:"created_at"`
	UpdatedAt   string   `json:"updated_at"`
}

type CreateRequest struct {
	Username string   `json:"username"`
	Password string   `json:"password"`
	IsSudo   bool     `json:"is_sudo"`
	Roles    []string `json:"roles,omitempty"`
}

type UpdateRequest struct {
	Password   *string  `json:"password,omitempty"`
	IsSudo     *bool    `json:"is_sudo,omitempty"`
	IsActive   *bool    `json:"is_active,omitempty"`
	Roles      []string `json:"roles,omitempty"`
	TelegramID *int64   `json:"telegram_id,omitempty"`
}
