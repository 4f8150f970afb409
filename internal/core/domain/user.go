package domain

// SessionUser is the identity of the signed-in console operator as reported
// by the registry core. At most one instance is cached per process; it is
// replaced wholesale on every successful refresh.
type SessionUser struct {
	ID           int64  `json:"user_id"`
	Username     string `json:"username"`
	Email        string `json:"email,omitempty"`
	RealName     string `json:"realname,omitempty"`
	HasAdminRole bool   `json:"has_admin_role"`
}
