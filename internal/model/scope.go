package model

// Scope is the authenticated actor context propagated through requests.
type Scope struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// Roles recognized at the boundary.
const (
	RoleReporter = "REPORTER"
	RoleOfficer  = "OFFICER"
	RoleNGO      = "NGO"
	RoleAdmin    = "ADMIN"
)
