package models

// ============================================================================
// USER MODEL
// ============================================================================

type Role string

const (
	RoleAdmin  Role = "admin"
	RoleViewer Role = "viewer"
)

// User is a name asserting a role. There is no credential attached to it.
type User struct {
	Name string `json:"nombre"`
	Role Role   `json:"rol"`
}

// CanEdit reports whether the user may create, edit or delete movements.
func (u User) CanEdit() bool {
	return u.Role == RoleAdmin
}

// ============================================================================
// IDENTITY REQUESTS
// ============================================================================

type LoginRequest struct {
	Name string `json:"nombre"`
}

type RegisterRequest struct {
	Name *string `json:"nombre"`
	Role *string `json:"rol"`
}

type RegisterResponse struct {
	Message string `json:"message"`
	Name    string `json:"nombre"`
	Role    Role   `json:"rol"`
}
