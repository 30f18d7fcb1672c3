package model

// User role constants
const (
	RoleUser  = "USER_ROLE"
	RoleAdmin = "ADMIN_ROLE"
)

// User represents a system user. The password hash never appears in any
// outward-facing representation.
type User struct {
	Base
	Name         string  `json:"nombre" db:"nombre"`
	Email        string  `json:"email" db:"email"`
	PasswordHash string  `json:"-" db:"password"`
	Image        *string `json:"img,omitempty" db:"img"`
	Role         string  `json:"role" db:"role"`
	Google       bool    `json:"google" db:"google"`
}

// IsAdmin reports whether the user carries the administrative role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// CreateUserRequest represents user creation parameters
type CreateUserRequest struct {
	Name     string `json:"nombre" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role" binding:"omitempty,oneof=USER_ROLE ADMIN_ROLE"`
}

// UpdateUserRequest represents user update parameters. Password and the
// google flag are not updatable through this route.
type UpdateUserRequest struct {
	Name  string  `json:"nombre" binding:"required"`
	Email string  `json:"email" binding:"required,email"`
	Image *string `json:"img"`
	Role  *string `json:"role" binding:"omitempty,oneof=USER_ROLE ADMIN_ROLE"`
}
