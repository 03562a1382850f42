package domain

// Role differentiates the two independently authorized audiences.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Session is the authorization state of one storage origin.
// UserAuthenticated implies CurrentUserEmail is non-empty.
type Session struct {
	UserAuthenticated  bool
	AdminAuthenticated bool
	CurrentUserEmail   string
}
