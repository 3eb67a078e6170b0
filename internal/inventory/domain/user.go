package domain

// Role types
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User is carried through persistence untouched; sign-in lives outside this service
type User struct {
	ID       string `json:"id" gorm:"primaryKey"`
	Name     string `json:"name"`
	Password string `json:"password,omitempty"`
	Role     string `json:"role" gorm:"not null"`
}

// IsAdmin checks if user has admin role
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
