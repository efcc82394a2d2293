package domain

import "time"

const (
	RoleEmployee = "employee"
	RoleManager  = "manager"
)

// ValidRole reports whether the given role is one the system recognises.
func ValidRole(role string) bool {
	return role == RoleEmployee || role == RoleManager
}

// User models an account in the directory. PasswordHash never leaves the
// service boundary.
type User struct {
	ID           string    `json:"id" bson:"_id,omitempty"`
	Username     string    `json:"username" bson:"username"`
	FirstName    string    `json:"first_name,omitempty" bson:"first_name,omitempty"`
	LastName     string    `json:"last_name,omitempty" bson:"last_name,omitempty"`
	PasswordHash string    `json:"-" bson:"password_hash"`
	Role         string    `json:"role" bson:"role"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" bson:"updated_at"`
}
