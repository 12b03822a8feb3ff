package model

import "time"

// User roles. Admin status is an explicit claim on the user record, checked
// by the auth policy middleware; it is never inferred from the username.
const (
	RoleAdmin  = "admin"
	RoleMember = "member"
)

// User is a registered community account.
//
// PasswordHash holds the bcrypt hash of the password. The `json:"-"` tag
// keeps it out of every response regardless of where the struct is
// serialized.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Avatar       string    `json:"avatar"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// Profile is the public view of a user returned by login and embedded in
// joined post/comment rows.
type Profile struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Avatar   string `json:"avatar"`
	Role     string `json:"role"`
}

// Profile returns the public view of the user.
func (u *User) Profile() *Profile {
	return &Profile{
		ID:       u.ID,
		Username: u.Username,
		Avatar:   u.Avatar,
		Role:     u.Role,
	}
}
