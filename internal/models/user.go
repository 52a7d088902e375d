package models

// User represents a user authenticated via OIDC.
// Only held in the session; there is no user table.
type User struct {
	Sub     string `json:"sub"` // OIDC subject identifier
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

// DisplayName returns the best available label for the user.
func (u *User) DisplayName() string {
	if u.Name != "" {
		return u.Name
	}
	if u.Email != "" {
		return u.Email
	}
	return u.Sub
}
