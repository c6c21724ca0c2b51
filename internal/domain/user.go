package domain

// User represents an authenticated account in the system.
type User struct {
	Model
	Username     string `json:"username"`
	PasswordHash string `json:"passwordHash,omitempty"` // Stored hashed, filter from API responses
}

// Public returns a copy safe to serialize in API responses.
// The password hash never leaves the server.
func (u *User) Public() *User {
	clone := *u
	clone.PasswordHash = ""
	return &clone
}
