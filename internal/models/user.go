package models

// User is an admin account from the users table.
// The password is stored as a bcrypt hash in password_hash.
type User struct {
	ID           int64
	Email        string
	PasswordHash string
}
