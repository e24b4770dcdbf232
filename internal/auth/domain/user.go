package domain

// User is a registered account. The id is assigned by the store on creation
// and never changes; email is the natural key for credential lookups.
type User struct {
	ID           int64
	FirstName    string
	LastName     string // optional, empty when not provided
	Email        string // unique, stored case-sensitive
	PasswordHash string // digest only, never plaintext
	IsActive     bool   // reserved for authorization, defaults true
	IsAdmin      bool   // reserved for authorization, defaults false
}
