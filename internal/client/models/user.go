package models

// User is the locally persisted session record.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Credentials carries a sign-in attempt. Name is an identity hint from an
// external provider; when present the password is not checked.
type Credentials struct {
	Email    string
	Password string
	Name     string
}
