package domain

// User is the authenticated account profile from /users/details.
type User struct {
	ID      string `json:"_id"`
	Email   string `json:"email"`
	IsAdmin bool   `json:"isAdmin"`
}

// Credentials is the payload for login and registration.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
