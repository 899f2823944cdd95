package domain

// Role is the privilege tier derived from a Session.
type Role int

const (
	RoleAnonymous Role = iota
	RoleUser
	RoleAdmin
)

func (r Role) String() string {
	switch r {
	case RoleUser:
		return "user"
	case RoleAdmin:
		return "admin"
	default:
		return "anonymous"
	}
}

// Session is the client-held authentication state.
// An empty Token is the logged-out session; IsAdmin means nothing without a token.
type Session struct {
	Token   string `json:"token"`
	IsAdmin bool   `json:"isAdmin"`
}

// Role maps the session onto its privilege tier.
func (s Session) Role() Role {
	switch {
	case s.Token == "":
		return RoleAnonymous
	case s.IsAdmin:
		return RoleAdmin
	default:
		return RoleUser
	}
}

// LoggedIn reports whether the session carries a token.
func (s Session) LoggedIn() bool {
	return s.Token != ""
}
