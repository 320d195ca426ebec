package domain

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Identity is the authenticated principal: an opaque bearer credential plus
// the role tag the server handed out at login.
type Identity struct {
	UserID string `json:"userId,omitempty"`
	Role   string `json:"role"`
	Token  string `json:"token"`
}

func (i Identity) Valid() bool   { return i.Token != "" }
func (i Identity) IsAdmin() bool { return i.Role == RoleAdmin }

// User is an account record as seen by the admin user listing.
type User struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role,omitempty"`
}
