package domain

// UserRef is the embedded owner reference the server expands on reads.
type UserRef struct {
	ID    string `json:"_id,omitempty"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
}

// Booking is a table reservation. Append-only from the client: users create
// and list bookings, nobody edits or deletes them here. Admins see all
// bookings across users.
type Booking struct {
	ID      string   `json:"_id,omitempty"`
	Name    string   `json:"name"`
	Email   string   `json:"email"`
	Phone   string   `json:"number,omitempty"`
	Date    string   `json:"date"`
	Time    string   `json:"time"`
	Guests  int      `json:"guests"`
	Message string   `json:"message,omitempty"`
	User    *UserRef `json:"user,omitempty"`
}

func (b Booking) Key() string { return b.ID }
