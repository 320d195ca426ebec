// Package booking specializes the optimistic collection for table
// reservations. Only load and add are exposed: bookings are append-only
// from the client's perspective.
package booking

import (
	"context"
	"strings"

	"github.com/araddon/dateparse"
	"github.com/bwmarrin/snowflake"
	"github.com/talkincode/brewhub/internal/domain"
	"github.com/talkincode/brewhub/internal/remote"
	"github.com/talkincode/brewhub/internal/syncer"
)

type bookingOps struct {
	api remote.BookingAPI
}

func (o bookingOps) List(ctx context.Context) ([]domain.Booking, error) {
	return o.api.ListBookings(ctx)
}

func (o bookingOps) Create(ctx context.Context, b domain.Booking) (domain.Booking, error) {
	return b, o.api.CreateBooking(ctx, b)
}

func (o bookingOps) Delete(ctx context.Context, key string) error {
	// Not reachable: Manager exposes no remove.
	return remote.ErrNotFound
}

type Manager struct {
	col  *syncer.Collection[domain.Booking]
	api  remote.BookingAPI
	node *snowflake.Node
}

func New(api remote.BookingAPI, node *snowflake.Node) *Manager {
	return &Manager{
		col:  syncer.New[domain.Booking]("bookings", bookingOps{api: api}),
		api:  api,
		node: node,
	}
}

// Load fetches the caller's own bookings.
func (m *Manager) Load(ctx context.Context) error { return m.col.Load(ctx) }

func (m *Manager) Bookings() []domain.Booking { return m.col.Items() }

// ListAll fetches every user's bookings. Admin-only; the server rejects
// other roles with ErrUnauthorized.
func (m *Manager) ListAll(ctx context.Context) ([]domain.Booking, error) {
	return m.api.ListAllBookings(ctx)
}

// Add validates the reservation client-side, then creates it remotely.
// A validation failure is reported before any network call is made.
func (m *Manager) Add(ctx context.Context, b domain.Booking) error {
	if err := validate(b); err != nil {
		return err
	}
	if b.ID == "" {
		// Placeholder until the next Load replaces it with server truth;
		// stripped from the create payload.
		b.ID = "local-" + m.node.Generate().String()
	}
	return m.col.Add(ctx, b)
}

// Clear drops the local projection, e.g. at logout.
func (m *Manager) Clear() { m.col.Clear() }

func validate(b domain.Booking) error {
	var missing []string
	if strings.TrimSpace(b.Name) == "" {
		missing = append(missing, "name")
	}
	if email := strings.TrimSpace(b.Email); email == "" || !strings.Contains(email, "@") {
		missing = append(missing, "email")
	}
	if strings.TrimSpace(b.Phone) == "" {
		missing = append(missing, "phone")
	}
	if b.Guests < 1 {
		missing = append(missing, "guests")
	}
	if strings.TrimSpace(b.Date) == "" {
		missing = append(missing, "date")
	} else if _, err := dateparse.ParseAny(b.Date); err != nil {
		missing = append(missing, "date")
	}
	if strings.TrimSpace(b.Time) == "" {
		missing = append(missing, "time")
	}
	if len(missing) > 0 {
		return &remote.ValidationError{Fields: missing}
	}
	return nil
}
