package memory

import (
	"context"
	"strings"
	"sync"

	"tucing-suites-calendar/internal/domain/bookings"
)

// bookingsRepo guarda el orden de inserción: el slot engine depende de él.
type bookingsRepo struct {
	mu    sync.RWMutex
	items []bookings.Booking
}

func NewBookingsRepo(seed ...bookings.Booking) bookings.Repository {
	items := make([]bookings.Booking, len(seed))
	copy(items, seed)
	return &bookingsRepo{items: items}
}

func (r *bookingsRepo) List(ctx context.Context) ([]bookings.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]bookings.Booking, len(r.items))
	copy(out, r.items)
	return out, nil
}

func (r *bookingsRepo) GetByID(ctx context.Context, id string) (bookings.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if i := r.indexOf(id); i >= 0 {
		return r.items[i], nil
	}
	return bookings.Booking{}, bookings.ErrNotFound
}

func (r *bookingsRepo) Create(ctx context.Context, b bookings.Booking) (bookings.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(b.ID) == "" {
		return bookings.Booking{}, bookings.ErrInvalidInput
	}
	if r.indexOf(b.ID) >= 0 {
		return bookings.Booking{}, bookings.ErrAlreadyExists
	}
	r.items = append(r.items, b)
	return b, nil
}

func (r *bookingsRepo) Update(ctx context.Context, b bookings.Booking) (bookings.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(b.ID)
	if i < 0 {
		return bookings.Booking{}, bookings.ErrNotFound
	}
	r.items[i] = b
	return b, nil
}

func (r *bookingsRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	// idempotente
	if i := r.indexOf(id); i >= 0 {
		r.items = append(r.items[:i], r.items[i+1:]...)
	}
	return nil
}

func (r *bookingsRepo) ReplaceAll(ctx context.Context, items []bookings.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items = make([]bookings.Booking, len(items))
	copy(r.items, items)
	return nil
}

func (r *bookingsRepo) indexOf(id string) int {
	for i := range r.items {
		if r.items[i].ID == id {
			return i
		}
	}
	return -1
}
