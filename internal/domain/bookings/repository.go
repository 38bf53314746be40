package bookings

import "context"

// Repository es el contrato del Booking Store.
// List devuelve el orden de inserción del backend; el slot engine depende de que sea estable.
type Repository interface {
	List(ctx context.Context) ([]Booking, error)
	GetByID(ctx context.Context, id string) (Booking, error)
	Create(ctx context.Context, b Booking) (Booking, error)
	Update(ctx context.Context, b Booking) (Booking, error)
	Delete(ctx context.Context, id string) error
	ReplaceAll(ctx context.Context, items []Booking) error
}
