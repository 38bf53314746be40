package local

import (
	"context"
	"strings"
	"sync"

	"tucing-suites-calendar/internal/domain/bookings"
	"tucing-suites-calendar/internal/platform/errs"
	"tucing-suites-calendar/internal/platform/logger"
)

// DefaultKey es la clave del blob con el listado completo.
const DefaultKey = "catBookings"

// BookingsRepo guarda todo el listado como un único blob JSON (camelCase).
// Cada escritura es leer-modificar-escribir bajo el mutex.
type BookingsRepo struct {
	mu    sync.Mutex
	blobs BlobStore
	key   string
	log   logger.Logger
}

func NewBookingsRepo(blobs BlobStore, key string, log logger.Logger) *BookingsRepo {
	if strings.TrimSpace(key) == "" {
		key = DefaultKey
	}
	if log == nil {
		log = logger.Nop()
	}
	return &BookingsRepo{
		blobs: blobs,
		key:   key,
		log:   log.With(map[string]any{"component": "local_store", "key": key}),
	}
}

func (r *BookingsRepo) List(ctx context.Context) ([]bookings.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.load(ctx)
}

func (r *BookingsRepo) GetByID(ctx context.Context, id string) (bookings.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	items, err := r.load(ctx)
	if err != nil {
		return bookings.Booking{}, err
	}
	if i := indexOf(items, id); i >= 0 {
		return items[i], nil
	}
	return bookings.Booking{}, bookings.ErrNotFound
}

func (r *BookingsRepo) Create(ctx context.Context, b bookings.Booking) (bookings.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(b.ID) == "" {
		return bookings.Booking{}, bookings.ErrInvalidInput
	}
	items, err := r.load(ctx)
	if err != nil {
		return bookings.Booking{}, err
	}
	if indexOf(items, b.ID) >= 0 {
		return bookings.Booking{}, bookings.ErrAlreadyExists
	}
	if err := r.save(ctx, append(items, b)); err != nil {
		return bookings.Booking{}, err
	}
	return b, nil
}

func (r *BookingsRepo) Update(ctx context.Context, b bookings.Booking) (bookings.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	items, err := r.load(ctx)
	if err != nil {
		return bookings.Booking{}, err
	}
	i := indexOf(items, b.ID)
	if i < 0 {
		return bookings.Booking{}, bookings.ErrNotFound
	}
	items[i] = b
	if err := r.save(ctx, items); err != nil {
		return bookings.Booking{}, err
	}
	return b, nil
}

// Upsert actualiza en su lugar o agrega al final. Lo usa el fallback para espejar.
func (r *BookingsRepo) Upsert(ctx context.Context, b bookings.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	items, err := r.load(ctx)
	if err != nil {
		return err
	}
	if i := indexOf(items, b.ID); i >= 0 {
		items[i] = b
	} else {
		items = append(items, b)
	}
	return r.save(ctx, items)
}

func (r *BookingsRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	items, err := r.load(ctx)
	if err != nil {
		return err
	}
	i := indexOf(items, id)
	if i < 0 {
		return nil
	}
	return r.save(ctx, append(items[:i], items[i+1:]...))
}

func (r *BookingsRepo) ReplaceAll(ctx context.Context, items []bookings.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.save(ctx, items)
}

// load lee el blob. Un blob corrupto se loguea y se trata como vacío.
func (r *BookingsRepo) load(ctx context.Context) ([]bookings.Booking, error) {
	data, ok, err := r.blobs.Get(ctx, r.key)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []bookings.Booking{}, nil
	}

	items, err := bookings.DecodeSnapshot(data)
	if err != nil {
		r.log.Error("stored bookings are unreadable, starting empty", map[string]any{
			"error": errs.Mark(err, errs.ErrDecode).Error(),
			"bytes": len(data),
		})
		return []bookings.Booking{}, nil
	}
	return items, nil
}

func (r *BookingsRepo) save(ctx context.Context, items []bookings.Booking) error {
	data, err := bookings.EncodeSnapshot(items)
	if err != nil {
		return errs.Wrap(err, "local: encode bookings")
	}
	return r.blobs.Put(ctx, r.key, data)
}

func indexOf(items []bookings.Booking, id string) int {
	for i := range items {
		if items[i].ID == id {
			return i
		}
	}
	return -1
}
