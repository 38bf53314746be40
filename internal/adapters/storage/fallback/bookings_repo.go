package fallback

import (
	"context"
	"errors"

	"tucing-suites-calendar/internal/domain/bookings"
	"tucing-suites-calendar/internal/platform/errs"
	"tucing-suites-calendar/internal/platform/logger"
)

// Mirror es la copia local: un Repository que además acepta upserts.
type Mirror interface {
	bookings.Repository
	Upsert(ctx context.Context, b bookings.Booking) error
}

type Recorder interface {
	IncStoreFallback(op string)
}

// BookingsRepo usa el store remoto como fuente de verdad y espeja cada
// resultado en la copia local. Si el remoto falla, la operación se aplica
// solo en local y se devuelve el resultado junto a un *bookings.DegradedError.
// Los errores de dominio del remoto (not found, duplicado) no degradan.
type BookingsRepo struct {
	remote bookings.Repository
	local  Mirror
	log    logger.Logger
	rec    Recorder
}

func NewBookingsRepo(remote bookings.Repository, local Mirror, log logger.Logger, rec Recorder) *BookingsRepo {
	if log == nil {
		log = logger.Nop()
	}
	return &BookingsRepo{
		remote: remote,
		local:  local,
		log:    log.With(map[string]any{"component": "fallback_store"}),
		rec:    rec,
	}
}

func (r *BookingsRepo) List(ctx context.Context) ([]bookings.Booking, error) {
	items, err := r.remote.List(ctx)
	if err == nil {
		r.mirror(bookings.OpList, r.local.ReplaceAll(ctx, items))
		return items, nil
	}

	localItems, lerr := r.local.List(ctx)
	if lerr != nil {
		return nil, lerr
	}
	return localItems, r.degrade(bookings.OpList, err)
}

func (r *BookingsRepo) GetByID(ctx context.Context, id string) (bookings.Booking, error) {
	b, err := r.remote.GetByID(ctx, id)
	if err == nil || isDomainErr(err) {
		return b, err
	}

	lb, lerr := r.local.GetByID(ctx, id)
	if lerr != nil {
		return bookings.Booking{}, lerr
	}
	return lb, r.degrade(bookings.OpGet, err)
}

func (r *BookingsRepo) Create(ctx context.Context, b bookings.Booking) (bookings.Booking, error) {
	stored, err := r.remote.Create(ctx, b)
	if err == nil {
		r.mirror(bookings.OpCreate, r.local.Upsert(ctx, stored))
		return stored, nil
	}
	if isDomainErr(err) {
		return bookings.Booking{}, err
	}

	lb, lerr := r.local.Create(ctx, b)
	if lerr != nil {
		return bookings.Booking{}, lerr
	}
	return lb, r.degrade(bookings.OpCreate, err)
}

func (r *BookingsRepo) Update(ctx context.Context, b bookings.Booking) (bookings.Booking, error) {
	stored, err := r.remote.Update(ctx, b)
	if err == nil {
		r.mirror(bookings.OpUpdate, r.local.Upsert(ctx, stored))
		return stored, nil
	}
	if isDomainErr(err) {
		return bookings.Booking{}, err
	}

	lb, lerr := r.local.Update(ctx, b)
	if lerr != nil {
		return bookings.Booking{}, lerr
	}
	return lb, r.degrade(bookings.OpUpdate, err)
}

func (r *BookingsRepo) Delete(ctx context.Context, id string) error {
	err := r.remote.Delete(ctx, id)
	if err == nil {
		r.mirror(bookings.OpDelete, r.local.Delete(ctx, id))
		return nil
	}
	if isDomainErr(err) {
		return err
	}

	if lerr := r.local.Delete(ctx, id); lerr != nil {
		return lerr
	}
	return r.degrade(bookings.OpDelete, err)
}

func (r *BookingsRepo) ReplaceAll(ctx context.Context, items []bookings.Booking) error {
	err := r.remote.ReplaceAll(ctx, items)
	if err == nil {
		r.mirror(bookings.OpImport, r.local.ReplaceAll(ctx, items))
		return nil
	}

	if lerr := r.local.ReplaceAll(ctx, items); lerr != nil {
		return lerr
	}
	return r.degrade(bookings.OpImport, err)
}

func (r *BookingsRepo) degrade(op string, cause error) error {
	if r.rec != nil {
		r.rec.IncStoreFallback(op)
	}
	r.log.Debug("remote store failed, using local copy", map[string]any{
		"op":    op,
		"error": cause.Error(),
		"stack": errs.ExtractStackLines(cause, 5),
	})
	return &bookings.DegradedError{Op: op, Cause: cause}
}

// mirror solo loguea: una copia local desactualizada no invalida el resultado remoto.
func (r *BookingsRepo) mirror(op string, err error) {
	if err != nil {
		r.log.Error("failed to mirror booking store locally", map[string]any{
			"op":    op,
			"error": err.Error(),
		})
	}
}

func isDomainErr(err error) bool {
	return errors.Is(err, bookings.ErrNotFound) ||
		errors.Is(err, bookings.ErrAlreadyExists) ||
		errors.Is(err, bookings.ErrInvalidInput)
}
