package bookings

import (
	"context"
	"errors"
	"sort"
	"strings"

	"tucing-suites-calendar/internal/platform/logger"

	"github.com/google/uuid"
)

type Service struct {
	repo  Repository
	log   logger.Logger
	newID func() string
}

func NewService(repo Repository, log logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		repo:  repo,
		log:   log.With(map[string]any{"component": "bookings"}),
		newID: uuid.NewString,
	}
}

// List devuelve las reservas en el orden del store (orden de inserción).
func (s *Service) List(ctx context.Context, filter ListFilter) ([]Booking, Warning, error) {
	items, err := s.repo.List(ctx)
	warn, err := s.degraded(OpList, err)
	if err != nil {
		return nil, "", err
	}

	out := make([]Booking, 0, len(items))
	for _, b := range items {
		if filter.Match(b) {
			out = append(out, b)
		}
	}
	return out, warn, nil
}

// SortNewestFirst ordena por fecha de inicio descendente (vista de tabla).
func SortNewestFirst(items []Booking) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].StartDate.After(items[j].StartDate)
	})
}

func (s *Service) GetByID(ctx context.Context, id string) (Booking, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Booking{}, ErrInvalidInput
	}
	b, err := s.repo.GetByID(ctx, id)
	if _, err := s.degraded(OpGet, err); err != nil {
		return Booking{}, err
	}
	return b, nil
}

// Create valida el form y persiste. El id solo se genera si viene vacío.
func (s *Service) Create(ctx context.Context, f Form) (Booking, Warning, error) {
	f = f.Normalize()
	if err := f.Validate(); err != nil {
		return Booking{}, "", err
	}

	id := f.ID
	if id == "" {
		id = s.newID()
	}

	stored, err := s.repo.Create(ctx, f.Booking(id))
	warn, err := s.degraded(OpCreate, err)
	if err != nil {
		return Booking{}, "", err
	}

	s.log.Info("booking created", map[string]any{
		"booking_id":   stored.ID,
		"service_type": string(stored.ServiceType),
	})
	return stored, warn, nil
}

// Update reemplaza todos los campos salvo id y serviceType.
func (s *Service) Update(ctx context.Context, id string, f Form) (Booking, Warning, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Booking{}, "", ErrInvalidInput
	}

	current, err := s.GetByID(ctx, id)
	if err != nil {
		return Booking{}, "", err
	}

	f = f.Normalize()
	if f.ServiceType == "" {
		f.ServiceType = current.ServiceType
		if f.ServiceType == ServiceGrooming {
			f.EndDate = nil
		}
	}
	if f.ServiceType != current.ServiceType {
		return Booking{}, "", ErrServiceTypeChange
	}
	if err := f.Validate(); err != nil {
		return Booking{}, "", err
	}

	stored, err := s.repo.Update(ctx, f.Booking(current.ID))
	warn, err := s.degraded(OpUpdate, err)
	if err != nil {
		return Booking{}, "", err
	}

	s.log.Info("booking updated", map[string]any{"booking_id": stored.ID})
	return stored, warn, nil
}

// Delete es idempotente: borrar un id inexistente no es error.
func (s *Service) Delete(ctx context.Context, id string) (Warning, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", ErrInvalidInput
	}

	err := s.repo.Delete(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return "", nil
	}
	warn, err := s.degraded(OpDelete, err)
	if err != nil {
		return "", err
	}

	s.log.Info("booking deleted", map[string]any{"booking_id": id})
	return warn, nil
}

// degraded convierte un *DegradedError en warning: para la UI la operación fue exitosa.
func (s *Service) degraded(op string, err error) (Warning, error) {
	if err == nil {
		return "", nil
	}
	var de *DegradedError
	if errors.As(err, &de) {
		fields := map[string]any{"op": op}
		if de.Cause != nil {
			fields["error"] = de.Cause.Error()
		}
		s.log.Warn("remote store failed, applied to local copy", fields)
		return warningFor(op), nil
	}
	return "", err
}
