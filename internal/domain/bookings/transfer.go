package bookings

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
)

// EncodeSnapshot serializa el listado en el formato persistido (array JSON, indentado a 2 espacios).
func EncodeSnapshot(items []Booking) ([]byte, error) {
	if items == nil {
		items = []Booking{}
	}
	return json.MarshalIndent(items, "", "  ")
}

// DecodeSnapshot parsea el formato persistido. Vacío o null es un listado vacío.
func DecodeSnapshot(data []byte) ([]Booking, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return []Booking{}, nil
	}

	var items []Booking
	if err := json.Unmarshal(trimmed, &items); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidImport, err)
	}
	if items == nil {
		items = []Booking{}
	}
	return items, nil
}

// Export devuelve todas las reservas en el formato persistido.
func (s *Service) Export(ctx context.Context) ([]byte, Warning, error) {
	items, warn, err := s.List(ctx, ListFilter{})
	if err != nil {
		return nil, "", err
	}
	data, err := EncodeSnapshot(items)
	if err != nil {
		return nil, "", err
	}
	return data, warn, nil
}

// Import valida todo el payload antes de tocar el store: o entra completo o no entra nada.
func (s *Service) Import(ctx context.Context, data []byte) (int, Warning, error) {
	items, err := DecodeSnapshot(data)
	if err != nil {
		return 0, "", err
	}

	seen := make(map[string]struct{}, len(items))
	clean := make([]Booking, 0, len(items))
	for i, b := range items {
		f := FormFromBooking(b).Normalize()
		if err := f.Validate(); err != nil {
			return 0, "", fmt.Errorf("%w: record %d: %v", ErrInvalidImport, i, err)
		}

		id := f.ID
		if id == "" {
			id = s.newID()
		}
		if _, dup := seen[id]; dup {
			return 0, "", fmt.Errorf("%w: duplicate id %q", ErrInvalidImport, id)
		}
		seen[id] = struct{}{}

		clean = append(clean, f.Booking(id))
	}

	err = s.repo.ReplaceAll(ctx, clean)
	warn, err := s.degraded(OpImport, err)
	if err != nil {
		return 0, "", err
	}

	s.log.Info("bookings imported", map[string]any{"count": len(clean)})
	return len(clean), warn, nil
}
