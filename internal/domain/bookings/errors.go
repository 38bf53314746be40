package bookings

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrNotFound          = errors.New("booking not found")
	ErrAlreadyExists     = errors.New("booking already exists")
	ErrServiceTypeChange = errors.New("service type cannot change on edit")
	ErrInvalidImport     = errors.New("invalid import payload")
)

// ValidationError agrupa los errores del formulario por campo (nombre JSON -> regla).
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

// DegradedError lo devuelve un store cuando el backend remoto falló y la
// operación solo se aplicó sobre la copia local. El resultado que acompaña
// al error es válido.
type DegradedError struct {
	Op    string
	Cause error
}

func (e *DegradedError) Error() string {
	return fmt.Sprintf("store degraded on %s: %v", e.Op, e.Cause)
}

func (e *DegradedError) Unwrap() error { return e.Cause }

// Warning es el mensaje visible para el usuario cuando hubo degradación.
type Warning string

func warningFor(op string) Warning {
	switch op {
	case OpList:
		return "Failed to load bookings. Showing locally saved data."
	case OpCreate:
		return "Failed to add booking. Saved locally only."
	case OpUpdate:
		return "Failed to update booking. Saved locally only."
	case OpDelete:
		return "Failed to delete booking. Removed locally only."
	case OpImport:
		return "Failed to import bookings remotely. Saved locally only."
	default:
		return "Remote store unavailable. Using local data."
	}
}

const (
	OpList   = "list"
	OpGet    = "get"
	OpCreate = "create"
	OpUpdate = "update"
	OpDelete = "delete"
	OpImport = "import"
)
