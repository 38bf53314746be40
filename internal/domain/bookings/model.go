package bookings

import (
	"fmt"
	"strings"
)

// ServiceType es la variante cerrada del servicio reservado.
// @Enum boarding, grooming
type ServiceType string

const (
	ServiceBoarding ServiceType = "boarding" // varios días, rango inclusivo
	ServiceGrooming ServiceType = "grooming" // un solo día
)

func ParseServiceType(s string) (ServiceType, error) {
	t := ServiceType(strings.ToLower(strings.TrimSpace(s)))
	if !t.Valid() {
		return "", fmt.Errorf("unknown service type %q", s)
	}
	return t, nil
}

func (t ServiceType) Valid() bool {
	switch t {
	case ServiceBoarding, ServiceGrooming:
		return true
	default:
		return false
	}
}

// Label es el nombre visible (badge de la tabla).
func (t ServiceType) Label() string {
	switch t {
	case ServiceBoarding:
		return "Boarding"
	case ServiceGrooming:
		return "Grooming"
	default:
		return string(t)
	}
}

// Booking es la única entidad persistida.
// Los tags JSON son el formato del blob local y del export/import.
type Booking struct {
	ID          string      `json:"id"`
	ServiceType ServiceType `json:"serviceType"`

	CatName   string `json:"catName"`
	OwnerName string `json:"ownerName"`

	StartDate Date  `json:"startDate"`
	EndDate   *Date `json:"endDate,omitempty"` // solo boarding

	Notes         string   `json:"notes,omitempty"`
	TotalFees     *float64 `json:"totalFees,omitempty"`
	ContactNumber string   `json:"contactNumber,omitempty"`
}

// LastDate es el último día ocupado por la reserva.
func (b Booking) LastDate() Date {
	switch b.ServiceType {
	case ServiceBoarding:
		if b.EndDate != nil {
			return *b.EndDate
		}
		return b.StartDate
	case ServiceGrooming:
		return b.StartDate
	default:
		return b.StartDate
	}
}

// Covers indica si la reserva ocupa el día d.
// Boarding: start <= d <= end. Grooming: start == d.
func (b Booking) Covers(d Date) bool {
	switch b.ServiceType {
	case ServiceBoarding:
		if b.EndDate == nil {
			return b.StartDate.Equal(d)
		}
		return !d.Before(b.StartDate) && !d.After(*b.EndDate)
	case ServiceGrooming:
		return b.StartDate.Equal(d)
	default:
		return false
	}
}

// Nights devuelve la cantidad de noches de un boarding (0 para grooming).
func (b Booking) Nights() int {
	if b.ServiceType != ServiceBoarding || b.EndDate == nil {
		return 0
	}
	return int(b.EndDate.Time().Sub(b.StartDate.Time()).Hours() / 24)
}

// ListFilter filtra el listado (tabs de la tabla: all / boarding / grooming).
type ListFilter struct {
	ServiceType *ServiceType
}

func (f ListFilter) Match(b Booking) bool {
	if f.ServiceType == nil {
		return true
	}
	return b.ServiceType == *f.ServiceType
}

// FormatFees replica el formato de la tabla: "RM 12.50" o "-".
func FormatFees(fees *float64) string {
	if fees == nil {
		return "-"
	}
	return fmt.Sprintf("RM %.2f", *fees)
}
