package calendar

import (
	"sort"

	"tucing-suites-calendar/internal/domain/bookings"
)

// MaxBookingsPerDay es lo que entra en una celda del calendario.
const MaxBookingsPerDay = 3

// AssignPositions da a cada reserva una fila estable: primero los boarding en
// orden de listado, después los grooming. Función pura.
func AssignPositions(items []bookings.Booking) map[string]int {
	positions := make(map[string]int, len(items))
	next := 0

	assign := func(st bookings.ServiceType) {
		for _, b := range items {
			if b.ServiceType != st {
				continue
			}
			if _, ok := positions[b.ID]; ok {
				continue
			}
			positions[b.ID] = next
			next++
		}
	}
	assign(bookings.ServiceBoarding)
	assign(bookings.ServiceGrooming)

	return positions
}

// BookingsForDate devuelve las reservas que ocupan date, boarding primero y
// luego por posición. Un id sin posición cuenta como 0.
func BookingsForDate(items []bookings.Booking, positions map[string]int, date bookings.Date) []bookings.Booking {
	out := make([]bookings.Booking, 0)
	for _, b := range items {
		if b.Covers(date) {
			out = append(out, b)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		bi := out[i].ServiceType == bookings.ServiceBoarding
		bj := out[j].ServiceType == bookings.ServiceBoarding
		if bi != bj {
			return bi
		}
		return positions[out[i].ID] < positions[out[j].ID]
	})
	return out
}

// Truncate corta a MaxBookingsPerDay y devuelve cuántas quedaron ocultas.
func Truncate(items []bookings.Booking) ([]bookings.Booking, int) {
	if len(items) <= MaxBookingsPerDay {
		return items, 0
	}
	return items[:MaxBookingsPerDay], len(items) - MaxBookingsPerDay
}
