package calendar

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"tucing-suites-calendar/internal/domain/bookings"

	"github.com/go-chi/chi/v5"
)

// Lister es lo que el calendario necesita del servicio de reservas.
type Lister interface {
	List(ctx context.Context, filter bookings.ListFilter) ([]bookings.Booking, bookings.Warning, error)
}

func RegisterRoutes(r chi.Router, svc Lister, now func() time.Time) {
	if now == nil {
		now = time.Now
	}
	r.Route("/calendar", func(cr chi.Router) {
		cr.Get("/{year}/{month}", monthHandler(svc, now))
		cr.Get("/days/{date}", dayHandler(svc))
	})
}

type monthResponse struct {
	MonthView
	Warning string `json:"warning,omitempty"`
}

type dayBooking struct {
	bookings.Booking
	Position int `json:"position"`
}

// Bookings es lo que entra en la celda; All trae además las ocultas ("+N more").
type dayResponse struct {
	Date     bookings.Date `json:"date"`
	Bookings []dayBooking  `json:"bookings"`
	Hidden   int           `json:"hidden"`
	All      []dayBooking  `json:"all"`
	Warning  string        `json:"warning,omitempty"`
}

// monthHandler godoc
// @Summary Vista de mes del calendario
// @Description Devuelve las celdas del mes (domingo primero) con hasta 3 reservas por día, su fila estable y la cantidad de reservas ocultas.
// @Tags calendar
// @Produce json
// @Param Authorization header string false "Bearer token de sesión"
// @Param year path int true "Año"
// @Param month path int true "Mes (1-12)"
// @Success 200 {object} monthResponse
// @Failure 400 {string} string "invalid month"
// @Failure 401 {string} string "unauthorized"
// @Router /calendar/{year}/{month} [get]
func monthHandler(svc Lister, now func() time.Time) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		year, errY := strconv.Atoi(chi.URLParam(r, "year"))
		month, errM := strconv.Atoi(chi.URLParam(r, "month"))
		if errY != nil || errM != nil {
			http.Error(w, "year and month must be numbers", http.StatusBadRequest)
			return
		}
		m, err := NewMonth(year, time.Month(month))
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		items, warn, err := svc.List(r.Context(), bookings.ListFilter{})
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		view := BuildMonth(m, items, bookings.DateOf(now()), nil)
		setWarning(w, warn)
		writeJSON(w, http.StatusOK, monthResponse{MonthView: view, Warning: string(warn)})
	}
}

// dayHandler godoc
// @Summary Reservas de un día
// @Description Reservas que ocupan la fecha, boarding primero y luego por fila. `bookings` se corta en 3 como la celda del mes; `hidden` cuenta las que quedaron fuera y `all` trae la lista completa.
// @Tags calendar
// @Produce json
// @Param Authorization header string false "Bearer token de sesión"
// @Param date path string true "Fecha YYYY-MM-DD"
// @Success 200 {object} dayResponse
// @Failure 400 {string} string "date must be YYYY-MM-DD"
// @Failure 401 {string} string "unauthorized"
// @Router /calendar/days/{date} [get]
func dayHandler(svc Lister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		date, err := bookings.ParseDate(chi.URLParam(r, "date"))
		if err != nil {
			http.Error(w, "date must be YYYY-MM-DD", http.StatusBadRequest)
			return
		}

		items, warn, err := svc.List(r.Context(), bookings.ListFilter{})
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		positions := AssignPositions(items)
		all := BookingsForDate(items, positions, date)
		visible, hidden := Truncate(all)

		setWarning(w, warn)
		writeJSON(w, http.StatusOK, dayResponse{
			Date:     date,
			Bookings: withPositions(visible, positions),
			Hidden:   hidden,
			All:      withPositions(all, positions),
			Warning:  string(warn),
		})
	}
}

func withPositions(items []bookings.Booking, positions map[string]int) []dayBooking {
	out := make([]dayBooking, 0, len(items))
	for _, b := range items {
		out = append(out, dayBooking{Booking: b, Position: positions[b.ID]})
	}
	return out
}

func setWarning(w http.ResponseWriter, warn bookings.Warning) {
	if warn != "" {
		w.Header().Set(bookings.WarningHeader, string(warn))
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
