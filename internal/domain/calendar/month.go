package calendar

import (
	"fmt"
	"time"

	"tucing-suites-calendar/internal/domain/bookings"
)

// Month es el mes mostrado por el calendario.
type Month struct {
	Year  int        `json:"year"`
	Month time.Month `json:"month"`
}

func NewMonth(year int, month time.Month) (Month, error) {
	if month < time.January || month > time.December {
		return Month{}, fmt.Errorf("%w: month %d", ErrInvalidMonth, month)
	}
	if year < 1 || year > 9999 {
		return Month{}, fmt.Errorf("%w: year %d", ErrInvalidMonth, year)
	}
	return Month{Year: year, Month: month}, nil
}

func MonthOf(d bookings.Date) Month {
	return Month{Year: d.Year(), Month: d.Month()}
}

// Add mueve el mes (delta puede ser negativo). time.Date normaliza el desborde.
func (m Month) Add(delta int) Month {
	t := time.Date(m.Year, m.Month+time.Month(delta), 1, 0, 0, 0, 0, time.UTC)
	return Month{Year: t.Year(), Month: t.Month()}
}

func (m Month) Days() int {
	return time.Date(m.Year, m.Month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func (m Month) Contains(day int) bool { return day >= 1 && day <= m.Days() }

func (m Month) Date(day int) bookings.Date { return bookings.NewDate(m.Year, m.Month, day) }

func (m Month) First() bookings.Date { return m.Date(1) }

// String: "June 2024".
func (m Month) String() string {
	return fmt.Sprintf("%s %d", m.Month, m.Year)
}

// Encabezados de la grilla, semana empezando en domingo.
var Weekdays = []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

type CellBooking struct {
	ID          string               `json:"id"`
	CatName     string               `json:"catName"`
	ServiceType bookings.ServiceType `json:"serviceType"`
	Position    int                  `json:"position"`
}

type DayCell struct {
	Date           bookings.Date `json:"date"`
	Day            int           `json:"day"`
	IsToday        bool          `json:"isToday"`
	FirstSelected  bool          `json:"firstSelected"`
	InPreviewRange bool          `json:"inPreviewRange"`
	Bookings       []CellBooking `json:"bookings"`
	Hidden         int           `json:"hidden"`
}

// MonthView es lo que necesita un renderer para dibujar la grilla de un mes.
type MonthView struct {
	Year          int        `json:"year"`
	Month         time.Month `json:"month"`
	Name          string     `json:"name"`
	LeadingBlanks int        `json:"leadingBlanks"`
	Weekdays      []string   `json:"weekdays"`
	Days          []DayCell  `json:"days"`
}

// BuildMonth arma las celdas del mes. Las posiciones se calculan sobre el
// listado completo para que una reserva conserve su fila en todos sus días.
// sel puede ser nil (vista sin selección).
func BuildMonth(m Month, items []bookings.Booking, today bookings.Date, sel *State) MonthView {
	positions := AssignPositions(items)

	view := MonthView{
		Year:          m.Year,
		Month:         m.Month,
		Name:          m.String(),
		LeadingBlanks: int(m.First().Weekday()),
		Weekdays:      Weekdays,
		Days:          make([]DayCell, 0, m.Days()),
	}

	for day := 1; day <= m.Days(); day++ {
		date := m.Date(day)
		all := BookingsForDate(items, positions, date)
		visible, hidden := Truncate(all)

		cell := DayCell{
			Date:     date,
			Day:      day,
			IsToday:  date.Equal(today),
			Bookings: make([]CellBooking, 0, len(visible)),
			Hidden:   hidden,
		}
		if sel != nil {
			cell.FirstSelected = sel.First != nil && sel.First.Equal(date)
			cell.InPreviewRange = sel.InPreviewRange(date)
		}
		for _, b := range visible {
			cell.Bookings = append(cell.Bookings, CellBooking{
				ID:          b.ID,
				CatName:     b.CatName,
				ServiceType: b.ServiceType,
				Position:    positions[b.ID],
			})
		}
		view.Days = append(view.Days, cell)
	}
	return view
}
