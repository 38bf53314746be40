package calendar

import (
	"errors"
	"sync"
	"time"

	"tucing-suites-calendar/internal/domain/bookings"
	"tucing-suites-calendar/internal/platform/clock"
)

// DefaultDoubleClickWindow es la ventana para distinguir click de doble click.
const DefaultDoubleClickWindow = 250 * time.Millisecond

var (
	ErrDayOutOfRange = errors.New("day is outside the displayed month")
	ErrInvalidMonth  = errors.New("invalid month")
	ErrClosed        = errors.New("selection closed")
)

type Phase string

const (
	PhaseIdle               Phase = "idle"
	PhaseAwaitingSecondDate Phase = "awaiting_second_date"
)

type EventKind string

const (
	EventDoubleClick   EventKind = "double_click"
	EventRangeSelected EventKind = "range_selected"
	// EventFirstSelected avisa que quedó marcada la primera fecha del rango.
	EventFirstSelected EventKind = "first_selected"
)

type Event struct {
	Kind EventKind `json:"kind"`

	// DoubleClick / FirstSelected
	Date bookings.Date `json:"date,omitempty"`

	// RangeSelected (inclusivo, Start <= End)
	Start bookings.Date `json:"start,omitempty"`
	End   bookings.Date `json:"end,omitempty"`
}

// State es una foto inmutable de la máquina.
type State struct {
	Phase   Phase          `json:"phase"`
	Month   Month          `json:"month"`
	First   *bookings.Date `json:"firstSelectedDate,omitempty"`
	Hover   *bookings.Date `json:"hoverDate,omitempty"`
	Pending bool           `json:"pendingClick"`
}

// InPreviewRange indica si d cae entre la primera fecha y el hover (en cualquier orden).
func (s State) InPreviewRange(d bookings.Date) bool {
	if s.First == nil || s.Hover == nil {
		return false
	}
	start := bookings.MinDate(*s.First, *s.Hover)
	end := bookings.MaxDate(*s.First, *s.Hover)
	return !d.Before(start) && !d.After(end)
}

// Selection resuelve los gestos del calendario: un click arma un timer; un
// segundo click antes de que venza es doble click; si vence, el click cuenta
// como fecha de rango.
//
// Los eventos se emiten fuera del lock, así onEvent puede volver a llamar a
// la máquina.
type Selection struct {
	mu      sync.Mutex
	clock   clock.Clock
	window  time.Duration
	onEvent func(Event)

	month   Month
	phase   Phase
	first   *bookings.Date
	hover   *bookings.Date
	pending clock.Timer
	gen     uint64
	closed  bool
}

func NewSelection(clk clock.Clock, window time.Duration, month Month, onEvent func(Event)) *Selection {
	if clk == nil {
		clk = clock.NewRealClock()
	}
	if window <= 0 {
		window = DefaultDoubleClickWindow
	}
	if onEvent == nil {
		onEvent = func(Event) {}
	}
	return &Selection{
		clock:   clk,
		window:  window,
		onEvent: onEvent,
		month:   month,
		phase:   PhaseIdle,
	}
}

func (s *Selection) Click(day int) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	if !s.month.Contains(day) {
		s.mu.Unlock()
		return ErrDayOutOfRange
	}
	date := s.month.Date(day)

	// Segundo click dentro de la ventana: doble click sobre la fecha de este click.
	if s.pending != nil {
		s.pending.Stop()
		s.pending = nil
		s.gen++
		s.resetLocked()
		s.mu.Unlock()

		s.onEvent(Event{Kind: EventDoubleClick, Date: date})
		return nil
	}

	s.gen++
	gen := s.gen
	s.pending = s.clock.AfterFunc(s.window, func() { s.expire(gen, date) })
	s.mu.Unlock()
	return nil
}

// expire corre en la goroutine del timer. Un disparo viejo (gen distinto) se ignora.
func (s *Selection) expire(gen uint64, date bookings.Date) {
	s.mu.Lock()
	if gen != s.gen || s.pending == nil || s.closed {
		s.mu.Unlock()
		return
	}
	s.pending = nil

	var ev Event
	switch s.phase {
	case PhaseIdle:
		d := date
		s.first = &d
		s.phase = PhaseAwaitingSecondDate
		ev = Event{Kind: EventFirstSelected, Date: date}
	case PhaseAwaitingSecondDate:
		first := *s.first
		ev = Event{
			Kind:  EventRangeSelected,
			Start: bookings.MinDate(first, date),
			End:   bookings.MaxDate(first, date),
		}
		s.resetLocked()
	}
	s.mu.Unlock()

	s.onEvent(ev)
}

func (s *Selection) Hover(day int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.month.Contains(day) {
		return ErrDayOutOfRange
	}
	if s.phase != PhaseAwaitingSecondDate {
		return nil
	}
	d := s.month.Date(day)
	s.hover = &d
	return nil
}

func (s *Selection) Leave() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hover = nil
}

// Navigate cambia de mes y descarta cualquier selección en curso.
func (s *Selection) Navigate(delta int) Month {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopPendingLocked()
	s.resetLocked()
	s.month = s.month.Add(delta)
	return s.month
}

func (s *Selection) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := State{
		Phase:   s.phase,
		Month:   s.month,
		Pending: s.pending != nil,
	}
	if s.first != nil {
		d := *s.first
		st.First = &d
	}
	if s.hover != nil {
		d := *s.hover
		st.Hover = &d
	}
	return st
}

func (s *Selection) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopPendingLocked()
	s.closed = true
}

func (s *Selection) stopPendingLocked() {
	if s.pending != nil {
		s.pending.Stop()
		s.pending = nil
	}
	s.gen++
}

func (s *Selection) resetLocked() {
	s.phase = PhaseIdle
	s.first = nil
	s.hover = nil
}
