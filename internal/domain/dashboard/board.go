package dashboard

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"tucing-suites-calendar/internal/domain/bookings"
	"tucing-suites-calendar/internal/domain/calendar"
	"tucing-suites-calendar/internal/platform/clock"
	"tucing-suites-calendar/internal/platform/logger"
	"tucing-suites-calendar/internal/ports/auth"
)

var (
	ErrUnauthenticated = errors.New("dashboard requires an authenticated session")
	ErrUnknownCommand  = errors.New("unknown command")
	ErrMissingForm     = errors.New("submit requires a form")
	ErrMissingID       = errors.New("command requires an id")
)

// BookingService es lo que el tablero usa de bookings.Service.
type BookingService interface {
	List(ctx context.Context, filter bookings.ListFilter) ([]bookings.Booking, bookings.Warning, error)
	GetByID(ctx context.Context, id string) (bookings.Booking, error)
	Create(ctx context.Context, f bookings.Form) (bookings.Booking, bookings.Warning, error)
	Update(ctx context.Context, id string, f bookings.Form) (bookings.Booking, bookings.Warning, error)
	Delete(ctx context.Context, id string) (bookings.Warning, error)
}

// Recorder recibe métricas del tablero (metrics.Metrics lo implementa).
type Recorder interface {
	IncGesture(kind string)
	DashboardConnected()
	DashboardDisconnected()
}

type Deps struct {
	Bookings BookingService
	Clock    clock.Clock
	Window   time.Duration
	Log      logger.Logger
	Metrics  Recorder
}

type CommandType string

const (
	CmdClick    CommandType = "click"
	CmdHover    CommandType = "hover"
	CmdLeave    CommandType = "leave"
	CmdNavigate CommandType = "navigate"
	CmdAdd      CommandType = "add"
	CmdEdit     CommandType = "edit"
	CmdCancel   CommandType = "cancel"
	CmdSubmit   CommandType = "submit"
	CmdDelete   CommandType = "delete"
	CmdRefresh  CommandType = "refresh"
)

type Command struct {
	Type  CommandType    `json:"type"`
	Day   int            `json:"day,omitempty"`
	Delta int            `json:"delta,omitempty"`
	Date  string         `json:"date,omitempty"`
	ID    string         `json:"id,omitempty"`
	Form  *bookings.Form `json:"form,omitempty"`
}

type MessageType string

const (
	MsgState   MessageType = "state"
	MsgDraft   MessageType = "draft"
	MsgSaved   MessageType = "saved"
	MsgDeleted MessageType = "deleted"
	MsgMonth   MessageType = "month"
	MsgWarning MessageType = "warning"
	MsgError   MessageType = "error"
)

// Message es lo que el servidor empuja al cliente. Un "draft" sin Draft
// significa que el formulario se cerró.
type Message struct {
	Type    MessageType         `json:"type"`
	State   *calendar.State     `json:"state,omitempty"`
	Draft   *Draft              `json:"draft,omitempty"`
	Booking *bookings.Booking   `json:"booking,omitempty"`
	Deleted string              `json:"deleted,omitempty"`
	Month   *calendar.MonthView `json:"month,omitempty"`
	Warning string              `json:"warning,omitempty"`
	Error   string              `json:"error,omitempty"`
	Fields  map[string]string   `json:"fields,omitempty"`
}

type DraftMode string

const (
	DraftCreate DraftMode = "create"
	DraftEdit   DraftMode = "edit"
)

// Draft es el formulario abierto. Preselected vacío: el cliente muestra grooming por defecto.
type Draft struct {
	Mode        DraftMode            `json:"mode"`
	BookingID   string               `json:"bookingId,omitempty"`
	Preselected bookings.ServiceType `json:"preselectedServiceType,omitempty"`
	Form        bookings.Form        `json:"form"`
}

// Board coordina la selección de un cliente con el servicio de reservas.
// Los eventos de la selección llegan desde la goroutine del timer, por eso
// send tiene que ser seguro para uso concurrente.
type Board struct {
	claims auth.Claims
	svc    BookingService
	clk    clock.Clock
	log    logger.Logger
	rec    Recorder
	send   func(Message)
	sel    *calendar.Selection

	mu    sync.Mutex
	draft *Draft
}

func NewBoard(claims auth.Claims, deps Deps, send func(Message)) (*Board, error) {
	if claims.Empty() {
		return nil, ErrUnauthenticated
	}
	if deps.Bookings == nil {
		return nil, errors.New("dashboard: bookings service is required")
	}
	if send == nil {
		send = func(Message) {}
	}
	clk := deps.Clock
	if clk == nil {
		clk = clock.NewRealClock()
	}
	log := deps.Log
	if log == nil {
		log = logger.Nop()
	}

	b := &Board{
		claims: claims,
		svc:    deps.Bookings,
		clk:    clk,
		log:    log.With(map[string]any{"component": "dashboard", "user_id": claims.UserID}),
		rec:    deps.Metrics,
		send:   send,
	}
	b.sel = calendar.NewSelection(clk, deps.Window, calendar.MonthOf(b.today()), b.onSelection)
	return b, nil
}

func (b *Board) Claims() auth.Claims { return b.claims }

func (b *Board) State() calendar.State { return b.sel.Snapshot() }

func (b *Board) Draft() *Draft {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.draft == nil {
		return nil
	}
	d := *b.draft
	return &d
}

// Start empuja el estado inicial: selección y mes actual.
func (b *Board) Start(ctx context.Context) error {
	b.pushState()
	return b.pushMonth(ctx)
}

func (b *Board) Close() {
	b.sel.Close()
}

// Handle aplica un comando del cliente. El error vuelve al transporte, que lo
// convierte en un mensaje "error" con ErrorMessage.
func (b *Board) Handle(ctx context.Context, cmd Command) error {
	switch cmd.Type {
	case CmdClick:
		if err := b.sel.Click(cmd.Day); err != nil {
			return err
		}
		b.pushState()
		return nil

	case CmdHover:
		if err := b.sel.Hover(cmd.Day); err != nil {
			return err
		}
		b.pushState()
		return nil

	case CmdLeave:
		b.sel.Leave()
		b.pushState()
		return nil

	case CmdNavigate:
		b.sel.Navigate(cmd.Delta)
		b.pushState()
		return b.pushMonth(ctx)

	case CmdAdd:
		start := b.today()
		if strings.TrimSpace(cmd.Date) != "" {
			d, err := bookings.ParseDate(cmd.Date)
			if err != nil {
				return err
			}
			start = d
		}
		b.openDraft(&Draft{
			Mode: DraftCreate,
			Form: bookings.Form{ServiceType: bookings.ServiceGrooming, StartDate: &start},
		})
		return nil

	case CmdEdit:
		if cmd.ID == "" {
			return ErrMissingID
		}
		existing, err := b.svc.GetByID(ctx, cmd.ID)
		if err != nil {
			return err
		}
		b.openDraft(&Draft{
			Mode:      DraftEdit,
			BookingID: existing.ID,
			Form:      bookings.FormFromBooking(existing),
		})
		return nil

	case CmdCancel:
		b.openDraft(nil)
		return nil

	case CmdSubmit:
		return b.submit(ctx, cmd.Form)

	case CmdDelete:
		return b.delete(ctx, cmd.ID)

	case CmdRefresh:
		return b.pushMonth(ctx)
	}
	return ErrUnknownCommand
}

func (b *Board) submit(ctx context.Context, form *bookings.Form) error {
	if form == nil {
		return ErrMissingForm
	}

	b.mu.Lock()
	draft := b.draft
	b.mu.Unlock()

	var (
		saved bookings.Booking
		warn  bookings.Warning
		err   error
	)
	if draft != nil && draft.Mode == DraftEdit {
		saved, warn, err = b.svc.Update(ctx, draft.BookingID, *form)
	} else {
		saved, warn, err = b.svc.Create(ctx, *form)
	}
	if err != nil {
		return err
	}

	b.openDraft(nil)
	b.send(Message{Type: MsgSaved, Booking: &saved})
	b.pushWarning(warn)
	return b.pushMonth(ctx)
}

func (b *Board) delete(ctx context.Context, id string) error {
	if id == "" {
		return ErrMissingID
	}
	warn, err := b.svc.Delete(ctx, id)
	if err != nil {
		return err
	}

	b.mu.Lock()
	closeDraft := b.draft != nil && b.draft.BookingID == id
	b.mu.Unlock()
	if closeDraft {
		b.openDraft(nil)
	}

	b.send(Message{Type: MsgDeleted, Deleted: id})
	b.pushWarning(warn)
	return b.pushMonth(ctx)
}

// onSelection corre fuera del lock de la selección; puede venir del timer.
func (b *Board) onSelection(ev calendar.Event) {
	if b.rec != nil {
		b.rec.IncGesture(string(ev.Kind))
	}

	switch ev.Kind {
	case calendar.EventRangeSelected:
		start, end := ev.Start, ev.End
		b.openDraft(&Draft{
			Mode:        DraftCreate,
			Preselected: bookings.ServiceBoarding,
			Form:        bookings.Form{ServiceType: bookings.ServiceBoarding, StartDate: &start, EndDate: &end},
		})
	case calendar.EventDoubleClick:
		date := ev.Date
		b.openDraft(&Draft{
			Mode:        DraftCreate,
			Preselected: bookings.ServiceGrooming,
			Form:        bookings.Form{ServiceType: bookings.ServiceGrooming, StartDate: &date},
		})
	}

	b.log.Debug("selection event", map[string]any{"kind": string(ev.Kind)})
	b.pushState()
}

func (b *Board) openDraft(d *Draft) {
	b.mu.Lock()
	b.draft = d
	b.mu.Unlock()

	var out *Draft
	if d != nil {
		cp := *d
		out = &cp
	}
	b.send(Message{Type: MsgDraft, Draft: out})
}

func (b *Board) pushState() {
	st := b.sel.Snapshot()
	b.send(Message{Type: MsgState, State: &st})
}

func (b *Board) pushMonth(ctx context.Context) error {
	items, warn, err := b.svc.List(ctx, bookings.ListFilter{})
	if err != nil {
		return err
	}
	st := b.sel.Snapshot()
	view := calendar.BuildMonth(st.Month, items, b.today(), &st)
	b.send(Message{Type: MsgMonth, Month: &view})
	b.pushWarning(warn)
	return nil
}

func (b *Board) pushWarning(warn bookings.Warning) {
	if warn != "" {
		b.send(Message{Type: MsgWarning, Warning: string(warn)})
	}
}

func (b *Board) today() bookings.Date {
	return bookings.DateOf(b.clk.Now())
}

// ErrorMessage traduce un error de Handle al mensaje que ve el cliente.
func ErrorMessage(err error) Message {
	var verr *bookings.ValidationError
	if errors.As(err, &verr) {
		return Message{Type: MsgError, Error: "validation failed", Fields: verr.Fields}
	}
	switch {
	case errors.Is(err, bookings.ErrNotFound),
		errors.Is(err, bookings.ErrServiceTypeChange),
		errors.Is(err, bookings.ErrAlreadyExists),
		errors.Is(err, bookings.ErrInvalidInput),
		errors.Is(err, bookings.ErrInvalidDate),
		errors.Is(err, calendar.ErrDayOutOfRange),
		errors.Is(err, ErrUnknownCommand),
		errors.Is(err, ErrMissingForm),
		errors.Is(err, ErrMissingID):
		return Message{Type: MsgError, Error: err.Error()}
	}
	return Message{Type: MsgError, Error: "internal error"}
}
