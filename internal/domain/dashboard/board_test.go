package dashboard_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"tucing-suites-calendar/internal/adapters/storage/memory"
	"tucing-suites-calendar/internal/domain/bookings"
	"tucing-suites-calendar/internal/domain/calendar"
	"tucing-suites-calendar/internal/domain/dashboard"
	"tucing-suites-calendar/internal/platform/clock"
	"tucing-suites-calendar/internal/ports/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type inbox struct {
	mu   sync.Mutex
	msgs []dashboard.Message
}

func (in *inbox) send(m dashboard.Message) {
	in.mu.Lock()
	defer in.mu.Unlock()
	in.msgs = append(in.msgs, m)
}

func (in *inbox) reset() {
	in.mu.Lock()
	defer in.mu.Unlock()
	in.msgs = nil
}

// last devuelve el último mensaje del tipo pedido.
func (in *inbox) last(t dashboard.MessageType) (dashboard.Message, bool) {
	in.mu.Lock()
	defer in.mu.Unlock()
	for i := len(in.msgs) - 1; i >= 0; i-- {
		if in.msgs[i].Type == t {
			return in.msgs[i], true
		}
	}
	return dashboard.Message{}, false
}

type gestures struct {
	mu    sync.Mutex
	kinds []string
}

func (g *gestures) IncGesture(kind string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.kinds = append(g.kinds, kind)
}
func (g *gestures) DashboardConnected()    {}
func (g *gestures) DashboardDisconnected() {}

type fixture struct {
	board *dashboard.Board
	clk   *clock.MockClock
	box   *inbox
	svc   *bookings.Service
	rec   *gestures
}

var staff = auth.Claims{UserID: "staff"}

func newFixture(t *testing.T, seed ...bookings.Booking) fixture {
	t.Helper()
	clk := clock.NewMockClock(time.Date(2024, time.June, 1, 9, 0, 0, 0, time.UTC))
	box := &inbox{}
	svc := bookings.NewService(memory.NewBookingsRepo(seed...), nil)
	rec := &gestures{}

	b, err := dashboard.NewBoard(staff, dashboard.Deps{
		Bookings: svc,
		Clock:    clk,
		Window:   calendar.DefaultDoubleClickWindow,
		Metrics:  rec,
	}, box.send)
	require.NoError(t, err)
	t.Cleanup(b.Close)

	return fixture{board: b, clk: clk, box: box, svc: svc, rec: rec}
}

func (f fixture) do(t *testing.T, cmd dashboard.Command) {
	t.Helper()
	require.NoError(t, f.board.Handle(context.Background(), cmd))
}

func date(day int) bookings.Date { return bookings.NewDate(2024, time.June, day) }

func TestNewBoard_RequiresClaims(t *testing.T) {
	_, err := dashboard.NewBoard(auth.Claims{}, dashboard.Deps{Bookings: bookings.NewService(memory.NewBookingsRepo(), nil)}, nil)
	assert.ErrorIs(t, err, dashboard.ErrUnauthenticated)
}

func TestBoard_StartPushesStateAndMonth(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.board.Start(context.Background()))
	assert.Equal(t, "staff", f.board.Claims().UserID)

	st, ok := f.box.last(dashboard.MsgState)
	require.True(t, ok)
	assert.Equal(t, calendar.PhaseIdle, st.State.Phase)

	m, ok := f.box.last(dashboard.MsgMonth)
	require.True(t, ok)
	assert.Equal(t, "June 2024", m.Month.Name)
	assert.True(t, m.Month.Days[0].IsToday)
}

func TestBoard_RangeOpensBoardingDraft(t *testing.T) {
	f := newFixture(t)

	f.do(t, dashboard.Command{Type: dashboard.CmdClick, Day: 10})
	f.clk.Add(300 * time.Millisecond)
	assert.Equal(t, calendar.PhaseAwaitingSecondDate, f.board.State().Phase)

	f.do(t, dashboard.Command{Type: dashboard.CmdHover, Day: 7})
	st, _ := f.box.last(dashboard.MsgState)
	require.NotNil(t, st.State.Hover)
	assert.True(t, st.State.InPreviewRange(date(8)))

	f.do(t, dashboard.Command{Type: dashboard.CmdClick, Day: 5})
	f.clk.Add(300 * time.Millisecond)

	d := f.board.Draft()
	require.NotNil(t, d)
	assert.Equal(t, dashboard.DraftCreate, d.Mode)
	assert.Equal(t, bookings.ServiceBoarding, d.Preselected)
	assert.Equal(t, "2024-06-05", d.Form.StartDate.String())
	assert.Equal(t, "2024-06-10", d.Form.EndDate.String())
	assert.Equal(t, calendar.PhaseIdle, f.board.State().Phase)

	assert.Equal(t, []string{"first_selected", "range_selected"}, f.rec.kinds)
}

func TestBoard_DoubleClickOpensGroomingDraft(t *testing.T) {
	f := newFixture(t)

	f.do(t, dashboard.Command{Type: dashboard.CmdClick, Day: 5})
	f.clk.Add(100 * time.Millisecond)
	f.do(t, dashboard.Command{Type: dashboard.CmdClick, Day: 10})

	d := f.board.Draft()
	require.NotNil(t, d)
	assert.Equal(t, bookings.ServiceGrooming, d.Preselected)
	assert.Equal(t, "2024-06-10", d.Form.StartDate.String())
	assert.Nil(t, d.Form.EndDate)

	// ningún timer quedó armado: no aparece un rango después
	f.clk.Add(time.Second)
	assert.Equal(t, calendar.PhaseIdle, f.board.State().Phase)
	assert.Equal(t, []string{"double_click"}, f.rec.kinds)
}

func TestBoard_AddDefaultsToToday(t *testing.T) {
	f := newFixture(t)

	f.do(t, dashboard.Command{Type: dashboard.CmdAdd})
	d := f.board.Draft()
	require.NotNil(t, d)
	assert.Empty(t, d.Preselected)
	assert.Equal(t, bookings.ServiceGrooming, d.Form.ServiceType)
	assert.Equal(t, "2024-06-01", d.Form.StartDate.String())

	f.do(t, dashboard.Command{Type: dashboard.CmdAdd, Date: "2024-06-20"})
	assert.Equal(t, "2024-06-20", f.board.Draft().Form.StartDate.String())

	f.do(t, dashboard.Command{Type: dashboard.CmdCancel})
	assert.Nil(t, f.board.Draft())
	closed, _ := f.box.last(dashboard.MsgDraft)
	assert.Nil(t, closed.Draft)

	err := f.board.Handle(context.Background(), dashboard.Command{Type: dashboard.CmdAdd, Date: "20/06/2024"})
	assert.ErrorIs(t, err, bookings.ErrInvalidDate)
}

func TestBoard_SubmitCreatesAndPushesMonth(t *testing.T) {
	f := newFixture(t)

	f.do(t, dashboard.Command{Type: dashboard.CmdClick, Day: 1})
	f.clk.Add(300 * time.Millisecond)
	f.do(t, dashboard.Command{Type: dashboard.CmdClick, Day: 3})
	f.clk.Add(300 * time.Millisecond)

	form := f.board.Draft().Form
	form.CatName = "Milo"
	form.OwnerName = "Aisyah"
	f.box.reset()
	f.do(t, dashboard.Command{Type: dashboard.CmdSubmit, Form: &form})

	saved, ok := f.box.last(dashboard.MsgSaved)
	require.True(t, ok)
	assert.Equal(t, "Milo", saved.Booking.CatName)
	assert.NotEmpty(t, saved.Booking.ID)
	assert.Nil(t, f.board.Draft())

	m, ok := f.box.last(dashboard.MsgMonth)
	require.True(t, ok)
	for _, day := range []int{1, 2, 3} {
		require.Len(t, m.Month.Days[day-1].Bookings, 1, "day %d", day)
		assert.Equal(t, "Milo", m.Month.Days[day-1].Bookings[0].CatName)
	}
	assert.Empty(t, m.Month.Days[3].Bookings)
}

func TestBoard_SubmitValidationKeepsDraft(t *testing.T) {
	f := newFixture(t)
	f.do(t, dashboard.Command{Type: dashboard.CmdAdd})

	form := f.board.Draft().Form
	err := f.board.Handle(context.Background(), dashboard.Command{Type: dashboard.CmdSubmit, Form: &form})
	require.Error(t, err)
	assert.NotNil(t, f.board.Draft())

	msg := dashboard.ErrorMessage(err)
	assert.Equal(t, dashboard.MsgError, msg.Type)
	assert.Equal(t, "required", msg.Fields["catName"])

	items, _, err := f.svc.List(context.Background(), bookings.ListFilter{})
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestBoard_EditUpdatesAndRejectsTypeChange(t *testing.T) {
	end := date(3)
	milo := bookings.Booking{
		ID: "b-milo", ServiceType: bookings.ServiceBoarding, CatName: "Milo", OwnerName: "Aisyah",
		StartDate: date(1), EndDate: &end,
	}
	f := newFixture(t, milo)

	f.do(t, dashboard.Command{Type: dashboard.CmdEdit, ID: "b-milo"})
	d := f.board.Draft()
	require.NotNil(t, d)
	assert.Equal(t, dashboard.DraftEdit, d.Mode)
	assert.Equal(t, "b-milo", d.BookingID)

	form := d.Form
	form.ServiceType = bookings.ServiceGrooming
	err := f.board.Handle(context.Background(), dashboard.Command{Type: dashboard.CmdSubmit, Form: &form})
	assert.ErrorIs(t, err, bookings.ErrServiceTypeChange)

	form = d.Form
	form.Notes = "likes tuna"
	f.do(t, dashboard.Command{Type: dashboard.CmdSubmit, Form: &form})

	got, err := f.svc.GetByID(context.Background(), "b-milo")
	require.NoError(t, err)
	assert.Equal(t, "likes tuna", got.Notes)

	err = f.board.Handle(context.Background(), dashboard.Command{Type: dashboard.CmdEdit, ID: "ghost"})
	assert.ErrorIs(t, err, bookings.ErrNotFound)
}

func TestBoard_DeleteIsIdempotent(t *testing.T) {
	luna := bookings.Booking{ID: "g-luna", ServiceType: bookings.ServiceGrooming, CatName: "Luna", OwnerName: "F", StartDate: date(2)}
	f := newFixture(t, luna)

	f.do(t, dashboard.Command{Type: dashboard.CmdEdit, ID: "g-luna"})
	f.do(t, dashboard.Command{Type: dashboard.CmdDelete, ID: "g-luna"})

	del, ok := f.box.last(dashboard.MsgDeleted)
	require.True(t, ok)
	assert.Equal(t, "g-luna", del.Deleted)
	assert.Nil(t, f.board.Draft())

	f.do(t, dashboard.Command{Type: dashboard.CmdDelete, ID: "g-luna"})
	err := f.board.Handle(context.Background(), dashboard.Command{Type: dashboard.CmdDelete})
	assert.ErrorIs(t, err, dashboard.ErrMissingID)
}

func TestBoard_NavigateResetsSelection(t *testing.T) {
	f := newFixture(t)

	f.do(t, dashboard.Command{Type: dashboard.CmdClick, Day: 10})
	f.do(t, dashboard.Command{Type: dashboard.CmdNavigate, Delta: 1})
	f.clk.Add(time.Second)

	st := f.board.State()
	assert.Equal(t, calendar.PhaseIdle, st.Phase)
	assert.Nil(t, st.First)
	assert.Equal(t, time.July, st.Month.Month)

	m, ok := f.box.last(dashboard.MsgMonth)
	require.True(t, ok)
	assert.Equal(t, "July 2024", m.Month.Name)
	assert.Empty(t, f.rec.kinds)
}

func TestBoard_CommandErrors(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	assert.ErrorIs(t, f.board.Handle(ctx, dashboard.Command{Type: "dance"}), dashboard.ErrUnknownCommand)
	assert.ErrorIs(t, f.board.Handle(ctx, dashboard.Command{Type: dashboard.CmdClick, Day: 31}), calendar.ErrDayOutOfRange)
	assert.ErrorIs(t, f.board.Handle(ctx, dashboard.Command{Type: dashboard.CmdSubmit}), dashboard.ErrMissingForm)

	msg := dashboard.ErrorMessage(dashboard.ErrUnknownCommand)
	assert.Equal(t, "unknown command", msg.Error)
}
