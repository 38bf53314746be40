package bookings

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// -------------------------
// Repo mock (testify)
// -------------------------

type mockRepo struct {
	mock.Mock
}

func (m *mockRepo) List(ctx context.Context) ([]Booking, error) {
	args := m.Called(ctx)
	items, _ := args.Get(0).([]Booking)
	return items, args.Error(1)
}

func (m *mockRepo) GetByID(ctx context.Context, id string) (Booking, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(Booking), args.Error(1)
}

func (m *mockRepo) Create(ctx context.Context, b Booking) (Booking, error) {
	args := m.Called(ctx, b)
	if fn, ok := args.Get(0).(func(context.Context, Booking) Booking); ok {
		return fn(ctx, b), args.Error(1)
	}
	return args.Get(0).(Booking), args.Error(1)
}

func (m *mockRepo) Update(ctx context.Context, b Booking) (Booking, error) {
	args := m.Called(ctx, b)
	if fn, ok := args.Get(0).(func(context.Context, Booking) Booking); ok {
		return fn(ctx, b), args.Error(1)
	}
	return args.Get(0).(Booking), args.Error(1)
}

func (m *mockRepo) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockRepo) ReplaceAll(ctx context.Context, items []Booking) error {
	return m.Called(ctx, items).Error(0)
}

func newTestService(repo Repository) *Service {
	svc := NewService(repo, nil)
	svc.newID = func() string { return "fixed-id" }
	return svc
}

var errRemoteDown = errors.New("remote: connection refused")

func TestService_Create_MintsIDOnlyWhenAbsent(t *testing.T) {
	ctx := context.Background()
	repo := &mockRepo{}
	repo.On("Create", ctx, mock.AnythingOfType("bookings.Booking")).
		Return(func(_ context.Context, b Booking) Booking { return b }, nil)
	svc := newTestService(repo)

	minted, warn, err := svc.Create(ctx, validBoardingForm())
	require.NoError(t, err)
	assert.Empty(t, warn)
	assert.Equal(t, "fixed-id", minted.ID)

	f := validBoardingForm()
	f.ID = "client-id"
	kept, _, err := svc.Create(ctx, f)
	require.NoError(t, err)
	assert.Equal(t, "client-id", kept.ID)

	repo.AssertNumberOfCalls(t, "Create", 2)
}

func TestService_Create_InvalidNeverReachesStore(t *testing.T) {
	repo := &mockRepo{}
	svc := newTestService(repo)

	f := validBoardingForm()
	f.OwnerName = ""

	_, _, err := svc.Create(context.Background(), f)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestService_Create_DegradedBecomesWarning(t *testing.T) {
	ctx := context.Background()
	repo := &mockRepo{}
	repo.On("Create", ctx, mock.Anything).
		Return(func(_ context.Context, b Booking) Booking { return b }, &DegradedError{Op: OpCreate, Cause: errRemoteDown})
	svc := newTestService(repo)

	b, warn, err := svc.Create(ctx, validBoardingForm())
	require.NoError(t, err)
	assert.Equal(t, "fixed-id", b.ID)
	assert.Equal(t, warningFor(OpCreate), warn)
}

func TestService_Create_PlainStoreErrorFails(t *testing.T) {
	ctx := context.Background()
	repo := &mockRepo{}
	repo.On("Create", ctx, mock.Anything).Return(Booking{}, errRemoteDown)
	svc := newTestService(repo)

	_, warn, err := svc.Create(ctx, validBoardingForm())
	assert.ErrorIs(t, err, errRemoteDown)
	assert.Empty(t, warn)
}

func TestService_Update_KeepsIDAndServiceType(t *testing.T) {
	ctx := context.Background()
	current := validBoardingForm().Booking("b-1")

	repo := &mockRepo{}
	repo.On("GetByID", ctx, "b-1").Return(current, nil)
	repo.On("Update", ctx, mock.MatchedBy(func(b Booking) bool {
		return b.ID == "b-1" && b.ServiceType == ServiceBoarding && b.CatName == "Milo II"
	})).Return(func(_ context.Context, b Booking) Booking { return b }, nil)
	svc := newTestService(repo)

	f := FormFromBooking(current)
	f.ID = "someone-else"
	f.ServiceType = ""
	f.CatName = "Milo II"

	updated, _, err := svc.Update(ctx, "b-1", f)
	require.NoError(t, err)
	assert.Equal(t, "b-1", updated.ID)
	assert.Equal(t, "Milo II", updated.CatName)
	repo.AssertExpectations(t)
}

func TestService_Update_RejectsServiceTypeChange(t *testing.T) {
	ctx := context.Background()
	current := validBoardingForm().Booking("b-1")

	repo := &mockRepo{}
	repo.On("GetByID", ctx, "b-1").Return(current, nil)
	svc := newTestService(repo)

	f := FormFromBooking(current)
	f.ServiceType = ServiceGrooming

	_, _, err := svc.Update(ctx, "b-1", f)
	assert.ErrorIs(t, err, ErrServiceTypeChange)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestService_Update_UnknownID(t *testing.T) {
	ctx := context.Background()
	repo := &mockRepo{}
	repo.On("GetByID", ctx, "missing").Return(Booking{}, ErrNotFound)
	svc := newTestService(repo)

	_, _, err := svc.Update(ctx, "missing", validBoardingForm())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestService_Delete_IsIdempotent(t *testing.T) {
	ctx := context.Background()
	repo := &mockRepo{}
	repo.On("Delete", ctx, "ghost").Return(ErrNotFound)
	svc := newTestService(repo)

	warn, err := svc.Delete(ctx, "ghost")
	require.NoError(t, err)
	assert.Empty(t, warn)

	_, err = svc.Delete(ctx, "  ")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_List_FilterAndWarning(t *testing.T) {
	ctx := context.Background()
	groom := Booking{ID: "g", ServiceType: ServiceGrooming, CatName: "Luna", OwnerName: "F", StartDate: NewDate(2024, 6, 2)}
	board := validBoardingForm().Booking("b")

	repo := &mockRepo{}
	repo.On("List", ctx).Return([]Booking{groom, board}, &DegradedError{Op: OpList, Cause: errRemoteDown})
	svc := newTestService(repo)

	st := ServiceBoarding
	items, warn, err := svc.List(ctx, ListFilter{ServiceType: &st})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "b", items[0].ID)
	assert.Equal(t, warningFor(OpList), warn)

	all, _, err := svc.List(ctx, ListFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestSortNewestFirst(t *testing.T) {
	items := []Booking{
		{ID: "a", StartDate: NewDate(2024, 6, 1)},
		{ID: "b", StartDate: NewDate(2024, 7, 1)},
		{ID: "c", StartDate: NewDate(2024, 6, 1)},
	}
	SortNewestFirst(items)

	got := []string{items[0].ID, items[1].ID, items[2].ID}
	assert.Equal(t, []string{"b", "a", "c"}, got)
}

func TestBooking_LastDate(t *testing.T) {
	g := Booking{ServiceType: ServiceGrooming, StartDate: NewDate(2024, 6, 2)}
	assert.True(t, g.LastDate().Equal(NewDate(2024, 6, 2)))

	b := validBoardingForm().Booking("b")
	assert.True(t, b.LastDate().Equal(NewDate(2024, time.June, 3)))
}
