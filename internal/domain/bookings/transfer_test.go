package bookings_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"tucing-suites-calendar/internal/adapters/storage/memory"
	"tucing-suites-calendar/internal/domain/bookings"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleBookings() []bookings.Booking {
	end := bookings.NewDate(2024, time.June, 3)
	fees := 150.0
	return []bookings.Booking{
		{
			ID:            "b-milo",
			ServiceType:   bookings.ServiceBoarding,
			CatName:       "Milo",
			OwnerName:     "Aisyah",
			StartDate:     bookings.NewDate(2024, time.June, 1),
			EndDate:       &end,
			Notes:         "needs wet food",
			TotalFees:     &fees,
			ContactNumber: "+60 12-345 6789",
		},
		{
			ID:          "g-luna",
			ServiceType: bookings.ServiceGrooming,
			CatName:     "Luna",
			OwnerName:   "Farid",
			StartDate:   bookings.NewDate(2024, time.June, 2),
		},
	}
}

func TestImportExport_RoundTrip(t *testing.T) {
	ctx := context.Background()
	src := bookings.NewService(memory.NewBookingsRepo(sampleBookings()...), nil)

	data, warn, err := src.Export(ctx)
	require.NoError(t, err)
	assert.Empty(t, warn)
	assert.True(t, strings.HasPrefix(string(data), "[\n  {"), "export must be indented with two spaces")

	dst := bookings.NewService(memory.NewBookingsRepo(), nil)
	n, _, err := dst.Import(ctx, data)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	got, _, err := dst.List(ctx, bookings.ListFilter{})
	require.NoError(t, err)
	if diff := cmp.Diff(sampleBookings(), got); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestImportExport_Empty(t *testing.T) {
	ctx := context.Background()
	src := bookings.NewService(memory.NewBookingsRepo(), nil)

	data, _, err := src.Export(ctx)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))

	dst := bookings.NewService(memory.NewBookingsRepo(sampleBookings()...), nil)
	n, _, err := dst.Import(ctx, data)
	require.NoError(t, err)
	assert.Zero(t, n)

	got, _, err := dst.List(ctx, bookings.ListFilter{})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestImport_MalformedLeavesStoreUntouched(t *testing.T) {
	ctx := context.Background()
	svc := bookings.NewService(memory.NewBookingsRepo(sampleBookings()...), nil)

	payloads := []string{
		`{"not":"an array"}`,
		`[{"id":"x","serviceType":"boarding","catName":"Tom","ownerName":"A","startDate":"2024-06-05"}]`, // sin endDate
		`[{"id":"x","serviceType":"grooming","catName":"","ownerName":"A","startDate":"2024-06-05"}]`,
		`[{"id":"x","serviceType":"grooming","catName":"T","ownerName":"A","startDate":"2024-06-05"},` +
			`{"id":"x","serviceType":"grooming","catName":"U","ownerName":"B","startDate":"2024-06-06"}]`,
		`[{"id":"x","serviceType":"grooming","catName":"T","ownerName":"A","startDate":"junio"}]`,
		`[{"id":"x","serviceType":"grooming","catName":"Milo","ownerName":"Ana"}]`,
		`[{"id":"x","serviceType":"grooming","catName":"Milo","ownerName":"Ana","startDate":null}]`,
		`[{"id":"x","serviceType":"boarding","catName":"Milo","ownerName":"Ana","startDate":"2024-06-05","endDate":null}]`,
	}

	for _, p := range payloads {
		_, _, err := svc.Import(ctx, []byte(p))
		assert.ErrorIs(t, err, bookings.ErrInvalidImport, p)
	}

	got, _, err := svc.List(ctx, bookings.ListFilter{})
	require.NoError(t, err)
	if diff := cmp.Diff(sampleBookings(), got); diff != "" {
		t.Fatalf("store changed after rejected import (-want +got):\n%s", diff)
	}
}

func TestImport_MintsMissingIDs(t *testing.T) {
	ctx := context.Background()
	svc := bookings.NewService(memory.NewBookingsRepo(), nil)

	n, _, err := svc.Import(ctx, []byte(`[{"serviceType":"grooming","catName":"Oyen","ownerName":"Siti","startDate":"2024-06-07T00:00:00.000Z"}]`))
	require.NoError(t, err)
	require.Equal(t, 1, n)

	got, _, err := svc.List(ctx, bookings.ListFilter{})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.NotEmpty(t, got[0].ID)
	assert.Equal(t, "2024-06-07", got[0].StartDate.String())
}

func TestDecodeSnapshot_EmptyInputs(t *testing.T) {
	for _, in := range []string{"", "  ", "null", "[]"} {
		items, err := bookings.DecodeSnapshot([]byte(in))
		require.NoError(t, err, in)
		assert.Empty(t, items, in)
	}
}
