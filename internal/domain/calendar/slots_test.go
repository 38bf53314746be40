package calendar

import (
	"testing"
	"time"

	"tucing-suites-calendar/internal/domain/bookings"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func boarding(id string, start, end int) bookings.Booking {
	e := bookings.NewDate(2024, time.June, end)
	return bookings.Booking{
		ID:          id,
		ServiceType: bookings.ServiceBoarding,
		CatName:     id,
		OwnerName:   "owner",
		StartDate:   bookings.NewDate(2024, time.June, start),
		EndDate:     &e,
	}
}

func grooming(id string, day int) bookings.Booking {
	return bookings.Booking{
		ID:          id,
		ServiceType: bookings.ServiceGrooming,
		CatName:     id,
		OwnerName:   "owner",
		StartDate:   bookings.NewDate(2024, time.June, day),
	}
}

func ids(items []bookings.Booking) []string {
	out := make([]string, 0, len(items))
	for _, b := range items {
		out = append(out, b.ID)
	}
	return out
}

func TestAssignPositions_BoardingBeforeGrooming(t *testing.T) {
	items := []bookings.Booking{
		grooming("g1", 2),
		boarding("b1", 1, 3),
		grooming("g2", 4),
		boarding("b2", 2, 6),
	}

	got := AssignPositions(items)
	want := map[string]int{"b1": 0, "b2": 1, "g1": 2, "g2": 3}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("positions mismatch (-want +got):\n%s", diff)
	}

	// pura: misma entrada, mismo resultado
	assert.Equal(t, got, AssignPositions(items))
}

func TestAssignPositions_EmptyAndDuplicateIDs(t *testing.T) {
	assert.Empty(t, AssignPositions(nil))

	items := []bookings.Booking{boarding("b1", 1, 2), boarding("b1", 5, 6), grooming("g1", 1)}
	got := AssignPositions(items)
	assert.Equal(t, map[string]int{"b1": 0, "g1": 1}, got)
}

func TestBookingsForDate_MiloScenario(t *testing.T) {
	milo := boarding("milo", 1, 3)
	items := []bookings.Booking{milo}
	pos := AssignPositions(items)

	for day, want := range map[int]bool{31: false, 1: true, 2: true, 3: true, 4: false} {
		date := bookings.NewDate(2024, time.June, day)
		if day == 31 {
			date = bookings.NewDate(2024, time.May, 31)
		}
		got := BookingsForDate(items, pos, date)
		assert.Equal(t, want, len(got) == 1, "date %s", date)
	}
}

func TestBookingsForDate_OrderAndCap(t *testing.T) {
	items := []bookings.Booking{
		grooming("g1", 2),
		boarding("b1", 1, 3),
		grooming("g2", 2),
		boarding("b2", 2, 2),
		grooming("other-day", 5),
	}
	pos := AssignPositions(items)
	date := bookings.NewDate(2024, time.June, 2)

	all := BookingsForDate(items, pos, date)
	assert.Equal(t, []string{"b1", "b2", "g1", "g2"}, ids(all))

	visible, hidden := Truncate(all)
	assert.Equal(t, []string{"b1", "b2", "g1"}, ids(visible))
	assert.Equal(t, 1, hidden)
}

func TestBookingsForDate_MissingPositionCountsAsZero(t *testing.T) {
	items := []bookings.Booking{boarding("b1", 1, 3), boarding("b2", 1, 3)}
	pos := map[string]int{"b1": 1}

	got := BookingsForDate(items, pos, bookings.NewDate(2024, time.June, 2))
	require.Len(t, got, 2)
	assert.Equal(t, []string{"b2", "b1"}, ids(got))
}

func TestTruncate_UnderCap(t *testing.T) {
	items := []bookings.Booking{grooming("g1", 1)}
	visible, hidden := Truncate(items)
	assert.Len(t, visible, 1)
	assert.Zero(t, hidden)
}
