package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"itqan_backend/internals/features/bookings/bookings/dto"
)

func ids() (uuid.UUID, uuid.UUID, uuid.UUID) {
	return uuid.MustParse("00000000-0000-0000-0000-000000000001"),
		uuid.MustParse("00000000-0000-0000-0000-000000000002"),
		uuid.MustParse("00000000-0000-0000-0000-000000000003")
}

func TestPickReader_Empty(t *testing.T) {
	id, ok := PickReader(nil, StrategyLeastBookedToday, nil)
	assert.False(t, ok)
	assert.Equal(t, uuid.Nil, id)
}

func TestPickReader_LeastBookedToday(t *testing.T) {
	a, b, c := ids()
	cands := []Candidate{
		{ID: c, TodayCount: 1, TotalCount: 0},
		{ID: a, TodayCount: 2, TotalCount: 0},
		{ID: b, TodayCount: 1, TotalCount: 9},
	}
	id, ok := PickReader(cands, StrategyLeastBookedToday, nil)
	require.True(t, ok)
	// seri today_count=1 antara b dan c, b menang karena id lebih kecil
	assert.Equal(t, b, id)
}

func TestPickReader_LeastTotal(t *testing.T) {
	a, b, c := ids()
	cands := []Candidate{
		{ID: a, TodayCount: 0, TotalCount: 5},
		{ID: b, TodayCount: 3, TotalCount: 1},
		{ID: c, TodayCount: 0, TotalCount: 1},
	}
	id, ok := PickReader(cands, StrategyLeastTotalBookings, nil)
	require.True(t, ok)
	assert.Equal(t, b, id)
}

func TestPickReader_UnknownStrategyFallsBack(t *testing.T) {
	a, b, _ := ids()
	cands := []Candidate{{ID: a, TodayCount: 4}, {ID: b, TodayCount: 0}}
	id, _ := PickReader(cands, "whatever", nil)
	assert.Equal(t, b, id)
}

func TestPickReader_RandomUsesShuffle(t *testing.T) {
	a, b, c := ids()
	cands := []Candidate{{ID: a}, {ID: b}, {ID: c}}
	reverse := func(n int, swap func(i, j int)) {
		for i := 0; i < n/2; i++ {
			swap(i, n-1-i)
		}
	}
	id, ok := PickReader(cands, StrategyRandom, reverse)
	require.True(t, ok)
	assert.Equal(t, c, id)
	// input tidak diubah
	assert.Equal(t, a, cands[0].ID)
}

func TestResolveSlot(t *testing.T) {
	start, end, err := ResolveSlot(dto.CreateBookingRequest{
		SlotStart: "2025-03-10T08:00:00Z",
		SlotEnd:   "2025-03-10T08:45:00Z",
	})
	require.NoError(t, err)
	assert.Equal(t, 45*time.Minute, end.Sub(start))

	start, end, err = ResolveSlot(dto.CreateBookingRequest{Date: "2025-03-10", StartTime: "09:00"})
	require.NoError(t, err)
	assert.Equal(t, 30*time.Minute, end.Sub(start))

	_, _, err = ResolveSlot(dto.CreateBookingRequest{})
	assert.Error(t, err)

	_, _, err = ResolveSlot(dto.CreateBookingRequest{SlotStart: "not-a-date"})
	assert.Error(t, err)

	_, _, err = ResolveSlot(dto.CreateBookingRequest{
		SlotStart: "2025-03-10T08:00:00Z",
		SlotEnd:   "2025-03-10T07:00:00Z",
	})
	assert.Error(t, err)
}
