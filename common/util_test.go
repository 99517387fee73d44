package common

import (
	"testing"

	"github.com/explore-flights/multimodal/common/xtime"
	"github.com/stretchr/testify/assert"
)

func TestNormalizePlace(t *testing.T) {
	assert.Equal(t, "якутск автовокзал", NormalizePlace("  Якутск Автовокзал "))
	assert.Equal(t, "mow", NormalizePlace("MOW"))
	assert.True(t, SamePlace("Якутск", " якутск"))
	assert.False(t, SamePlace("Якутск", "Чурапча"))
}

func TestFlightQuery_CacheKey(t *testing.T) {
	q := FlightQuery{
		Origin:      " Москва",
		Destination: "Якутск ",
		Date:        xtime.MustParseLocalDate("2025-11-25"),
	}

	assert.Equal(t, "s7:Москва:Якутск:25.11.2025:one-way", q.CacheKey())
	assert.False(t, q.RoundTrip())

	back := xtime.MustParseLocalDate("2025-11-30")
	q.ReturnDate = &back

	assert.True(t, q.RoundTrip())
	assert.Equal(t, "s7:Москва:Якутск:25.11.2025:30.11.2025", q.CacheKey())
	assert.Equal(t, "Москва-Якутск@2025-11-25/2025-11-30", FlightQuery{
		Origin:      "Москва",
		Destination: "Якутск",
		Date:        q.Date,
		ReturnDate:  &back,
	}.String())
}

func TestSet(t *testing.T) {
	s := NewSet(2, 4, 6)
	assert.True(t, s.Contains(4))
	assert.False(t, s.Contains(5))

	s.Add(5)
	assert.True(t, s.Contains(5))
	assert.True(t, s.Remove(5))
	assert.False(t, s.Remove(5))
}
