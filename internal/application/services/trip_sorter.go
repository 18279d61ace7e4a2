package services

import (
	"sort"
	"strings"

	"github.com/avatarctic/trip-search/internal/core/domain/trip"
)

// TripSorter orders trip candidates with a total, deterministic comparator.
// The tie-break chain always ends on the lexicographic trip ID so that two
// candidates with identical cost and duration still sort the same way on
// every call. Cached search results depend on this: a cache hit must be
// byte-identical to what a fresh sort would produce.
type TripSorter struct{}

func NewTripSorter() *TripSorter {
	return &TripSorter{}
}

// Sort returns a new ordered slice; the input is never mutated.
// fastest compares duration, then cost, then ID; cheapest compares cost,
// then duration, then ID. Cost and duration are exact integer comparisons in
// the provider's declared unit.
func (s *TripSorter) Sort(trips []trip.Trip, sortBy trip.SortOption) []trip.Trip {
	out := make([]trip.Trip, len(trips))
	copy(out, trips)

	var cmp func(a, b trip.Trip) int
	if sortBy == trip.SortFastest {
		cmp = compareFastest
	} else {
		cmp = compareCheapest
	}

	sort.SliceStable(out, func(i, j int) bool {
		return cmp(out[i], out[j]) < 0
	})
	return out
}

func compareFastest(a, b trip.Trip) int {
	if d := a.Duration - b.Duration; d != 0 {
		return d
	}
	if d := a.Cost - b.Cost; d != 0 {
		return d
	}
	return strings.Compare(a.ID, b.ID)
}

func compareCheapest(a, b trip.Trip) int {
	if d := a.Cost - b.Cost; d != 0 {
		return d
	}
	if d := a.Duration - b.Duration; d != 0 {
		return d
	}
	return strings.Compare(a.ID, b.ID)
}
