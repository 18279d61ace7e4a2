package services_test

import (
	"testing"

	impl "github.com/avatarctic/trip-search/internal/application/services"
	"github.com/avatarctic/trip-search/internal/core/domain/trip"
)

func tripIDs(trips []trip.Trip) []string {
	ids := make([]string, len(trips))
	for i, t := range trips {
		ids[i] = t.ID
	}
	return ids
}

func assertOrder(t *testing.T, got []trip.Trip, want ...string) {
	t.Helper()
	ids := tripIDs(got)
	if len(ids) != len(want) {
		t.Fatalf("expected %d trips, got %v", len(want), ids)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("expected order %v, got %v", want, ids)
		}
	}
}

func TestSort_Cheapest_TieBreaksOnDurationThenID(t *testing.T) {
	in := []trip.Trip{
		{ID: "t2", Cost: 800, Duration: 900},
		{ID: "t3", Cost: 600, Duration: 600},
		{ID: "t1", Cost: 600, Duration: 700},
	}

	out := impl.NewTripSorter().Sort(in, trip.SortCheapest)
	assertOrder(t, out, "t3", "t1", "t2")
}

func TestSort_Fastest_TieBreaksOnCostThenID(t *testing.T) {
	in := []trip.Trip{
		{ID: "t2", Cost: 800, Duration: 900},
		{ID: "t3", Cost: 600, Duration: 600},
		{ID: "t1", Cost: 600, Duration: 700},
	}

	out := impl.NewTripSorter().Sort(in, trip.SortFastest)
	assertOrder(t, out, "t3", "t1", "t2")
}

func TestSort_IdenticalCostAndDuration_OrdersByID(t *testing.T) {
	in := []trip.Trip{
		{ID: "c", Cost: 100, Duration: 50},
		{ID: "a", Cost: 100, Duration: 50},
		{ID: "b", Cost: 100, Duration: 50},
	}

	out := impl.NewTripSorter().Sort(in, trip.SortCheapest)
	assertOrder(t, out, "a", "b", "c")
}

func TestSort_IsDeterministicAndIdempotent(t *testing.T) {
	in := []trip.Trip{
		{ID: "x", Cost: 300, Duration: 120},
		{ID: "y", Cost: 100, Duration: 240},
		{ID: "z", Cost: 100, Duration: 240},
		{ID: "w", Cost: 200, Duration: 60},
	}

	sorter := impl.NewTripSorter()
	first := sorter.Sort(in, trip.SortFastest)
	second := sorter.Sort(first, trip.SortFastest)
	assertOrder(t, second, tripIDs(first)...)
}

func TestSort_DoesNotMutateInput(t *testing.T) {
	in := []trip.Trip{
		{ID: "b", Cost: 200, Duration: 10},
		{ID: "a", Cost: 100, Duration: 20},
	}

	_ = impl.NewTripSorter().Sort(in, trip.SortCheapest)
	if in[0].ID != "b" || in[1].ID != "a" {
		t.Fatalf("input slice was reordered: %v", tripIDs(in))
	}
}

func TestSort_EmptyInput(t *testing.T) {
	out := impl.NewTripSorter().Sort(nil, trip.SortCheapest)
	if len(out) != 0 {
		t.Fatalf("expected empty result, got %v", tripIDs(out))
	}
}
