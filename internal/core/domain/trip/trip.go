package trip

import "strings"

// Trip is a candidate returned by the upstream trips provider. It is a pure
// value: once produced it is never mutated. IDs are only unique within a
// single provider response.
type Trip struct {
	ID          string `json:"id"`
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
	Cost        int    `json:"cost"`
	Duration    int    `json:"duration"`
	Type        string `json:"type"`
	DisplayName string `json:"display_name"`
	Provider    string `json:"provider,omitempty"`
}

// SortOption selects the ranking mode for search results.
type SortOption string

const (
	SortFastest  SortOption = "fastest"
	SortCheapest SortOption = "cheapest"
)

func (s SortOption) String() string {
	return string(s)
}

func (s SortOption) IsValid() bool {
	switch s {
	case SortFastest, SortCheapest:
		return true
	default:
		return false
	}
}

// NormalizePlace canonicalizes an origin/destination code so that queries
// differing only in letter case share one cache entry and one upstream call.
func NormalizePlace(place string) string {
	return strings.ToUpper(strings.TrimSpace(place))
}
