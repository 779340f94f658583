package market

import (
	"fmt"
	"sort"
	"strings"

	"inmopanel/internal/errors"
)

// Cities is the fixed set of selectable cities
var Cities = []string{"Valencia", "Malaga", "Madrid", "Barcelona"}

// IsKnownCity reports whether name matches the city enumeration,
// case-insensitively
func IsKnownCity(name string) bool {
	for _, c := range Cities {
		if strings.EqualFold(c, name) {
			return true
		}
	}
	return false
}

// Selection is the user-chosen filter state. An empty Neighbourhoods slice
// means "all neighbourhoods in the universe of the city-narrowed set".
type Selection struct {
	City           string
	Neighbourhoods []string
}

// NeighbourhoodUniverse returns the distinct non-empty neighbourhood names
// in the set, sorted alphabetically. It feeds the selection controls and the
// default keep-set.
func NeighbourhoodUniverse(set *ListingSet) []string {
	seen := make(map[string]bool)
	for _, row := range set.Rows {
		if row.Neighbourhood == "" {
			continue
		}
		seen[row.Neighbourhood] = true
	}
	universe := make([]string, 0, len(seen))
	for name := range seen {
		universe = append(universe, name)
	}
	sort.Strings(universe)
	return universe
}

// narrowByCity keeps rows whose city matches, case-insensitively
func narrowByCity(set *ListingSet, city string) *ListingSet {
	rows := make([]Listing, 0, len(set.Rows))
	for _, row := range set.Rows {
		if strings.EqualFold(row.City, city) {
			rows = append(rows, row)
		}
	}
	return NewListingSet(rows, set.Columns.Clone())
}

// Filter narrows the listing set to the selection. With a city column
// present the set is first narrowed to the selected city (case-insensitive),
// and the neighbourhood universe is computed from that narrowed set, not the
// global one; without a city column the city step is skipped. Neighbourhood
// matching is case-sensitive against the values present in the data.
//
// An empty result at either step is a NO_MATCHING_DATA condition: the caller
// should warn and withhold downstream computation for this interaction. The
// city-step error is raised before the universe is computed.
//
// Filtering only ever shrinks the set and is idempotent for a fixed
// selection.
func Filter(set *ListingSet, sel Selection) (*ListingSet, []string, error) {
	working := set

	if set.Columns.Has(ColCity) && sel.City != "" {
		working = narrowByCity(set, sel.City)
		if working.IsEmpty() {
			return nil, nil, errors.NoMatchingData(
				fmt.Sprintf("no listings for city %q", sel.City))
		}
	}

	universe := NeighbourhoodUniverse(working)

	keep := sel.Neighbourhoods
	if len(keep) == 0 {
		keep = universe
	}
	keepSet := make(map[string]bool, len(keep))
	for _, name := range keep {
		keepSet[name] = true
	}

	rows := make([]Listing, 0, len(working.Rows))
	for _, row := range working.Rows {
		if keepSet[row.Neighbourhood] {
			rows = append(rows, row)
		}
	}
	if len(rows) == 0 {
		return nil, universe, errors.NoMatchingData(
			"no listings for the selected neighbourhoods")
	}

	return NewListingSet(rows, working.Columns.Clone()), universe, nil
}
