package catalog

import "fmt"

// Region is the Czech region (kraj) a submitting school belongs to.
type Region string

const (
	RegionPraha           Region = "Praha"
	RegionStredocesky     Region = "Středočeský"
	RegionJihocesky       Region = "Jihočeský"
	RegionPlzensky        Region = "Plzeňský"
	RegionKarlovarsky     Region = "Karlovarský"
	RegionUstecky         Region = "Ústecký"
	RegionLiberecky       Region = "Liberecký"
	RegionKralovehradecky Region = "Královéhradecký"
	RegionPardubicky      Region = "Pardubický"
	RegionVysocina        Region = "Vysočina"
	RegionJihomoravsky    Region = "Jihomoravský"
	RegionOlomoucky       Region = "Olomoucký"
	RegionZlinsky         Region = "Zlínský"
	RegionMoravskoslezsky Region = "Moravskoslezský"
)

var regions = map[Region]bool{
	RegionPraha:           true,
	RegionStredocesky:     true,
	RegionJihocesky:       true,
	RegionPlzensky:        true,
	RegionKarlovarsky:     true,
	RegionUstecky:         true,
	RegionLiberecky:       true,
	RegionKralovehradecky: true,
	RegionPardubicky:      true,
	RegionVysocina:        true,
	RegionJihomoravsky:    true,
	RegionOlomoucky:       true,
	RegionZlinsky:         true,
	RegionMoravskoslezsky: true,
}

// ParseRegion converts a string into a Region.
// Returns an error for values outside the closed set.
func ParseRegion(s string) (Region, error) {
	r := Region(s)
	if !regions[r] {
		return "", fmt.Errorf("unknown region: %q", s)
	}
	return r, nil
}
