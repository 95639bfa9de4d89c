package listing

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Matches is the public filter predicate: a short-circuit conjunction over
// publication status, text search, enum facets, inclusive numeric ranges,
// minimum thresholds and required extras. It is pure and never panics on
// malformed criteria; unusable bounds degrade to no-constraint.
func Matches(p *Property, c Criteria) bool {
	if p == nil {
		return false
	}
	if !p.IsPublished() {
		return false
	}

	if term := strings.TrimSpace(c.SearchTerm); term != "" {
		needle := searchFold(term)
		inCity := strings.Contains(searchFold(p.City), needle)
		inNeighborhood := strings.Contains(searchFold(p.Neighborhood), needle)
		inCode := p.Code != "" && strings.Contains(searchFold(p.Code), needle)
		if !inCity && !inNeighborhood && !inCode {
			return false
		}
	}

	if c.Operation != FacetAll && p.Operation != c.Operation {
		return false
	}
	if c.Type != FacetAll && p.Type != c.Type {
		return false
	}
	if c.Condition != FacetAll && p.Condition != c.Condition {
		return false
	}
	if c.Furnished != FacetAll && p.Furnished != c.Furnished {
		return false
	}
	if c.Kitchen != FacetAll && p.Kitchen != c.Kitchen {
		return false
	}
	if c.Surveillance != FacetAll && p.Surveillance != c.Surveillance {
		return false
	}
	if c.Department != FacetAll && !strings.EqualFold(p.Department, c.Department) {
		return false
	}

	// Price is always declared; area and stratum are optional and a record
	// that simply lacks the attribute passes the range (absence of data must
	// not hide a listing).
	if !inRange(p.Price, c.PriceMin, c.PriceMax) {
		return false
	}
	if p.BuiltArea != nil && !inRange(*p.BuiltArea, c.AreaMin, c.AreaMax) {
		return false
	}
	if p.Stratum != nil && !inIntRange(*p.Stratum, c.StratumMin, c.StratumMax) {
		return false
	}

	if c.Bedrooms > 0 && p.BedroomCount() < c.Bedrooms {
		return false
	}
	if c.Bathrooms > 0 && p.BathroomCount() < c.Bathrooms {
		return false
	}
	if c.ParkingSpaces > 0 && p.ParkingCount() < c.ParkingSpaces {
		return false
	}

	for _, extra := range c.RequiredExtras {
		if !p.HasFeature(extra) {
			return false
		}
	}

	return true
}

// Filter returns the published properties matching the criteria, in input
// order. The input slice is never mutated.
func Filter(props []*Property, c Criteria) []*Property {
	out := make([]*Property, 0, len(props))
	for _, p := range props {
		if Matches(p, c) {
			out = append(out, p)
		}
	}
	return out
}

// inRange checks v against an inclusive [min, max] where either bound may
// be unset (see boundSet).
func inRange(v, min, max float64) bool {
	if boundSet(min) && v < min {
		return false
	}
	if boundSet(max) && v > max {
		return false
	}
	return true
}

func inIntRange(v, min, max int) bool {
	if min > 0 && v < min {
		return false
	}
	if max > 0 && v > max {
		return false
	}
	return true
}

// searchFold lowercases and strips diacritics so "Bogotá" matches "bogota".
func searchFold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	return strings.ToLower(folded)
}
