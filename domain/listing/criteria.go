package listing

import "math"

// FacetAll is the sentinel for enum facets that should not constrain
// results. The Criteria zero value uses it everywhere, so an empty
// Criteria is the permissive identity: an unfiltered view shows every
// publishable record.
const FacetAll = ""

// Criteria is the current set of user-selected filter values. It is
// transient UI state, never persisted.
//
// Numeric range bounds use 0 as "no constraint"; thresholds use 0 as "any".
// Non-finite bounds are ignored rather than rejected, so a malformed
// criteria object can never exclude everything by accident.
type Criteria struct {
	// SearchTerm matches case- and accent-insensitively as a substring of
	// city, neighborhood and property code.
	SearchTerm string

	Operation    OperationType
	Type         PropertyType
	Condition    PropertyCondition
	Furnished    FurnishedState
	Kitchen      KitchenType
	Surveillance SurveillanceType
	Department   string

	PriceMin, PriceMax     float64
	AreaMin, AreaMax       float64
	StratumMin, StratumMax int

	// Minimum-threshold facets ("N+"), 0 meaning any.
	Bedrooms      int
	Bathrooms     int
	ParkingSpaces int

	// RequiredExtras must all be enabled on a matching property.
	RequiredExtras []Feature
}

// DefaultCriteria returns the permissive identity filter.
func DefaultCriteria() Criteria {
	return Criteria{}
}

// IsZero reports whether the criteria constrains nothing.
func (c Criteria) IsZero() bool {
	return c.SearchTerm == "" &&
		c.Operation == FacetAll && c.Type == FacetAll &&
		c.Condition == FacetAll && c.Furnished == FacetAll &&
		c.Kitchen == FacetAll && c.Surveillance == FacetAll &&
		c.Department == FacetAll &&
		!boundSet(c.PriceMin) && !boundSet(c.PriceMax) &&
		!boundSet(c.AreaMin) && !boundSet(c.AreaMax) &&
		c.StratumMin <= 0 && c.StratumMax <= 0 &&
		c.Bedrooms <= 0 && c.Bathrooms <= 0 && c.ParkingSpaces <= 0 &&
		len(c.RequiredExtras) == 0
}

// boundSet reports whether a float bound actually constrains: zero,
// negative, NaN and infinite values all read as "no constraint".
func boundSet(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}
