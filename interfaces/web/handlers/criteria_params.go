package handlers

import (
	"net/url"
	"strconv"
	"strings"

	"inmohub/domain/listing"
)

// CriteriaFromQuery maps URL query parameters onto storefront criteria.
// Absent or malformed values degrade to "no constraint" rather than erroring,
// so a hand-edited URL never breaks the listing page.
func CriteriaFromQuery(values url.Values) listing.Criteria {
	c := listing.DefaultCriteria()

	c.SearchTerm = strings.TrimSpace(values.Get("q"))
	c.Operation = listing.OperationType(values.Get("operation"))
	c.Type = listing.PropertyType(values.Get("type"))
	c.Condition = listing.PropertyCondition(values.Get("condition"))
	c.Furnished = listing.FurnishedState(values.Get("furnished"))
	c.Kitchen = listing.KitchenType(values.Get("kitchen"))
	c.Surveillance = listing.SurveillanceType(values.Get("surveillance"))
	c.Department = values.Get("department")

	c.PriceMin = parseFloatParam(values.Get("price_min"))
	c.PriceMax = parseFloatParam(values.Get("price_max"))
	c.AreaMin = parseFloatParam(values.Get("area_min"))
	c.AreaMax = parseFloatParam(values.Get("area_max"))

	c.StratumMin = parseIntParam(values.Get("stratum_min"))
	c.StratumMax = parseIntParam(values.Get("stratum_max"))
	c.Bedrooms = parseIntParam(values.Get("bedrooms"))
	c.Bathrooms = parseIntParam(values.Get("bathrooms"))
	c.ParkingSpaces = parseIntParam(values.Get("parking"))

	for _, raw := range values["extras"] {
		for _, name := range strings.Split(raw, ",") {
			name = strings.TrimSpace(name)
			if name == "" {
				continue
			}
			if listing.IsKnownFeature(name) {
				c.RequiredExtras = append(c.RequiredExtras, listing.Feature(name))
			}
		}
	}

	return c
}

// SortKeyFromQuery resolves the sort parameter, falling back to the default
// ordering for anything unrecognized.
func SortKeyFromQuery(values url.Values) listing.SortKey {
	return listing.ParseSortKey(values.Get("sort"))
}

func parseFloatParam(raw string) float64 {
	if raw == "" {
		return 0
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v < 0 {
		return 0
	}
	return v
}

func parseIntParam(raw string) int {
	if raw == "" {
		return 0
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return 0
	}
	return v
}
