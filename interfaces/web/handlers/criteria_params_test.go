package handlers

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"

	"inmohub/domain/listing"
)

func TestCriteriaFromQuery_Empty(t *testing.T) {
	c := CriteriaFromQuery(url.Values{})
	assert.True(t, c.IsZero(), "empty query should produce the permissive criteria")
}

func TestCriteriaFromQuery_FullSet(t *testing.T) {
	values := url.Values{
		"q":           {"  chapinero  "},
		"operation":   {"rent"},
		"type":        {"apartment"},
		"condition":   {"used"},
		"furnished":   {"furnished"},
		"department":  {"Caldas"},
		"price_min":   {"1500000"},
		"price_max":   {"3200000"},
		"area_min":    {"45"},
		"area_max":    {"120"},
		"stratum_min": {"3"},
		"stratum_max": {"5"},
		"bedrooms":    {"2"},
		"bathrooms":   {"1"},
		"parking":     {"1"},
		"extras":      {"balcony,elevator"},
		"sort":        {"price_asc"},
	}

	c := CriteriaFromQuery(values)

	assert.Equal(t, "chapinero", c.SearchTerm)
	assert.Equal(t, listing.OperationRent, c.Operation)
	assert.Equal(t, listing.TypeApartment, c.Type)
	assert.Equal(t, listing.ConditionUsed, c.Condition)
	assert.Equal(t, "Caldas", c.Department)
	assert.Equal(t, 1500000.0, c.PriceMin)
	assert.Equal(t, 3200000.0, c.PriceMax)
	assert.Equal(t, 45.0, c.AreaMin)
	assert.Equal(t, 120.0, c.AreaMax)
	assert.Equal(t, 3, c.StratumMin)
	assert.Equal(t, 5, c.StratumMax)
	assert.Equal(t, 2, c.Bedrooms)
	assert.Equal(t, 1, c.Bathrooms)
	assert.Equal(t, 1, c.ParkingSpaces)
	assert.ElementsMatch(t, []listing.Feature{listing.FeatureBalcony, listing.FeatureElevator}, c.RequiredExtras)
	assert.Equal(t, listing.SortPriceAsc, SortKeyFromQuery(values))
}

func TestCriteriaFromQuery_MalformedValuesDegradeToNoConstraint(t *testing.T) {
	values := url.Values{
		"price_min":   {"abc"},
		"price_max":   {"-50"},
		"area_min":    {"1e999"},
		"bedrooms":    {"two"},
		"stratum_min": {"-1"},
		"extras":      {"balcony,not_a_real_extra"},
		"sort":        {"cheapest_first"},
	}

	c := CriteriaFromQuery(values)

	assert.Zero(t, c.PriceMin)
	assert.Zero(t, c.PriceMax)
	assert.Zero(t, c.AreaMin)
	assert.Zero(t, c.Bedrooms)
	assert.Zero(t, c.StratumMin)
	assert.Equal(t, []listing.Feature{listing.FeatureBalcony}, c.RequiredExtras)
	assert.Equal(t, listing.SortDefault, SortKeyFromQuery(values))
}

func TestCriteriaFromQuery_RepeatedExtraParams(t *testing.T) {
	values := url.Values{"extras": {"balcony", "gym"}}
	c := CriteriaFromQuery(values)
	assert.ElementsMatch(t, []listing.Feature{listing.FeatureBalcony, listing.FeatureGym}, c.RequiredExtras)
}
