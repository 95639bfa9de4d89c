package listing

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func published(mutate func(*Property)) *Property {
	p := &Property{
		ID:           "p1",
		Title:        "Apartamento en Palermo",
		City:         "Manizales",
		Neighborhood: "Palermo",
		Department:   "Caldas",
		Operation:    OperationSale,
		Type:         TypeApartment,
		Price:        500,
		Condition:    ConditionUsed,
		Furnished:    Unfurnished,
		Status:       StatusPublished,
	}
	if mutate != nil {
		mutate(p)
	}
	return p
}

func TestMatches_DefaultCriteriaIsPermissiveIdentity(t *testing.T) {
	c := DefaultCriteria()
	require.True(t, c.IsZero())

	assert.True(t, Matches(published(nil), c))
	assert.True(t, Matches(published(func(p *Property) {
		// No optional numerics declared at all.
		p.BuiltArea = nil
		p.Bedrooms = nil
		p.Stratum = nil
	}), c))
}

func TestMatches_OnlyPublishedRecordsAreEligible(t *testing.T) {
	c := DefaultCriteria()

	assert.False(t, Matches(published(func(p *Property) { p.Status = StatusDraft }), c))
	assert.False(t, Matches(published(func(p *Property) { p.Status = StatusPaused }), c))
	assert.False(t, Matches(nil, c))
}

func TestMatches_SearchTerm(t *testing.T) {
	manizales := published(nil) // Manizales / Palermo
	bogota := published(func(p *Property) {
		p.ID = "p2"
		p.City = "Bogotá"
		p.Neighborhood = "Chapinero"
	})

	tests := []struct {
		name    string
		term    string
		matchP1 bool
		matchP2 bool
	}{
		{"empty term is vacuously true", "", true, true},
		{"whitespace only is vacuously true", "   ", true, true},
		{"neighborhood substring", "palermo", true, false},
		{"city substring", "maniza", true, false},
		{"accent-insensitive city", "bogota", false, true},
		{"case-insensitive", "CHAPINERO", false, true},
		{"no match anywhere", "medellin", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Criteria{SearchTerm: tt.term}
			assert.Equal(t, tt.matchP1, Matches(manizales, c), "manizales/palermo")
			assert.Equal(t, tt.matchP2, Matches(bogota, c), "bogota/chapinero")
		})
	}
}

func TestMatches_SearchTermAgainstPropertyCode(t *testing.T) {
	p := published(func(p *Property) { p.Code = "OL-1042" })

	assert.True(t, Matches(p, Criteria{SearchTerm: "ol-1042"}))
	assert.False(t, Matches(p, Criteria{SearchTerm: "ol-9999"}))
}

func TestMatches_EnumFacets(t *testing.T) {
	p := published(nil) // sale / apartment / used / unfurnished

	tests := []struct {
		name string
		c    Criteria
		want bool
	}{
		{"all sentinel passes", Criteria{}, true},
		{"operation equal", Criteria{Operation: OperationSale}, true},
		{"operation different", Criteria{Operation: OperationRent}, false},
		{"type equal", Criteria{Type: TypeApartment}, true},
		{"type different", Criteria{Type: TypeFarm}, false},
		{"condition different", Criteria{Condition: ConditionNew}, false},
		{"furnished equal", Criteria{Furnished: Unfurnished}, true},
		{"department case-insensitive", Criteria{Department: "caldas"}, true},
		{"department different", Criteria{Department: "Antioquia"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Matches(p, tt.c))
		})
	}
}

func TestMatches_PriceRange(t *testing.T) {
	cheap := published(func(p *Property) { p.Price = 100 })
	mid := published(func(p *Property) { p.Price = 500 })
	dear := published(func(p *Property) { p.Price = 900 })

	c := Criteria{PriceMin: 200, PriceMax: 600}

	got := Filter([]*Property{cheap, mid, dear}, c)
	require.Len(t, got, 1)
	assert.Equal(t, mid, got[0])

	// Bounds are inclusive.
	assert.True(t, Matches(published(func(p *Property) { p.Price = 200 }), c))
	assert.True(t, Matches(published(func(p *Property) { p.Price = 600 }), c))
}

func TestMatches_AreaRangeMissingAreaPasses(t *testing.T) {
	c := Criteria{AreaMin: 50, AreaMax: 120}

	withArea := published(func(p *Property) { p.BuiltArea = floatPtr(80) })
	tooSmall := published(func(p *Property) { p.BuiltArea = floatPtr(30) })
	undeclared := published(func(p *Property) { p.BuiltArea = nil })

	assert.True(t, Matches(withArea, c))
	assert.False(t, Matches(tooSmall, c))
	// Absence of data must not hide a listing.
	assert.True(t, Matches(undeclared, c))
}

func TestMatches_StratumRange(t *testing.T) {
	c := Criteria{StratumMin: 3, StratumMax: 5}

	assert.True(t, Matches(published(func(p *Property) { p.Stratum = intPtr(4) }), c))
	assert.False(t, Matches(published(func(p *Property) { p.Stratum = intPtr(2) }), c))
	assert.False(t, Matches(published(func(p *Property) { p.Stratum = intPtr(6) }), c))
	assert.True(t, Matches(published(func(p *Property) { p.Stratum = nil }), c))
}

func TestMatches_ThresholdFacets(t *testing.T) {
	c := Criteria{Bedrooms: 2}

	assert.True(t, Matches(published(func(p *Property) { p.Bedrooms = intPtr(2) }), c))
	assert.True(t, Matches(published(func(p *Property) { p.Bedrooms = intPtr(5) }), c))
	assert.False(t, Matches(published(func(p *Property) { p.Bedrooms = intPtr(1) }), c))
	// Absent counts as 0 and fails a positive threshold.
	assert.False(t, Matches(published(func(p *Property) { p.Bedrooms = nil }), c))

	// Any-threshold matches everything, including absent.
	assert.True(t, Matches(published(func(p *Property) { p.Bedrooms = nil }), Criteria{}))

	assert.False(t, Matches(published(nil), Criteria{Bathrooms: 1}))
	assert.True(t, Matches(published(func(p *Property) { p.ParkingSpaces = intPtr(1) }), Criteria{ParkingSpaces: 1}))
}

func TestMatches_RequiredExtras(t *testing.T) {
	withPool := published(func(p *Property) {
		p.Features = FeatureSet{FeaturePool: true, FeatureElevator: true}
	})
	withoutPool := published(nil)

	// Empty set is the identity filter.
	assert.True(t, Matches(withPool, Criteria{RequiredExtras: nil}))
	assert.True(t, Matches(withoutPool, Criteria{RequiredExtras: []Feature{}}))

	pool := Criteria{RequiredExtras: []Feature{FeaturePool}}
	assert.True(t, Matches(withPool, pool))
	assert.False(t, Matches(withoutPool, pool))

	// AND semantics: every named flag must be enabled.
	both := Criteria{RequiredExtras: []Feature{FeaturePool, FeatureGym}}
	assert.False(t, Matches(withPool, both))
}

func TestMatches_NonFiniteBoundsDegradeToNoConstraint(t *testing.T) {
	p := published(nil)

	assert.NotPanics(t, func() {
		assert.True(t, Matches(p, Criteria{PriceMin: math.NaN(), PriceMax: math.Inf(1)}))
		assert.True(t, Matches(p, Criteria{AreaMin: math.Inf(-1), AreaMax: math.NaN()}))
		assert.True(t, Matches(p, Criteria{PriceMin: -10}))
	})
}

func TestFilter_NarrowingABoundNeverGrowsTheResult(t *testing.T) {
	props := []*Property{
		published(func(p *Property) { p.ID = "a"; p.Price = 100 }),
		published(func(p *Property) { p.ID = "b"; p.Price = 300 }),
		published(func(p *Property) { p.ID = "c"; p.Price = 500 }),
		published(func(p *Property) { p.ID = "d"; p.Price = 700 }),
	}

	prev := len(Filter(props, Criteria{}))
	for _, min := range []float64{50, 150, 350, 550, 750} {
		n := len(Filter(props, Criteria{PriceMin: min}))
		assert.LessOrEqual(t, n, prev, "raising PriceMin to %v grew the result", min)
		prev = n
	}
}

func TestFilter_DoesNotMutateInput(t *testing.T) {
	a := published(func(p *Property) { p.ID = "a" })
	b := published(func(p *Property) { p.ID = "b"; p.Status = StatusDraft })
	in := []*Property{a, b}

	out := Filter(in, DefaultCriteria())

	assert.Equal(t, []*Property{a, b}, in)
	require.Len(t, out, 1)
	assert.Equal(t, "a", out[0].ID)
}
