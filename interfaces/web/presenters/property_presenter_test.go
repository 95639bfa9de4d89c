package presenters

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inmohub/application"
	"inmohub/domain/listing"
	"inmohub/test/helpers"
)

func TestToStorefrontVM_NilDataReturnsEmptyArrays(t *testing.T) {
	vm := NewPropertyPresenter().ToStorefrontVM(nil)

	require.NotNil(t, vm)
	assert.NotNil(t, vm.Featured)
	assert.NotNil(t, vm.Results)
	assert.Zero(t, vm.Total)
}

func TestToStorefrontVM_MapsCards(t *testing.T) {
	td := helpers.NewTestData()
	featured := td.FeaturedProperty("f1", 200)
	ordinary := td.PublishedProperty("p1", "Manizales", "Palermo", 100)

	vm := NewPropertyPresenter().ToStorefrontVM(&application.StorefrontData{
		Featured: []*listing.Property{featured},
		Results:  []*listing.Property{ordinary},
		Total:    1,
	})

	require.Len(t, vm.Featured, 1)
	require.Len(t, vm.Results, 1)
	assert.Equal(t, "f1", vm.Featured[0].ID)
	assert.True(t, vm.Featured[0].IsFeatured)
	assert.Equal(t, "p1", vm.Results[0].ID)
	assert.Equal(t, 1, vm.Total)
}

func TestToCard_PriceDisplayGroupsDigits(t *testing.T) {
	td := helpers.NewTestData()
	prop := td.PublishedProperty("p1", "Manizales", "Palermo", 100)
	prop.Price = 1500000

	cards := NewPropertyPresenter().ToCards([]*listing.Property{prop})

	require.Len(t, cards, 1)
	assert.Equal(t, "$ 1.500.000", cards[0].PriceDisplay)
}

func TestToCard_PrincipalImageSelection(t *testing.T) {
	td := helpers.NewTestData()
	prop := td.PublishedProperty("p1", "Manizales", "Palermo", 100)
	prop.Images = []listing.Image{
		{ID: "a", URL: "/media/a.jpg", IsPrincipal: false},
		{ID: "b", URL: "/media/b.jpg", IsPrincipal: true},
	}

	cards := NewPropertyPresenter().ToCards([]*listing.Property{prop})

	require.Len(t, cards, 1)
	require.NotNil(t, cards[0].PrincipalImage)
	assert.Equal(t, "b", cards[0].PrincipalImage.ID)
}

func TestToDetailVM_MapsOptionalFields(t *testing.T) {
	td := helpers.NewTestData()
	prop := td.PublishedProperty("p1", "Manizales", "Palermo", 100)
	prop.AdministrationFee = 250000
	prop.Features.Set(listing.FeatureBalcony, true)
	prop.Features.Set(listing.FeatureElevator, true)

	detail := NewPropertyPresenter().ToDetailVM(prop)

	assert.Equal(t, 250000.0, detail.AdministrationFee)
	assert.Equal(t, "$ 250.000", detail.AdminFeeDisplay)
	assert.ElementsMatch(t, []string{"balcony", "elevator"}, detail.Features)
	assert.NotNil(t, detail.Images)
}

func TestToDashboardVM_NilStatsReturnsDefaults(t *testing.T) {
	p := NewAdminPresenter(NewPropertyPresenter())

	vm := p.ToDashboardVM(nil)

	require.NotNil(t, vm)
	assert.NotNil(t, vm.ByType)
	assert.NotNil(t, vm.Recent)
}

func TestToDashboardVM_MapsCounts(t *testing.T) {
	td := helpers.NewTestData()
	p := NewAdminPresenter(NewPropertyPresenter())

	vm := p.ToDashboardVM(&application.DashboardStats{
		Total:     3,
		Published: 2,
		Drafts:    1,
		Featured:  1,
		ByType:    map[listing.PropertyType]int{listing.TypeApartment: 2, listing.TypeHouse: 1},
		Recent:    []*listing.Property{td.PublishedProperty("p1", "Manizales", "Palermo", 100)},
	})

	assert.Equal(t, 3, vm.Total)
	assert.Equal(t, 2, vm.ByType["apartment"])
	assert.Equal(t, 1, vm.ByType["house"])
	require.Len(t, vm.Recent, 1)
	assert.Equal(t, "p1", vm.Recent[0].ID)
}
