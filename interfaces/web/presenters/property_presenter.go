// Package presenters transforms domain data into API-ready view models.
package presenters

import (
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"inmohub/application"
	"inmohub/domain/listing"
)

// ImageVM is one media entry on a property view model.
type ImageVM struct {
	ID          string `json:"id"`
	URL         string `json:"url"`
	AltText     string `json:"alt_text"`
	IsPrincipal bool   `json:"is_principal"`
}

// PropertyCardVM is the compact view model for listing grids.
type PropertyCardVM struct {
	ID             string   `json:"id"`
	Code           string   `json:"code,omitempty"`
	Title          string   `json:"title"`
	City           string   `json:"city"`
	Neighborhood   string   `json:"neighborhood"`
	Operation      string   `json:"operation"`
	Type           string   `json:"type"`
	Price          float64  `json:"price"`
	PriceDisplay   string   `json:"price_display"`
	IsNegotiable   bool     `json:"is_negotiable"`
	Area           float64  `json:"area,omitempty"`
	Bedrooms       int      `json:"bedrooms,omitempty"`
	Bathrooms      int      `json:"bathrooms,omitempty"`
	Parking        int      `json:"parking,omitempty"`
	IsFeatured     bool     `json:"is_featured"`
	PrincipalImage *ImageVM `json:"principal_image,omitempty"`
}

// PropertyDetailVM is the full view model for the permalink page.
type PropertyDetailVM struct {
	PropertyCardVM
	Description       string    `json:"description"`
	Department        string    `json:"department"`
	FullAddress       string    `json:"full_address,omitempty"`
	Stratum           *int      `json:"stratum,omitempty"`
	AdministrationFee float64   `json:"administration_fee,omitempty"`
	AdminFeeDisplay   string    `json:"administration_fee_display,omitempty"`
	Condition         string    `json:"condition,omitempty"`
	Furnished         string    `json:"furnished,omitempty"`
	Kitchen           string    `json:"kitchen,omitempty"`
	Surveillance      string    `json:"surveillance,omitempty"`
	Features          []string  `json:"features"`
	Images            []ImageVM `json:"images"`
	PublishedAt       time.Time `json:"published_at"`
}

// StorefrontVM is the view model for the storefront endpoint.
type StorefrontVM struct {
	Featured []PropertyCardVM `json:"featured"`
	Results  []PropertyCardVM `json:"results"`
	Total    int              `json:"total"`
}

// PropertyPresenter transforms catalog data for API display. Prices are
// formatted for the Colombian market (grouped digits, no decimals).
type PropertyPresenter struct {
	printer *message.Printer
}

// NewPropertyPresenter creates a property presenter.
func NewPropertyPresenter() *PropertyPresenter {
	return &PropertyPresenter{
		printer: message.NewPrinter(language.Spanish),
	}
}

// ToStorefrontVM converts storefront business data to the API view model.
// Returns safe defaults if data is nil.
func (p *PropertyPresenter) ToStorefrontVM(data *application.StorefrontData) *StorefrontVM {
	if data == nil {
		return &StorefrontVM{Featured: []PropertyCardVM{}, Results: []PropertyCardVM{}}
	}
	return &StorefrontVM{
		Featured: p.ToCards(data.Featured),
		Results:  p.ToCards(data.Results),
		Total:    data.Total,
	}
}

// ToCards converts properties to card view models. Never returns nil so the
// JSON encodes as an empty array.
func (p *PropertyPresenter) ToCards(props []*listing.Property) []PropertyCardVM {
	cards := make([]PropertyCardVM, 0, len(props))
	for _, prop := range props {
		cards = append(cards, p.toCard(prop))
	}
	return cards
}

func (p *PropertyPresenter) toCard(prop *listing.Property) PropertyCardVM {
	card := PropertyCardVM{
		ID:           prop.ID,
		Code:         prop.Code,
		Title:        prop.Title,
		City:         prop.City,
		Neighborhood: prop.Neighborhood,
		Operation:    string(prop.Operation),
		Type:         string(prop.Type),
		Price:        prop.Price,
		PriceDisplay: p.formatPrice(prop.Price),
		IsNegotiable: prop.IsNegotiable,
		Area:         prop.Area(),
		Bedrooms:     prop.BedroomCount(),
		Bathrooms:    prop.BathroomCount(),
		Parking:      prop.ParkingCount(),
		IsFeatured:   prop.IsFeatured,
	}
	if img := prop.PrincipalImage(); img != nil {
		vm := toImageVM(*img)
		card.PrincipalImage = &vm
	}
	return card
}

// ToDetailVM converts a property to the full permalink view model.
func (p *PropertyPresenter) ToDetailVM(prop *listing.Property) *PropertyDetailVM {
	detail := &PropertyDetailVM{
		PropertyCardVM: p.toCard(prop),
		Description:    prop.Description,
		Department:     prop.Department,
		FullAddress:    prop.FullAddress,
		Stratum:        prop.Stratum,
		Condition:      string(prop.Condition),
		Furnished:      string(prop.Furnished),
		Kitchen:        string(prop.Kitchen),
		Surveillance:   string(prop.Surveillance),
		Features:       featureNames(prop.Features),
		Images:         toImageVMs(prop.Images),
		PublishedAt:    prop.PublishedAt,
	}
	if prop.AdministrationFee > 0 {
		detail.AdministrationFee = prop.AdministrationFee
		detail.AdminFeeDisplay = p.formatPrice(prop.AdministrationFee)
	}
	return detail
}

// formatPrice renders a COP amount with grouped digits, e.g. "$ 1.500.000".
func (p *PropertyPresenter) formatPrice(amount float64) string {
	return p.printer.Sprintf("$ %d", int64(amount))
}

func featureNames(set listing.FeatureSet) []string {
	enabled := set.Enabled()
	names := make([]string, 0, len(enabled))
	for _, f := range enabled {
		names = append(names, string(f))
	}
	return names
}

func toImageVM(img listing.Image) ImageVM {
	return ImageVM{
		ID:          img.ID,
		URL:         img.URL,
		AltText:     img.AltText,
		IsPrincipal: img.IsPrincipal,
	}
}

func toImageVMs(images []listing.Image) []ImageVM {
	out := make([]ImageVM, 0, len(images))
	for _, img := range images {
		out = append(out, toImageVM(img))
	}
	return out
}
