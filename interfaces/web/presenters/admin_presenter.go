package presenters

import (
	"time"

	"inmohub/application"
	"inmohub/domain/listing"
)

// AdminRowVM is one row in the back office property table.
type AdminRowVM struct {
	ID           string    `json:"id"`
	Code         string    `json:"code,omitempty"`
	Title        string    `json:"title"`
	City         string    `json:"city"`
	Neighborhood string    `json:"neighborhood"`
	Operation    string    `json:"operation"`
	Type         string    `json:"type"`
	Price        float64   `json:"price"`
	PriceDisplay string    `json:"price_display"`
	Status       string    `json:"status"`
	IsFeatured   bool      `json:"is_featured"`
	ImageCount   int       `json:"image_count"`
	PublishedAt  time.Time `json:"published_at"`
}

// DashboardVM is the view model for the back office dashboard.
type DashboardVM struct {
	Total     int            `json:"total"`
	Published int            `json:"published"`
	Drafts    int            `json:"drafts"`
	Paused    int            `json:"paused"`
	Featured  int            `json:"featured"`
	ByType    map[string]int `json:"by_type"`
	Recent    []AdminRowVM   `json:"recent"`
}

// AdminPresenter transforms back office data for API display.
type AdminPresenter struct {
	properties *PropertyPresenter
}

// NewAdminPresenter creates an admin presenter.
func NewAdminPresenter(properties *PropertyPresenter) *AdminPresenter {
	return &AdminPresenter{properties: properties}
}

// ToRows converts properties to back office table rows.
func (p *AdminPresenter) ToRows(props []*listing.Property) []AdminRowVM {
	rows := make([]AdminRowVM, 0, len(props))
	for _, prop := range props {
		rows = append(rows, p.toRow(prop))
	}
	return rows
}

func (p *AdminPresenter) toRow(prop *listing.Property) AdminRowVM {
	return AdminRowVM{
		ID:           prop.ID,
		Code:         prop.Code,
		Title:        prop.Title,
		City:         prop.City,
		Neighborhood: prop.Neighborhood,
		Operation:    string(prop.Operation),
		Type:         string(prop.Type),
		Price:        prop.Price,
		PriceDisplay: p.properties.formatPrice(prop.Price),
		Status:       string(prop.Status),
		IsFeatured:   prop.IsFeatured,
		ImageCount:   len(prop.Images),
		PublishedAt:  prop.PublishedAt,
	}
}

// ToDashboardVM converts dashboard statistics to the API view model.
// Returns safe defaults if stats is nil.
func (p *AdminPresenter) ToDashboardVM(stats *application.DashboardStats) *DashboardVM {
	if stats == nil {
		return &DashboardVM{ByType: map[string]int{}, Recent: []AdminRowVM{}}
	}
	byType := make(map[string]int, len(stats.ByType))
	for t, n := range stats.ByType {
		byType[string(t)] = n
	}
	return &DashboardVM{
		Total:     stats.Total,
		Published: stats.Published,
		Drafts:    stats.Drafts,
		Paused:    stats.Paused,
		Featured:  stats.Featured,
		ByType:    byType,
		Recent:    p.ToRows(stats.Recent),
	}
}
