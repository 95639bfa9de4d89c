package listing

import (
	"strings"
	"time"
)

// DraftIDPrefix marks client-generated placeholder identities. The
// repository replaces them with its own identity on first insert.
const DraftIDPrefix = "draft_"

// Image is one entry in a property's ordered media list. Among a non-empty
// list exactly one image is principal; the Draft operations maintain that
// invariant, the repository only stores what it is given.
type Image struct {
	ID          string
	URL         string
	AltText     string
	IsPrincipal bool
}

// Property is one real-estate listing record.
type Property struct {
	ID   string
	Code string

	Title       string
	Description string

	Department   string
	City         string
	Neighborhood string
	FullAddress  string
	Stratum      *int // socioeconomic stratum, 1-6

	Operation OperationType
	Type      PropertyType

	Price             float64
	AdministrationFee float64 // 0 means none
	IsNegotiable      bool

	BuiltArea     *float64 // m², nil when not declared
	Bedrooms      *int
	FullBathrooms *int
	ParkingSpaces *int

	Condition    PropertyCondition
	Furnished    FurnishedState
	Kitchen      KitchenType
	Surveillance SurveillanceType

	Features FeatureSet

	Images []Image

	IsFeatured  bool
	Status      PublicationStatus
	PublishedAt time.Time
}

// IsPersisted reports whether the record carries a repository-assigned
// identity rather than a client-generated draft placeholder.
func (p *Property) IsPersisted() bool {
	return p.ID != "" && !strings.HasPrefix(p.ID, DraftIDPrefix)
}

// IsPublished reports whether the record is publicly visible.
func (p *Property) IsPublished() bool {
	return p.Status == StatusPublished
}

// BedroomCount returns the declared bedroom count, 0 when not declared.
func (p *Property) BedroomCount() int {
	if p.Bedrooms == nil {
		return 0
	}
	return *p.Bedrooms
}

// BathroomCount returns the declared full bathroom count, 0 when not declared.
func (p *Property) BathroomCount() int {
	if p.FullBathrooms == nil {
		return 0
	}
	return *p.FullBathrooms
}

// ParkingCount returns the declared parking spaces, 0 when not declared.
func (p *Property) ParkingCount() int {
	if p.ParkingSpaces == nil {
		return 0
	}
	return *p.ParkingSpaces
}

// Area returns the declared built area, 0 when not declared.
func (p *Property) Area() float64 {
	if p.BuiltArea == nil {
		return 0
	}
	return *p.BuiltArea
}

// HasFeature reports whether the amenity flag is enabled on the property.
func (p *Property) HasFeature(f Feature) bool {
	return p.Features.Has(f)
}

// PrincipalImage returns the cover image, or the first image when none is
// marked principal, or nil for an empty list.
func (p *Property) PrincipalImage() *Image {
	for i := range p.Images {
		if p.Images[i].IsPrincipal {
			return &p.Images[i]
		}
	}
	if len(p.Images) > 0 {
		return &p.Images[0]
	}
	return nil
}

// Clone returns a deep copy of the property. The images slice and feature
// set are copied so mutations on the clone never reach the original.
func (p *Property) Clone() *Property {
	out := *p
	out.Features = p.Features.Clone()
	if p.Images != nil {
		out.Images = make([]Image, len(p.Images))
		copy(out.Images, p.Images)
	}
	if p.Stratum != nil {
		v := *p.Stratum
		out.Stratum = &v
	}
	if p.BuiltArea != nil {
		v := *p.BuiltArea
		out.BuiltArea = &v
	}
	if p.Bedrooms != nil {
		v := *p.Bedrooms
		out.Bedrooms = &v
	}
	if p.FullBathrooms != nil {
		v := *p.FullBathrooms
		out.FullBathrooms = &v
	}
	if p.ParkingSpaces != nil {
		v := *p.ParkingSpaces
		out.ParkingSpaces = &v
	}
	return &out
}
