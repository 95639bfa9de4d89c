package helpers

import (
	"fmt"
	"time"

	"github.com/stretchr/testify/mock"

	"inmohub/domain/listing"
	"inmohub/test/mocks"
)

// MockCollaborators holds the external-collaborator mocks for easy injection
type MockCollaborators struct {
	Repo   *mocks.MockPropertyRepository
	Images *mocks.MockImageStorage
}

// NewMockCollaborators creates a fresh set of collaborator mocks
func NewMockCollaborators() *MockCollaborators {
	return &MockCollaborators{
		Repo:   &mocks.MockPropertyRepository{},
		Images: &mocks.MockImageStorage{},
	}
}

// ExpectList sets up expectations for a repository list under any session
func (m *MockCollaborators) ExpectList(props []*listing.Property) {
	m.Repo.On("List", mock.Anything, mock.Anything).Return(props, nil)
}

// ExpectListError sets up expectations for a failing repository list
func (m *MockCollaborators) ExpectListError(err error) {
	m.Repo.On("List", mock.Anything, mock.Anything).Return(nil, err)
}

// ExpectUpload sets up expectations for a successful upload of filename
func (m *MockCollaborators) ExpectUpload(filename, url string) {
	m.Images.On("Upload", mock.Anything, filename, mock.Anything).Return(url, nil)
}

// ExpectUploadFailure sets up expectations for a failing upload of filename
func (m *MockCollaborators) ExpectUploadFailure(filename string, err error) {
	m.Images.On("Upload", mock.Anything, filename, mock.Anything).Return("", err)
}

// AssertAllExpectations verifies all mock expectations
func (m *MockCollaborators) AssertAllExpectations(t mock.TestingT) {
	m.Repo.AssertExpectations(t)
	m.Images.AssertExpectations(t)
}

// TestData provides builders for common fixtures
type TestData struct{}

// NewTestData creates a test data builder
func NewTestData() *TestData {
	return &TestData{}
}

// PublishedProperty creates a minimal published listing
func (d *TestData) PublishedProperty(id, city, neighborhood string, price float64) *listing.Property {
	return &listing.Property{
		ID:           id,
		Code:         fmt.Sprintf("OL-%s", id),
		Title:        fmt.Sprintf("Listing %s", id),
		Description:  "Test listing",
		City:         city,
		Neighborhood: neighborhood,
		Operation:    listing.OperationSale,
		Type:         listing.TypeApartment,
		Price:        price,
		Condition:    listing.ConditionUsed,
		Furnished:    listing.Unfurnished,
		Status:       listing.StatusPublished,
		PublishedAt:  time.Now().UTC(),
	}
}

// FeaturedProperty creates a published, featured listing
func (d *TestData) FeaturedProperty(id string, price float64) *listing.Property {
	p := d.PublishedProperty(id, "Manizales", "Palermo", price)
	p.IsFeatured = true
	return p
}

// DraftProperty creates an unpublished listing
func (d *TestData) DraftProperty(id string) *listing.Property {
	p := d.PublishedProperty(id, "Manizales", "Centro", 100)
	p.Status = listing.StatusDraft
	return p
}

// ValidDraft creates a draft that passes validation
func (d *TestData) ValidDraft() *listing.Draft {
	draft := listing.NewDraft()
	draft.Title = "Apartamento centro"
	draft.Description = "Amplio y iluminado"
	draft.City = "Manizales"
	draft.Neighborhood = "Palermo"
	draft.Price = 350
	return draft
}

// TestTime returns a timestamp the given number of days ago
func TestTime(daysAgo int) time.Time {
	return time.Now().UTC().AddDate(0, 0, -daysAgo)
}
