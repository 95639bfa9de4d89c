package application

import (
	"context"

	"inmohub/domain/contracts"
	"inmohub/domain/listing"
)

// StorefrontData is the business data for the public storefront: the
// featured strip plus the filtered, sorted main grid.
type StorefrontData struct {
	Featured []*listing.Property
	Results  []*listing.Property
	Total    int
}

// CatalogService handles the public browsing pipeline: repository fetch,
// in-memory visibility policy, filter predicate, sort comparator. The
// policy is applied even though public sessions already get pre-filtered
// rows, because the fetched set must never be assumed public-safe.
type CatalogService struct {
	repo contracts.PropertyRepository
}

// NewCatalogService creates a catalog service with repository dependency injection.
func NewCatalogService(repo contracts.PropertyRepository) *CatalogService {
	return &CatalogService{repo: repo}
}

// Browse returns the filtered and sorted main grid. Featured records are
// excluded (they render in their own strip) so nothing displays twice.
func (s *CatalogService) Browse(ctx context.Context, criteria listing.Criteria, sortKey listing.SortKey) ([]*listing.Property, error) {
	all, err := s.repo.List(ctx, contracts.PublicSession())
	if err != nil {
		return nil, err
	}

	visible := listing.SelectOrdinary(all)
	matched := listing.Filter(visible, criteria)
	return listing.Order(matched, sortKey), nil
}

// Storefront returns featured and ordinary results in one pass over a
// single repository snapshot.
func (s *CatalogService) Storefront(ctx context.Context, criteria listing.Criteria, sortKey listing.SortKey) (*StorefrontData, error) {
	all, err := s.repo.List(ctx, contracts.PublicSession())
	if err != nil {
		return nil, err
	}

	matched := listing.Filter(listing.SelectOrdinary(all), criteria)
	return &StorefrontData{
		Featured: listing.SelectFeatured(all),
		Results:  listing.Order(matched, sortKey),
		Total:    len(matched),
	}, nil
}

// Featured returns the published, featured records.
func (s *CatalogService) Featured(ctx context.Context) ([]*listing.Property, error) {
	all, err := s.repo.List(ctx, contracts.PublicSession())
	if err != nil {
		return nil, err
	}
	return listing.SelectFeatured(all), nil
}

// GetPublished returns one published record for the permalink detail view.
// Missing, deleted and unpublished records all surface as ErrNotFound so
// the caller renders a distinct "not available" state.
func (s *CatalogService) GetPublished(ctx context.Context, id string) (*listing.Property, error) {
	p, err := s.repo.GetByID(ctx, contracts.PublicSession(), id)
	if err != nil {
		return nil, err
	}
	if !p.IsPublished() {
		return nil, contracts.ErrNotFound
	}
	return p, nil
}
