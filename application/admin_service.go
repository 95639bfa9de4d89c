package application

import (
	"context"
	"fmt"
	"sort"

	"golang.org/x/sync/errgroup"

	"inmohub/domain/contracts"
	"inmohub/domain/listing"
	"inmohub/logging"
)

// UploadError reports which image slot's upload failed so the user knows
// which attachment needs attention, distinct from a generic save failure.
type UploadError struct {
	ImageID  string
	Filename string
	Err      error
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("upload of %q failed: %v", e.Filename, e.Err)
}

func (e *UploadError) Unwrap() error {
	return e.Err
}

// DashboardStats summarizes the back-office overview panel.
type DashboardStats struct {
	Total     int
	Published int
	Drafts    int
	Paused    int
	Featured  int
	ByType    map[listing.PropertyType]int
	Recent    []*listing.Property
}

// recentLimit caps the dashboard's recent-activity list.
const recentLimit = 5

// AdminService orchestrates back-office CRUD: draft validation, the
// upload-then-persist save sequence, deletion and dashboard aggregates.
type AdminService struct {
	repo   contracts.PropertyRepository
	images contracts.ImageStorage
	logger *logging.Logger
}

// NewAdminService creates an admin service with its collaborators injected.
func NewAdminService(repo contracts.PropertyRepository, images contracts.ImageStorage, logger *logging.Logger) *AdminService {
	return &AdminService{
		repo:   repo,
		images: images,
		logger: logger.WithComponent("admin"),
	}
}

// ListAll returns every row regardless of publication status.
func (s *AdminService) ListAll(ctx context.Context, session contracts.Session) ([]*listing.Property, error) {
	return s.repo.List(ctx, session)
}

// Get returns one row regardless of publication status.
func (s *AdminService) Get(ctx context.Context, session contracts.Session, id string) (*listing.Property, error) {
	return s.repo.GetByID(ctx, session, id)
}

// Save validates the draft, uploads every pending image file, then inserts
// or updates the record. The commit is all-or-nothing: any validation or
// upload failure aborts before the repository is touched, leaving the draft
// editable for retry. Uploads for independent slots run concurrently.
func (s *AdminService) Save(ctx context.Context, draft *listing.Draft) (*listing.Property, error) {
	if errs := draft.Validate(); errs != nil {
		return nil, errs
	}

	if err := s.uploadPending(ctx, draft); err != nil {
		return nil, err
	}

	rec := draft.ToSavedRecord()

	var saved *listing.Property
	var err error
	if rec.IsPersisted() {
		saved, err = s.repo.Update(ctx, rec.ID, rec)
	} else {
		saved, err = s.repo.Insert(ctx, rec)
	}
	if err != nil {
		return nil, err
	}

	s.logger.Catalog("Property saved",
		"id", saved.ID,
		"title", saved.Title,
		"status", string(saved.Status),
		"images", len(saved.Images))
	return saved, nil
}

// uploadPending pushes every upload-pending slot to blob storage and
// substitutes the durable URLs into the draft. Uploads are independent and
// run concurrently; the first failure cancels the rest and aborts the save.
func (s *AdminService) uploadPending(ctx context.Context, draft *listing.Draft) error {
	pending := draft.PendingUploads()
	if len(pending) == 0 {
		return nil
	}

	type result struct {
		imageID string
		url     string
	}

	g, gctx := errgroup.WithContext(ctx)
	results := make(chan result, len(pending))

	for imageID, file := range pending {
		g.Go(func() error {
			url, err := s.images.Upload(gctx, file.Filename, file.Data)
			if err != nil {
				return &UploadError{ImageID: imageID, Filename: file.Filename, Err: err}
			}
			results <- result{imageID: imageID, url: url}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	close(results)

	for res := range results {
		draft.ResolveUpload(res.imageID, res.url)
	}
	return nil
}

// Delete removes a record permanently, then garbage-collects its media
// blobs. Blob cleanup is best-effort: the record is already gone, so a
// failed removal is logged and the delete still succeeds.
func (s *AdminService) Delete(ctx context.Context, session contracts.Session, id string) error {
	existing, err := s.repo.GetByID(ctx, session, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	for _, img := range existing.Images {
		if err := s.images.Remove(ctx, img.URL); err != nil {
			s.logger.Storage("Orphaned blob cleanup failed", "id", id, "url", img.URL, "error", err.Error())
		}
	}

	s.logger.Catalog("Property deleted", "id", id, "images", len(existing.Images))
	return nil
}

// UploadImage stores a standalone image and returns its durable URL, for
// the direct upload endpoint.
func (s *AdminService) UploadImage(ctx context.Context, filename string, data []byte) (string, error) {
	return s.images.Upload(ctx, filename, data)
}

// Stats computes the dashboard aggregates from a full fetch.
func (s *AdminService) Stats(ctx context.Context, session contracts.Session) (*DashboardStats, error) {
	all, err := s.repo.List(ctx, session)
	if err != nil {
		return nil, err
	}

	stats := &DashboardStats{
		Total:  len(all),
		ByType: make(map[listing.PropertyType]int),
	}
	for _, p := range all {
		switch p.Status {
		case listing.StatusPublished:
			stats.Published++
		case listing.StatusDraft:
			stats.Drafts++
		case listing.StatusPaused:
			stats.Paused++
		}
		if p.IsFeatured {
			stats.Featured++
		}
		stats.ByType[p.Type]++
	}

	recent := make([]*listing.Property, len(all))
	copy(recent, all)
	sort.SliceStable(recent, func(i, j int) bool {
		return recent[i].PublishedAt.After(recent[j].PublishedAt)
	})
	if len(recent) > recentLimit {
		recent = recent[:recentLimit]
	}
	stats.Recent = recent

	return stats, nil
}
