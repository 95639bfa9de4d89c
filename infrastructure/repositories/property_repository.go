package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"inmohub/database"
	"inmohub/domain/contracts"
	"inmohub/domain/listing"
)

// SqlxPropertyRepository implements contracts.PropertyRepository over the
// SQLite store. Row-level visibility is keyed on the caller's session:
// unauthenticated callers only ever see published rows.
type SqlxPropertyRepository struct {
	*BaseRepository
	db *database.Database
}

// NewSqlxPropertyRepository creates a property repository backed by the database.
func NewSqlxPropertyRepository(db *database.Database) *SqlxPropertyRepository {
	return &SqlxPropertyRepository{
		BaseRepository: NewBaseRepository(db),
		db:             db,
	}
}

type propertyRow struct {
	ID                string          `db:"id"`
	Code              string          `db:"code"`
	Title             string          `db:"title"`
	Description       string          `db:"description"`
	Department        string          `db:"department"`
	City              string          `db:"city"`
	Neighborhood      string          `db:"neighborhood"`
	FullAddress       string          `db:"full_address"`
	Stratum           sql.NullInt64   `db:"stratum"`
	Operation         string          `db:"operation"`
	PropertyType      string          `db:"property_type"`
	Price             float64         `db:"price"`
	AdministrationFee float64         `db:"administration_fee"`
	IsNegotiable      bool            `db:"is_negotiable"`
	BuiltArea         sql.NullFloat64 `db:"built_area"`
	Bedrooms          sql.NullInt64   `db:"bedrooms"`
	FullBathrooms     sql.NullInt64   `db:"full_bathrooms"`
	ParkingSpaces     sql.NullInt64   `db:"parking_spaces"`
	Condition         string          `db:"condition"`
	Furnished         string          `db:"furnished"`
	Kitchen           string          `db:"kitchen"`
	Surveillance      string          `db:"surveillance"`
	FeaturesJSON      string          `db:"features_json"`
	IsFeatured        bool            `db:"is_featured"`
	Status            string          `db:"status"`
	PublishedAt       string          `db:"published_at"`
}

type imageRow struct {
	ID          string `db:"id"`
	PropertyID  string `db:"property_id"`
	URL         string `db:"url"`
	AltText     string `db:"alt_text"`
	IsPrincipal bool   `db:"is_principal"`
	SortOrder   int    `db:"sort_order"`
}

const propertyColumns = `
	id, code, title, description, department, city, neighborhood, full_address,
	stratum, operation, property_type, price, administration_fee, is_negotiable,
	built_area, bedrooms, full_bathrooms, parking_spaces,
	condition, furnished, kitchen, surveillance,
	features_json, is_featured, status, published_at`

// List returns all rows visible under the caller's privilege, newest first.
func (r *SqlxPropertyRepository) List(ctx context.Context, session contracts.Session) ([]*listing.Property, error) {
	query := `SELECT` + propertyColumns + ` FROM properties`
	var args []any
	if !session.IsAdmin {
		query += ` WHERE status = ?`
		args = append(args, string(listing.StatusPublished))
	}
	query += ` ORDER BY published_at DESC, id`

	var rows []propertyRow
	if err := r.db.Read().SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list properties: %w", err)
	}

	props := make([]*listing.Property, 0, len(rows))
	for i := range rows {
		p, err := r.toDomain(&rows[i])
		if err != nil {
			return nil, err
		}
		props = append(props, p)
	}

	if err := r.attachImages(ctx, props); err != nil {
		return nil, err
	}
	return props, nil
}

// GetByID retrieves one row visible under the caller's privilege.
func (r *SqlxPropertyRepository) GetByID(ctx context.Context, session contracts.Session, id string) (*listing.Property, error) {
	query := `SELECT` + propertyColumns + ` FROM properties WHERE id = ?`
	args := []any{id}
	if !session.IsAdmin {
		query += ` AND status = ?`
		args = append(args, string(listing.StatusPublished))
	}

	var row propertyRow
	if err := r.db.Read().GetContext(ctx, &row, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, contracts.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get property %s: %w", id, err)
	}

	p, err := r.toDomain(&row)
	if err != nil {
		return nil, err
	}
	if err := r.attachImages(ctx, []*listing.Property{p}); err != nil {
		return nil, err
	}
	return p, nil
}

// Insert persists a new record, replacing any draft placeholder identity
// with a repository-assigned one.
func (r *SqlxPropertyRepository) Insert(ctx context.Context, p *listing.Property) (*listing.Property, error) {
	saved := p.Clone()
	saved.ID = uuid.NewString()

	err := r.db.WithTx(func(tx *sqlx.Tx) error {
		row, err := r.toRow(saved)
		if err != nil {
			return err
		}
		if _, err := tx.NamedExecContext(ctx, insertPropertySQL, row); err != nil {
			return fmt.Errorf("failed to insert property: %w", err)
		}
		return r.replaceImages(ctx, tx, saved)
	})
	if err != nil {
		return nil, err
	}
	return saved, nil
}

// Update replaces the record stored under id, preserving identity.
func (r *SqlxPropertyRepository) Update(ctx context.Context, id string, p *listing.Property) (*listing.Property, error) {
	saved := p.Clone()
	saved.ID = id

	err := r.db.WithTx(func(tx *sqlx.Tx) error {
		row, err := r.toRow(saved)
		if err != nil {
			return err
		}
		res, err := tx.NamedExecContext(ctx, updatePropertySQL, row)
		if err != nil {
			return fmt.Errorf("failed to update property %s: %w", id, err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to read update result: %w", err)
		}
		if affected == 0 {
			return contracts.ErrNotFound
		}
		return r.replaceImages(ctx, tx, saved)
	})
	if err != nil {
		return nil, err
	}
	return saved, nil
}

// Delete removes the record and, via cascade, its images. Hard delete.
func (r *SqlxPropertyRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithTx(func(tx *sqlx.Tx) error {
		res, err := tx.ExecContext(ctx, `DELETE FROM properties WHERE id = ?`, id)
		if err != nil {
			return fmt.Errorf("failed to delete property %s: %w", id, err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to read delete result: %w", err)
		}
		if affected == 0 {
			return contracts.ErrNotFound
		}
		return nil
	})
}

const insertPropertySQL = `
	INSERT INTO properties (` + propertyColumns + `)
	VALUES (
		:id, :code, :title, :description, :department, :city, :neighborhood, :full_address,
		:stratum, :operation, :property_type, :price, :administration_fee, :is_negotiable,
		:built_area, :bedrooms, :full_bathrooms, :parking_spaces,
		:condition, :furnished, :kitchen, :surveillance,
		:features_json, :is_featured, :status, :published_at
	)`

const updatePropertySQL = `
	UPDATE properties SET
		code = :code, title = :title, description = :description,
		department = :department, city = :city, neighborhood = :neighborhood,
		full_address = :full_address, stratum = :stratum,
		operation = :operation, property_type = :property_type,
		price = :price, administration_fee = :administration_fee,
		is_negotiable = :is_negotiable, built_area = :built_area,
		bedrooms = :bedrooms, full_bathrooms = :full_bathrooms,
		parking_spaces = :parking_spaces, condition = :condition,
		furnished = :furnished, kitchen = :kitchen, surveillance = :surveillance,
		features_json = :features_json, is_featured = :is_featured,
		status = :status, published_at = :published_at
	WHERE id = :id`

// replaceImages rewrites the image list for a property. Last write wins;
// ordering is preserved through sort_order.
func (r *SqlxPropertyRepository) replaceImages(ctx context.Context, tx *sqlx.Tx, p *listing.Property) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM property_images WHERE property_id = ?`, p.ID); err != nil {
		return fmt.Errorf("failed to clear images for %s: %w", p.ID, err)
	}
	for i, img := range p.Images {
		imgID := img.ID
		if imgID == "" {
			imgID = uuid.NewString()
		}
		_, err := tx.ExecContext(ctx,
			`INSERT INTO property_images (id, property_id, url, alt_text, is_principal, sort_order)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			imgID, p.ID, img.URL, img.AltText, img.IsPrincipal, i)
		if err != nil {
			return fmt.Errorf("failed to insert image %d for %s: %w", i, p.ID, err)
		}
	}
	return nil
}

// attachImages loads the ordered image lists for the given properties.
func (r *SqlxPropertyRepository) attachImages(ctx context.Context, props []*listing.Property) error {
	if len(props) == 0 {
		return nil
	}

	byID := make(map[string]*listing.Property, len(props))
	ids := make([]string, 0, len(props))
	for _, p := range props {
		byID[p.ID] = p
		ids = append(ids, p.ID)
	}

	query, args, err := sqlx.In(
		`SELECT id, property_id, url, alt_text, is_principal, sort_order
		 FROM property_images WHERE property_id IN (?) ORDER BY property_id, sort_order`, ids)
	if err != nil {
		return fmt.Errorf("failed to build image query: %w", err)
	}

	var rows []imageRow
	if err := r.db.Read().SelectContext(ctx, &rows, r.db.Read().Rebind(query), args...); err != nil {
		return fmt.Errorf("failed to load images: %w", err)
	}

	for _, row := range rows {
		p := byID[row.PropertyID]
		if p == nil {
			continue
		}
		p.Images = append(p.Images, listing.Image{
			ID:          row.ID,
			URL:         row.URL,
			AltText:     row.AltText,
			IsPrincipal: row.IsPrincipal,
		})
	}
	return nil
}

func (r *SqlxPropertyRepository) toDomain(row *propertyRow) (*listing.Property, error) {
	features := listing.FeatureSet{}
	if row.FeaturesJSON != "" {
		if err := json.Unmarshal([]byte(row.FeaturesJSON), &features); err != nil {
			return nil, fmt.Errorf("corrupt features for property %s: %w", row.ID, err)
		}
	}

	publishedAt, err := time.Parse(time.RFC3339, row.PublishedAt)
	if err != nil {
		return nil, fmt.Errorf("corrupt published_at for property %s: %w", row.ID, err)
	}

	return &listing.Property{
		ID:                row.ID,
		Code:              row.Code,
		Title:             row.Title,
		Description:       row.Description,
		Department:        row.Department,
		City:              row.City,
		Neighborhood:      row.Neighborhood,
		FullAddress:       row.FullAddress,
		Stratum:           r.FromNullInt64ToPointer(row.Stratum),
		Operation:         listing.OperationType(row.Operation),
		Type:              listing.PropertyType(row.PropertyType),
		Price:             row.Price,
		AdministrationFee: row.AdministrationFee,
		IsNegotiable:      row.IsNegotiable,
		BuiltArea:         r.FromNullFloat64ToPointer(row.BuiltArea),
		Bedrooms:          r.FromNullInt64ToPointer(row.Bedrooms),
		FullBathrooms:     r.FromNullInt64ToPointer(row.FullBathrooms),
		ParkingSpaces:     r.FromNullInt64ToPointer(row.ParkingSpaces),
		Condition:         listing.PropertyCondition(row.Condition),
		Furnished:         listing.FurnishedState(row.Furnished),
		Kitchen:           listing.KitchenType(row.Kitchen),
		Surveillance:      listing.SurveillanceType(row.Surveillance),
		Features:          features,
		IsFeatured:        row.IsFeatured,
		Status:            listing.PublicationStatus(row.Status),
		PublishedAt:       publishedAt,
	}, nil
}

func (r *SqlxPropertyRepository) toRow(p *listing.Property) (*propertyRow, error) {
	featuresJSON, err := json.Marshal(p.Features)
	if err != nil {
		return nil, fmt.Errorf("failed to encode features for %s: %w", p.ID, err)
	}

	return &propertyRow{
		ID:                p.ID,
		Code:              p.Code,
		Title:             p.Title,
		Description:       p.Description,
		Department:        p.Department,
		City:              p.City,
		Neighborhood:      p.Neighborhood,
		FullAddress:       p.FullAddress,
		Stratum:           r.ToNullInt64(p.Stratum),
		Operation:         string(p.Operation),
		PropertyType:      string(p.Type),
		Price:             p.Price,
		AdministrationFee: p.AdministrationFee,
		IsNegotiable:      p.IsNegotiable,
		BuiltArea:         r.ToNullFloat64(p.BuiltArea),
		Bedrooms:          r.ToNullInt64(p.Bedrooms),
		FullBathrooms:     r.ToNullInt64(p.FullBathrooms),
		ParkingSpaces:     r.ToNullInt64(p.ParkingSpaces),
		Condition:         string(p.Condition),
		Furnished:         string(p.Furnished),
		Kitchen:           string(p.Kitchen),
		Surveillance:      string(p.Surveillance),
		FeaturesJSON:      string(featuresJSON),
		IsFeatured:        p.IsFeatured,
		Status:            string(p.Status),
		PublishedAt:       p.PublishedAt.UTC().Format(time.RFC3339),
	}, nil
}
