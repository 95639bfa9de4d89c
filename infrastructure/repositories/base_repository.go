package repositories

import (
	"database/sql"

	"inmohub/database"
)

// BaseRepository provides common SQL type conversion methods and database
// access that can be embedded in all repositories.
type BaseRepository struct {
	db *database.Database
}

// NewBaseRepository creates a new BaseRepository with database access
func NewBaseRepository(db *database.Database) *BaseRepository {
	return &BaseRepository{db: db}
}

// FromNullInt64ToPointer safely converts sql.NullInt64 to *int.
// Returns nil if the SQL value is NULL.
func (b *BaseRepository) FromNullInt64ToPointer(ni sql.NullInt64) *int {
	if !ni.Valid {
		return nil
	}
	v := int(ni.Int64)
	return &v
}

// FromNullFloat64ToPointer safely converts sql.NullFloat64 to *float64.
// Returns nil if the SQL value is NULL.
func (b *BaseRepository) FromNullFloat64ToPointer(nf sql.NullFloat64) *float64 {
	if !nf.Valid {
		return nil
	}
	v := nf.Float64
	return &v
}

// ToNullInt64 converts an *int to sql.NullInt64.
// Nil pointer becomes NULL for database storage.
func (b *BaseRepository) ToNullInt64(i *int) sql.NullInt64 {
	if i == nil {
		return sql.NullInt64{Valid: false}
	}
	return sql.NullInt64{Int64: int64(*i), Valid: true}
}

// ToNullFloat64 converts a *float64 to sql.NullFloat64.
// Nil pointer becomes NULL for database storage.
func (b *BaseRepository) ToNullFloat64(f *float64) sql.NullFloat64 {
	if f == nil {
		return sql.NullFloat64{Valid: false}
	}
	return sql.NullFloat64{Float64: *f, Valid: true}
}
