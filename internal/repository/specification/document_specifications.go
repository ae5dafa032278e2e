package specification

import "gorm.io/gorm"

// NotDeleted filters out soft-deleted records explicitly. GORM already scopes
// soft deletes when DeletedAt is present; this exists for raw table queries.
type NotDeleted struct{}

func (s NotDeleted) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("deleted_at IS NULL")
}

// BySource filters chunks belonging to one uploaded document.
type BySource struct {
	Source string
}

func (s BySource) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("source = ?", s.Source)
}

// ByChunkOrder orders chunks the way they appear in the document.
type ByChunkOrder struct{}

func (s ByChunkOrder) Apply(db *gorm.DB) *gorm.DB {
	return db.Order("source ASC, chunk_index ASC")
}
