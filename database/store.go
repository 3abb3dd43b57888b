package database

import (
	"errors"

	"gorm.io/gorm"
)

// PageOptions controls Paginate. Populate lists association names to preload.
type PageOptions struct {
	Page     int
	Limit    int
	Populate []string
}

// PageResult is the pagination envelope shared by every entity type
type PageResult[T any] struct {
	Docs       []T   `json:"docs"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalDocs  int64 `json:"total_docs"`
	TotalPages int   `json:"total_pages"`
}

// FindOne returns the first entity matching filter, or nil when no visible
// row matches. A soft-deleted row is indistinguishable from an absent one.
func FindOne[T any](db *gorm.DB, filter map[string]interface{}) (*T, error) {
	var entity T
	err := db.Where(filter).First(&entity).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &entity, nil
}

// FindByID is FindOne keyed on the primary key
func FindByID[T any](db *gorm.DB, id uint) (*T, error) {
	return FindOne[T](db, map[string]interface{}{"id": id})
}

// UpdateByID applies patch to the entity with the given id and returns the
// updated row, or nil when the id does not resolve to a visible row.
func UpdateByID[T any](db *gorm.DB, id uint, patch map[string]interface{}) (*T, error) {
	var entity T
	err := db.Where("id = ?", id).First(&entity).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if err := db.Model(&entity).Updates(patch).Error; err != nil {
		return nil, err
	}
	return &entity, nil
}

// Paginate returns one page of entities matching filter, newest first
func Paginate[T any](db *gorm.DB, filter map[string]interface{}, opts PageOptions) (*PageResult[T], error) {
	page := opts.Page
	if page < 1 {
		page = 1
	}
	limit := opts.Limit
	if limit < 1 {
		limit = 10
	}

	query := db.Model(new(T))
	if len(filter) > 0 {
		query = query.Where(filter)
	}
	for _, assoc := range opts.Populate {
		query = query.Preload(assoc)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	docs := make([]T, 0, limit)
	offset := (page - 1) * limit
	if err := query.Offset(offset).Limit(limit).Order("created_at desc").Find(&docs).Error; err != nil {
		return nil, err
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return &PageResult[T]{
		Docs:       docs,
		Page:       page,
		Limit:      limit,
		TotalDocs:  total,
		TotalPages: totalPages,
	}, nil
}
