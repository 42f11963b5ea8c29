package services

import (
	"gorm.io/gorm"
)

const (
	DefaultPageSize = 50
	MaxPageSize     = 100
)

// PageParams is a 1-based page request
type PageParams struct {
	Page int
	Size int
}

// NewPageParams normalizes page and size, applying defaults and the size cap
func NewPageParams(page, size int) PageParams {
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = DefaultPageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}
	return PageParams{Page: page, Size: size}
}

func (p PageParams) Offset() int {
	return (p.Page - 1) * p.Size
}

// Page is the envelope returned by list endpoints
type Page[T any] struct {
	Items []T   `json:"items"`
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Size  int   `json:"size"`
}

// EmptyPage returns a page with no items for the given request
func EmptyPage[T any](params PageParams) *Page[T] {
	return &Page[T]{Items: make([]T, 0), Page: params.Page, Size: params.Size}
}

// Paginate counts the rows matched by query and loads one page of them.
// The order is applied after counting since postgres rejects ORDER BY on count queries.
func Paginate[T any](query *gorm.DB, order string, params PageParams) (*Page[T], error) {
	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	items := make([]T, 0)
	if err := query.Order(order).
		Offset(params.Offset()).
		Limit(params.Size).
		Find(&items).Error; err != nil {
		return nil, err
	}

	return &Page[T]{
		Items: items,
		Total: total,
		Page:  params.Page,
		Size:  params.Size,
	}, nil
}
