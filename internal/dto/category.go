package dto

import (
	"time"

	"github.com/fintrack-app/fintrack_backend/internal/core/domain"
)

// CreateCategoryRequest defines the data needed to create a category.
type CreateCategoryRequest struct {
	Name string              `json:"name" binding:"required"`
	Kind domain.CategoryKind `json:"kind" binding:"required,oneof=EXPENSE INCOME"`
}

// UpdateCategoryRequest defines the editable category fields.
type UpdateCategoryRequest struct {
	Name *string `json:"name"`
}

// CategoryResponse defines the data returned for a category.
type CategoryResponse struct {
	CategoryID string              `json:"categoryID"`
	Name       string              `json:"name"`
	Kind       domain.CategoryKind `json:"kind"`
	IsDefault  bool                `json:"isDefault"`
	CreatedAt  time.Time           `json:"createdAt"`
}

// ToCategoryResponse converts a domain.Category to CategoryResponse.
func ToCategoryResponse(c *domain.Category) CategoryResponse {
	return CategoryResponse{
		CategoryID: c.CategoryID,
		Name:       c.Name,
		Kind:       c.Kind,
		IsDefault:  c.IsDefault(),
		CreatedAt:  c.CreatedAt,
	}
}

// ToListCategoryResponse converts a slice of domain.Category.
func ToListCategoryResponse(categories []domain.Category) []CategoryResponse {
	res := make([]CategoryResponse, len(categories))
	for i := range categories {
		res[i] = ToCategoryResponse(&categories[i])
	}
	return res
}
