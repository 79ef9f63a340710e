package persistence

import (
	"gorm.io/gorm"

	"github.com/propertyops/backend/internal/domain/shared"
)

// applyListOptions applies ordering and pagination from a filter.
// The order field is validated against the entity's whitelist so
// caller-supplied sort input never reaches the SQL unchecked.
func applyListOptions(query *gorm.DB, filter shared.Filter, allowedFields map[string]bool, defaultField string) *gorm.DB {
	orderBy := ValidateSortField(filter.OrderBy, allowedFields, defaultField)
	orderDir := ValidateSortOrder(filter.OrderDir)
	query = query.Order(orderBy + " " + orderDir)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}
	return query
}
