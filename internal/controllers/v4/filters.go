package v4

import (
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

// likeFilter matches the column against the value. A parameter that is
// explicitly set to the empty string filters for an empty field instead.
func likeFilter(query *gorm.DB, setFields []string, column, field, value string) *gorm.DB {
	if value != "" {
		return query.Where(column+" LIKE ?", "%"+value+"%")
	}

	if slices.Contains(setFields, field) {
		return query.Where(column + " = ''")
	}

	return query
}

// stringFilters applies the name, note and search query parameters.
func stringFilters(db, query *gorm.DB, setFields []string, name, note, search string) *gorm.DB {
	query = likeFilter(query, setFields, "name", "Name", name)
	query = likeFilter(query, setFields, "note", "Note", note)

	if search != "" {
		pattern := "%" + search + "%"
		query = query.Where(
			db.Where("name LIKE ?", pattern).Or(db.Where("note LIKE ?", pattern)),
		)
	}

	return query
}
