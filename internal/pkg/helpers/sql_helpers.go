package helpers

import "database/sql"

// GetNullInt64 converts an int64 to sql.NullInt64, treating 0 as NULL.
// Used for the optional election reference on vote rows.
func GetNullInt64(i int64) sql.NullInt64 {
	if i == 0 {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: i, Valid: true}
}

// GetContentNullString converts a string to sql.NullString, treating the
// empty string as NULL. Used for the executive position name on delegate
// applications.
func GetContentNullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
