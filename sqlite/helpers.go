package sqlite

import (
	"database/sql"
	"fmt"
	"strings"
	"time"
)

// joinWhere joins WHERE conditions with AND.
func joinWhere(conds []string) string {
	return strings.Join(conds, " AND ")
}

// parseTime parses an RFC3339 timestamp stored as TEXT.
func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse timestamp %q: %w", s, err)
	}
	return t, nil
}

// formatTime formats a timestamp for TEXT storage.
func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// nullInt converts an optional int field to its SQL representation.
func nullInt(v *int) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*v), Valid: true}
}

// intPtr converts a nullable SQL integer back to an optional int field.
func intPtr(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	n := int(v.Int64)
	return &n
}

// nullString converts an optional string field to its SQL representation.
func nullString(v *string) sql.NullString {
	if v == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *v, Valid: true}
}

// stringPtr converts a nullable SQL string back to an optional string field.
func stringPtr(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	s := v.String
	return &s
}

// appendPagination appends LIMIT/OFFSET clauses when set.
func appendPagination(query string, args []any, offset, limit int) (string, []any) {
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}
	if offset > 0 {
		query += " OFFSET ?"
		args = append(args, offset)
	}
	return query, args
}
