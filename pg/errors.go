package pg

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/code19m/errx"
	"github.com/jackc/pgx/v5/pgconn"
)

// ConstraintKind names the class of integrity constraint a PostgreSQL error violated.
type ConstraintKind string

const (
	ConstraintNone       ConstraintKind = ""
	ConstraintUnique     ConstraintKind = "unique"
	ConstraintForeignKey ConstraintKind = "foreign_key"
	ConstraintCheck      ConstraintKind = "check"
	ConstraintNotNull    ConstraintKind = "not_null"
)

// SQLSTATE codes of class 23 (integrity constraint violation).
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeCheckViolation      = "23514"
	codeNotNullViolation    = "23502"
)

// Violation returns the kind of constraint err violated, or ConstraintNone.
func Violation(err error) ConstraintKind {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return ConstraintNone
	}

	switch pgErr.Code {
	case codeUniqueViolation:
		return ConstraintUnique
	case codeForeignKeyViolation:
		return ConstraintForeignKey
	case codeCheckViolation:
		return ConstraintCheck
	case codeNotNullViolation:
		return ConstraintNotNull
	default:
		return ConstraintNone
	}
}

// IsConflict reports whether err is a unique constraint violation.
func IsConflict(err error) bool {
	return Violation(err) == ConstraintUnique
}

// ConstraintName returns the name of the violated constraint, or "" if err is not a PostgreSQL error.
func ConstraintName(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.ConstraintName
	}
	return ""
}

// IsNotFound checks if the error indicates that no rows were found.
func IsNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

// GetPgErrorDetails extracts query text and PostgreSQL diagnostics for error details.
func GetPgErrorDetails(err error, query fmt.Stringer) errx.D {
	details := make(errx.D)
	if queryStr := getSafeQueryString(query); queryStr != "" {
		details["query"] = strings.ReplaceAll(queryStr, `"`, ``)
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return details
	}

	details["pg.code"] = pgErr.Code
	details["pg.severity"] = pgErr.Severity
	details["pg.message"] = pgErr.Message
	details["pg.detail"] = pgErr.Detail
	details["pg.table"] = pgErr.TableName
	details["pg.column"] = pgErr.ColumnName
	details["pg.constraint"] = pgErr.ConstraintName

	return details
}

// getSafeQueryString renders query, returning "" if it is nil or String panics.
// bun queries can panic while formatting a model that failed validation.
func getSafeQueryString(query fmt.Stringer) (s string) {
	defer func() {
		if recover() != nil {
			s = ""
		}
	}()

	if query == nil {
		return ""
	}

	return query.String()
}
