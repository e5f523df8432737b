package repository

import (
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/lib/pq"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/portfolio-api/internal/domain"
)

// pgUniqueViolation is the SQLSTATE for unique constraint violations
const pgUniqueViolation = "23505"

// duplicateFromPostgres converts a unique violation into a DuplicateKeyError
func duplicateFromPostgres(err error, resource, field, value string) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == pgUniqueViolation {
		return &domain.DuplicateKeyError{Resource: resource, Field: field, Value: value}
	}
	return err
}

// duplicateFromMongo converts a duplicate key write error into a DuplicateKeyError
func duplicateFromMongo(err error, resource, field, value string) error {
	if mongo.IsDuplicateKeyError(err) {
		return &domain.DuplicateKeyError{Resource: resource, Field: field, Value: value}
	}
	return err
}

// helper to convert empty string to NULL
func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func timePtr(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time
	return &v
}

// jsonList encodes a string list for a JSONB column, never as null
func jsonList(list []string) []byte {
	if len(list) == 0 {
		return []byte("[]")
	}
	data, err := json.Marshal(list)
	if err != nil {
		return []byte("[]")
	}
	return data
}

func decodeList(data []byte) []string {
	list := []string{}
	if len(data) > 0 {
		_ = json.Unmarshal(data, &list)
	}
	return list
}

// rowScanner is satisfied by *sql.Row and *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}
