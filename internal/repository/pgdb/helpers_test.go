package pgdb

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestPostgresDuplicate(t *testing.T) {
	dup := &pgconn.PgError{Code: uniqueViolation}

	assert.True(t, postgresDuplicate(dup))
	assert.True(t, postgresDuplicate(fmt.Errorf("insert: %w", dup)))
	assert.False(t, postgresDuplicate(&pgconn.PgError{Code: "23503"}))
	assert.False(t, postgresDuplicate(errors.New("other")))
}

func TestNoRows(t *testing.T) {
	assert.True(t, noRows(fmt.Errorf("scan: %w", pgx.ErrNoRows)))
	assert.False(t, noRows(errors.New("other")))
}

func TestParseID(t *testing.T) {
	_, ok := parseID("1")
	assert.False(t, ok)

	id, ok := parseID("6f1c2c1e-3d4b-4a55-9a3e-1f2b3c4d5e6f")
	assert.True(t, ok)
	assert.Equal(t, "6f1c2c1e-3d4b-4a55-9a3e-1f2b3c4d5e6f", id.String())
}
