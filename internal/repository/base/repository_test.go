package base

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
)

func TestIsNotFound(t *testing.T) {
	assert.True(t, IsNotFound(pgx.ErrNoRows))
	assert.True(t, IsNotFound(fmt.Errorf("get admin: %w", pgx.ErrNoRows)))
	assert.True(t, IsNotFound(fmt.Errorf("set digest: %w", ErrNotFound)))
	assert.False(t, IsNotFound(errors.New("connection reset")))
	assert.False(t, IsNotFound(nil))
}
