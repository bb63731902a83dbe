package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/fleetops/driver-service/internal/domain/driver"
)

// TestIsUniqueViolation tests PostgreSQL error code detection
func TestIsUniqueViolation(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"Unique violation", &pq.Error{Code: "23505"}, true},
		{"Wrapped unique violation", fmt.Errorf("insert: %w", &pq.Error{Code: "23505"}), true},
		{"Foreign key violation", &pq.Error{Code: "23503"}, false},
		{"Plain error", errors.New("boom"), false},
		{"Nil", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, isUniqueViolation(tt.err))
		})
	}
}

// TestTranslate tests not-found mapping
func TestTranslate(t *testing.T) {
	assert.ErrorIs(t, translate(gorm.ErrRecordNotFound, driver.ErrDriverNotFound), driver.ErrDriverNotFound)

	other := errors.New("timeout")
	assert.Equal(t, other, translate(other, driver.ErrDriverNotFound))
}
