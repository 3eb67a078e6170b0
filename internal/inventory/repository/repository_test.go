package repository

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/schema"

	"github.com/tair/stockledger/internal/inventory/domain"
)

// Zero values must reach the database as written, so no column may carry a
// default that GORM would substitute on insert.
func TestGormSchema_ZeroValuesArePersisted(t *testing.T) {
	tests := []struct {
		name   string
		model  any
		fields []string
	}{
		{"item", &domain.Item{}, []string{"CurrentStock", "SafeStock"}},
		{"user", &domain.User{}, []string{"Role"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Setup
			s, err := schema.Parse(tt.model, &sync.Map{}, schema.NamingStrategy{})
			require.NoError(t, err)

			// Assert
			for _, name := range tt.fields {
				f := s.LookUpField(name)
				require.NotNil(t, f, name)
				assert.False(t, f.HasDefaultValue, name)
			}
		})
	}
}
