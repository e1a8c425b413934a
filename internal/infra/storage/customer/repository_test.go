package customer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchCustomerQuery(t *testing.T) {
	tests := []struct {
		name      string
		email     string
		phone     string
		forUpdate bool
		wantSQL   string
		wantArgs  []interface{}
	}{
		{
			name:     "outside transaction",
			email:    "jana@example.com",
			phone:    "+420777123456",
			wantSQL:  "SELECT id FROM customers WHERE (email = $1 OR phone = $2) ORDER BY (email = $3) DESC, id ASC LIMIT 1",
			wantArgs: []interface{}{"jana@example.com", "+420777123456", "jana@example.com"},
		},
		{
			name:      "inside transaction locks the row",
			email:     "petr@example.com",
			phone:     "+420602000111",
			forUpdate: true,
			wantSQL:   "SELECT id FROM customers WHERE (email = $1 OR phone = $2) ORDER BY (email = $3) DESC, id ASC LIMIT 1 FOR UPDATE",
			wantArgs:  []interface{}{"petr@example.com", "+420602000111", "petr@example.com"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, args, err := matchCustomerQuery(tt.email, tt.phone, tt.forUpdate)
			require.NoError(t, err)
			assert.Equal(t, tt.wantSQL, query)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}
