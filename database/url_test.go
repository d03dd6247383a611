package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConstructDatabaseURL(t *testing.T) {
	tests := []struct {
		name     string
		baseURL  string
		dbName   string
		expected string
	}{
		{
			name:     "no database name returns base url",
			baseURL:  "postgres://u:p@localhost:5432/stars",
			dbName:   "",
			expected: "postgres://u:p@localhost:5432/stars",
		},
		{
			name:     "appends name and sslmode",
			baseURL:  "postgres://u:p@localhost:5432/",
			dbName:   "stars",
			expected: "postgres://u:p@localhost:5432/stars?sslmode=disable",
		},
		{
			name:     "keeps existing query parameters",
			baseURL:  "postgres://u:p@localhost:5432?connect_timeout=5",
			dbName:   "stars",
			expected: "postgres://u:p@localhost:5432/stars?connect_timeout=5&sslmode=disable",
		},
		{
			name:     "respects explicit sslmode",
			baseURL:  "postgres://u:p@db:5432?sslmode=require",
			dbName:   "stars",
			expected: "postgres://u:p@db:5432/stars?sslmode=require",
		},
		{
			name:     "unparsable url is returned unchanged",
			baseURL:  "postgres://u:p@[::1:5432",
			dbName:   "stars",
			expected: "postgres://u:p@[::1:5432",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ConstructDatabaseURL(tt.baseURL, tt.dbName))
		})
	}
}
