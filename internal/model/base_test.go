package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPageOffset(t *testing.T) {
	tests := []struct {
		name       string
		pagina     string
		pageSize   int
		wantPage   int
		wantOffset int
	}{
		{"empty defaults to zero", "", 10, 0, 0},
		{"first page", "0", 10, 0, 0},
		{"offset scales with page size", "2", 10, 2, 20},
		{"user page size", "3", UserPageSize, 3, 15},
		{"non-numeric defaults to zero", "abc", 10, 0, 0},
		{"mixed input defaults to zero", "1a", 10, 0, 0},
		{"negative page clamps to zero", "-2", 10, 0, 0},
		{"overflowing value defaults to zero", "99999999999999999999", 10, 0, 0},
		{"explicit plus sign parses", "+2", 10, 2, 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, offset := PageOffset(tt.pagina, tt.pageSize)
			assert.Equal(t, tt.wantPage, page)
			assert.Equal(t, tt.wantOffset, offset)
		})
	}
}
