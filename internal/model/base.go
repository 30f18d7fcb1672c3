package model

import (
	"strconv"
	"time"

	"github.com/google/uuid"
)

// Base contains common fields for all models. The identifier is surfaced
// as "Guid" in every JSON representation; storage timestamps never leave
// the API boundary.
type Base struct {
	ID        uuid.UUID `json:"Guid" db:"id"`
	CreatedAt time.Time `json:"-" db:"created_at"`
	UpdatedAt time.Time `json:"-" db:"updated_at"`
}

// Page sizes per collection
const (
	UserPageSize    = 5
	DefaultPageSize = 10
)

// PageOffset converts the "pagina" query value into a row offset.
// Non-numeric, negative and out-of-range input all fall back to page 0
// so the offset can never go negative.
func PageOffset(pagina string, pageSize int) (page, offset int) {
	page, err := strconv.Atoi(pagina)
	if err != nil || page < 0 {
		page = 0
	}
	return page, page * pageSize
}
