package product

import (
	"fmt"
	"regexp"

	"github.com/google/uuid"
)

// Matches valid product names. Letters only, no spaces or digits.
var namePattern = regexp.MustCompile(`^[a-zA-Z]+$`)

// A product in the catalog.
type Product struct {
	ID    uuid.UUID `db:"id" json:"id"`
	Name  string    `db:"name" json:"name"`
	Price float64   `db:"price" json:"price"`
}

// Checks the product fields against the catalog rules.
//
// Names must be non-blank and alphabetic; prices must be positive.
func (p Product) Validate() error {
	if !namePattern.MatchString(p.Name) {
		return fmt.Errorf("%w: name must contain only letters, got %q", ErrInvalid, p.Name)
	}
	if p.Price <= 0 {
		return fmt.Errorf("%w: price must be greater than zero, got %v", ErrInvalid, p.Price)
	}
	return nil
}
