// Package cart defines the domain model of the shopping cart.
package cart

import (
	"github.com/nstepura/matmarket/internal/catalog"
)

// Line is one cart entry. Product is a snapshot frozen at the moment the
// line was created; later catalog edits do not change it.
type Line struct {
	Product  catalog.Product
	Quantity int32
}

// Clone returns a deep copy of the line.
func (l Line) Clone() Line {
	l.Product = l.Product.Clone()
	return l
}
