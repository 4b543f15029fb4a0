package models

import "github.com/gocql/gocql"

type CartItem struct {
	ProductID gocql.UUID `json:"productId"`
	Quantity  int        `json:"quantity"`
}

// ResolvedCartItem is a cart line with its product reference expanded into the
// full record. Product is nil when the referenced product no longer exists.
type ResolvedCartItem struct {
	Product  *Product `json:"productId"`
	Quantity int      `json:"quantity"`
}
