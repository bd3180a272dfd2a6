package cart

import "context"

// Repository stores carts by id
type Repository interface {
	// GetCart returns the cart, or an empty cart with that id when none is stored
	GetCart(ctx context.Context, id string) (*Cart, error)
	SaveCart(ctx context.Context, cart *Cart) error
	ClearCart(ctx context.Context, id string) error
}
