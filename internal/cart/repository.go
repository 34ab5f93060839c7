package cart

import (
	"context"
	"errors"

	"github.com/germanaqua/Psychovoystore/internal/domain"
)

// Repository defines the interface for durable cart storage.
// Consumers define this interface, not the sqlite implementation.
type Repository interface {
	Load(ctx context.Context, ownerID string) (*domain.Cart, error)
	Save(ctx context.Context, cart *domain.Cart) error
	Delete(ctx context.Context, ownerID string) error
}

var (
	ErrCartNotFound  = errors.New("cart not found")
	ErrDuplicateItem = errors.New("item already in cart")
)
