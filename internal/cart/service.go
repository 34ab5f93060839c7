package cart

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/germanaqua/Psychovoystore/internal/domain"
)

// Service owns the canonical cart state for every session. Each mutation is
// written back to durable storage immediately; persistence is best-effort,
// so a failed write never fails the mutation itself.
type Service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger *zap.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// GetCart never fails: a missing record, an unreachable store or a corrupt
// payload all read as an empty cart.
func (s *Service) GetCart(ctx context.Context, ownerID string) *domain.Cart {
	cart, err := s.repo.Load(ctx, ownerID)
	if err != nil {
		if !errors.Is(err, ErrCartNotFound) {
			s.logger.Warn("cart load failed, starting empty",
				zap.String("owner_id", ownerID), zap.Error(err))
		}
		return domain.NewCart(ownerID)
	}
	return cart
}

// AddItem appends a single-quantity entry for the product. Adding a product
// that is already present is rejected, not merged.
func (s *Service) AddItem(ctx context.Context, ownerID string, product domain.Product) (*domain.Cart, error) {
	cart := s.GetCart(ctx, ownerID)
	if cart.Contains(product.ID) {
		return cart, ErrDuplicateItem
	}

	cart.Items = append(cart.Items, domain.NewCartItem(product))
	s.persist(ctx, cart)
	return cart, nil
}

// RemoveItem is idempotent: removing an absent id leaves the cart as is.
func (s *Service) RemoveItem(ctx context.Context, ownerID string, productID int64) *domain.Cart {
	cart := s.GetCart(ctx, ownerID)

	kept := cart.Items[:0]
	for _, item := range cart.Items {
		if item.ID != productID {
			kept = append(kept, item)
		}
	}
	cart.Items = kept

	s.persist(ctx, cart)
	return cart
}

// UpdateQuantity exists only to support a decrement-to-zero gesture:
// zero removes the entry, every other value is a no-op.
func (s *Service) UpdateQuantity(ctx context.Context, ownerID string, productID int64, quantity int) *domain.Cart {
	if quantity == 0 {
		return s.RemoveItem(ctx, ownerID, productID)
	}
	return s.GetCart(ctx, ownerID)
}

// Clear empties the cart and drops the durable record entirely.
func (s *Service) Clear(ctx context.Context, ownerID string) *domain.Cart {
	if err := s.repo.Delete(ctx, ownerID); err != nil {
		s.logger.Warn("cart delete failed",
			zap.String("owner_id", ownerID), zap.Error(err))
	}
	return domain.NewCart(ownerID)
}

func (s *Service) persist(ctx context.Context, cart *domain.Cart) {
	if err := s.repo.Save(ctx, cart); err != nil {
		s.logger.Warn("cart save failed",
			zap.String("owner_id", cart.OwnerID), zap.Error(err))
	}
}
