package catalog

import (
	"context"
	"errors"
	"strings"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/germanaqua/Psychovoystore/internal/domain"
)

// Fetcher is what the store needs from the upstream client.
type Fetcher interface {
	FetchProducts(ctx context.Context) ([]domain.Product, error)
}

// CategoryAll is the sentinel that disables category filtering.
const CategoryAll = "all"

// Store holds the in-memory catalog snapshot. The snapshot is replaced
// wholesale on Load; there is no per-product mutation.
type Store struct {
	fetcher Fetcher
	cache   ProductCache // optional, may be nil
	logger  *zap.Logger
	sfg     singleflight.Group // Prevents concurrent loads hitting the upstream

	mu       sync.RWMutex
	products []domain.Product
}

func NewStore(fetcher Fetcher, cache ProductCache, logger *zap.Logger) *Store {
	return &Store{
		fetcher: fetcher,
		cache:   cache,
		logger:  logger,
	}
}

// Load fills the snapshot from the cache if possible, otherwise from the
// upstream API. On failure the snapshot is left as is (empty on first load);
// the caller decides how loudly to report it. There is no retry.
func (s *Store) Load(ctx context.Context) error {
	_, err, _ := s.sfg.Do(catalogKey, func() (interface{}, error) {
		if s.cache != nil {
			products, err := s.cache.Get(ctx)
			if err == nil {
				s.replace(products)
				return nil, nil
			}
			if !errors.Is(err, ErrCacheMiss) {
				s.logger.Warn("catalog cache get failed", zap.Error(err))
			}
		}

		products, err := s.fetcher.FetchProducts(ctx)
		if err != nil {
			return nil, err
		}
		s.replace(products)

		if s.cache != nil {
			go func() {
				if errSet := s.cache.Set(context.Background(), products); errSet != nil {
					s.logger.Warn("catalog cache set failed", zap.Error(errSet))
				}
			}()
		}

		return nil, nil
	})
	return err
}

func (s *Store) replace(products []domain.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products = products
}

func (s *Store) Products() []domain.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Product, len(s.products))
	copy(out, s.products)
	return out
}

func (s *Store) Get(id int64) (domain.Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.products {
		if p.ID == id {
			return p, true
		}
	}
	return domain.Product{}, false
}

// Search filters by a case-insensitive substring over name and description,
// and by exact category. Empty query and empty or "all" category match
// everything.
func (s *Store) Search(query, category string) []domain.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query = strings.ToLower(query)
	out := make([]domain.Product, 0, len(s.products))
	for _, p := range s.products {
		if query != "" &&
			!strings.Contains(strings.ToLower(p.Name), query) &&
			!strings.Contains(strings.ToLower(p.Description), query) {
			continue
		}
		if category != "" && category != CategoryAll && p.Category != category {
			continue
		}
		out = append(out, p)
	}
	return out
}

// Categories lists distinct categories in first-seen catalog order.
func (s *Store) Categories() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[string]struct{}, len(s.products))
	var out []string
	for _, p := range s.products {
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		out = append(out, p.Category)
	}
	return out
}
