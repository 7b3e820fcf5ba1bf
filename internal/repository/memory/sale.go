package memory

import (
	"context"
	"sort"

	"github.com/google/uuid"
	"github.com/lumiere-salon/salon-backend-go/internal/domain/sale"
)

type saleRepositoryImpl struct {
	store *Store
}

func NewSaleRepository(store *Store) sale.SaleRepository {
	return &saleRepositoryImpl{store: store}
}

func (r *saleRepositoryImpl) Create(ctx context.Context, s sale.Sale) (sale.Sale, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	s.CreatedAt = r.store.now()
	r.store.sales[s.ID] = s

	return s, nil
}

func (r *saleRepositoryImpl) ListByPeriod(ctx context.Context, month, year int) ([]sale.Sale, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var out []sale.Sale
	for _, s := range r.store.sales {
		if s.InPeriod(month, year) {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}
