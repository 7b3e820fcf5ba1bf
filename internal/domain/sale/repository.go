package sale

import "context"

type SaleRepository interface {
	Create(ctx context.Context, s Sale) (Sale, error)
	// ListByPeriod returns all sales dated in month/year.
	ListByPeriod(ctx context.Context, month, year int) ([]Sale, error)
}
