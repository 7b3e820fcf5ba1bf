package sale

import "context"

type SaleService interface {
	CreateSale(ctx context.Context, req CreateSaleRequest) (SaleResponse, error)
	ListSales(ctx context.Context, month, year int) ([]SaleResponse, error)
}
